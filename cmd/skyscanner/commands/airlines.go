package commands

import (
	"github.com/spf13/cobra"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
)

func AirlinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "airlines",
		Short: "List known airlines and their codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd)
			airlines := core.Airlines()
			return a.emit(airlines, func() { a.text.Airlines(airlines) })
		},
	}
}
