package commands

import (
	"github.com/spf13/cobra"
)

func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, credentials, and provider health",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd)
			report := a.router.Doctor()
			return a.emit(report, func() { a.text.Doctor(report) })
		},
	}
	return cmd
}
