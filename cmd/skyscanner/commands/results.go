package commands

import (
	"github.com/spf13/cobra"
)

type savedResults struct {
	Dir       string   `json:"dir"`
	Reports   []string `json:"reports"`
	Deeplinks []string `json:"deeplinks"`
}

func ResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "List saved search reports and deeplink dumps",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := setup(cmd)

			reports, err := a.dumps.List("flights")
			if err != nil {
				return a.fail("list results", err)
			}
			links, err := a.dumps.List("deeplinks")
			if err != nil {
				return a.fail("list results", err)
			}

			res := savedResults{Dir: a.dumps.Path(), Reports: reports, Deeplinks: links}
			return a.emit(res, func() {
				a.text.Files("Reports", res.Reports)
				a.text.Files("Deeplinks", res.Deeplinks)
			})
		},
	}
}
