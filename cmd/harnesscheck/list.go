package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"harnesscheck/pkg/checks"
	"harnesscheck/pkg/config"
	"harnesscheck/pkg/utils"
)

const listNameWidth = 44

func cmdList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the cases of the selected suite in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := selectSuite(config.Suite.Path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %d cases\n", s.Name, len(s.Cases))
			for i, tc := range s.Cases {
				body := ""
				if tc.Body != nil {
					body = " +body"
				}
				fmt.Fprintf(w, "%3d. %-*s %-7s %s%s  [%s]\n",
					i+1, listNameWidth, utils.Truncate(tc.Name, listNameWidth),
					tc.Method, tc.Path, body, checks.Describe(tc.Check))
			}
			return nil
		},
	}
}
