package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"harnesscheck/pkg/suite"
)

func cmdValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <suite.yaml>...",
		Short: "Parse and compile suite files without sending any request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := color.New(color.FgGreen)
			bad := color.New(color.FgRed)
			info := color.New(color.FgCyan)

			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				s, err := suite.LoadSuiteFromFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(w, "%s %s\n  %v\n", bad.Sprint("✗"), path, err)
					continue
				}
				fmt.Fprintf(w, "%s %s %s\n", ok.Sprint("✓"), path,
					info.Sprintf("(%s, %d cases)", s.Name, len(s.Cases)))
			}

			if failed > 0 {
				return errors.Errorf("%d of %d suite files are invalid", failed, len(args))
			}
			return nil
		},
	}
}
