package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"harnesscheck/pkg/checker"
	"harnesscheck/pkg/config"
	"harnesscheck/pkg/executor"
	"harnesscheck/pkg/reporter"
	"harnesscheck/pkg/suite"
)

func cmdRun() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the selected suite against the harness (default)",
		Args:  cobra.NoArgs,
		RunE:  runSuite,
	}
}

// runSuite exits zero whatever the case outcomes; only setup errors fail it.
func runSuite(cmd *cobra.Command, _ []string) error {
	s, err := selectSuite(config.Suite.Path)
	if err != nil {
		return err
	}

	rep := reporter.New(cmd.OutOrStdout())
	if config.Global.NoColor {
		rep.DisableColor()
	}

	c := checker.New(config.Harness.BaseURL,
		checker.WithTimeout(config.Harness.Timeout),
		checker.WithReporter(rep),
		checker.WithLogger(logger.With("component", "checker")))

	logger.Info("Testing harness", "base_url", c.BaseURL(), "suite", s.Name, "timeout", config.Harness.Timeout)
	executor.Execute(cmd.Context(), s, c, rep)
	return nil
}

// selectSuite loads path, or returns the built-in suite when path is empty.
func selectSuite(path string) (*suite.Suite, error) {
	if path == "" {
		return suite.Builtin(), nil
	}
	s, err := suite.LoadSuiteFromFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load suite")
	}
	return s, nil
}
