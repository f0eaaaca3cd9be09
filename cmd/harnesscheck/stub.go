package main

import (
	"github.com/spf13/cobra"

	"harnesscheck/pkg/config"
	"harnesscheck/pkg/fakeharness"
)

func cmdStub() *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Serve a fake harness for trying suites without the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []fakeharness.Option{
				fakeharness.WithLogger(logger.With("component", "fakeharness")),
				fakeharness.WithMonsterGroups(config.Stub.MonsterGroups),
			}
			if config.Stub.InCombat {
				opts = append(opts, fakeharness.InCombat())
			}
			return fakeharness.New(opts...).ListenAndServe(cmd.Context(), config.Stub.Addr)
		},
	}
}
