package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"harnesscheck/pkg/config"
)

const defaultConfigFile = "harnesscheck.yaml"

var (
	configFilePath string
	logger         *slog.Logger
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for harnesscheck. Without a subcommand it runs
// the selected suite.
func New() *cobra.Command {
	settings := viper.New()

	cmd := &cobra.Command{
		Use:           "harnesscheck",
		Short:         "Smoke-test the AethermancerHarness HTTP endpoints",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfiguration(cmd, settings); err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
			})).With("run_id", uuid.NewString())
			slog.SetDefault(logger)
			if config.Global.NoColor {
				color.NoColor = true
			}
			return nil
		},
		RunE: runSuite,
	}

	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", envOr(envName("config"), defaultConfigFile),
		"["+envName("config")+"] path to the configuration file")

	if err := config.Reset(); err != nil {
		panic(err)
	}

	setupDynamicFlags(cmd, settings)

	cmd.AddCommand(
		cmdRun(),
		cmdValidate(),
		cmdList(),
		cmdStub(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command, settings *viper.Viper) {
	settings.SetEnvPrefix(config.EnvPrefix)
	settings.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, settings, envMapString)
	bindEnvMap(cmd, settings, envMapBool)
	bindEnvMap(cmd, settings, envMapCount)
	bindEnvMap(cmd, settings, envMapDuration)
}
