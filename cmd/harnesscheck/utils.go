package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"harnesscheck/pkg/config"
)

var replacer = strings.NewReplacer(".", "_", "-", "_")

type argType interface {
	string | bool | int | time.Duration
}

// envName maps a flag name to its environment variable.
func envName(flag string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(replacer.Replace(flag))
}

func envOr(env, def string) string {
	if v, ok := os.LookupEnv(env); ok {
		return v
	}
	return def
}

func bindEnvMap[T argType](cmd *cobra.Command, settings *viper.Viper, m map[*T]boundEnvVar[T]) {
	for v, cfg := range m {
		env := envName(cfg.Name)
		if cfg.Env != nil {
			env = *cfg.Env
		}
		desc := fmt.Sprintf("[%s] %s", env, cfg.Description)
		short := ""
		if cfg.Short != nil {
			short = *cfg.Short
		}

		switch vt := any(v).(type) {
		case *string:
			cmd.PersistentFlags().StringVarP(vt, cfg.Name, short, *vt, desc)
		case *bool:
			cmd.PersistentFlags().BoolVarP(vt, cfg.Name, short, *vt, desc)
		case *int:
			cmd.PersistentFlags().CountVarP(vt, cfg.Name, short, desc)
		case *time.Duration:
			cmd.PersistentFlags().DurationVarP(vt, cfg.Name, short, *vt, desc)
		default:
			log.Panicf("command-args parsing error: unhandled default case for type %T", vt)
		}

		_ = settings.BindPFlag(cfg.Name, cmd.PersistentFlags().Lookup(cfg.Name))
		_ = settings.BindEnv(cfg.Name, env)

		if cfg.Hidden {
			_ = cmd.PersistentFlags().MarkHidden(cfg.Name)
		}
	}
}

// loadConfiguration layers the configuration file, environment and explicit
// flags, in increasing precedence, over the defaults.
func loadConfiguration(cmd *cobra.Command, settings *viper.Viper) error {
	flags := cmd.Flags()

	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	_, fromEnv := os.LookupEnv(envName("config"))
	required := flags.Changed("config") || fromEnv
	if err := config.LoadFromFile(configFilePath, required); err != nil {
		return err
	}
	if err := config.SetDefaults(); err != nil {
		return err
	}

	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" {
			return
		}
		if value, ok := explicit[f.Name]; ok {
			errs = append(errs, f.Value.Set(value))
			return
		}
		if settings.IsSet(f.Name) {
			if err := f.Value.Set(settings.GetString(f.Name)); err != nil {
				errs = append(errs, fmt.Errorf("invalid value for %s: %w", envName(f.Name), err))
			}
		}
	})
	return errors.Join(errs...)
}
