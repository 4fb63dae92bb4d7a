// Command cfgpath enumerates control flow paths, finds where they converge and
// reconciles the stack balance at merge blocks.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// options are the global flags.
type options struct {
	graphFile string
	bytecode  string
	logLevel  string
	logFile   string
	noColor   bool
	strict    bool
	maxPaths  int

	logger *zap.Logger
}

func main() {
	rootCmd := newRootCommand()
	err := rootCmd.Execute()
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{logLevel: "warn"}
	cmd := &cobra.Command{
		Use:           "cfgpath",
		Short:         "Control flow path and stack balance analysis",
		Long:          "cfgpath enumerates the paths out of a block, finds where they converge and reconciles the stack balance of every merge block.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			logger, err := buildLogger(opts.logLevel, opts.logFile)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.graphFile, "graph", "g", "", "YAML graph file to analyse")
	cmd.PersistentFlags().StringVarP(&opts.bytecode, "bytecode", "b", "", "EVM bytecode to analyse, as hex or @file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Also write the log to file")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable color output")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Fail if no path can be formed from a start block")
	cmd.PersistentFlags().IntVar(&opts.maxPaths, "max-paths", 0, "Stop after this many paths per start block (0 for no limit)")

	cmd.AddCommand(
		newPathsCommand(opts),
		newConvergeCommand(opts),
		newBalanceCommand(opts),
		newAnalyseCommand(opts),
		newGraphCommand(opts),
		newSSACommand(opts),
	)
	cmd.Example = `  # Paths out of block 0 of a YAML graph
  cfgpath paths --graph diamond.yaml 0

  # Stack balance at every merge block of a contract
  cfgpath analyse --bytecode @contract.hex

  # Convert bytecode into a YAML graph
  cfgpath graph --bytecode 0x60016008576002005b600300`
	bindViper(cmd)
	return cmd
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("CFGPATH")
	v.AutomaticEnv()
	configFile := os.Getenv("CFGPATH_CONFIG")
	configureConfigFile(v, configFile)

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, configFile != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed || !v.IsSet(f.Name) {
						return
					}
					if val := fmt.Sprintf("%v", v.Get(f.Name)); val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("cfgpath")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "cfgpath"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "cfgpath"))
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

// buildLogger returns a zap logger writing to stderr, and file if not empty.
func buildLogger(level, file string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		cfg = zap.NewDevelopmentConfig()
		zapLevel = zapcore.DebugLevel
	case "info", "":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, errors.Errorf("unknown log level %q (expected debug, info, warn, or error)", level)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}
	return cfg.Build()
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
