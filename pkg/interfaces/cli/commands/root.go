package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vsinha/faraid/pkg/application/services/faraid"
	"github.com/vsinha/faraid/pkg/application/services/orchestration"
	"github.com/vsinha/faraid/pkg/domain/repositories"
	"github.com/vsinha/faraid/pkg/infrastructure/cache"
	"github.com/vsinha/faraid/pkg/infrastructure/config"
	"github.com/vsinha/faraid/pkg/infrastructure/logging"
	"github.com/vsinha/faraid/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/faraid/pkg/interfaces/cli/output"
)

// Version is set at build time with -ldflags "-X .../commands.Version=..."
var Version = "dev"

// app carries the state shared by every subcommand of one invocation
type app struct {
	v         *viper.Viper
	cfgFile   string
	verbose   bool
	cfg       *config.Config
	logger    *zap.Logger
	directory repositories.HeirDirectory
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree with its own viper instance
func NewRootCommand() *cobra.Command {
	a := &app{
		v:         viper.New(),
		directory: memory.NewStandardHeirDirectory(),
	}

	root := &cobra.Command{
		Use:   "faraid",
		Short: "Faraid - Islamic inheritance allocation",
		Long: `Faraid divides an estate between the heirs of a deceased person following the
classical rules of Islamic inheritance: blocking (hajb), fixed shares (furudh),
residue ('asabah), increase ('aul), return (radd) and indivisibility correction.

Heirs are given by category id (see 'faraid heirs') and quantity.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.faraid/config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.String("format", "", "output format: text, json, csv")
	flags.String("output-dir", "", "write results to files in this directory")
	flags.Int32("precision", 0, "decimal places shown for amounts")
	flags.String("currency", "", "currency code shown next to amounts")

	_ = a.v.BindPFlag("output.format", flags.Lookup("format"))
	_ = a.v.BindPFlag("output.dir", flags.Lookup("output-dir"))
	_ = a.v.BindPFlag("precision", flags.Lookup("precision"))
	_ = a.v.BindPFlag("currency", flags.Lookup("currency"))

	root.AddCommand(
		a.newCalcCommand(),
		a.newHeirsCommand(),
		a.newMauqufCommand(),
		a.newMunasakhotCommand(),
		a.newGharqaCommand(),
		a.newConfigCommand(),
		newVersionCommand(),
	)
	return root
}

// initConfig reads the config file and environment, then builds the logger
func (a *app) initConfig(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	config.ConfigureEnv(a.v)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".faraid"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if a.verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	a.logger = logger

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

// engineConfig wires the configured logger and cache into the calculator
func (a *app) engineConfig() faraid.EngineConfig {
	engine := faraid.EngineConfig{
		AmountPrecision: faraid.DefaultAmountPrecision,
		Logger:          a.logger,
	}
	if a.cfg.Cache.Enabled {
		engine.Cache = cache.NewResultCache(a.cfg.Cache.TTL, a.cfg.Cache.CleanupInterval)
	}
	return engine
}

func (a *app) calculator() *faraid.CalculatorService {
	return faraid.NewCalculatorServiceWithConfig(a.directory, a.engineConfig())
}

func (a *app) orchestrator() *orchestration.SuccessionOrchestrator {
	return orchestration.NewSuccessionOrchestrator(a.calculator(), orchestration.Config{
		Workers:         a.cfg.Workers,
		AmountPrecision: faraid.DefaultAmountPrecision,
		Logger:          a.logger,
	})
}

func (a *app) outputConfig(cmd *cobra.Command) output.Config {
	return output.Config{
		Format: a.cfg.Output.Format,
		Dir:    a.cfg.Output.Dir,
		Out:    cmd.OutOrStdout(),
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "faraid %s\n", Version)
		},
	}
}
