package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/blockfmt/internal/config"
	"github.com/dshills/blockfmt/internal/editor"
	"github.com/dshills/blockfmt/internal/logging"
)

// globals holds the state shared by all subcommands.
type globals struct {
	configPath string
	logLevel   string
	logFile    string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "blockfmt",
		Short:         "Switch document blocks between paragraphs and headings",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to a TOML or JSON configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Write logs to a rotated file instead of stderr")

	root.AddCommand(
		newApplyCmd(g),
		newFormatsCmd(g),
		newRunCmd(g),
	)
	return root
}

// setup loads the configuration and builds the logger. Flags win over the
// file and the environment.
func (g *globals) setup() error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFile != "" {
		cfg.Log.File = g.logFile
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}

	g.cfg = cfg
	g.logger = logger
	return nil
}

func (g *globals) newEditor() (*editor.Editor, error) {
	return editor.New(
		editor.WithConfig(g.cfg),
		editor.WithLogger(g.logger),
	)
}
