package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/config"
	"github.com/abhisek/stacks/internal/logging"
	"github.com/abhisek/stacks/internal/source"
	"github.com/abhisek/stacks/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "stacks",
	Short: "Ride the elevator through your course",
	Long:  "Stacks turns a course's module progress into the floors of a library you can walk through in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTour(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(tourCmd)
	rootCmd.AddCommand(floorsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file")
	fs.String("db", "", "Path to SQLite database file (overrides STACKS_DB env var)")
	fs.String("course", "", "Course id to load (overrides STACKS_COURSE env var)")
	fs.String("source", "", "Record source: demo, file or db")
	fs.String("file", "", "Course export JSON to read (implies --source file)")
	fs.BoolP("verbose", "v", false, "Write debug logs")
}

// loadConfig builds the runtime config: defaults, then the --config file
// and environment, then command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetString("course"); v != "" {
		cfg.Source.CourseID = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Source.Kind = config.SourceDB
		cfg.Source.Path = v
	}
	if v, _ := cmd.Flags().GetString("file"); v != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = v
	}
	if v, _ := cmd.Flags().GetString("source"); v != "" {
		cfg.Source.Kind = config.SourceKind(v)
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openLogger returns the file logger for cfg.
func openLogger(cfg config.Config) (*zap.Logger, error) {
	path := cfg.LogPath
	if path == "" {
		p, err := config.DefaultLogPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return logging.New(path, cfg.Verbose)
}

// resolveDBPath returns the database path from the config, then STACKS_DB,
// then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.Source.Kind == config.SourceDB && cfg.Source.Path != "" {
		return cfg.Source.Path, store.EnsureDir(cfg.Source.Path)
	}
	return store.DefaultDBPath()
}

// openFetcher builds the record source selected by cfg. The returned close
// function releases it and is never nil.
func openFetcher(cfg config.Config, log *zap.Logger) (source.Fetcher, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceFile:
		return source.NewFile(cfg.Source.Path, log), func() {}, nil
	case config.SourceDB:
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return st, func() { st.Close() }, nil
	default:
		d := source.NewDemo(cfg.DemoLatency)
		return d, func() {}, nil
	}
}
