package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/stacks/internal/app"
	"github.com/abhisek/stacks/internal/config"
	"github.com/abhisek/stacks/internal/source"
)

var errNoTerminal = errors.New("the tour needs an interactive terminal; try 'stacks floors' instead")

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Walk through the course building",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTour(cmd)
	},
}

func init() {
	tourCmd.Flags().Bool("skip-intro", false, "Start in the lobby without the entrance screen")
}

// runTour resolves the record source and launches the TUI.
func runTour(cmd *cobra.Command) error {
	if !interactive() {
		return errNoTerminal
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := openLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	fetcher, closeFetcher, err := openFetcher(cfg, log)
	if err != nil {
		return err
	}
	defer closeFetcher()

	var changes <-chan struct{}
	if cfg.Source.Kind == config.SourceFile {
		w, err := source.WatchFile(cfg.Source.Path, log)
		if err != nil {
			log.Warn("live reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			changes = w.Changes()
		}
	}

	skip, _ := cmd.Flags().GetBool("skip-intro")
	return app.Run(app.Options{
		Fetcher:     fetcher,
		CourseID:    cfg.Source.CourseID,
		CourseName:  cfg.Source.CourseID,
		Config:      cfg,
		Logger:      log,
		SkipWelcome: skip,
		Changes:     changes,
	})
}

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
