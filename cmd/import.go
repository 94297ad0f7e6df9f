package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Store a course export in the local database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := openLogger(cfg)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer log.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read course export: %w", err)
		}
		records, skipped, err := course.Decode(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}
		for _, e := range skipped {
			fmt.Fprintln(os.Stderr, "skipped:", e)
		}

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = cfg.Source.CourseID
		}
		if err := st.ImportCourse(cmd.Context(), cfg.Source.CourseID, name, records); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d modules into %q (%d skipped)\n", len(records), cfg.Source.CourseID, len(skipped))
		fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", dbPath)
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "Display name of the course (defaults to the course id)")
}
