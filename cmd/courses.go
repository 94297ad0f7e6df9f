package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/stacks/internal/store"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses imported into the local database",
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

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		courses, err := st.Courses(cmd.Context())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses imported yet. Use `stacks import <file.json> --course <id>`.")
			return nil
		}

		fmt.Printf("%-24s  %-36s  %7s  %s\n", "ID", "Name", "Modules", "Imported")
		fmt.Println(strings.Repeat("─", 90))
		for _, c := range courses {
			imported := "-"
			if !c.ImportedAt.IsZero() {
				imported = c.ImportedAt.Local().Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-24s  %-36s  %7d  %s\n", c.ID, c.Name, c.Modules, imported)
		}
		return nil
	},
}
