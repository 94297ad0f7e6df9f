package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/floors"
	"github.com/abhisek/stacks/internal/progress"
	"github.com/abhisek/stacks/internal/source"
	"github.com/abhisek/stacks/internal/ui/components"
)

var floorsCmd = &cobra.Command{
	Use:   "floors",
	Short: "Print the floor catalog of a course",
	Long:  "Print every floor of a course, or with --module the detail of a single module.",
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

		fetcher, closeFetcher, err := openFetcher(cfg, log)
		if err != nil {
			return err
		}
		defer closeFetcher()

		out := cmd.OutOrStdout()
		courseID := cfg.Source.CourseID

		if id, _ := cmd.Flags().GetString("module"); id != "" {
			rec, err := fetcher.FetchRecord(cmd.Context(), courseID, id)
			if errors.Is(err, source.ErrRecordNotFound) {
				return fmt.Errorf("no module %q in course %q", id, courseID)
			}
			if err != nil {
				return &source.ErrFetch{CourseID: courseID, Err: err}
			}
			printModule(out, rec, time.Now())
			return nil
		}

		records, err := fetcher.FetchRecords(cmd.Context(), courseID)
		if err != nil {
			return &source.ErrFetch{CourseID: courseID, Err: err}
		}

		catalog := floors.NewCatalog(log)
		built := catalog.Build(records, time.Now())

		fmt.Fprintf(out, "%s  %s  %s  %4s  %s  %s\n",
			cell("Floor", 5), cell("Name", 36), cell("Status", 22), "Done", cell("Access", 6), "Prereqs")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, f := range built {
			if f.IsLobby() {
				fmt.Fprintf(out, "%s  %s\n", cell(f.Label(), 5), cell(f.Name, 36))
				continue
			}
			prereqs := "-"
			if info := progress.Prerequisites(*f.Record, catalog.Records()); info.HasPrerequisites {
				prereqs = "met"
				if !info.Met {
					prereqs = "not met"
				}
			}
			fmt.Fprintf(out, "%s  %s  %s  %3d%%  %s  %s\n",
				cell(f.Label(), 5), cell(f.Name, 36), cell(f.StatusText, 22),
				f.Progress.CompletionPercentage, cell(yesNo(f.Accessible), 6), prereqs)
		}

		fmt.Fprintf(out, "\n%d floors\n", len(built))
		return nil
	},
}

func init() {
	floorsCmd.Flags().String("module", "", "Show the detail of one module by id")
}

// printModule writes the detail of a single module.
func printModule(out io.Writer, rec course.ProgressRecord, now time.Time) {
	d := progress.Derive(rec, now)

	fmt.Fprintf(out, "%s (%s)\n", rec.Name, rec.ID)
	fmt.Fprintf(out, "  Position:     %d\n", rec.Position)
	fmt.Fprintf(out, "  Status:       %s\n", d.StatusText)
	fmt.Fprintf(out, "  Completion:   %d%% (%d of %d)\n",
		d.CompletionPercentage, d.CompletedItemCount, d.TotalItemCount)
	fmt.Fprintf(out, "  Accessible:   %s\n", yesNo(d.Accessible))
	if len(rec.PrerequisiteIDs) > 0 {
		fmt.Fprintf(out, "  Requires:     %s\n", strings.Join(rec.PrerequisiteIDs, ", "))
	}
	fmt.Fprintf(out, "  Submissions:  %s\n", progress.SubmissionSummary(rec))
	if progress.HasUngradedWork(rec) {
		fmt.Fprintln(out, "                awaiting grading")
	}
	if progress.HasMissingSubmissions(rec) {
		fmt.Fprintln(out, "                work still to submit")
	}

	for _, item := range rec.Items {
		mark := "·"
		if req := item.CompletionRequirement; req != nil {
			mark = "○"
			if req.Completed {
				mark = "✓"
			}
		}
		fmt.Fprintf(out, "  %s %s\n", mark, item.Title)
	}
}

// cell fits s into exactly w display columns.
func cell(s string, w int) string {
	s = components.Truncate(s, w)
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
