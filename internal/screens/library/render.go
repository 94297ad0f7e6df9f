package library

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/stacks/internal/course"
	"github.com/abhisek/stacks/internal/floors"
	"github.com/abhisek/stacks/internal/progress"
	"github.com/abhisek/stacks/internal/ui/components"
	"github.com/abhisek/stacks/internal/ui/theme"
)

// renderLobby draws the building directory. compact drops the headings.
func renderLobby(all []floors.Floor, cw int, compact bool) string {
	var b strings.Builder
	b.WriteString(components.Plaque("LOBBY", theme.Primary, cw))
	b.WriteString("\n")
	if !compact {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(cw).Render("Building directory"))
		b.WriteString("\n\n")
	}

	var rows []string
	for _, f := range all {
		if f.IsLobby() {
			continue
		}
		palette := theme.Status(f.Progress.Category)
		label := lipgloss.NewStyle().Width(4).Foreground(palette.Primary).Bold(true).Render(f.Label())
		name := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Name)
		status := lipgloss.NewStyle().Foreground(palette.Secondary).Render(f.StatusText)
		row := label + name + "  " + status
		if f.Record != nil {
			row += workMarks(*f.Record)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = append(rows, theme.Hint.Render("This building has no floors yet."))
	}
	b.WriteString(components.Card(strings.Join(rows, "\n"), cw, theme.Border))
	if !compact {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("Press e to call the elevator"))
	}
	return b.String()
}

// workMarks flags submissions waiting on a grader or on the learner.
func workMarks(rec course.ProgressRecord) string {
	var marks string
	if progress.HasUngradedWork(rec) {
		marks += " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("[pending]")
	}
	if progress.HasMissingSubmissions(rec) {
		marks += " " + theme.Failure.Render("[missing]")
	}
	return marks
}

// renderModule draws a module floor: its status, completion, items,
// prerequisites and submissions. compact leaves out the item list.
func renderModule(f floors.Floor, records []course.ProgressRecord, cw int, compact bool) string {
	palette := theme.Status(f.Progress.Category)

	var b strings.Builder
	b.WriteString(components.Plaque("FLOOR "+f.Label(), palette.Primary, cw))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(f.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(palette.Secondary).Render(f.StatusText))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Completion", f.Progress.CompletionPercentage, true, cw)
	bar.Color = palette.Primary
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d of %d requirements complete",
		f.Progress.CompletedItemCount, f.Progress.TotalItemCount)))
	b.WriteString("\n\n")

	if f.Record == nil {
		return b.String()
	}
	rec := *f.Record

	if len(rec.Items) > 0 && !compact {
		lines := make([]string, 0, len(rec.Items))
		for _, item := range rec.Items {
			lines = append(lines, itemLine(item))
		}
		b.WriteString(components.Card(strings.Join(lines, "\n"), cw, palette.Primary))
		b.WriteString("\n")
	}

	if info := progress.Prerequisites(rec, records); info.HasPrerequisites {
		state := theme.Done.Render("met")
		if !info.Met {
			state = theme.Failure.Render("not met")
		}
		names := strings.Join(info.Names, ", ")
		if names == "" {
			names = "unknown modules"
		}
		b.WriteString(theme.Body.Render("Prerequisites: "+names+" ") + state)
		b.WriteString("\n")
	}

	b.WriteString(theme.Body.Render("Submissions: " + progress.SubmissionSummary(rec)))
	return b.String()
}

func itemLine(item course.Item) string {
	title := item.Title
	if item.Type != "" {
		title += " (" + item.Type + ")"
	}
	switch {
	case item.CompletionRequirement == nil:
		return theme.Hint.Render("· " + title)
	case item.CompletionRequirement.Completed:
		return theme.Done.Render("✓ ") + theme.Body.Render(title)
	default:
		return theme.Body.Render("○ " + title)
	}
}
