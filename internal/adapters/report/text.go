// Package report provides the renderers of analysis reports.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.trai.ch/critpath/internal/core/domain"
	"go.trai.ch/critpath/internal/core/ports"
	"go.trai.ch/critpath/internal/ui/output"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*TextRenderer)(nil)

// TextRenderer writes reports as coloured text for terminals.
type TextRenderer struct{}

// NewTextRenderer creates a new TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render writes a summary per report. When all is set the full schedule table follows each summary.
func (r *TextRenderer) Render(w io.Writer, reports []domain.Report, all bool) error {
	out := output.New(w)
	re := lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile()))

	var b strings.Builder
	for i, rep := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		writeSummary(&b, out, &rep)
		if all && len(rep.Tasks) > 0 {
			b.WriteString(scheduleTable(re, &rep))
			b.WriteString("\n")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

func writeSummary(b *strings.Builder, out *termenv.Output, rep *domain.Report) {
	b.WriteString(rep.Source)
	if rep.Project != "" {
		b.WriteString(" (" + rep.Project + ")")
	}
	b.WriteString(" " + statusLabel(out, rep.Status) + "\n")

	if rep.Status == domain.AnalysisStatusFailed {
		b.WriteString("  " + out.String("error: "+rep.Error).Foreground(output.Red).String() + "\n")
		return
	}

	if rep.Start.IsZero() {
		fmt.Fprintf(b, "  %s\n", days(rep.Duration))
	} else {
		fmt.Fprintf(b, "  %s → %s, %s\n", formatDate(rep.Start), formatDate(rep.Finish), days(rep.Duration))
	}

	path := "none"
	if len(rep.CriticalPath) > 0 {
		path = strings.Join(rep.CriticalPath, " → ")
	}
	fmt.Fprintf(b, "  critical path: %s\n", path)

	if len(rep.CriticalContainers) > 0 {
		fmt.Fprintf(b, "  critical containers: %s\n", strings.Join(rep.CriticalContainers, ", "))
	}

	for _, v := range rep.Violations {
		line := fmt.Sprintf("%s %s %s constraint not met: proposed %s, applied %s",
			output.Warning, v.Task, v.Side, formatDate(v.Proposed), formatDate(v.Applied))
		b.WriteString("  " + out.String(line).Foreground(output.Yellow).String() + "\n")
	}
}

func statusLabel(out *termenv.Output, status domain.AnalysisStatus) string {
	switch status {
	case domain.AnalysisStatusCached:
		return out.String(output.Dot + " cached").Foreground(output.Iris).String()
	case domain.AnalysisStatusFailed:
		return out.String(output.Cross + " failed").Foreground(output.Red).String()
	default:
		return out.String(output.Check + " completed").Foreground(output.Green).String()
	}
}

func scheduleTable(re *lipgloss.Renderer, rep *domain.Report) string {
	critical := re.NewStyle().Foreground(lipgloss.Color(string(output.Red))).Padding(0, 1)
	muted := re.NewStyle().Foreground(lipgloss.Color(string(output.Slate))).Padding(0, 1)
	plain := re.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle().Foreground(lipgloss.Color(string(output.Slate)))).
		Headers("", "TASK", "START", "FINISH", "DAYS", "ES", "EF", "LS", "LF", "SLACK").
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return muted.Bold(true)
			case row >= 0 && row < len(rep.Tasks) && rep.Tasks[row].Critical:
				return critical
			default:
				return plain
			}
		})

	for _, task := range rep.Tasks {
		mark := output.Circle
		if task.Critical {
			mark = output.Dot
		}
		t.Row(
			mark,
			taskLabel(task),
			formatDate(task.Start),
			formatDate(task.Finish),
			strconv.Itoa(task.Duration),
			strconv.Itoa(task.EarliestStart),
			strconv.Itoa(task.EarliestFinish),
			strconv.Itoa(task.LatestStart),
			strconv.Itoa(task.LatestFinish),
			strconv.Itoa(task.Slack),
		)
	}

	return t.String()
}

func taskLabel(task domain.TaskRow) string {
	if task.Container == "" {
		return task.ID
	}
	return task.Container + "/" + task.ID
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(domain.DateLayout)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
