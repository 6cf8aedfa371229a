package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/journal"
	"github.com/arthur-debert/filerouter/pkg/router"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderReport(report *router.DrainReport) string
	RenderEntries(entries []journal.Entry) string
	RenderError(err error) string
}

// NewRenderer returns a TerminalRenderer for terminals and a PlainRenderer
// otherwise
func NewRenderer(terminal bool) Renderer {
	if terminal {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderReport renders the result of a drain or a preview
func (r *TerminalRenderer) RenderReport(report *router.DrainReport) string {
	if len(report.Results) == 0 {
		return MutedStyle.Render("Nothing to route")
	}

	var b strings.Builder
	title := "Routed files"
	if report.DryRun {
		title = "Planned moves (dry run)"
	}
	b.WriteString(TitleStyle.Render(title) + "\n\n")

	for _, res := range report.Results {
		label := OutcomeStyle(res.Outcome).Sprint(fmt.Sprintf(" %-18s ", res.Outcome))
		line := fmt.Sprintf("%s %s %s %s",
			OutcomeIndicator(res.Outcome),
			label,
			PathStyle.Render(res.File.Path),
			OutcomeVerb(res.Outcome, report.DryRun))
		if target := resultTarget(res); target != "" {
			line += " " + PathStyle.Render(target)
		}
		b.WriteString(line + "\n")
		if res.Err != nil && !res.Outcome.IsWarning() {
			b.WriteString(Indent(MutedStyle.Render(res.Err.Error()), 3) + "\n")
		}
	}

	b.WriteString("\n" + BoxStyle.Render(summary(report)))
	return b.String()
}

// RenderEntries renders journal entries as a table
func (r *TerminalRenderer) RenderEntries(entries []journal.Entry) string {
	if len(entries) == 0 {
		return MutedStyle.Render("No history yet")
	}

	data := pterm.TableData{{"When", "Outcome", "Source", "Destination"}}
	for _, e := range entries {
		data = append(data, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			OutcomeStyle(e.Outcome).Sprint(string(e.Outcome)),
			e.Source,
			e.Destination,
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return NewPlainRenderer().RenderEntries(entries)
	}
	return out
}

// RenderError renders an error message with its code when it has one
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		return fmt.Sprintf("%s %s %s",
			ErrorIndicator(),
			ErrorStyle.Render("["+string(code)+"]"),
			err.Error())
	}
	return fmt.Sprintf("%s %s", ErrorIndicator(), ErrorStyle.Render(err.Error()))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

func (r *PlainRenderer) RenderReport(report *router.DrainReport) string {
	if len(report.Results) == 0 {
		return "Nothing to route"
	}

	var b strings.Builder
	for _, res := range report.Results {
		line := fmt.Sprintf("%s: %s %s", res.Outcome, res.File.Path, OutcomeVerb(res.Outcome, report.DryRun))
		if target := resultTarget(res); target != "" {
			line += " " + target
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(summary(report))
	return b.String()
}

func (r *PlainRenderer) RenderEntries(entries []journal.Entry) string {
	if len(entries) == 0 {
		return "No history yet"
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s %s", e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), e.Outcome, e.Source)
		if e.Destination != "" {
			fmt.Fprintf(&b, " -> %s", e.Destination)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", err.Error())
}

// resultTarget is the path shown after the verb of a result line
func resultTarget(res router.Result) string {
	switch res.Outcome {
	case types.OutcomeDestCreateFailed:
		if res.Rule != nil {
			return res.Rule.Destination
		}
		return ""
	case types.OutcomeNoRule, types.OutcomeVanished:
		return ""
	default:
		return res.Destination
	}
}

func summary(report *router.DrainReport) string {
	moved := report.Count(types.OutcomeMoved)
	verb := "moved"
	if report.DryRun {
		verb = "to move"
	}
	s := fmt.Sprintf("%d %s, %d skipped, %d failed", moved, verb,
		len(report.Results)-moved-report.Failed(), report.Failed())
	if report.Requeued > 0 {
		s += fmt.Sprintf(", %d requeued", report.Requeued)
	}
	return s
}
