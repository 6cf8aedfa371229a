package filerouter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/filerouter/pkg/cobrax/topics"
	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/journal"
	"github.com/arthur-debert/filerouter/pkg/router"
	"github.com/arthur-debert/filerouter/pkg/rules"
	"github.com/arthur-debert/filerouter/pkg/style"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/beevik/etree"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// History output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
	formatXML  = "xml"
)

func validFormat(f string) bool {
	switch f {
	case formatText, formatJSON, formatYAML, formatXML:
		return true
	}
	return false
}

// writeEntries prints journal entries in the requested format
func writeEntries(w io.Writer, entries []journal.Entry, format string, terminal bool) error {
	switch format {
	case formatJSON:
		if entries == nil {
			entries = []journal.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode history as json")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode history as yaml")
		}
		return enc.Close()

	case formatXML:
		doc := entriesXML(entries)
		doc.Indent(2)
		if _, err := doc.WriteTo(w); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode history as xml")
		}
		return nil

	default:
		_, err := fmt.Fprintln(w, style.NewRenderer(terminal).RenderEntries(entries))
		return err
	}
}

// writeStats prints one line per outcome, in outcome order
func writeStats(w io.Writer, counts map[types.Outcome]int) error {
	outcomes := make([]string, 0, len(counts))
	for o := range counts {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		if _, err := fmt.Fprintf(w, MsgStatsLine, o, counts[types.Outcome(o)]); err != nil {
			return err
		}
	}
	return nil
}

// entriesXML builds a <history> document with one <move> per entry
func entriesXML(entries []journal.Entry) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("history")
	root.CreateAttr("count", strconv.Itoa(len(entries)))

	for _, e := range entries {
		move := root.CreateElement("move")
		move.CreateAttr("id", strconv.FormatInt(e.ID, 10))
		move.CreateAttr("drain", e.DrainID)
		move.CreateAttr("outcome", string(e.Outcome))
		move.CreateAttr("at", e.CreatedAt.UTC().Format(time.RFC3339Nano))

		move.CreateElement("source").SetText(e.Source)
		if e.Destination != "" {
			move.CreateElement("destination").SetText(e.Destination)
		}
		if e.Pattern != "" {
			move.CreateElement("pattern").SetText(e.Pattern)
		}
		if e.ErrorCode != "" {
			move.CreateElement("error").CreateAttr("code", e.ErrorCode)
		}
		if e.Message != "" {
			move.CreateElement("message").SetText(e.Message)
		}
	}
	return doc
}

// writeRules prints rule diagnostics, as a table on terminals
func writeRules(w io.Writer, diags []rules.Diagnostic, terminal bool) error {
	if len(diags) == 0 {
		_, err := fmt.Fprintln(w, MsgNoRules)
		return err
	}

	if terminal {
		data := pterm.TableData{{"#", "Pattern", "Destination", "Status"}}
		for _, d := range diags {
			status := style.SuccessIndicator() + " ok"
			if !d.Compiled {
				status = style.ErrorIndicator() + " " + d.Err.Error()
			}
			data = append(data, []string{strconv.Itoa(d.Index + 1), d.Rule.Pattern, d.Rule.Destination, status})
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err == nil {
			_, err = fmt.Fprintln(w, out)
			return err
		}
	}

	for _, d := range diags {
		suffix := ""
		if !d.Compiled {
			suffix = fmt.Sprintf(MsgRuleInvalidSuffix, d.Err)
		}
		if _, err := fmt.Fprintf(w, MsgRuleItemFormat, d.Index+1, d.Rule.Pattern, d.Rule.Destination, suffix); err != nil {
			return err
		}
	}
	return nil
}

// checkMarkdown describes explanations as a markdown document
func checkMarkdown(explanations []router.Explanation) string {
	var b strings.Builder
	b.WriteString("# Routing check\n")

	for _, exp := range explanations {
		fmt.Fprintf(&b, "\n## `%s`\n\n", exp.Path)
		switch {
		case exp.Skipped:
			b.WriteString("Skipped: the path matches `skip_pattern` and is never queued.\n")
		case exp.Rule == nil:
			b.WriteString("No rule matches. The file would stay where it is.\n")
		default:
			fmt.Fprintf(&b, "- **Rule:** `%s`\n", exp.Rule.Pattern)
			fmt.Fprintf(&b, "- **Folder:** `%s`\n", displayDir(exp.Rule.Destination))
			fmt.Fprintf(&b, "- **Name:** `%s`\n", exp.Name)
			fmt.Fprintf(&b, "- **Destination:** `%s`\n", exp.Destination)
			if exp.Destination == exp.Path {
				b.WriteString("\nThe file is already at its destination.\n")
			}
			if len(exp.Missing) > 0 {
				fmt.Fprintf(&b, "\nTemplate variables without a value: `%s`\n", strings.Join(exp.Missing, "`, `"))
			}
			if exp.NameFallback {
				b.WriteString("\nThe template renders an empty name, so the original name is kept.\n")
			}
		}
	}
	return b.String()
}

func displayDir(dir string) string {
	if dir == "" {
		return "(vault root)"
	}
	return dir
}

// renderMarkdown renders md with glamour on terminals and leaves it as
// markdown elsewhere
func renderMarkdown(md string, terminal bool) string {
	if !terminal {
		return md
	}
	out, err := topics.RenderMarkdown(md, "auto", 0)
	if err != nil {
		return md
	}
	return out
}
