package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/superspace/internal/engine"
	"github.com/atomicstack/superspace/internal/format/table"
)

const (
	filterPrompt  = "» "
	ellipsis      = "…"
	noMatchesText = "no matches"
	errorHint     = "press enter to exit"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.snap
	var header []string
	if snap.Prompt != nil && *snap.Prompt != "" {
		header = append(header, styles.Prompt.Render(*snap.Prompt))
	}
	if snap.Kind != engine.KindError {
		header = append(header, m.inputLine(snap))
	}

	var body []string
	switch snap.Kind {
	case engine.KindMainMenu:
		body = m.commandLines(snap.Commands)
	case engine.KindList:
		body = m.itemLines(snap.Items)
	case engine.KindPrompt:
		body = m.previewLines(snap.Output)
	case engine.KindError:
		body = []string{
			styles.Error.Render(snap.Message),
			styles.Info.Render(errorHint),
		}
	}
	if limit := m.bodyLimit(len(header)); limit >= 0 && len(body) > limit {
		body = body[:limit]
	}

	lines := append(header, body...)
	for i, line := range lines {
		lines[i] = m.truncate(line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) inputLine(snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString(styles.FilterPrompt.Render(filterPrompt))
	input := snap.Input
	if snap.Kind == engine.KindPrompt && snap.Prefix != "" {
		b.WriteString(styles.CommittedPrefix.Render(snap.Prefix))
		input = strings.TrimPrefix(input, snap.Prefix)
	}
	if input != "" {
		b.WriteString(styles.Filter.Render(input))
	}
	b.WriteString(m.cursor.View())
	return b.String()
}

// commandLines lays the main menu out as prefix and description columns. The
// first row is what enter would run.
func (m *Model) commandLines(cmds []engine.CommandView) []string {
	if len(cmds) == 0 {
		return []string{styles.Placeholder.Render(noMatchesText)}
	}
	rows := make([][]string, len(cmds))
	for i, c := range cmds {
		rows[i] = []string{c.Prefix, c.Description}
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	out := make([]string, len(formatted))
	for i, line := range formatted {
		if i == 0 {
			out[i] = styles.SelectedItem.Render(line)
			continue
		}
		out[i] = styles.Item.Render(line)
	}
	return out
}

func (m *Model) itemLines(items []string) []string {
	if len(items) == 0 {
		return []string{styles.Placeholder.Render(noMatchesText)}
	}
	out := make([]string, len(items))
	for i, item := range items {
		if i == 0 {
			out[i] = styles.SelectedItem.Render(item)
			continue
		}
		out[i] = styles.Item.Render(item)
	}
	return out
}

func (m *Model) previewLines(output *string) []string {
	if output == nil || *output == "" {
		return nil
	}
	lines := strings.Split(*output, "\n")
	for i, line := range lines {
		lines[i] = styles.PreviewBody.Render(line)
	}
	return lines
}

// bodyLimit returns how many body rows fit under the header, or -1 when the
// height is unknown.
func (m *Model) bodyLimit(headerLines int) int {
	if m.height <= 0 {
		return -1
	}
	limit := m.height - headerLines
	if limit < 0 {
		return 0
	}
	return limit
}

func (m *Model) truncate(line string) string {
	if m.width <= 0 || ansi.StringWidth(line) <= m.width {
		return line
	}
	return ansi.Truncate(line, m.width, ellipsis)
}
