package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/sorenmh/infrastructure-shared/package-browser/display"
)

// Format represents an output format
type Format string

const (
	// FormatTable is the table output format
	FormatTable Format = "table"
	// FormatJSON is the JSON output format
	FormatJSON Format = "json"
	// FormatYAML is the YAML output format
	FormatYAML Format = "yaml"
)

var (
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")

	badgeStyles = map[display.Severity]lipgloss.Style{
		display.SeverityOK:      lipgloss.NewStyle().Foreground(colorGreen),
		display.SeverityWarning: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		display.SeverityExpired: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		display.SeverityNone:    lipgloss.NewStyle().Foreground(colorGray),
		display.SeverityUnknown: lipgloss.NewStyle().Foreground(colorGray).Italic(true),
	}

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

// ParseFormat validates a -o flag value
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", raw)
	}
}

// PrintTable prints data in table format. Column widths are measured on the
// visible text, so styled cells such as badges stay aligned.
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	last := len(headers) - 1
	cell := lipgloss.NewStyle().PaddingRight(2)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Wrap(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == last {
				return lipgloss.NewStyle()
			}
			return cell
		})

	for _, line := range strings.Split(strings.TrimRight(t.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// PrintJSON prints data in JSON format
func PrintJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintYAML prints data in YAML format. Keys and field order follow the JSON encoding.
func PrintYAML(w io.Writer, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	// JSON is valid YAML; decoding into a node keeps the field order
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	return encoder.Close()
}

// Print prints data in the specified format
func Print(w io.Writer, format Format, data interface{}, tableFunc func()) error {
	switch format {
	case FormatJSON:
		return PrintJSON(w, data)
	case FormatYAML:
		return PrintYAML(w, data)
	case FormatTable:
		tableFunc()
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// blockStyle drops the flow and quoting styles picked up from the JSON source
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}

// Badge colors an expiry label by severity. Colors are dropped when the
// output is not a terminal.
func Badge(severity display.Severity, label string) string {
	style, ok := badgeStyles[severity]
	if !ok {
		return label
	}
	return style.Render(label)
}

// Success prints a success message
func Success(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render("✓"), message)
}

// Error prints an error message
func Error(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", styleError.Render("Error:"), message)
}

// Info prints an info message
func Info(w io.Writer, message string) {
	fmt.Fprintln(w, message)
}

// Warn prints a warning message
func Warn(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", styleWarning.Render("Warning:"), message)
}
