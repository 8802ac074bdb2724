package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorenmh/infrastructure-shared/package-browser/display"
)

type sample struct {
	Name  string `json:"name"`
	AppID string `json:"appId"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw         string
		expected    Format
		expectError bool
	}{
		{raw: "table", expected: FormatTable},
		{raw: "", expected: FormatTable},
		{raw: "JSON", expected: FormatJSON},
		{raw: " yaml ", expected: FormatYAML},
		{raw: "xml", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFormat(tt.raw)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"NAME", "APP ID"}, [][]string{
		{"ms-emprestimo-pessoal", "ac763fd5"},
		{"portal", "cc983fd5"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "NAME                   APP ID", lines[0])
	assert.Equal(t, "ms-emprestimo-pessoal  ac763fd5", lines[1])
	assert.Equal(t, "portal                 cc983fd5", lines[2])
}

func TestPrintTableAlignsStyledCells(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	var buf bytes.Buffer
	PrintTable(&buf, []string{"SIZE", "EXPIRY", "FILE"}, [][]string{
		{"158.00 MB", Badge(display.SeverityOK, "expires in 30 days"), "a.mda"},
		{"1.00 KB", Badge(display.SeverityWarning, "expires in 3 days"), "b.mda"},
		{"0 Bytes", Badge(display.SeverityExpired, "expired"), "c.mda"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "\x1b[")

	column := func(line, text string) int {
		idx := strings.Index(line, text)
		require.GreaterOrEqual(t, idx, 0, "%q not found in %q", text, line)
		return lipgloss.Width(line[:idx])
	}

	want := column(lines[0], "FILE")
	assert.Equal(t, want, column(lines[1], "a.mda"))
	assert.Equal(t, want, column(lines[2], "b.mda"))
	assert.Equal(t, want, column(lines[3], "c.mda"))
	assert.Equal(t, len("158.00 MB")+2+len("expires in 30 days")+2, want)
}

func TestPrint(t *testing.T) {
	data := []sample{{Name: "portal", AppID: "cc983fd5"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Print(&buf, FormatJSON, data, nil))
		assert.JSONEq(t, `[{"name":"portal","appId":"cc983fd5"}]`, buf.String())
	})

	t.Run("yaml uses json field names", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Print(&buf, FormatYAML, data, nil))
		assert.Contains(t, buf.String(), "- name: portal\n")
		assert.Contains(t, buf.String(), "appId: cc983fd5\n")
		assert.NotContains(t, buf.String(), "{")
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		called := false
		require.NoError(t, Print(&buf, FormatTable, data, func() { called = true }))
		assert.True(t, called)
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Print(&buf, Format("xml"), data, nil))
	})
}

func TestBadgeKeepsLabel(t *testing.T) {
	for _, severity := range []display.Severity{
		display.SeverityOK,
		display.SeverityWarning,
		display.SeverityExpired,
		display.SeverityNone,
		display.SeverityUnknown,
		display.Severity("other"),
	} {
		assert.Contains(t, Badge(severity, "expires in 3 days"), "expires in 3 days")
	}
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	Success(&buf, "Application added")
	Warn(&buf, "careful")
	Error(&buf, "boom")
	Info(&buf, "3 packages found for portal")

	out := buf.String()
	assert.Contains(t, out, "Application added")
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "Error:")
	assert.Contains(t, out, "3 packages found for portal\n")
}
