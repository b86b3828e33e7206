package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{
			name:   "valid returns green",
			status: StatusValid,
			wantFG: colorGreen,
		},
		{
			name:   "modified returns yellow",
			status: StatusModified,
			wantFG: ColorYellow,
		},
		{
			name:    "unchanged returns faint",
			status:  StatusUnchanged,
			wantDim: true,
		},
		{
			name:   "snapshot returns red",
			status: StatusSnapshot,
			wantFG: colorRed,
		},
		{
			name:     "failed returns bold red",
			status:   StatusFailed,
			wantBold: true,
			wantFG:   colorBoldRed,
		},
		{
			name:   "unknown returns default unstyled",
			status: "unknown-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := statusStyle(tt.status)
			if tt.wantBold {
				assert.True(t, style.GetBold(), "expected bold")
			}
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground(), "foreground color mismatch")
			}
			if tt.wantDim {
				assert.True(t, style.GetFaint(), "expected faint")
			}
		})
	}
}

func TestFormatModuleLine(t *testing.T) {
	result := FormatModuleLine("org.example:core", StatusModified)
	assert.Contains(t, result, "org.example:core", "should contain coordinate")
	assert.Contains(t, result, StatusModified, "should contain status text")
	assert.True(t, strings.HasPrefix(stripAnsi(result), "m:"), "should start with m: prefix")

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := FormatModuleLine("g:a", StatusModified)
		line2 := FormatModuleLine("org.example.nested:module-two", StatusModified)

		idx1 := strings.Index(stripAnsi(line1), StatusModified)
		idx2 := strings.Index(stripAnsi(line2), StatusModified)

		assert.Equal(t, idx1, idx2, "status words should align to same column")
	})

	t.Run("long coordinate keeps a gap", func(t *testing.T) {
		long := strings.Repeat("x", minModuleColumnWidth+5)
		assert.Contains(t, stripAnsi(FormatModuleLine(long, StatusValid)), long+"  "+StatusValid)
	})
}

func TestFormatCheckmark(t *testing.T) {
	result := FormatCheckmark("Release written")
	assert.Contains(t, result, "✔", "should contain checkmark")
	assert.Contains(t, result, "Release written", "should contain message")
}

func TestFormatVetCheck(t *testing.T) {
	t.Run("without detail", func(t *testing.T) {
		stripped := stripAnsi(FormatVetCheck("CUE evaluation passed", ""))
		assert.Contains(t, stripped, "CUE evaluation passed")
		assert.False(t, strings.HasSuffix(stripped, " "), "should not have trailing whitespace when detail is empty")
	})

	t.Run("alignment consistency", func(t *testing.T) {
		line1 := stripAnsi(FormatVetCheck("Config file found", "~/.pomver/config.yaml"))
		line2 := stripAnsi(FormatVetCheck("Schema valid", "~/.pomver/config.yaml"))

		assert.Equal(t,
			strings.Index(line1, "~/.pomver"),
			strings.Index(line2, "~/.pomver"),
			"detail text should align to same column")
	})
}

func TestFormatVersionChange(t *testing.T) {
	assert.Equal(t, "1.0-SNAPSHOT → 1.0", stripAnsi(FormatVersionChange("1.0-SNAPSHOT", "1.0")))
	assert.Equal(t, "- → 1.0", stripAnsi(FormatVersionChange("", "1.0")))
}

// stripAnsi removes ANSI escape sequences for content assertions.
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if s[i] == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteByte(s[i])
	}
	return result.String()
}
