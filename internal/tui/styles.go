package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(9)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Blink(true)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("84"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// chemStyles color the neurochemical bars the same way the desktop
// view tints them.
var chemStyles = map[string]lipgloss.Style{
	"DOP": lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	"SER": lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
	"COR": lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	"ADE": lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
	"OXY": lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
}

// ProgressBar renders v in [0,1] as a fixed-width block bar.
func ProgressBar(v float64, width int) string {
	filled := int(v * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders values on a fixed 0..1 scale so the bars do not
// breathe as the range shifts.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	step := len(values) / width
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		b.WriteRune(chars[int(v*float64(len(chars)-1))])
	}
	return b.String()
}
