package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal colours (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleDim is for secondary text: details, separators, key help.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue is for paths and values the user may copy.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess marks a finished grid or command.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	styleWarning     = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// status line prefixes
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	markError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	markWarning = styleWarning.Render("!")
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func printStatus(mark, format string, args ...any) {
	fmt.Println(mark + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(markSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(markError, format, args...) }
func printInfo(format string, args ...any)    { printStatus(markInfo, format, args...) }

func printWarning(format string, args ...any) {
	printStatus(markWarning, "%s", styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printKeyValue prints an aligned label and value.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the drawing summary line.
func printStats(paths, filled, total int, cached bool) {
	fmt.Println("  " + formatStats(paths, filled, total, cached))
}

// formatStats summarises a drawing, e.g. "12 snakes · 48/48 cells · fresh".
// Coverage is shown as a percentage when the grid is not full.
func formatStats(paths, filled, total int, cached bool) string {
	cells := fmt.Sprintf("%d/%d cells", filled, total)
	if total > 0 && filled < total {
		cells += fmt.Sprintf(" (%d%%)", filled*100/total)
	}
	source := StyleDim.Render("fresh")
	if cached {
		source = StyleSuccess.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	return strings.Join([]string{
		StyleDim.Render(fmt.Sprintf("%d %s", paths, plural(paths, "snake"))),
		StyleDim.Render(cells),
		source,
	}, sep)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
