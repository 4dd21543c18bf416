package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"codestream/internal/fsops"
)

var (
	// successStyle для строки «готово»
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle для сообщений об ошибке
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// dimStyle для второстепенных подробностей
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorStyle.Render("ошибка:"), err)
}

func printBuildResult(w io.Writer, base string, st fsops.Stats, dry bool) {
	label := "Готово:"
	if dry {
		label = "Dry-run:"
	}
	fmt.Fprintf(w, "%s %s %s\n",
		successStyle.Render(label), base,
		dimStyle.Render(fmt.Sprintf("(%d dirs, %d files)", st.Dirs, st.Files)),
	)
}

func printDumpResult(w io.Writer, out string) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("Outline сохранён:"), out)
}
