package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders a markdown report to the terminal, falling back
// to the raw markdown when styling is not possible.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Fprintln(os.Stdout, markdown)
		return
	}
	fmt.Fprint(os.Stdout, out)
}
