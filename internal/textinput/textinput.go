// Package textinput parses the multi-line text a librarian types or pastes.
package textinput

import (
	"strings"
)

// BookLine is one parsed line of bulk book input.
type BookLine struct {
	Title  string
	Author string
	Shelf  string
}

// ParseBookLines reads one book per line in the form "Title words Author Shelf": the last two
// whitespace-separated tokens are author and shelf, everything before them is the title.
// Lines with fewer than three tokens are skipped. The second result counts skipped non-blank lines.
func ParseBookLines(text string) ([]BookLine, int) {
	var (
		books   []BookLine
		skipped int
	)

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			skipped++
			continue
		}

		n := len(fields)
		books = append(books, BookLine{
			Title:  strings.Join(fields[:n-2], " "),
			Author: fields[n-2],
			Shelf:  fields[n-1],
		})
	}

	return books, skipped
}

// ParseTitles reads one title per line, trimmed, dropping blank lines.
func ParseTitles(text string) []string {
	var titles []string

	for _, line := range strings.Split(text, "\n") {
		if title := strings.TrimSpace(line); title != "" {
			titles = append(titles, title)
		}
	}

	return titles
}
