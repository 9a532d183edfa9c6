package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	rendered string
	width    int
	isSpace  bool
}

// buildStyledRunes styles the prompt against the typed input: matched runes
// are bright, mismatches are red, everything past the input is dim. The
// cursor position (when >= 0) gets an underline.
func buildStyledRunes(target, input []rune, cursorIndex int) []styledRune {
	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		var style lipgloss.Style
		switch {
		case i < len(input) && input[i] == r:
			style = correctStyle
		case i < len(input):
			style = incorrectStyle
		default:
			style = pendingStyle
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		display := r
		if i < len(input) && input[i] != r && r == ' ' {
			// A mistyped space is invisible otherwise.
			display = input[i]
		}
		out = append(out, styledRune{
			rendered: style.Render(string(display)),
			width:    runewidth.RuneWidth(r),
			isSpace:  r == ' ',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, sr := range runes {
		b.WriteString(sr.rendered)
	}
	return b.String()
}

// wrapStyledRunes breaks styled runes into lines no wider than width,
// preferring to break at the last space on the line. Spaces that land on a
// break are dropped rather than carried to the next line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	var line []styledRune
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func(upTo int) {
		var b strings.Builder
		for _, sr := range line[:upTo] {
			b.WriteString(sr.rendered)
		}
		lines = append(lines, b.String())
	}

	for _, sr := range runes {
		if lineWidth+sr.width > width {
			if sr.isSpace {
				// Break here; the space itself vanishes into the margin.
				flush(len(line))
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
				continue
			}
			if lastSpaceIdx >= 0 {
				flush(lastSpaceIdx)
				rest := append([]styledRune(nil), line[lastSpaceIdx+1:]...)
				line = rest
				lineWidth = 0
				for _, r := range line {
					lineWidth += r.width
				}
				lastSpaceIdx = -1
			} else {
				flush(len(line))
				line = line[:0]
				lineWidth = 0
			}
		}
		line = append(line, sr)
		lineWidth += sr.width
		if sr.isSpace {
			lastSpaceIdx = len(line) - 1
		}
	}
	if len(line) > 0 {
		flush(len(line))
	}
	return strings.Join(lines, "\n")
}
