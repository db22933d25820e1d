package blog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vladsolntsev/weblog/internal/config"
)

// metaField is the fixed column count reserved for each of the category
// and date fields in a post header.
const metaField = 20

// Frame is the effective page geometry for one request: line width,
// paragraph indent and which optional elements render.
type Frame struct {
	Width  int
	Indent int

	ShowCategory  bool
	ShowDate      bool
	ShowURLs      bool
	ShowCopyright bool

	narrow bool
}

// NewFrame derives the page geometry from the configuration. A narrow
// frame halves the line width and drops category, date, URL and
// copyright display no matter what the configuration says.
func NewFrame(cfg config.Config, narrow bool) Frame {
	f := Frame{
		Width:         cfg.Width,
		Indent:        cfg.Prefix,
		ShowCategory:  cfg.Show.Category,
		ShowDate:      cfg.Show.Date,
		ShowURLs:      cfg.Show.URLs,
		ShowCopyright: cfg.Show.Copyright,
	}
	if narrow {
		f.Width = cfg.Width/2 - 1
		f.ShowCategory = false
		f.ShowDate = false
		f.ShowURLs = false
		f.ShowCopyright = false
		f.narrow = true
	}
	return f
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// Center left-pads text so it sits in the middle of width columns. No
// right padding is added.
func Center(text string, width int) string {
	pad := (width - runeLen(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// Wrap greedily word-wraps text into lines of at most width columns,
// each starting with indent spaces. Words are never split; a word longer
// than the available columns gets its own overlong line.
func Wrap(text string, width, indent int) string {
	prefix := strings.Repeat(" ", indent)

	var b strings.Builder
	line := prefix
	for _, word := range strings.Fields(text) {
		if runeLen(line)+runeLen(word) > width && strings.TrimSpace(line) != "" {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
			line = prefix
		}
		line += word + " "
	}
	b.WriteString(strings.TrimRight(line, " "))

	return b.String()
}

// Header lays out a post's header line: a fixed category field on the
// left, the title centered in the remaining columns, a fixed date field
// on the right. Empty or disabled fields yield their columns back to the
// title. A title carrying the untitled sentinel renders as the literal
// separator.
func Header(title, category, date string, f Frame) string {
	titleField := f.Width

	var left, right string
	if f.ShowCategory && category != "" {
		left = fmt.Sprintf("%-*s", metaField, category)
		titleField -= metaField
	}
	if f.ShowDate && date != "" {
		right = fmt.Sprintf("%*s", metaField, date)
		titleField -= metaField
	}

	if strings.HasPrefix(title, "~") {
		title = "* * *"
	}

	pad := titleField - runeLen(title)
	if pad < 0 {
		pad = 0
	}
	lpad := pad / 2
	// Narrow layouts with an odd title field push two columns to the
	// left so the title lines up with the halved line width.
	if f.narrow && titleField%2 == 1 {
		lpad += 2
	}
	rpad := pad - lpad
	if rpad < 0 {
		rpad = 0
	}

	line := left + strings.Repeat(" ", lpad) + title + strings.Repeat(" ", rpad) + right
	return strings.TrimRight(line, " ")
}
