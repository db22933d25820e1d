package blog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladsolntsev/weblog/internal/config"
)

func formatDate(d time.Time) string {
	return d.Format("January 2, 2006")
}

// Renderer assembles the plain-text page bodies and the feed documents.
// It holds no state beyond the configuration.
type Renderer struct {
	cfg config.Config
}

func NewRenderer(cfg config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Home renders the front page: centered author name, the about text,
// an optional separator rule, then the whole corpus newest first.
func (rn *Renderer) Home(posts Posts, f Frame) string {
	var b strings.Builder

	b.WriteString(Center(rn.cfg.Author.Name, f.Width))
	b.WriteString("\n\n")

	for _, para := range strings.Split(rn.cfg.About, "\n") {
		if strings.TrimSpace(para) == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(Wrap(para, f.Width, f.Indent))
		b.WriteByte('\n')
	}

	if rn.cfg.Show.Separator {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("-", f.Width))
		b.WriteByte('\n')
	}

	for _, p := range posts {
		b.WriteString("\n\n\n\n")
		b.WriteString(rn.renderPost(p, f))
	}

	b.WriteByte('\n')
	b.WriteString(rn.Footer(posts, f))
	return b.String()
}

// Post renders a single post page. The copyright line carries that
// post's year only.
func (rn *Renderer) Post(p *Post, f Frame) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", f.Indent))
	b.WriteString(rn.renderPost(p, f))
	b.WriteByte('\n')
	b.WriteString(rn.footer(strconv.Itoa(p.Date.Year()), f))
	return b.String()
}

// Listing renders a category or date archive: each post in full,
// separated by four blank lines, with the collection's year range in the
// footer.
func (rn *Renderer) Listing(posts Posts, f Frame) string {
	var b strings.Builder
	for i, p := range posts {
		if i > 0 {
			b.WriteString("\n\n\n\n")
		}
		b.WriteString(rn.renderPost(p, f))
	}
	b.WriteByte('\n')
	b.WriteString(rn.Footer(posts, f))
	return b.String()
}

// renderPost is the shared post body: header, three blank lines, the
// wrapped content, then the permalink when URL display is on.
func (rn *Renderer) renderPost(p *Post, f Frame) string {
	var b strings.Builder

	b.WriteString(Header(p.Title, p.Category, formatDate(p.Date), f))
	b.WriteString("\n\n\n\n")

	for _, para := range p.Paragraphs() {
		if strings.TrimSpace(para) == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(Wrap(para, f.Width, f.Indent))
		b.WriteByte('\n')
	}

	if f.ShowURLs {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", f.Indent))
		b.WriteString(rn.cfg.BaseURL + "/posts/" + p.Slug)
		b.WriteByte('\n')
	}

	return b.String()
}

// Footer renders the copyright block using the collection's year range;
// an empty collection falls back to the current year.
func (rn *Renderer) Footer(posts Posts, f Frame) string {
	min, max, ok := posts.YearRange()
	if !ok {
		y := time.Now().Year()
		min, max = y, y
	}
	return rn.footer(yearSpan(min, max), f)
}

func (rn *Renderer) footer(span string, f Frame) string {
	var b strings.Builder
	if f.ShowCopyright {
		b.WriteString(Center(fmt.Sprintf("Copyright (c) %s %s", span, rn.cfg.Author.Name), f.Width))
		b.WriteByte('\n')
	}
	if rn.cfg.Show.PoweredBy {
		b.WriteString(Center("Powered by weblog/"+Version, f.Width))
		b.WriteByte('\n')
	}
	return b.String()
}

func yearSpan(min, max int) string {
	if min == max {
		return strconv.Itoa(min)
	}
	return fmt.Sprintf("%d-%d", min, max)
}
