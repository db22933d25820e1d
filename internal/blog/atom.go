package blog

import (
	"strings"
	"time"

	atom "github.com/thomas11/atomgenerator"
)

// RenderAtom builds the Atom flavor of the feed from the same
// collection the RSS feed uses.
func (rn *Renderer) RenderAtom(posts Posts) ([]byte, error) {
	feed := atom.Feed{
		Title:   rn.cfg.Author.Name,
		Link:    rn.cfg.BaseURL + "/",
		PubDate: time.Now(),
	}
	feed.AddAuthor(atom.Author{
		Name: rn.cfg.Author.Name,
		Uri:  rn.cfg.BaseURL,
	})

	for _, p := range posts {
		e := &atom.Entry{
			Title:       p.DisplayTitle(),
			Description: firstParagraph(p.Content),
			Link:        rn.cfg.BaseURL + "/posts/" + p.Slug,
			PubDate:     p.Date,
		}
		e.AddCategory(atom.Category{Term: p.Category})
		feed.AddEntry(e)
	}

	if errs := feed.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	return feed.GenXml()
}

func firstParagraph(content string) string {
	for _, para := range strings.Split(content, "\n") {
		if para = strings.TrimSpace(para); para != "" {
			return para
		}
	}
	return ""
}
