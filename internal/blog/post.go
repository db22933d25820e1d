package blog

import (
	"strings"
	"time"
)

// Post is a single entry derived from one plain-text file. Immutable
// after the repository constructs it.
type Post struct {
	Title    string
	Slug     string
	Date     time.Time
	Category string
	Content  string
	Path     string

	// guid is the stable RSS guid: total post count minus the post's
	// zero-based position in the global newest-first order. Assigned by
	// the repository after sorting.
	guid int
}

// Untitled reports whether the title carries the "no title" sentinel.
func (p *Post) Untitled() bool { return strings.HasPrefix(p.Title, "~") }

// DisplayTitle is the title as rendered; the untitled sentinel becomes
// the literal separator.
func (p *Post) DisplayTitle() string {
	if p.Untitled() {
		return "* * *"
	}
	return p.Title
}

// Guid returns the post's stable feed guid. Guids stay put as long as
// no posts are added or removed, even when dates change.
func (p *Post) Guid() int { return p.guid }

// Paragraphs splits the content on single newlines. Empty paragraphs
// are kept; callers that don't want them skip them.
func (p *Post) Paragraphs() []string {
	return strings.Split(strings.TrimRight(p.Content, "\n"), "\n")
}

// Posts is an ordered collection, newest first whenever the repository
// produced it.
type Posts []*Post

func (ps Posts) Len() int           { return len(ps) }
func (ps Posts) Swap(i, j int)      { ps[i], ps[j] = ps[j], ps[i] }
func (ps Posts) Less(i, j int) bool { return ps[i].Date.After(ps[j].Date) }

func (ps Posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Date.After(t) {
			t = p.Date
		}
	}
	return t
}

// YearRange returns the earliest and latest calendar years among the
// posts. ok is false for an empty collection; there is no sentinel year.
func (ps Posts) YearRange() (min, max int, ok bool) {
	for _, p := range ps {
		y := p.Date.Year()
		if !ok {
			min, max, ok = y, y, true
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max, ok
}

// Resolve returns the first post whose slug matches. The collection is
// scanned in order, so over a newest-first collection a slug collision
// between two titles resolves to the newer post.
func (ps Posts) Resolve(slug string) *Post {
	for _, p := range ps {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}
