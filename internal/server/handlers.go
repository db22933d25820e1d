package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vladsolntsev/weblog/internal/blog"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.FetchAll()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writePage(w, s.rend.Home(posts, s.frame(r)))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	p, err := s.repo.FetchBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if p == nil {
		s.handleNotFound(w, r)
		return
	}
	writePage(w, s.rend.Post(p, s.frame(r)))
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.FetchByCategory(chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(posts) == 0 {
		s.handleNotFound(w, r)
		return
	}
	writePage(w, s.rend.Listing(posts, s.frame(r)))
}

func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	year, month, day, err := parseArchivePath(r)
	if err != nil {
		http.Error(w, "cannot make sense of that date", http.StatusBadRequest)
		return
	}

	posts, err := s.repo.FetchByDate(year, month, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(posts) == 0 {
		s.handleNotFound(w, r)
		return
	}
	writePage(w, s.rend.Listing(posts, s.frame(r)))
}

// parseArchivePath turns the /archive/{year}[/{month}[/{day}]] segments
// into a date filter, zero meaning "any". Malformed segments are
// ErrBadDate, distinct from a filter that matches nothing.
func parseArchivePath(r *http.Request) (year, month, day int, err error) {
	year, err = archiveInt(r, "year", 1, 9999)
	if err != nil {
		return 0, 0, 0, err
	}
	if chi.URLParam(r, "month") != "" {
		month, err = archiveInt(r, "month", 1, 12)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	if chi.URLParam(r, "day") != "" {
		day, err = archiveInt(r, "day", 1, 31)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return year, month, day, nil
}

func archiveInt(r *http.Request, name string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s %q", blog.ErrBadDate, name, chi.URLParam(r, name))
	}
	return n, nil
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	s.rngMu.Lock()
	p, err := s.repo.FetchRandom(s.rng)
	s.rngMu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if p == nil {
		s.handleNotFound(w, r)
		return
	}
	http.Redirect(w, r, "/posts/"+p.Slug, http.StatusFound)
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.FetchAll()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.rend.RenderRSS(posts, "")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeXML(w, "application/rss+xml; charset=utf-8", out)
}

func (s *Server) handleCategoryRSS(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.FetchByCategory(chi.URLParam(r, "category"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(posts) == 0 {
		s.handleNotFound(w, r)
		return
	}
	out, err := s.rend.RenderRSS(posts, posts[0].Category)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeXML(w, "application/rss+xml; charset=utf-8", out)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.FetchAll()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.rend.RenderSitemap(posts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeXML(w, "application/xml; charset=utf-8", out)
}

func (s *Server) handleAtom(w http.ResponseWriter, r *http.Request) {
	posts, err := s.repo.FetchAll()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.rend.RenderAtom(posts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeXML(w, "application/atom+xml; charset=utf-8", out)
}

// handleNotFound draws a little roadside grave instead of a bare status
// line. Purely cosmetic.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	f := s.frame(r)

	var b strings.Builder
	b.WriteString("\n\n")
	for _, line := range []string{
		"* * *",
		"",
		"nothing lives here but",
		"wildflowers",
		"",
		"404",
	} {
		if line != "" {
			b.WriteString(blog.Center(line, f.Width))
		}
		b.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(b.String()))
}
