package blog

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// postExt is the only file extension treated as a post.
const postExt = ".txt"

// MiscCategory is the bucket for posts sitting directly in the content
// root.
const MiscCategory = "Misc"

// ErrBadDate marks a date filter that could not be parsed, as opposed to
// one that matched nothing.
var ErrBadDate = errors.New("unparsable date filter")

// Repository provides read access to the post corpus. The filesystem
// implementation below rescans the content tree on every call; a cached
// or indexed implementation can replace it without touching layout or
// feed code.
type Repository interface {
	FetchAll() (Posts, error)
	FetchBySlug(slug string) (*Post, error)
	FetchByCategory(name string) (Posts, error)
	FetchByDate(year, month, day int) (Posts, error)
	FetchRandom(rng *rand.Rand) (*Post, error)
}

// FileRepository reads posts straight off a directory tree. It keeps no
// state between calls, so one instance can serve all request goroutines.
type FileRepository struct {
	root string
}

func NewFileRepository(root string) *FileRepository {
	return &FileRepository{root: root}
}

// FetchAll walks the content root and returns every post, newest first.
// An empty tree is an empty collection; an unreadable root is an error,
// so misconfiguration never masquerades as "no posts yet".
func (r *FileRepository) FetchAll() (Posts, error) {
	all := make(Posts, 0, 64)

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), postExt) {
			return nil
		}
		p, err := r.readPost(path, d)
		if err != nil {
			return err
		}
		all = append(all, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan content root %q: %w", r.root, err)
	}

	sort.Sort(all)

	// Guids count up from the oldest post; they only move when posts
	// are added or removed.
	for i, p := range all {
		p.guid = len(all) - i
	}

	return all, nil
}

func (r *FileRepository) readPost(path string, d fs.DirEntry) (*Post, error) {
	info, err := d.Info()
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	title := strings.TrimSuffix(filepath.Base(path), postExt)

	return &Post{
		Title:    title,
		Slug:     Slugify(title),
		Date:     info.ModTime(),
		Category: r.categoryOf(path),
		Content:  string(content),
		Path:     path,
	}, nil
}

// categoryOf derives the display label from the first path segment under
// the content root. Deeper nesting is tolerated; only that first segment
// counts.
func (r *FileRepository) categoryOf(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return MiscCategory
	}
	dir := filepath.Dir(rel)
	if dir == "." {
		return MiscCategory
	}
	first := strings.Split(dir, string(filepath.Separator))[0]
	// cases.Caser carries internal transform state and is not safe for
	// concurrent use, so each call gets a fresh one.
	return cases.Title(language.English).String(first)
}

// FetchBySlug finds the post whose slugified title matches slug, or nil.
// The scan runs newest first, so slug collisions resolve to the newer
// post deterministically.
func (r *FileRepository) FetchBySlug(slug string) (*Post, error) {
	all, err := r.FetchAll()
	if err != nil {
		return nil, err
	}
	return all.Resolve(slug), nil
}

// FetchByCategory returns the posts whose category label matches name,
// compared case-insensitively; the slugged label form used in feed URLs
// matches too. The misc bucket also catches posts with no parent
// directory. No matches is an empty collection, not an error.
func (r *FileRepository) FetchByCategory(name string) (Posts, error) {
	all, err := r.FetchAll()
	if err != nil {
		return nil, err
	}

	out := make(Posts, 0, len(all))
	for _, p := range all {
		if strings.EqualFold(p.Category, name) || Slugify(p.Category) == name {
			out = append(out, p)
		}
	}
	return out, nil
}

// FetchByDate filters by calendar year and optionally month and day in
// the server's local calendar. Zero month or day means "any".
func (r *FileRepository) FetchByDate(year, month, day int) (Posts, error) {
	all, err := r.FetchAll()
	if err != nil {
		return nil, err
	}

	out := make(Posts, 0, len(all))
	for _, p := range all {
		y, m, d := p.Date.Date()
		if y != year {
			continue
		}
		if month != 0 && int(m) != month {
			continue
		}
		if day != 0 && d != day {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// FetchRandom picks one post uniformly using the supplied source, or nil
// when the repository is empty. The source is injected so tests can pin
// the draw.
func (r *FileRepository) FetchRandom(rng *rand.Rand) (*Post, error) {
	all, err := r.FetchAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[rng.Intn(len(all))], nil
}
