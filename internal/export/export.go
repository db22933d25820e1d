// Package export writes the whole weblog to a directory as static
// files: pages as .txt, feeds as XML, plus a copy of the static assets.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"
	"github.com/radovskyb/watcher"
	"go.uber.org/zap"

	"github.com/vladsolntsev/weblog/internal/blog"
	"github.com/vladsolntsev/weblog/internal/config"
)

const filePerm = 0o664

type Exporter struct {
	cfg  config.Config
	repo blog.Repository
	rend *blog.Renderer
	log  *zap.Logger
}

func New(cfg config.Config, repo blog.Repository, log *zap.Logger) *Exporter {
	return &Exporter{
		cfg:  cfg,
		repo: repo,
		rend: blog.NewRenderer(cfg),
		log:  log,
	}
}

// Run renders every page and feed into the output directory and copies
// the static dir alongside them.
func (e *Exporter) Run() error {
	posts, err := e.repo.FetchAll()
	if err != nil {
		return err
	}

	f := blog.NewFrame(e.cfg, false)

	for _, dir := range []string{"posts", "categories", "rss"} {
		if err := os.MkdirAll(filepath.Join(e.cfg.OutDir, dir), 0o775); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := e.writeFile("index.txt", []byte(e.rend.Home(posts, f))); err != nil {
		return err
	}

	for _, p := range posts {
		name := filepath.Join("posts", p.Slug+".txt")
		if err := e.writeFile(name, []byte(e.rend.Post(p, f))); err != nil {
			return err
		}
	}

	for _, group := range groupByCategory(posts) {
		id := blog.Slugify(group.label)

		name := filepath.Join("categories", id+".txt")
		if err := e.writeFile(name, []byte(e.rend.Listing(group.posts, f))); err != nil {
			return err
		}

		feed, err := e.rend.RenderRSS(group.posts, group.label)
		if err != nil {
			return err
		}
		if err := e.writeFile(filepath.Join("rss", id+".xml"), feed); err != nil {
			return err
		}
	}

	rss, err := e.rend.RenderRSS(posts, "")
	if err != nil {
		return err
	}
	if err := e.writeFile("rss.xml", rss); err != nil {
		return err
	}

	sitemap, err := e.rend.RenderSitemap(posts)
	if err != nil {
		return err
	}
	if err := e.writeFile("sitemap.xml", sitemap); err != nil {
		return err
	}

	atom, err := e.rend.RenderAtom(posts)
	if err != nil {
		return err
	}
	if err := e.writeFile("atom.xml", atom); err != nil {
		return err
	}

	if err := e.copyStatic(); err != nil {
		return err
	}

	e.log.Info("exported",
		zap.Int("posts", len(posts)),
		zap.String("dir", e.cfg.OutDir),
	)
	return nil
}

// Watch keeps running and re-exports whenever the content tree changes.
func (e *Exporter) Watch() error {
	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case <-w.Event:
				if err := e.Run(); err != nil {
					e.log.Error("re-export", zap.Error(err))
				}
			case err := <-w.Error:
				e.log.Error("watch", zap.Error(err))
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(e.cfg.ContentDir); err != nil {
		return fmt.Errorf("watch %q: %w", e.cfg.ContentDir, err)
	}

	e.log.Info("watching", zap.String("dir", e.cfg.ContentDir))
	return w.Start(200 * time.Millisecond)
}

func (e *Exporter) writeFile(name string, data []byte) error {
	path := filepath.Join(e.cfg.OutDir, name)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

func (e *Exporter) copyStatic() error {
	src := e.cfg.StaticDir
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	dest := filepath.Join(e.cfg.OutDir, filepath.Base(src))
	return copy.Copy(src, dest)
}

type categoryGroup struct {
	label string
	posts blog.Posts
}

// groupByCategory buckets a newest-first collection by label, keeping
// first-seen category order and post order within each bucket.
func groupByCategory(posts blog.Posts) []categoryGroup {
	index := make(map[string]int)
	groups := make([]categoryGroup, 0, 8)

	for _, p := range posts {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, categoryGroup{label: p.Category})
		}
		groups[i].posts = append(groups[i].posts, p)
	}
	return groups
}
