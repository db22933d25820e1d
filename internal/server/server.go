package server

import (
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"

	"github.com/vladsolntsev/weblog/internal/blog"
	"github.com/vladsolntsev/weblog/internal/config"
)

// Server glues the repository and renderer to HTTP. All content logic
// lives below it; the handlers only translate requests and map empty
// results to 404s.
type Server struct {
	cfg  config.Config
	repo blog.Repository
	rend *blog.Renderer
	log  *zap.Logger

	// rng is shared by every /random request and rand.Rand is not
	// goroutine-safe; rngMu serializes the draws.
	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(cfg config.Config, repo blog.Repository, log *zap.Logger) *Server {
	return &Server{
		cfg:  cfg,
		repo: repo,
		rend: blog.NewRenderer(cfg),
		log:  log,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.rewrites)

	r.Get("/", s.handleHome)
	r.Get("/posts/{slug}", s.handlePost)
	r.Get("/category/{name}", s.handleCategory)
	r.Get("/archive/{year}", s.handleArchive)
	r.Get("/archive/{year}/{month}", s.handleArchive)
	r.Get("/archive/{year}/{month}/{day}", s.handleArchive)
	r.Get("/random", s.handleRandom)
	r.Get("/rss.xml", s.handleRSS)
	r.Get("/rss/{category}.xml", s.handleCategoryRSS)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/atom.xml", s.handleAtom)
	r.NotFound(s.handleNotFound)

	return r
}

// ListenAndServe blocks serving the weblog until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("serving", zap.String("addr", s.cfg.Listen))
	return http.ListenAndServe(s.cfg.Listen, s.Router())
}

// rewrites issues permanent redirects for legacy slugs before routing:
// absolute targets go out as-is, path targets land under the base URL.
func (s *Server) rewrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.Trim(r.URL.Path, "/")
		if target, ok := s.cfg.Rewrites[key]; ok {
			if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
				target = s.cfg.BaseURL + "/" + strings.TrimPrefix(target, "/")
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

// frame derives the page geometry for this client; phones and other
// narrow clients get the halved layout.
func (s *Server) frame(r *http.Request) blog.Frame {
	ua := useragent.Parse(r.UserAgent())
	return blog.NewFrame(s.cfg, ua.Mobile)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "something broke on our side", http.StatusInternalServerError)
}

func writePage(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, body)
}

func writeXML(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}
