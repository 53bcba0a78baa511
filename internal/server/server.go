// Package server exposes a loaded navigation tree over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jorge-barreto/navtoc/internal/markup"
	"github.com/jorge-barreto/navtoc/internal/navlinks"
)

// SnapshotHeader carries the identifier of the served tree.
const SnapshotHeader = "X-Navtoc-Snapshot"

const shutdownTimeout = 5 * time.Second

// Server serves a single read-only tree. Handlers share it without locking.
type Server struct {
	tree   *navlinks.Tree
	id     string
	log    *zap.Logger
	router *chi.Mux
}

// New builds the router for tree. id identifies the tree to clients.
func New(tree *navlinks.Tree, id string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{tree: tree, id: id, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.stamp)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/toc", s.handleToc)
		r.Get("/toc/flat", s.handleFlat)
		r.Get("/topics/{tocID}", s.handleTopic)
		r.Get("/search", s.handleSearch)
	})
	r.Get("/nav-links/json/{file}", s.handleTable)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler serving the tree.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.log.Info("Serving navigation tree",
		zap.String("addr", ln.Addr().String()),
		zap.String("root", s.tree.Name()),
		zap.String("snapshot", s.id))

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(sctx)
	if serr := <-errc; !errors.Is(serr, http.ErrServerClosed) {
		err = multierr.Append(err, serr)
	}
	s.log.Info("Server stopped")
	return err
}

func (s *Server) stamp(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SnapshotHeader, s.id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Debug("Request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		}()
		next.ServeHTTP(ww, r)
	})
}

type topicRef struct {
	TocID string `json:"tocID"`
	Title string `json:"title"`
	Href  string `json:"href"`
	Depth int    `json:"depth"`
}

type topicView struct {
	TocID       string            `json:"tocID"`
	Title       string            `json:"title"`
	Href        string            `json:"href"`
	Attributes  map[string]string `json:"attributes"`
	ShortDesc   string            `json:"shortdesc,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	HasChildren bool              `json:"hasChildren"`
	Deferred    bool              `json:"deferred,omitempty"`
	Next        string            `json:"next,omitempty"`
	Children    []topicRef        `json:"children,omitempty"`
	Breadcrumb  []topicRef        `json:"breadcrumb"`
}

func (s *Server) handleToc(w http.ResponseWriter, _ *http.Request) {
	data, err := navlinks.MarshalTopics(s.tree)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleFlat(w http.ResponseWriter, _ *http.Request) {
	out := make([]topicRef, 0, s.tree.Len())
	for depth, tp := range s.tree.Walk() {
		out = append(out, ref(tp, depth))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tocID")
	tp, ok := s.tree.FindByTocID(id)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown topic "+id))
		return
	}
	v := topicView{
		TocID:       tp.TocID,
		Title:       tp.Title,
		Href:        tp.Href,
		Attributes:  tp.Attributes,
		ShortDesc:   markup.Sanitize(tp.ShortDesc),
		Summary:     tp.Summary(),
		HasChildren: tp.Menu.HasChildren,
		Deferred:    tp.Deferred(),
		Next:        tp.Next,
	}
	path := s.tree.Path(id)
	for depth, p := range path {
		v.Breadcrumb = append(v.Breadcrumb, ref(p, depth))
	}
	for _, c := range tp.Children {
		v.Children = append(v.Children, ref(c, len(path)))
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("title")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, errors.New("title query parameter is required"))
		return
	}
	out := []topicRef{}
	for _, tp := range s.tree.MatchTitle(q) {
		out = append(out, ref(tp, len(s.tree.Path(tp.TocID))-1))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	name, ok := strings.CutSuffix(file, navlinks.Ext)
	var topics []*navlinks.Topic
	if ok {
		topics, ok = s.tree.Table(name)
	}
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown table "+file))
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if err := navlinks.EncodeTable(w, topics); err != nil {
		s.log.Warn("Writing table failed", zap.String("table", name), zap.Error(err))
	}
}

func ref(tp *navlinks.Topic, depth int) topicRef {
	return topicRef{TocID: tp.TocID, Title: tp.Title, Href: tp.Href, Depth: depth}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
