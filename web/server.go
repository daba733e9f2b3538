package web

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/campaign-reporting/campaign-sheets/campaign"
	"github.com/campaign-reporting/campaign-sheets/gateway"
	"github.com/campaign-reporting/campaign-sheets/web/html"
)

// Store is the worksheet surface used by the dashboard. *gateway.Gateway implements it.
type Store interface {
	ReadAll(ctx context.Context) (*campaign.Table, error)
	ColumnValues(ctx context.Context, column string) ([]string, error)
	Append(ctx context.Context, row map[string]any) error
	Invalidate()
	Revision(ctx context.Context) (*gateway.Revision, error)
	Title() string
	Sheet() string
}

// Connector authenticates an uploaded credential document and opens the worksheet.
type Connector func(ctx context.Context, credentials []byte) (Store, error)

// Server is the dashboard HTTP handler.
type Server struct {
	connect  Connector
	sessions *sessions
	page     *template.Template
	logger   *zap.Logger
	router   chi.Router
	now      func() time.Time
}

// NewServer creates a dashboard with all routes configured. Sessions idle for longer than timeout
// are discarded; zero selects DefaultSessionTimeout.
func NewServer(connect Connector, logger *zap.Logger, timeout time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		connect:  connect,
		sessions: newSessions(timeout),
		page:     template.Must(template.New("index.html").ParseFS(html.HTML, "index.html")),
		logger:   logger,
		now:      time.Now,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/credentials", s.handleCredentials)
	r.Post("/records", s.handleAddRecord)
	r.Post("/reload", s.handleReload)
	r.Get("/export.xlsx", s.handleExport)
	r.Get("/health", s.handleHealth)
	r.Handle("/css/*", http.FileServer(http.FS(html.HTML)))

	s.router = r

	return s
}

// Router returns the underlying http.Handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request-id", middleware.GetReqID(r.Context())))
	})
}
