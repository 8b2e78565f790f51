package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lindle/internal/config"
	"lindle/internal/export"
	"lindle/internal/lindle"
	"lindle/internal/logger"
)

// App holds the gateway's dependencies.
type App struct {
	Config *config.Config
	Client lindle.ClientInterface
	Logger *logger.Logger
}

// Option is a functional option for configuring the App.
type Option func(*App)

// NewApp creates a new App instance with the given options.
func NewApp(opts ...Option) *App {
	app := &App{
		Logger: logger.New(logger.INFO),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithClient sets the Lindle API client.
func WithClient(client lindle.ClientInterface) Option {
	return func(a *App) {
		a.Client = client
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// ErrorResponse is the body of every non-2xx gateway answer.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// HandleUser handles GET /api/user.
func (a *App) HandleUser(w http.ResponseWriter, r *http.Request) {
	user, err := a.Client.GetUser(r.Context())
	if err != nil {
		a.writeUpstreamError(w, r, err)
		return
	}
	a.writeJSON(w, r, user)
}

// HandleLinks handles GET /api/links.
func (a *App) HandleLinks(w http.ResponseWriter, r *http.Request) {
	links, err := a.Client.GetLinks(r.Context())
	if err != nil {
		a.writeUpstreamError(w, r, err)
		return
	}
	a.writeJSON(w, r, links)
}

// HandleFolders handles GET /api/folders. The links query parameter
// selects folders with their links.
func (a *App) HandleFolders(w http.ResponseWriter, r *http.Request) {
	withLinks := false
	if v := r.URL.Query().Get("links"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			a.writeError(w, r, http.StatusBadRequest, "invalid 'links' parameter", 0)
			return
		}
		withLinks = parsed
	}

	folders, err := a.Client.GetFolders(r.Context(), withLinks)
	if err != nil {
		a.writeUpstreamError(w, r, err)
		return
	}
	a.writeJSON(w, r, folders)
}

// HandleSync handles GET /api/sync.
func (a *App) HandleSync(w http.ResponseWriter, r *http.Request) {
	synced, err := a.Client.GetSyncedBookmarks(r.Context())
	if err != nil {
		a.writeUpstreamError(w, r, err)
		return
	}
	a.writeJSON(w, r, synced)
}

// HandleExport handles GET /export/bookmarks.html.
func (a *App) HandleExport(w http.ResponseWriter, r *http.Request) {
	folders, err := a.Client.GetFolders(r.Context(), true)
	if err != nil {
		a.writeUpstreamError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.html"`)
	if err := export.WriteNetscape(w, folders); err != nil {
		a.Logger.Errorf("Error writing bookmark export: %v, URL: %s", err, r.URL.Path)
	}
}

// HandleHealth handles GET /healthz. It does not contact Lindle.
func (a *App) HandleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if a.Config != nil {
		body["upstream"] = a.Config.Lindle.Host
	}
	a.writeJSON(w, r, body)
}

// writeUpstreamError maps client failures to gateway answers. Anything that
// went wrong talking to Lindle is a 502; the upstream status is kept in the
// body.
func (a *App) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Errorf("Upstream request failed: %v, URL: %s, Params: %v", err, r.URL.Path, r.URL.Query())

	var apiErr *lindle.APIError
	if errors.As(err, &apiErr) {
		a.writeError(w, r, http.StatusBadGateway, err.Error(), apiErr.StatusCode)
		return
	}

	var decodeErr *lindle.DecodeError
	if errors.As(err, &decodeErr) {
		a.writeError(w, r, http.StatusBadGateway, err.Error(), 0)
		return
	}

	a.writeError(w, r, http.StatusBadGateway, "failed to reach Lindle", 0)
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, code int, msg string, upstream int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Status: upstream}); err != nil {
		a.Logger.Errorf("Error encoding error response: %v, URL: %s", err, r.URL.Path)
	}
}

func (a *App) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.Logger.Errorf("Error encoding response: %v, URL: %s, Params: %v", err, r.URL.Path, r.URL.Query())
	}
}
