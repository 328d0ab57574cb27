package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskbin/internal/domain"
	"github.com/phrazzld/taskbin/internal/platform/logger"
	"github.com/phrazzld/taskbin/internal/redact"
	"github.com/phrazzld/taskbin/internal/view"
)

// Handler serves the deleted tasks page.
type Handler struct {
	view           *view.DeletedTasksView
	renderer       *view.Renderer
	sessions       *view.Sessions
	activeTasksURL string
	logger         *slog.Logger
}

// NewHandler creates a Handler. activeTasksURL is the target of the back link;
// empty hides it.
func NewHandler(
	v *view.DeletedTasksView,
	renderer *view.Renderer,
	sessions *view.Sessions,
	activeTasksURL string,
	logger *slog.Logger,
) *Handler {
	if v == nil || renderer == nil || sessions == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("view, renderer and sessions are required for web.Handler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		view:           v,
		renderer:       renderer,
		sessions:       sessions,
		activeTasksURL: activeTasksURL,
		logger:         logger.With(slog.String("component", "web_handler")),
	}
}

// Router returns the chi router with middleware and all page routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/eliminadas", http.StatusSeeOther)
	})
	r.Get("/eliminadas", h.ShowDeletedTasks)
	r.Post("/eliminadas/{id}/restaurar", h.RequestRestore)
	r.Post("/eliminadas/{id}/confirmar", h.ConfirmRestore)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			h.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}

// ShowDeletedTasks handles GET /eliminadas: it reloads the list, then renders the page.
func (h *Handler) ShowDeletedTasks(w http.ResponseWriter, r *http.Request) {
	screen := h.sessions.Screen(w, r)
	if err := h.view.LoadDeletedTasks(r.Context(), screen); err != nil {
		h.logViewError(r, "failed to load deleted tasks", err)
	}
	h.render(w, r, screen)
}

// RequestRestore handles POST /eliminadas/{id}/restaurar by opening the confirmation dialog.
func (h *Handler) RequestRestore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	screen := h.sessions.Screen(w, r)
	if err := h.view.RequestRestore(screen, id); err != nil {
		h.badRequest(w, r, err)
		return
	}
	h.ensureList(r, screen)
	h.render(w, r, screen)
}

// ConfirmRestore handles POST /eliminadas/{id}/confirmar with decision=si|no.
// The page is rendered directly so a successful restore triggers exactly one reload.
func (h *Handler) ConfirmRestore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var confirmed bool
	switch r.PostFormValue("decision") {
	case "si":
		confirmed = true
	case "no":
		confirmed = false
	default:
		h.badRequest(w, r, errors.New("decision must be si or no"))
		return
	}

	screen := h.sessions.Screen(w, r)
	err := h.view.ResolveRestore(r.Context(), screen, id, confirmed)
	switch {
	case errors.Is(err, view.ErrNoPendingConfirmation):
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("ignoring stale confirmation",
			slog.Int64("task_id", id))
	case err != nil:
		h.logViewError(r, "failed to restore task", err)
	}
	h.ensureList(r, screen)
	h.render(w, r, screen)
}

// ensureList loads the list once for screens that were never rendered, such
// as a new session posting a form directly.
func (h *Handler) ensureList(r *http.Request, screen *view.Screen) {
	if _, ok := screen.List(); ok {
		return
	}
	if err := h.view.LoadDeletedTasks(r.Context(), screen); err != nil {
		h.logViewError(r, "failed to load deleted tasks", err)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, screen *view.Screen) {
	page := screen.Snapshot()
	page.ActiveTasksURL = h.activeTasksURL

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.RenderPage(w, page); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to render page",
			slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		err = domain.ValidateID(id)
	}
	if err != nil {
		h.badRequest(w, r, err)
		return 0, false
	}
	return id, true
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContextOrDefault(r.Context(), h.logger).Warn("bad request",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()))
	http.Error(w, "Solicitud inválida", http.StatusBadRequest)
}

func (h *Handler) logViewError(r *http.Request, msg string, err error) {
	logger.FromContextOrDefault(r.Context(), h.logger).Error(msg,
		slog.String("error", redact.Error(err)),
		slog.String("error_type", errorType(err)))
}

// requestLogger stores a request-scoped logger carrying chi's request ID.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := h.logger.With(slog.String("request_id", middleware.GetReqID(r.Context())))
		log.Debug("request started", slog.String("method", r.Method), slog.String("path", r.URL.Path))
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), log)))
	})
}
