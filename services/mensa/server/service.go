package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"mensa-backend/services/mensa"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/mensa/server")

type Handler struct {
	svc *mensa.Service
	// public hostname shown in help and footer text
	host string
}

// NewRouter creates a chi router serving the curl-facing menu API.
func NewRouter(svc *mensa.Service, host string) chi.Router {
	h := Handler{svc: svc, host: host}

	r := chi.NewRouter()
	r.Get("/help", h.Help)
	r.Get("/meta", h.Meta)
	r.Get("/", h.Default)
	r.Get("/{canteen}", h.Canteen)
	r.Get("/{canteen}/{line}", h.Line)

	return r
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.URL.Query().Get("format"), "json")
}

func (h Handler) writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	err := json.NewEncoder(w).Encode(value)
	if err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func (h Handler) writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte(text))
	if err != nil {
		slog.Warn("failed to write response", "err", err)
	}
}

// resolver failures are user errors rendered as distinct messages, an
// empty cache is a service condition
func (h Handler) writeError(w http.ResponseWriter, err error) {
	var notFound *mensa.NotFoundError
	var ambiguous *mensa.AmbiguousError
	if !errors.As(err, &notFound) && !errors.As(err, &ambiguous) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	h.writeText(w, errorText(h.host, err))
}

var errNoMenuData = errors.New("no menu data available yet, try again in a minute")

func (h Handler) Meta(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "Meta")
	defer span.End()

	h.writeJSON(w, h.svc.Cache().Meta())
}

func (h Handler) Default(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "Default")
	defer span.End()

	snapshot := h.svc.Cache().Read()
	canteen, ok := snapshot[h.svc.DefaultCanteen()]
	if snapshot == nil || !ok {
		h.writeError(w, errNoMenuData)
		return
	}

	if wantsJSON(r) {
		h.writeJSON(w, canteen)
		return
	}
	h.writeText(w, respText(h.host, "", formatCanteen(canteen)))
}

func (h Handler) Canteen(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "Canteen")
	defer span.End()

	snapshot := h.svc.Cache().Read()
	if snapshot == nil {
		h.writeError(w, errNoMenuData)
		return
	}

	_, canteen, err := mensa.ResolveCanteen(snapshot, chi.URLParam(r, "canteen"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if wantsJSON(r) {
		h.writeJSON(w, canteen)
		return
	}
	h.writeText(w, respText(h.host, "", formatCanteen(canteen)))
}

func (h Handler) Line(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "Line")
	defer span.End()

	snapshot := h.svc.Cache().Read()
	if snapshot == nil {
		h.writeError(w, errNoMenuData)
		return
	}

	_, line, err := mensa.ResolveLine(
		snapshot,
		chi.URLParam(r, "canteen"),
		chi.URLParam(r, "line"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if wantsJSON(r) {
		h.writeJSON(w, line)
		return
	}
	h.writeText(w, respText(h.host, "", formatLine(line)))
}

var browserMarkers = []string{"Chrome", "Safari", "Mozilla"}

func (h Handler) Help(w http.ResponseWriter, r *http.Request) {
	agent := r.Header.Get("User-Agent")
	for _, marker := range browserMarkers {
		if strings.Contains(agent, marker) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(helpHTML(h.host)))
			return
		}
	}
	h.writeText(w, helpText(h.host))
}
