package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plus3/blockfall/loop"
)

// Handler serves the published match state.
type Handler struct {
	pub *Publisher
}

// NewHandler returns a handler reading from pub.
func NewHandler(pub *Publisher) *Handler {
	return &Handler{pub: pub}
}

// RegisterRoutes mounts the inspector routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Get("/stats", h.schedulerStats)
	r.Get("/events", h.stream)
	r.Route("/match", func(r chi.Router) {
		r.Get("/", h.match)
		r.Get("/players/{player}", h.player)
	})
}

// NewRouter builds a router with the standard middleware stack.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts
// the server down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("debug server listening on http://%s", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	_, published := h.pub.Latest()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"published": published,
		"version":   h.pub.Version(),
	})
}

func (h *Handler) match(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.pub.Latest()
	if !ok {
		http.Error(w, "no match published yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) player(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "player"))
	if err != nil {
		http.Error(w, "player must be a number", http.StatusBadRequest)
		return
	}
	snap, ok := h.pub.Latest()
	if !ok {
		http.Error(w, "no match published yet", http.StatusServiceUnavailable)
		return
	}
	if n < 1 || n > len(snap.Players) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, snap.Players[n-1])
}

type systemView struct {
	Name       string  `json:"name"`
	Executions int64   `json:"executions"`
	MinMs      float64 `json:"min_ms"`
	MaxMs      float64 `json:"max_ms"`
	AvgMs      float64 `json:"avg_ms"`
	LastMs     float64 `json:"last_ms"`
}

type statsView struct {
	Ticks           uint64       `json:"ticks"`
	TotalExecutions int64        `json:"total_executions"`
	Systems         []systemView `json:"systems"`
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func newStatsView(stats loop.Stats) statsView {
	view := statsView{
		Ticks:           stats.Ticks,
		TotalExecutions: stats.TotalExecutions,
		Systems:         make([]systemView, len(stats.Systems)),
	}
	for i, s := range stats.Systems {
		view.Systems[i] = systemView{
			Name:       s.Name,
			Executions: s.ExecutionCount,
			MinMs:      millis(s.MinDuration),
			MaxMs:      millis(s.MaxDuration),
			AvgMs:      millis(s.AvgDuration),
			LastMs:     millis(s.LastDuration),
		}
	}
	return view
}

func (h *Handler) schedulerStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newStatsView(h.pub.Stats()))
}

// stream sends the current snapshot, then one event per publish.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := h.pub.Subscribe()
	defer h.pub.Unsubscribe(sub)

	send := func() {
		if snap, ok := h.pub.Latest(); ok {
			data, err := json.Marshal(snap)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "event: match\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
	send()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub:
			send()
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("debugserver: encode response: %v", err)
	}
}
