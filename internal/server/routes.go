package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/keggview/internal/abundance"
	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/selection"
	"github.com/ziadkadry99/keggview/internal/session"
	"github.com/ziadkadry99/keggview/internal/site"
)

// RegisterRoutes mounts the page and JSON API onto r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Get("/legend", s.handleLegend)
		r.Get("/color/{id}", s.handleColor)
		r.Post("/reload", s.handleReload)

		r.Get("/pathways", s.handlePathways)
		r.Get("/pathways/{mapID}/heatmap-url", s.handleHeatmapURL)
		r.Post("/pathways/{mapID}/customize", s.handleCustomize)
		r.Post("/pathways/{mapID}/heatmap-customize", s.handleHeatmapCustomize)

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", s.handleSelection)
			r.Put("/pathway", s.handleSetPathway)
			r.Post("/entries", s.handleAddEntry)
			r.Delete("/entries", s.handleClear)
			r.Put("/entries/{id}", s.handleSetColors)
			r.Delete("/entries/{id}", s.handleRemoveEntry)
			r.Get("/url", s.handleBuildURL)
			r.Post("/toggle", s.handleToggle)
		})

		r.Post("/confirmations/{token}", s.handleConfirm)
		r.Delete("/confirmations/{token}", s.handleCancel)
	})
}

type treeResponse struct {
	Forest []pathway.Node `json:"forest"`
	Stats  pathway.Stats  `json:"stats"`
}

type legendResponse struct {
	Min   *float64         `json:"min,omitempty"`
	Max   *float64         `json:"max,omitempty"`
	Stops []abundance.Stop `json:"stops"`
}

type colorResponse struct {
	Identifier string   `json:"identifier"`
	Color      string   `json:"color"`
	Score      *float64 `json:"score,omitempty"`
}

type pathwayRequest struct {
	PathwayID string `json:"pathway_id"`
}

type entryRequest struct {
	Identifier string `json:"identifier"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

type identifiersRequest struct {
	Identifiers []string `json:"identifiers"`
}

type urlResponse struct {
	URL string `json:"url"`
}

type pendingResponse struct {
	Pending *selection.Pending `json:"pending"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := site.NewPageData(s.cfg.Title, s.sess.Forest(), s.sess.Index())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := site.RenderPage(w, data); err != nil {
		slog.Error("rendering page", "component", "server", "error", err)
	}
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	forest := s.sess.Forest()
	if forest == nil {
		forest = []pathway.Node{}
	}
	writeJSON(w, http.StatusOK, treeResponse{Forest: forest, Stats: pathway.Count(forest)})
}

func (s *Server) handleLegend(w http.ResponseWriter, r *http.Request) {
	idx := s.sess.Index()
	resp := legendResponse{Stops: idx.Legend()}
	if lo, hi, err := idx.Bounds(); err == nil {
		resp.Min, resp.Max = &lo, &hi
	}
	if resp.Stops == nil {
		resp.Stops = []abundance.Stop{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleColor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	resp := colorResponse{Identifier: id, Color: s.sess.ColorFor(id)}
	if v, ok := s.sess.Index().Value(id); ok {
		resp.Score = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Reload(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loaded_at": s.sess.LoadedAt()})
}

func (s *Server) handlePathways(w http.ResponseWriter, r *http.Request) {
	found := s.sess.Catalog().Search(r.URL.Query().Get("q"))
	if found == nil {
		found = []pathway.Pathway{}
	}
	writeJSON(w, http.StatusOK, found)
}

// nodeIdentifiers returns the identifiers of the pathway node named by the
// "node" query parameter, or nil to use every node sharing the map id.
func (s *Server) nodeIdentifiers(r *http.Request, mapID string) ([]string, error) {
	key := r.URL.Query().Get("node")
	if key == "" {
		return nil, nil
	}
	p, err := s.sess.PathwayNode(key, mapID)
	if err != nil {
		return nil, err
	}
	return p.Identifiers, nil
}

func (s *Server) handleHeatmapURL(w http.ResponseWriter, r *http.Request) {
	mapID := chi.URLParam(r, "mapID")
	ids, err := s.nodeIdentifiers(r, mapID)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := s.sess.OpenHeatmap(mapID, ids)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: u})
}

func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	pending, err := s.sess.Customize(chi.URLParam(r, "mapID"))
	s.writeOverwrite(w, pending, err)
}

func (s *Server) handleHeatmapCustomize(w http.ResponseWriter, r *http.Request) {
	var req identifiersRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	mapID := chi.URLParam(r, "mapID")
	ids := req.Identifiers
	if ids == nil {
		var err error
		if ids, err = s.nodeIdentifiers(r, mapID); err != nil {
			writeError(w, err)
			return
		}
	}
	pending, err := s.sess.HeatmapCustomize(mapID, ids)
	s.writeOverwrite(w, pending, err)
}

// writeOverwrite answers a pathway switch: 202 with the pending request when
// confirmation is needed, otherwise the new selection.
func (s *Server) writeOverwrite(w http.ResponseWriter, pending *selection.Pending, err error) {
	switch {
	case err != nil:
		writeError(w, err)
	case pending != nil:
		writeJSON(w, http.StatusAccepted, pendingResponse{Pending: pending})
	default:
		writeJSON(w, http.StatusOK, s.sess.Selection())
	}
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Selection())
}

func (s *Server) handleSetPathway(w http.ResponseWriter, r *http.Request) {
	var req pathwayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	writeSnapshot(w, http.StatusOK)(s.sess.SetPathway(req.PathwayID))
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Background == "" && req.Foreground == "" {
		writeSnapshot(w, http.StatusOK)(s.sess.SelectGene(req.Identifier))
		return
	}
	writeSnapshot(w, http.StatusOK)(s.sess.AddEntry(req.Identifier, req.Background, req.Foreground))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, http.StatusOK)(s.sess.ClearSelection())
}

func (s *Server) handleSetColors(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	writeSnapshot(w, http.StatusOK)(s.sess.SetColors(chi.URLParam(r, "id"), req.Background, req.Foreground))
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, http.StatusOK)(s.sess.RemoveEntry(chi.URLParam(r, "id")))
}

func (s *Server) handleBuildURL(w http.ResponseWriter, r *http.Request) {
	u, err := s.sess.BuildURL()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: u})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, http.StatusOK)(s.sess.ToggleCustomize())
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, http.StatusOK)(s.sess.Confirm(chi.URLParam(r, "token")))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	writeSnapshot(w, http.StatusOK)(s.sess.Cancel(chi.URLParam(r, "token")))
}

func writeSnapshot(w http.ResponseWriter, status int) func(session.Snapshot, error) {
	return func(snap session.Snapshot, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, status, snap)
	}
}

// statusFor maps session and selection errors onto HTTP status codes.
func statusFor(err error) int {
	var le *session.LoadError
	switch {
	case errors.Is(err, selection.ErrUnknownToken), errors.Is(err, selection.ErrUnknownEntry):
		return http.StatusNotFound
	case errors.Is(err, selection.ErrInvalidPathway),
		errors.Is(err, selection.ErrNoEntries),
		errors.Is(err, selection.ErrInvalidColor),
		errors.Is(err, selection.ErrEmptyIdentifier):
		return http.StatusBadRequest
	case errors.As(err, &le):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		slog.Error("request failed", "component", "server", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": strings.TrimSpace(err.Error())})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
