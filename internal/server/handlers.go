package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"podcaster/internal/core"
	"podcaster/internal/styles"
)

const missingFieldsMessage = "Missing required fields: topic, durationMinutes"

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// StyleInfo describes one entry of the style catalog
type StyleInfo struct {
	ID      string `json:"id"`
	Guide   string `json:"guide"`
	Default bool   `json:"default,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// generateRequest mirrors core.ResearchRequest with pointers so absent
// fields can be told apart from zero values. durationMinutes accepts a
// number or a numeric string.
type generateRequest struct {
	Topic           *string      `json:"topic"`
	DurationMinutes *json.Number `json:"durationMinutes"`
	Style           *string      `json:"style"`
	Language        *string      `json:"language"`
}

func (g generateRequest) toResearchRequest() (core.ResearchRequest, bool) {
	if g.Topic == nil || g.DurationMinutes == nil {
		return core.ResearchRequest{}, false
	}
	minutes, err := g.DurationMinutes.Float64()
	if err != nil {
		return core.ResearchRequest{}, false
	}

	req := core.ResearchRequest{
		Topic:           *g.Topic,
		DurationMinutes: int(minutes),
		Style:           styles.Default,
	}
	if g.Style != nil && *g.Style != "" {
		req.Style = *g.Style
	}
	if g.Language != nil {
		req.Language = *g.Language
	}
	return req, true
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleListStyles handles GET /api/styles
func (s *Server) handleListStyles(w http.ResponseWriter, r *http.Request) {
	ids := styles.IDs()
	out := make([]StyleInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, StyleInfo{ID: id, Guide: styles.Guide(id), Default: id == styles.Default})
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleGenerate handles POST /generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}

	req, ok := body.toResearchRequest()
	if !ok {
		s.respondError(w, http.StatusBadRequest, missingFieldsMessage)
		return
	}

	lines, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidRequest) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error("Error generating script",
			"topic", req.Topic,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err.Error(),
		)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, lines)
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
