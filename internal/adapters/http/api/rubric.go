// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/introeval/internal/domain/scoring"
)

// RubricProvider describes the scoring sections.
type RubricProvider interface {
	Rubric() []scoring.Section
}

type rubricCategory struct {
	Name string `json:"name"`
	Max  int    `json:"max"`
}

type rubricSection struct {
	Name       string           `json:"name"`
	Max        int              `json:"max"`
	Categories []rubricCategory `json:"categories"`
}

type rubricResponse struct {
	MaxScore int             `json:"max_score"`
	Sections []rubricSection `json:"sections"`
}

// RubricHandler handles rubric requests.
type RubricHandler struct {
	provider RubricProvider
}

// NewRubricHandler creates a new rubric handler.
func NewRubricHandler(provider RubricProvider) *RubricHandler {
	return &RubricHandler{provider: provider}
}

// HandleRubric handles GET /rubric requests.
func (h *RubricHandler) HandleRubric(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	sections := h.provider.Rubric()
	resp := rubricResponse{MaxScore: scoring.MaxScore, Sections: make([]rubricSection, 0, len(sections))}
	for _, s := range sections {
		out := rubricSection{Name: s.Name, Max: s.Max, Categories: make([]rubricCategory, 0, len(s.Categories))}
		for _, c := range s.Categories {
			out.Categories = append(out.Categories, rubricCategory{Name: string(c), Max: scoring.MaxFor(c)})
		}
		resp.Sections = append(resp.Sections, out)
	}
	writeJSON(w, http.StatusOK, resp)
}
