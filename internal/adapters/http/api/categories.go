package api

import (
	"net/http"

	"github.com/MaryEddythe/tabulator/internal/domain/criteria"
)

// CategoriesHandler serves the criteria registry to the judging UI.
type CategoriesHandler struct{}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler() *CategoriesHandler {
	return &CategoriesHandler{}
}

// categoryView is one registry entry with its name attached.
type categoryView struct {
	Name string `json:"name"`
	criteria.Definition
}

// HandleGetCategories handles GET /categories requests.
func (h *CategoriesHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out := make([]categoryView, 0, len(criteria.All()))
	for _, name := range criteria.All() {
		def, _ := criteria.Lookup(name)
		out = append(out, categoryView{Name: name, Definition: def})
	}
	writeJSON(w, http.StatusOK, out)
}
