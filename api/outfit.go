package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// CreateOutfitRequest represents the payload for composing a new outfit.
type CreateOutfitRequest struct {
	Name          string   `json:"name"`
	ClothingItems []string `json:"clothing_items"`
	CreatedBy     string   `json:"created_by"`
}

// CreateOutfitHandler composes a named outfit out of existing clothing items.
func (s *Server) CreateOutfitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateOutfitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outfit, err := s.Composer.Create(r.Context(), req.Name, req.ClothingItems, req.CreatedBy)
	if err != nil {
		respondServiceError(w, "create outfit", err)
		return
	}

	for i := range outfit.Items {
		s.presignClothing(r.Context(), &outfit.Items[i])
	}
	RespondJSON(w, http.StatusCreated, outfit)
}

// ListOutfitsHandler returns a user's outfits with clothing items expanded.
func (s *Server) ListOutfitsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := strings.TrimPrefix(r.URL.Path, "/outfits/")
	outfits, err := s.Composer.ListByCreator(r.Context(), userID)
	if err != nil {
		respondServiceError(w, "list outfits", err)
		return
	}

	for i := range outfits {
		for j := range outfits[i].Items {
			s.presignClothing(r.Context(), &outfits[i].Items[j])
		}
	}
	RespondJSON(w, http.StatusOK, outfits)
}
