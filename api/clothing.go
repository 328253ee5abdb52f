package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/service"
)

// CreateClothingHandler handles the authenticated multipart upload of a new
// clothing item: the photo goes to the object store, the record to Mongo.
func (s *Server) CreateClothingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		RespondError(w, "Error parsing form data", http.StatusBadRequest)
		return
	}

	ownerID := r.FormValue("user")
	if ownerID == "" {
		if user, ok := UserFromContext(r.Context()); ok {
			ownerID = user.ID.Hex()
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondError(w, "No file uploaded.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileKey, err := s.Objects.Upload(r.Context(), file, header.Filename, contentType)
	if err != nil {
		respondServiceError(w, "upload clothing photo", err)
		return
	}

	item, err := s.Catalog.Create(r.Context(), ownerID, service.CreateClothingInput{
		Name:     r.FormValue("name"),
		Size:     r.FormValue("size"),
		Color:    r.FormValue("color"),
		Brand:    r.FormValue("brand"),
		Category: r.FormValue("category"),
		FileKey:  fileKey,
	})
	if err != nil {
		respondServiceError(w, "create clothing", err)
		return
	}

	s.presignClothing(r.Context(), item)
	RespondJSON(w, http.StatusCreated, item)
}

// ClothingHandler dispatches the /clothing/ subtree:
//
//	GET    /clothing/{userId}           list a user's items
//	GET    /clothing/item/{id}          fetch one item
//	PUT    /clothing/item/{id}          partial update
//	PUT    /clothing/item/{id}/wear     mark worn now
//	DELETE /clothing/item/{id}          delete
func (s *Server) ClothingHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/clothing/")

	if itemPath, ok := strings.CutPrefix(rest, "item/"); ok {
		s.clothingItemHandler(w, r, itemPath)
		return
	}

	if r.Method != http.MethodGet {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := s.Catalog.ListByOwner(r.Context(), rest)
	if err != nil {
		respondServiceError(w, "list clothing", err)
		return
	}
	for i := range items {
		s.presignClothing(r.Context(), &items[i])
	}
	RespondJSON(w, http.StatusOK, items)
}

func (s *Server) clothingItemHandler(w http.ResponseWriter, r *http.Request, itemPath string) {
	if id, ok := strings.CutSuffix(itemPath, "/wear"); ok {
		if r.Method != http.MethodPut {
			RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		item, err := s.Catalog.MarkWorn(r.Context(), id)
		if err != nil {
			respondServiceError(w, "mark clothing worn", err)
			return
		}
		s.presignClothing(r.Context(), item)
		RespondJSON(w, http.StatusOK, item)
		return
	}

	id := itemPath
	switch r.Method {
	case http.MethodGet:
		item, err := s.Catalog.GetByID(r.Context(), id)
		if err != nil {
			respondServiceError(w, "get clothing", err)
			return
		}
		s.presignClothing(r.Context(), item)
		RespondJSON(w, http.StatusOK, item)

	case http.MethodPut:
		var input service.UpdateClothingInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			RespondError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		item, err := s.Catalog.Update(r.Context(), id, input)
		if err != nil {
			respondServiceError(w, "update clothing", err)
			return
		}
		s.presignClothing(r.Context(), item)
		RespondJSON(w, http.StatusOK, item)

	case http.MethodDelete:
		if err := s.Catalog.Delete(r.Context(), id); err != nil {
			respondServiceError(w, "delete clothing", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// presignClothing swaps the stored object key for a retrievable URL. A
// presign failure leaves the key in place rather than failing the request.
func (s *Server) presignClothing(ctx context.Context, item *models.Clothing) {
	if item.File == "" || strings.HasPrefix(item.File, "http") {
		return
	}
	if url, err := s.Objects.RetrievalURL(ctx, item.File); err == nil {
		item.File = url
	}
}
