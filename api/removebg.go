package api

import (
	"log"
	"net/http"
)

// RemoveBackgroundHandler forwards an uploaded image to the background
// removal collaborator and streams the processed PNG back.
func (s *Server) RemoveBackgroundHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		RespondError(w, "Error parsing form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		RespondError(w, "No file uploaded.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	processed, err := s.RemoveBg.RemoveBackground(r.Context(), file, header.Filename)
	if err != nil {
		log.Printf("remove background for %s: %v", header.Filename, err)
		RespondError(w, "Failed to remove background", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(processed); err != nil {
		log.Printf("write processed image: %v", err)
	}
}
