package api

import (
	"encoding/json"
	"net/http"
)

// RegisterRequest represents the payload for user registration
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for user login. Login may be a
// username or an email address.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// RegisterHandler handles user registration
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.Auth.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		respondServiceError(w, "register", err)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully!",
	})
}

// LoginHandler handles user login
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		RespondError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.Auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		respondServiceError(w, "login", err)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}
