// Package api exposes the wardrobe operations over HTTP. Handlers stay thin:
// they decode the request, call the service layer and map typed errors onto
// status codes.
package api

import (
	"context"
	"log"
	"net/http"

	"github.com/virtuwear/wardrobe-backend/imagetool"
	"github.com/virtuwear/wardrobe-backend/models"
	"github.com/virtuwear/wardrobe-backend/service"
	"github.com/virtuwear/wardrobe-backend/storage"
)

// Server holds the services the handlers call.
type Server struct {
	Auth     *service.Auth
	Catalog  *service.Catalog
	Composer *service.Composer
	Objects  storage.ObjectStore
	RemoveBg *imagetool.Client

	AllowedOrigin string
}

// Routes wires every endpoint behind the CORS and recover middleware.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/register", s.RegisterHandler)
	mux.HandleFunc("/auth/login", s.LoginHandler)

	mux.HandleFunc("/clothing", s.Authenticated(s.CreateClothingHandler))
	mux.HandleFunc("/clothing/", s.ClothingHandler)

	mux.HandleFunc("/outfits", s.CreateOutfitHandler)
	mux.HandleFunc("/outfits/", s.ListOutfitsHandler)

	mux.HandleFunc("/remove-background", s.RemoveBackgroundHandler)

	return s.recoverMiddleware(s.corsMiddleware(mux))
}

// corsMiddleware answers preflight requests and stamps the CORS headers.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware converts any panic into a generic 500 instead of letting
// it kill the process.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic handling %s %s: %v", r.Method, r.URL.Path, rec)
				RespondError(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type contextKey string

const userContextKey contextKey = "user"

// Authenticated validates the bearer token and attaches the resolved user to
// the request context before calling the wrapped handler.
func (s *Server) Authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		user, err := s.Auth.Authenticate(r.Context(), token)
		if err != nil {
			respondServiceError(w, "authenticate", err)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the authenticated user attached by Authenticated.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
