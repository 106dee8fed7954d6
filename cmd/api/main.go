package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mirap9615/owowclub-sub000/cmd/app"
	"github.com/Mirap9615/owowclub-sub000/internal/config"
	handlers "github.com/Mirap9615/owowclub-sub000/internal/handler"
	"github.com/Mirap9615/owowclub-sub000/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	r := mux.NewRouter()

	r.HandleFunc("/", handlers.HomeHandler).Methods("GET")
	r.HandleFunc("/health", handler.HealthHandler).Methods("GET")

	// membership application workflow
	r.HandleFunc("/request", handler.SubmitApplication).Methods("POST")
	r.HandleFunc("/api/applications", handler.ListApplications).Methods("GET")
	r.HandleFunc("/api/applications/{id}/status", handler.UpdateApplicationStatus).Methods("PATCH")

	// registration and auth
	r.HandleFunc("/register", handler.Register).Methods("POST")
	r.HandleFunc("/api/register/validate-token/{token}", handler.ValidateRegistrationToken).Methods("GET")
	r.HandleFunc("/api/validate-code", handler.ValidateCode).Methods("POST")
	r.HandleFunc("/api/register", handler.RedeemRegistration).Methods("POST")
	r.HandleFunc("/login", handler.Login).Methods("POST")
	r.HandleFunc("/logout", handler.Logout).Methods("POST")
	r.HandleFunc("/forgot-password", handler.ForgotPassword).Methods("POST")
	r.HandleFunc("/reset-password", handler.ResetPassword).Methods("POST")
	r.HandleFunc("/api/me", handler.Me).Methods("GET")
	r.HandleFunc("/api/users", handler.ListUsers).Methods("GET")

	// events; invite routes come before the slug catch-all
	r.HandleFunc("/api/events/invite", handler.InviteUsers).Methods("POST")
	r.HandleFunc("/api/events/invite/{token}", handler.RedeemInvite).Methods("GET")
	r.HandleFunc("/api/events", handler.ListEvents).Methods("GET")
	r.HandleFunc("/api/events", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/{slug}", handler.GetEventBySlug).Methods("GET")
	r.HandleFunc("/api/events/{id}", handler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/events/{id}", handler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/events/{id}/join", handler.JoinEvent).Methods("POST")
	r.HandleFunc("/api/events/{id}/leave", handler.LeaveEvent).Methods("DELETE")

	// media
	r.HandleFunc("/api/media", handler.UploadMedia).Methods("POST")
	r.HandleFunc("/api/media", handler.ListMedia).Methods("GET")
	r.HandleFunc("/api/media/delete", handler.BulkDeleteMedia).Methods("POST")
	r.HandleFunc("/api/media/{id}", handler.UpdateMedia).Methods("PUT")
	r.HandleFunc("/api/media/{id}", handler.DeleteMedia).Methods("DELETE")

	// comments and likes
	r.HandleFunc("/api/comments", handler.ListComments).Methods("GET")
	r.HandleFunc("/api/comments", handler.PostComment).Methods("POST")
	r.HandleFunc("/api/comments/{id}", handler.EditComment).Methods("PUT")
	r.HandleFunc("/api/comments/{id}", handler.DeleteComment).Methods("DELETE")
	r.HandleFunc("/api/comments/{id}/like", handler.LikeComment).Methods("POST")
	r.HandleFunc("/api/comments/{id}/like", handler.UnlikeComment).Methods("DELETE")

	// admin
	r.HandleFunc("/api/admin/email", handler.BulkEmail).Methods("POST")

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(services.Auth),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Server listening on %s", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
