// Command mercato is the HTTP backend of the retail catalog/cart application:
// user registration and login, article catalog CRUD, and per-user shopping
// cart manipulation over a MongoDB document store.
//
// main wires the pieces together: configuration, the store connection, the
// services and handlers, the router with its middleware, and the HTTP server
// with graceful shutdown. The signing secrets and the store handle are the
// only process-wide state; both are established here, before the server
// accepts requests, and are read-only afterwards.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/mercato-go/auth"
	"github.com/user/mercato-go/cart"
	"github.com/user/mercato-go/catalog"
	"github.com/user/mercato-go/config"
	"github.com/user/mercato-go/db"
	"github.com/user/mercato-go/users"
)

func main() {
	// .env is a development convenience; in production the variables are
	// set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, database, err := db.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer db.Disconnect(client)

	// Store adapters.
	userStore := users.NewMongoStore(database)
	cartStore := cart.NewMongoStore(database)

	// Stateless auth components: hasher, token codec, signed cookie.
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.SessionDuration)
	sessionCookie := auth.NewSessionCookie(cfg.Auth.CookieSecret)

	// Services and handlers, constructor-injected.
	authService := auth.NewService(userStore, cartStore, hasher, codec)
	authHandlers := auth.NewHandlers(authService, sessionCookie)

	cartService := cart.NewService(userStore, cartStore)
	cartHandlers := cart.NewHandlers(cartService)

	catalogService := catalog.NewService(database)
	catalogHandlers := catalog.NewHandlers(catalogService)

	r := chi.NewRouter()

	// Global middleware; chi requires these before any route registration.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "benvenuto nel server mercato"})
	})

	// Public auth routes.
	r.Post("/login", authHandlers.HandleLogin())
	r.Post("/registr", authHandlers.HandleRegister())
	r.Post("/logout", authHandlers.HandleLogout())

	// Everything else requires a verified session.
	r.Group(func(r chi.Router) {
		r.Use(auth.SessionMiddleware(sessionCookie, codec))

		// Catalog.
		r.Get("/articoli", catalogHandlers.HandleList())
		r.Post("/articoli", catalogHandlers.HandleInsert())
		r.Delete("/articoli/{id}", catalogHandlers.HandleDelete())
		r.Get("/articoli/categoria/{categoria}", catalogHandlers.HandleListByCategory())
		r.Get("/articoli/ricerca/{termine}", catalogHandlers.HandleSearch())

		// Carts addressed by reference.
		r.Get("/carrelli", cartHandlers.HandleListAll())
		r.Put("/aggiungiArticolo/{id_carrello}", cartHandlers.HandleAddByRef())
		r.Put("/svuotacarrello/{id_carrello}", cartHandlers.HandleClearByRef())

		// The session user's own cart, resolved from the token claims.
		r.Get("/carrello/utente", cartHandlers.HandleReadOwn())
		r.Put("/carrello/utente/aggiungi", cartHandlers.HandleAddOwn())
		r.Put("/carrello/utente/svuota", cartHandlers.HandleClearOwn())
		r.Put("/rimuoviArticolo/utente/{id_articolo}", cartHandlers.HandleRemoveOwn())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
