package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/api/option"

	"github.com/artconecta/backend/internal/auth"
	"github.com/artconecta/backend/internal/config"
	"github.com/artconecta/backend/internal/handlers"
	"github.com/artconecta/backend/internal/logger"
	appMiddleware "github.com/artconecta/backend/internal/middleware"
	"github.com/artconecta/backend/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("server", "info").Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New("server", cfg.LogLevel)
	ctx := context.Background()

	// Mongo: one client for the whole process, injected into services.
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB unreachable")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	// Token verifiers: Firebase ID tokens and/or local HS256 sessions.
	var verifiers auth.VerifierChain
	var publicStore services.PublicProfileStore = services.NopPublicProfileStore{}

	if cfg.FirebaseEnabled() {
		var opts []option.ClientOption
		if cfg.FirebaseCredentialsJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Firebase app")
		}

		authClient, err := app.Auth(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Firebase Auth")
		}
		verifiers = append(verifiers, auth.NewFirebaseVerifier(authClient))

		fsClient, err := app.Firestore(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Firestore")
		}
		defer fsClient.Close()
		publicStore = services.NewFirestorePublicProfileService(fsClient)
	} else {
		log.Warn().Msg("Firebase disabled; public profiles are not mirrored")
	}

	var localVerifier *auth.LocalVerifier
	if cfg.LocalAuthEnabled() {
		localVerifier = auth.NewLocalVerifier(cfg.JWTSecret, cfg.JWTExpiration)
		verifiers = append(verifiers, localVerifier)
	}
	if len(verifiers) == 0 {
		log.Fatal().Msg("no token verifier configured: set FIREBASE_PROJECT_ID or JWT_SECRET")
	}
	gate := auth.NewGate(verifiers)

	// Services.
	userService, err := services.NewMongoUserService(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize user service")
	}
	projectService, err := services.NewMongoProjectService(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize project service")
	}
	favoriteService, err := services.NewMongoFavoriteService(ctx, db, projectService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize favorite service")
	}
	accountService := services.NewMongoAccountService(db, publicStore)
	syncService := services.NewSyncService(publicStore)

	// Handlers.
	profileHandler := handlers.NewProfileHandler(userService, syncService)
	syncHandler := handlers.NewSyncHandler(gate, userService, syncService)
	projectHandler := handlers.NewProjectHandler(projectService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	accountHandler := handlers.NewAccountHandler(accountService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Profile-sync entry points (flat response contract, gate inside).
	r.Post("/sync-profile", syncHandler.SyncProfile)
	r.Post("/republish-profile", syncHandler.RepublishProfile)

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Get("/artists/{username}", profileHandler.GetArtistByUsername)
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{projectId}", projectHandler.GetProject)

		if localVerifier != nil {
			authHandler := handlers.NewAuthHandler(userService, localVerifier)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}

		if cfg.RecaptchaSecret != "" && cfg.MailgunDomain != "" {
			contactHandler := handlers.NewContactHandler(
				services.NewRecaptchaVerifier(cfg.RecaptchaSecret),
				services.NewContactMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.ContactFromEmail, cfg.ContactToEmail),
			)
			r.Post("/contact", contactHandler.SubmitContactRequest)
		}

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAuth(verifiers))

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)

			r.Post("/projects", projectHandler.CreateProject)
			r.Put("/projects/{projectId}", projectHandler.UpdateProject)
			r.Delete("/projects/{projectId}", projectHandler.DeleteProject)

			r.Post("/projects/{projectId}/favorite", favoriteHandler.AddFavorite)
			r.Delete("/projects/{projectId}/favorite", favoriteHandler.RemoveFavorite)
			r.Get("/favorites", favoriteHandler.ListFavorites)
			r.Get("/favorites/projects", favoriteHandler.ListFavoriteProjects)

			r.Delete("/account", accountHandler.DeleteAccount)
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-shutdownCtx.Done()
	log.Info().Msg("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
