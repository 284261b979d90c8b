package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/logizar/logizar-crm/internal/infra/database"
	"github.com/logizar/logizar-crm/internal/infra/http/handlers"
	"github.com/logizar/logizar-crm/internal/infra/http/middleware"
	"github.com/logizar/logizar-crm/internal/infra/integration/supabase"
	"github.com/logizar/logizar-crm/internal/infra/mail"
	"github.com/logizar/logizar-crm/internal/infra/queue"
	"github.com/logizar/logizar-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("no se pudo conectar a la base: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"),
		os.Getenv("RABBITMQ_PASS"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatalf("no se pudo conectar a RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositorios
	contactRepo := database.NewContactRepository(db)
	activityRepo := database.NewActivityRepository(db)
	dealRepo := database.NewDealRepository(db)
	productRepo := database.NewProductRepository(db)
	profileRepo := database.NewProfileRepository(db)

	// Integraciones
	authClient := supabase.NewClient(os.Getenv("SUPABASE_AUTH_URL"), os.Getenv("SUPABASE_ANON_KEY"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envIntOr("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		os.Getenv("SALES_INBOX"),
	)

	// Worker: consume los eventos de leads y avisa a ventas.
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	// UseCases
	saveContactUC := usecase.NewSaveContactUseCase(contactRepo)
	moveStageUC := usecase.NewMoveStageUseCase(contactRepo)
	logActivityUC := usecase.NewLogActivityUseCase(activityRepo, contactRepo)
	createDealUC := usecase.NewCreateDealUseCase(dealRepo, contactRepo, productRepo)
	captureLeadUC := usecase.NewCaptureLeadUseCase(contactRepo, producer)

	// Handlers
	authHandler := handlers.NewAuthHandler(authClient)
	contactHandler := handlers.NewContactHandler(contactRepo, saveContactUC, moveStageUC)
	activityHandler := handlers.NewActivityHandler(activityRepo, logActivityUC)
	dealHandler := handlers.NewDealHandler(dealRepo, createDealUC)
	productHandler := handlers.NewProductHandler(productRepo)
	intakeHandler := handlers.NewIntakeHandler(captureLeadUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(envOr("CORS_ORIGINS", "*"), ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/resend-confirmation", authHandler.HandleResendConfirmation)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Formulario público: sin autenticación, con rate limit propio.
		r.Post("/public/leads", intakeHandler.HandleCapture)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticator(authClient, profileRepo))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/pipeline", contactHandler.HandlePipeline)
			r.Get("/contacts", contactHandler.HandleList)
			r.Post("/contacts", contactHandler.HandleCreate)
			r.Get("/contacts/{id}", contactHandler.HandleGet)
			r.Put("/contacts/{id}", contactHandler.HandleUpdate)
			r.Patch("/contacts/{id}/stage", contactHandler.HandleMoveStage)
			r.Get("/contacts/{id}/activities", activityHandler.HandleListByContact)
			r.Post("/contacts/{id}/activities", activityHandler.HandleCreate)

			r.Get("/activities", activityHandler.HandleList)

			r.Get("/deals", dealHandler.HandleList)
			r.Post("/deals", dealHandler.HandleCreate)

			r.Get("/products", productHandler.HandleList)
			r.With(middleware.RequireAdmin).Post("/products", productHandler.HandleCreate)
		})
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("Logizar CRM escuchando en %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
