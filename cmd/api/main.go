package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendaflow/pipecrm/internal/infra/database"
	"github.com/vendaflow/pipecrm/internal/infra/http/handlers"
	"github.com/vendaflow/pipecrm/internal/infra/http/middleware"
	"github.com/vendaflow/pipecrm/internal/infra/mail"
	"github.com/vendaflow/pipecrm/internal/infra/queue"
	"github.com/vendaflow/pipecrm/internal/infra/worker"
	"github.com/vendaflow/pipecrm/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)

	// Acks em memória por padrão (comportamento de referência: somem no
	// restart). Troque por database.NewFollowUpRepository para durabilidade.
	ackStore := usecase.NewMemoryAckStore()

	// 2. Store + Engine
	store := usecase.NewPipelineStore(leadRepo)
	if err := store.Load(ctx); err != nil {
		log.Fatal(err)
	}

	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	engine := usecase.NewReminderEngine(store, ackStore, producer)

	// 3. Entrega de follow-ups (consome a fila e manda email)
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	queueWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go queueWorker.Start(queue.QueueName)

	// 4. Worker de reavaliação periódica
	reminderWorker := worker.NewReminderWorker(engine)
	go reminderWorker.Start(ctx)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(store)
	pipelineHandler := handlers.NewPipelineHandler(store)
	reminderHandler := handlers.NewReminderHandler(engine)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads", leadHandler.CaptureLead)
	r.Get("/leads", pipelineHandler.HandleQuery)
	r.Put("/leads/{id}/stage", pipelineHandler.HandleTransition)
	r.Put("/leads/{id}/owner", pipelineHandler.HandleAssignOwner)
	r.Post("/leads/{id}/contact", pipelineHandler.HandleRecordContact)
	r.Get("/pipeline/summary", pipelineHandler.HandleSummary)
	r.Get("/reminders", reminderHandler.HandleList)
	r.Post("/reminders/{leadId}/acknowledge", reminderHandler.HandleAcknowledge)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 Server PipeCRM rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
