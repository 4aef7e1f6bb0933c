package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-queue/internal/db"
	infraRepo "github.com/BruksfildServices01/barber-queue/internal/infra/repository"
	"github.com/BruksfildServices01/barber-queue/internal/jobs"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/routes"
	ucQueue "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	// Canal de notificação: o dispatcher entrega async para o HTTP; o sweep
	// usa o mesmo sender para reentregar o que ficou para trás.
	sender := notify.NewSender(cfg.NotifyProvider, cfg.NotifyWebhookURL, cfg.NotifyWebhookToken)
	queueRepo := infraRepo.NewQueueGormRepository(db)
	notifier := notify.NewDispatcher(sender, queueRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Jobs de fundo: agendamento vira entrada VIP perto da hora; varredura
	// garante que nenhum up_next fica sem aviso.
	enforce := ucQueue.NewEnforceUpNext(queueRepo)
	converter := jobs.NewConverter(queueRepo, enforce, notifier, cfg.ConvertLead)
	sweep := jobs.NewSweep(queueRepo, sender, 100)

	go jobs.Start(ctx, cfg.ConvertInterval, converter)
	go jobs.Start(ctx, cfg.SweepInterval, sweep)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, notifier, cfg)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}
