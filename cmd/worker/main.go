package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"bookcatalog-backend/internal/domains/engagement/job"
	"bookcatalog-backend/internal/infrastructure/queue"
	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/container"
	"bookcatalog-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("[Container] Failed to initialize: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)

	srv := setupAsynqServer(c)
	mux := setupMux(c)

	scheduler := queue.NewScheduler(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register jobs: %v", err)
	}

	if err := srv.Start(mux); err != nil {
		log.Fatalf("[Worker] Failed to start: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("[Scheduler] Failed to start: %v", err)
	}
	log.Println("[Worker] Started")

	waitForShutdown(srv, scheduler)
}

func setupAsynqServer(c *container.Container) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueEngagement: 10,
			},
		},
	)
}

func setupMux(c *container.Container) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeMetadataDelete, job.NewDeleteMetadataHandler(c.EngagementService))
	mux.Handle(shared.TypeOrphanSweep, job.NewSweepOrphansHandler(c.EngagementService))
	mux.Handle(shared.TypeAggregateReconcile, job.NewReconcileAggregatesHandler(c.EngagementService))
	return mux
}

func waitForShutdown(srv *asynq.Server, scheduler *queue.Scheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("[Shutdown] Stopped")
}
