package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumeanalyzer/internal/analysis"
	"github.com/muhammadolammi/resumeanalyzer/internal/database"
	"github.com/muhammadolammi/resumeanalyzer/internal/logger"
	"github.com/streadway/amqp"
)

func main() {
	log := logger.New()

	cfg, err := LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.WithError(err).Fatal("error opening db")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("error running migrations")
	}
	store := NewDBStore(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to create generative backend")
	}
	analyzer := analysis.New(analysis.Config{
		Generator:      generator,
		Logger:         log,
		BackendTimeout: cfg.LLMTimeout,
	})

	if cfg.RabbitMQUrl != "" {
		awsConfig, err := config.LoadDefaultConfig(ctx,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
			config.WithRegion("auto"),
		)
		if err != nil {
			log.WithError(err).Fatal("error creating aws config")
		}
		conn, err := amqp.Dial(cfg.RabbitMQUrl)
		if err != nil {
			log.WithError(err).Fatal("error connecting to rabbitmq")
		}
		defer conn.Close()

		workerConfig := WorkerConfig{
			Analyzer:    analyzer,
			Store:       store,
			R2:          cfg.R2,
			AwsConfig:   &awsConfig,
			RabbitConn:  conn,
			RABBITMQUrl: cfg.RabbitMQUrl,
			Log:         log,
		}
		log.WithField("workers", cfg.WorkerCount).Info("starting consumer worker pool")
		go workerConfig.StartConsumerWorkerPool(cfg.WorkerCount, workerConfig.r2Fetcher())
	}

	apiCfg := apiConfig{
		Analyzer:       analyzer,
		Store:          store,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AIConfigured:   cfg.GoogleApiKey != "",
		Log:            log,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(&apiCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("resume analyzer listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}

func newGenerator(ctx context.Context, cfg Config) (analysis.Generator, error) {
	if cfg.LLMBackend == "gemini" {
		return newGeminiGenerator(ctx, cfg.GoogleApiKey, cfg.LLMModel)
	}
	resumeAgent, err := GetAgent(ctx, cfg.GoogleApiKey, cfg.LLMModel, "resume_analyzer")
	if err != nil {
		return nil, err
	}
	return newAgentGenerator(resumeAgent)
}

func (workerConfig *WorkerConfig) r2Fetcher() resumeFetcher {
	return newR2Bucket(*workerConfig.AwsConfig, workerConfig.R2).Fetch
}
