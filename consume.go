package main

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// resumeFetcher loads the uploaded file stored under key.
type resumeFetcher func(ctx context.Context, key string) ([]byte, error)

// handleJob runs one queued upload end to end: download, analysis, persistence.
// Download and database writes are retried; the analysis itself is not.
func (workerConfig *WorkerConfig) handleJob(ctx context.Context, body []byte, fetch resumeFetcher) ResumeUpdate {
	update := ResumeUpdate{Status: statusFailed}

	job := ResumeJob{}
	if err := json.Unmarshal(body, &job); err != nil || job.ObjectKey == "" {
		workerConfig.Log.WithError(err).WithField("body", string(body)).Error("invalid resume job message")
		update.Message = "invalid job message"
		return finish(&update)
	}
	update.ObjectKey = job.ObjectKey
	log := workerConfig.Log.WithField("object_key", job.ObjectKey)

	fileBytes, err := retry(3, func() ([]byte, error) {
		return fetch(ctx, job.ObjectKey)
	})
	if err != nil {
		log.WithError(err).Error("failed to download resume after retries")
		update.Message = "file download error"
		return finish(&update)
	}

	rec, err := workerConfig.Analyzer.AnalyzeDocument(ctx, job.Mime, fileBytes)
	if err != nil {
		log.WithError(err).Warn("resume could not be read")
		update.Message = "text extraction error"
		return finish(&update)
	}

	fileName := job.FileName
	if fileName == "" {
		fileName = path.Base(job.ObjectKey)
	}
	saved, err := retry(3, func() (Resume, error) {
		return workerConfig.Store.SaveResume(ctx, fileName, rec)
	})
	if err != nil {
		log.WithError(err).Error("failed to save resume after retries")
		update.Message = "database error"
		return finish(&update)
	}

	log.WithFields(map[string]any{
		"resume_id": saved.ID,
		"degraded":  rec.Degraded,
	}).Info("resume analyzed")
	update.ResumeID = &saved.ID
	update.Status = statusCompleted
	update.Message = "analysis completed"
	update.Degraded = rec.Degraded
	return finish(&update)
}

func finish(u *ResumeUpdate) ResumeUpdate {
	u.Timestamp = time.Now().UTC()
	return *u
}

func worker(id int, workerConfig *WorkerConfig, fetch resumeFetcher, wg *sync.WaitGroup) {
	defer wg.Done()
	log := workerConfig.Log.WithField("worker_id", id+1)

	conn, err := amqp.Dial(workerConfig.RABBITMQUrl)
	if err != nil {
		log.WithError(err).Fatal("error dialling rabbitmq")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Fatal("error connecting to rabbitmq channel")
	}
	defer ch.Close()
	_, err = ch.QueueDeclare(
		uploadsQueue, // queue name
		true,         // durable (survives broker restarts)
		false,        // auto-delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		log.WithError(err).Fatal("failed to declare queue")
	}
	// one unacked job per worker keeps the pool evenly loaded
	if err := ch.Qos(1, 0, false); err != nil {
		log.WithError(err).Fatal("failed to set qos")
	}

	msgs, err := ch.Consume(
		uploadsQueue, // queue name
		"",           // consumer tag
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		log.WithError(err).Fatal("error consuming rabbitmq message")
	}

	for msg := range msgs {
		log.Debug("processing resume job")
		update := workerConfig.handleJob(context.Background(), msg.Body, fetch)

		if err := publishResumeUpdate(workerConfig.RabbitConn, update); err != nil {
			log.WithError(err).Warn("failed to publish update")
		}
		if err := msg.Ack(false); err != nil {
			log.WithError(err).Warn("failed to ack message")
		}
	}
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(numWorkers int, fetch resumeFetcher) {
	ch, err := workerConfig.RabbitConn.Channel()
	if err != nil {
		workerConfig.Log.WithError(err).Fatal("error opening rabbitmq channel")
	}
	if err := declareUpdateExchange(ch); err != nil {
		workerConfig.Log.WithError(err).Fatal("failed to declare update exchange")
	}
	ch.Close()

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		workerConfig.Log.WithField("worker_id", i+1).Info("worker started")
		go worker(i, workerConfig, fetch, &wg)
	}
	wg.Wait() // block until all workers finish
}
