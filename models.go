package main

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeanalyzer/internal/analysis"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type WorkerConfig struct {
	Analyzer    ResumeAnalyzer
	Store       ResumeStore
	R2          *R2Config
	AwsConfig   *aws.Config
	RabbitConn  *amqp.Connection
	RABBITMQUrl string
	Log         logrus.FieldLogger
}

// ResumeJob is the message the uploader publishes on the resume_uploads queue.
type ResumeJob struct {
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
	Mime      string `json:"mime"`
}

// ResumeUpdate is published on the resume_updates exchange after each job.
type ResumeUpdate struct {
	ResumeID  *uuid.UUID `json:"resume_id"`
	ObjectKey string     `json:"object_key"`
	Status    string     `json:"status"`
	Message   string     `json:"message"`
	Degraded  bool       `json:"degraded"`
	Timestamp time.Time  `json:"timestamp"`
}

// Resume is a stored analysis as returned by the API.
type Resume struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
	analysis.Record
}

// ResumeSummary is one row of the resume listing.
type ResumeSummary struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	ResumeRating *int      `json:"resume_rating"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
