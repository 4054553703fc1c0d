package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeanalyzer/internal/analysis"
	"github.com/sirupsen/logrus"
)

// ResumeAnalyzer turns an uploaded document into an analysis record.
type ResumeAnalyzer interface {
	AnalyzeDocument(ctx context.Context, mime string, data []byte) (*analysis.Record, error)
}

type apiConfig struct {
	Analyzer       ResumeAnalyzer
	Store          ResumeStore
	MaxUploadBytes int64
	AIConfigured   bool
	Log            *logrus.Logger
}

var uploadMimes = map[string]string{
	".pdf":  analysis.MimePDF,
	".docx": analysis.MimeDOCX,
}

func newRouter(apiCfg *apiConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(apiCfg.Log), cors())

	r.GET("/health", apiCfg.handlerHealth)

	resumes := r.Group("/api/resumes")
	resumes.POST("/upload", apiCfg.handlerUploadResume)
	resumes.GET("", apiCfg.handlerListResumes)
	resumes.GET("/:id", apiCfg.handlerGetResume)
	return r
}

func (apiCfg *apiConfig) handlerUploadResume(c *gin.Context) {
	// room for the multipart envelope on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, apiCfg.MaxUploadBytes+1<<10)
	fh, err := c.FormFile("resume")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondWithError(c, http.StatusBadRequest, "file too large")
		return
	}
	if err != nil {
		respondWithError(c, http.StatusBadRequest, `missing file: use "resume" as the form field name`)
		return
	}

	mime, ok := uploadMimes[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		respondWithError(c, http.StatusBadRequest, "only PDF and DOCX files are allowed")
		return
	}
	if fh.Size <= 0 || fh.Size > apiCfg.MaxUploadBytes {
		respondWithError(c, http.StatusBadRequest, "file too large or empty")
		return
	}

	file, err := fh.Open()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "failed to open upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, "failed to read upload")
		return
	}

	rec, err := apiCfg.Analyzer.AnalyzeDocument(c.Request.Context(), mime, data)
	if errors.Is(err, analysis.ErrExtraction) {
		respondWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		c.Error(err)
		respondWithError(c, http.StatusInternalServerError, "failed to analyze resume")
		return
	}

	saved, err := apiCfg.Store.SaveResume(c.Request.Context(), fh.Filename, rec)
	if err != nil {
		c.Error(err)
		respondWithError(c, http.StatusInternalServerError, "failed to save resume")
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (apiCfg *apiConfig) handlerListResumes(c *gin.Context) {
	resumes, err := apiCfg.Store.ListResumes(c.Request.Context())
	if err != nil {
		c.Error(err)
		respondWithError(c, http.StatusInternalServerError, "failed to list resumes")
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (apiCfg *apiConfig) handlerGetResume(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "invalid resume id")
		return
	}
	resume, err := apiCfg.Store.GetResume(c.Request.Context(), id)
	if errors.Is(err, ErrResumeNotFound) {
		respondWithError(c, http.StatusNotFound, "resume not found")
		return
	}
	if err != nil {
		c.Error(err)
		respondWithError(c, http.StatusInternalServerError, "failed to get resume")
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (apiCfg *apiConfig) handlerHealth(c *gin.Context) {
	if err := apiCfg.Store.Ping(c.Request.Context()); err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "ERROR",
			"message": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	ai := "Not Configured"
	if apiCfg.AIConfigured {
		ai = "Configured"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":         "OK",
		"message":        "Resume Analyzer API is running",
		"database":       "Connected",
		"ai_integration": ai,
		"timestamp":      time.Now().UTC(),
	})
}

func respondWithError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-Id", reqID)

		c.Next()

		status := c.Writer.Status()
		entry := l.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
