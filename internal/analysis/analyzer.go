package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Generator sends a prompt to a hosted text-generation model and returns its raw reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	Generator Generator
	Logger    logrus.FieldLogger
	// BackendTimeout bounds a single Generate call. Zero means DefaultBackendTimeout.
	BackendTimeout time.Duration
}

const DefaultBackendTimeout = 60 * time.Second

// Analyzer runs the extraction pipeline. It keeps no per-call state and is safe for
// concurrent use.
type Analyzer struct {
	generator Generator
	log       logrus.FieldLogger
	timeout   time.Duration
}

func New(cfg Config) *Analyzer {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.BackendTimeout <= 0 {
		cfg.BackendTimeout = DefaultBackendTimeout
	}
	return &Analyzer{
		generator: cfg.Generator,
		log:       cfg.Logger,
		timeout:   cfg.BackendTimeout,
	}
}

// Analyze sniffs the document format and analyzes it. See AnalyzeDocument.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) (*Record, error) {
	return a.AnalyzeDocument(ctx, "", data)
}

// AnalyzeDocument extracts the text of data and turns it into a Record. The only error
// it returns wraps ErrExtraction; every failure after extraction degrades to Fallback.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, mime string, data []byte) (*Record, error) {
	log := a.log.WithFields(logrus.Fields{"mime": mime, "size_bytes": len(data)})

	text, err := ExtractText(mime, data)
	if err != nil {
		log.WithError(err).Error("text extraction failed")
		return nil, err
	}
	log = log.WithField("text_len", len(text))
	log.Debug("text extracted")

	rec, err := a.analyzeText(ctx, text)
	if err != nil {
		log.WithError(err).Warn("falling back to heuristic analysis")
		return fallback(text, err.Error()), nil
	}

	log.WithFields(logrus.Fields{
		"name":         deref(rec.Name),
		"email":        deref(rec.Email),
		"rating":       ratingValue(rec.ResumeRating),
		"skills_count": len(rec.TechnicalSkills),
	}).Info("resume analysis completed")
	return rec, nil
}

// analyzeText is the model path: prompt, backend call, normalization.
func (a *Analyzer) analyzeText(ctx context.Context, text string) (*Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	if a.generator == nil {
		return nil, fmt.Errorf("%w: no generator configured", ErrBackend)
	}

	prompt := BuildPrompt(text)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	start := time.Now()
	reply, err := a.generator.Generate(callCtx, prompt)
	if err != nil {
		if errors.Is(err, ErrBackend) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	a.log.WithFields(logrus.Fields{
		"reply_len":  len(reply),
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("received model reply")

	rec, err := Normalize(reply)
	if err != nil {
		return nil, err
	}
	return finalize(*rec), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ratingValue(r *Rating) int {
	if r == nil {
		return 0
	}
	return int(*r)
}
