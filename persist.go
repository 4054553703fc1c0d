package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeanalyzer/internal/analysis"
	"github.com/muhammadolammi/resumeanalyzer/internal/database"
)

var ErrResumeNotFound = errors.New("resume not found")

// ResumeStore persists analyses. It assigns identity and upload time.
type ResumeStore interface {
	SaveResume(ctx context.Context, fileName string, rec *analysis.Record) (Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (Resume, error)
	ListResumes(ctx context.Context) ([]ResumeSummary, error)
	Ping(ctx context.Context) error
}

type dbStore struct {
	db *sql.DB
	q  *database.Queries
}

func NewDBStore(db *sql.DB) ResumeStore {
	return &dbStore{db: db, q: database.New(db)}
}

func (s *dbStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *dbStore) SaveResume(ctx context.Context, fileName string, rec *analysis.Record) (Resume, error) {
	params, err := createResumeParams(fileName, rec)
	if err != nil {
		return Resume{}, err
	}
	row, err := s.q.CreateResume(ctx, params)
	if err != nil {
		return Resume{}, fmt.Errorf("failed to save resume: %w", err)
	}
	return Resume{
		ID:         row.ID,
		FileName:   fileName,
		UploadedAt: row.UploadedAt,
		Record:     *rec,
	}, nil
}

func (s *dbStore) GetResume(ctx context.Context, id uuid.UUID) (Resume, error) {
	row, err := s.q.GetResume(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrResumeNotFound
	}
	if err != nil {
		return Resume{}, fmt.Errorf("failed to get resume %s: %w", id, err)
	}
	return resumeFromRow(row), nil
}

func (s *dbStore) ListResumes(ctx context.Context) ([]ResumeSummary, error) {
	rows, err := s.q.ListResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	out := make([]ResumeSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, ResumeSummary{
			ID:           r.ID,
			FileName:     r.FileName,
			Name:         fromNullString(r.Name),
			Email:        fromNullString(r.Email),
			ResumeRating: fromNullInt(r.ResumeRating),
			UploadedAt:   r.UploadedAt,
		})
	}
	return out, nil
}

func createResumeParams(fileName string, rec *analysis.Record) (database.CreateResumeParams, error) {
	p := database.CreateResumeParams{
		FileName:         fileName,
		Name:             toNullString(rec.Name),
		Email:            toNullString(rec.Email),
		Phone:            toNullString(rec.Phone),
		LinkedinUrl:      toNullString(rec.LinkedInURL),
		PortfolioUrl:     toNullString(rec.PortfolioURL),
		Summary:          toNullString(rec.Summary),
		ImprovementAreas: toNullString(rec.ImprovementAreas),
		Degraded:         rec.Degraded,
	}
	if rec.ResumeRating != nil {
		p.ResumeRating = sql.NullInt32{Int32: int32(*rec.ResumeRating), Valid: true}
	}

	fields := []struct {
		dst *json.RawMessage
		v   any
	}{
		{&p.WorkExperience, orEmpty(rec.WorkExperience)},
		{&p.Education, orEmpty(rec.Education)},
		{&p.TechnicalSkills, rec.TechnicalSkills},
		{&p.SoftSkills, rec.SoftSkills},
		{&p.Projects, orEmpty(rec.Projects)},
		{&p.Certifications, orEmpty(rec.Certifications)},
		{&p.UpskillSuggestions, rec.UpskillSuggestions},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.v)
		if err != nil {
			return p, fmt.Errorf("failed to encode resume field: %w", err)
		}
		*f.dst = b
	}
	return p, nil
}

func resumeFromRow(r database.Resume) Resume {
	rec := analysis.Record{
		Name:             fromNullString(r.Name),
		Email:            fromNullString(r.Email),
		Phone:            fromNullString(r.Phone),
		LinkedInURL:      fromNullString(r.LinkedinUrl),
		PortfolioURL:     fromNullString(r.PortfolioUrl),
		Summary:          fromNullString(r.Summary),
		ImprovementAreas: fromNullString(r.ImprovementAreas),
		Degraded:         r.Degraded,
	}
	if r.ResumeRating.Valid {
		rating := analysis.Rating(r.ResumeRating.Int32)
		rec.ResumeRating = &rating
	}
	rec.WorkExperience = decodeJSONArray[analysis.WorkExperience](r.WorkExperience)
	rec.Education = decodeJSONArray[analysis.Education](r.Education)
	rec.TechnicalSkills = decodeJSONArray[string](r.TechnicalSkills)
	rec.SoftSkills = decodeJSONArray[string](r.SoftSkills)
	rec.Projects = decodeJSONArray[analysis.Project](r.Projects)
	rec.Certifications = decodeJSONArray[analysis.Certification](r.Certifications)
	rec.UpskillSuggestions = decodeJSONArray[string](r.UpskillSuggestions)

	return Resume{
		ID:         r.ID,
		FileName:   r.FileName,
		UploadedAt: r.UploadedAt,
		Record:     rec,
	}
}

// decodeJSONArray reads a stored list column. The column may hold a JSON array, a JSON
// string that itself contains an array, NULL, or something unreadable; the last two
// decode to an empty list.
func decodeJSONArray[T any](raw []byte) []T {
	out := []T{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return out
		}
		return decodeJSONArray[T]([]byte(inner))
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return out
	}
	return items
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func fromNullInt(n sql.NullInt32) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}
