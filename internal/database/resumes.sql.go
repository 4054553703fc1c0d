package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const createResume = `-- name: CreateResume :one
INSERT INTO resumes (
file_name, name, email, phone, linkedin_url, portfolio_url, summary,
work_experience, education, technical_skills, soft_skills, projects,
certifications, resume_rating, improvement_areas, upskill_suggestions, degraded)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id, uploaded_at
`

type CreateResumeParams struct {
	FileName           string
	Name               sql.NullString
	Email              sql.NullString
	Phone              sql.NullString
	LinkedinUrl        sql.NullString
	PortfolioUrl       sql.NullString
	Summary            sql.NullString
	WorkExperience     json.RawMessage
	Education          json.RawMessage
	TechnicalSkills    json.RawMessage
	SoftSkills         json.RawMessage
	Projects           json.RawMessage
	Certifications     json.RawMessage
	ResumeRating       sql.NullInt32
	ImprovementAreas   sql.NullString
	UpskillSuggestions json.RawMessage
	Degraded           bool
}

type CreateResumeRow struct {
	ID         uuid.UUID
	UploadedAt time.Time
}

func (q *Queries) CreateResume(ctx context.Context, arg CreateResumeParams) (CreateResumeRow, error) {
	row := q.db.QueryRowContext(ctx, createResume,
		arg.FileName,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.LinkedinUrl,
		arg.PortfolioUrl,
		arg.Summary,
		arg.WorkExperience,
		arg.Education,
		arg.TechnicalSkills,
		arg.SoftSkills,
		arg.Projects,
		arg.Certifications,
		arg.ResumeRating,
		arg.ImprovementAreas,
		arg.UpskillSuggestions,
		arg.Degraded,
	)
	var i CreateResumeRow
	err := row.Scan(&i.ID, &i.UploadedAt)
	return i, err
}

const getResume = `-- name: GetResume :one
SELECT id, file_name, name, email, phone, linkedin_url, portfolio_url, summary, work_experience, education, technical_skills, soft_skills, projects, certifications, resume_rating, improvement_areas, upskill_suggestions, degraded, uploaded_at FROM resumes WHERE id=$1
`

func (q *Queries) GetResume(ctx context.Context, id uuid.UUID) (Resume, error) {
	row := q.db.QueryRowContext(ctx, getResume, id)
	var i Resume
	err := row.Scan(
		&i.ID,
		&i.FileName,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.LinkedinUrl,
		&i.PortfolioUrl,
		&i.Summary,
		&i.WorkExperience,
		&i.Education,
		&i.TechnicalSkills,
		&i.SoftSkills,
		&i.Projects,
		&i.Certifications,
		&i.ResumeRating,
		&i.ImprovementAreas,
		&i.UpskillSuggestions,
		&i.Degraded,
		&i.UploadedAt,
	)
	return i, err
}

const listResumes = `-- name: ListResumes :many
SELECT id, file_name, name, email, resume_rating, uploaded_at FROM resumes ORDER BY uploaded_at DESC
`

type ListResumesRow struct {
	ID           uuid.UUID
	FileName     string
	Name         sql.NullString
	Email        sql.NullString
	ResumeRating sql.NullInt32
	UploadedAt   time.Time
}

func (q *Queries) ListResumes(ctx context.Context) ([]ListResumesRow, error) {
	rows, err := q.db.QueryContext(ctx, listResumes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListResumesRow
	for rows.Next() {
		var i ListResumesRow
		if err := rows.Scan(
			&i.ID,
			&i.FileName,
			&i.Name,
			&i.Email,
			&i.ResumeRating,
			&i.UploadedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
