package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID                 uuid.UUID
	FileName           string
	Name               sql.NullString
	Email              sql.NullString
	Phone              sql.NullString
	LinkedinUrl        sql.NullString
	PortfolioUrl       sql.NullString
	Summary            sql.NullString
	WorkExperience     []byte
	Education          []byte
	TechnicalSkills    []byte
	SoftSkills         []byte
	Projects           []byte
	Certifications     []byte
	ResumeRating       sql.NullInt32
	ImprovementAreas   sql.NullString
	UpskillSuggestions []byte
	Degraded           bool
	UploadedAt         time.Time
}
