package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
Senior Backend Engineer
jane.doe@example.com | +1 555-123-4567 | linkedin.com/in/jane-doe-123

Experience
Acme Corp, 2019 - present`

func TestFallbackExtractsContactFields(t *testing.T) {
	rec := Fallback(sampleResume)

	require.NotNil(t, rec.Name)
	assert.Equal(t, "Jane Doe", *rec.Name)
	require.NotNil(t, rec.Email)
	assert.Equal(t, "jane.doe@example.com", *rec.Email)
	require.NotNil(t, rec.Phone)
	assert.Equal(t, "+1 555-123-4567", *rec.Phone)
	require.NotNil(t, rec.LinkedInURL)
	assert.Equal(t, "linkedin.com/in/jane-doe-123", *rec.LinkedInURL)
	assert.Nil(t, rec.PortfolioURL)
	assert.True(t, rec.Degraded)
}

func TestFallbackPlaceholders(t *testing.T) {
	rec := Fallback("")

	assert.Nil(t, rec.Name)
	assert.Nil(t, rec.Email)
	assert.Nil(t, rec.Phone)
	assert.Nil(t, rec.LinkedInURL)
	require.NotNil(t, rec.ResumeRating)
	assert.Equal(t, Rating(7), *rec.ResumeRating)
	assert.Len(t, rec.WorkExperience, 1)
	assert.Len(t, rec.Education, 1)
	assert.NotEmpty(t, rec.TechnicalSkills)
	assert.NotEmpty(t, rec.SoftSkills)
	assert.NotEmpty(t, rec.UpskillSuggestions)
	assert.NotNil(t, rec.ImprovementAreas)
	assert.NotNil(t, rec.Projects)
	assert.Empty(t, rec.Projects)
	assert.NotNil(t, rec.Certifications)
	assert.Empty(t, rec.Certifications)
}

func TestFallbackIsDeterministic(t *testing.T) {
	assert.Equal(t, Fallback(sampleResume), Fallback(sampleResume))
}

func TestFallbackEncodesEveryListAsArray(t *testing.T) {
	assertListsAreArrays(t, Fallback(""))
}

// assertListsAreArrays checks the JSON encoding of rec: every list field must be an array.
func assertListsAreArrays(t *testing.T, rec *Record) {
	t.Helper()

	body, err := json.Marshal(rec)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))

	for _, field := range []string{
		"work_experience", "education", "technical_skills", "soft_skills",
		"projects", "certifications", "upskill_suggestions",
	} {
		_, ok := m[field].([]any)
		assert.True(t, ok, "%s should be an array, got %#v", field, m[field])
	}
}
