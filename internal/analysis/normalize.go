package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	reOpenFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	reCloseFence = regexp.MustCompile("\\s*```\\s*$")
)

// CleanJSON trims the reply and removes a surrounding markdown code fence,
// with or without a language tag.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```") {
		clean = reOpenFence.ReplaceAllString(clean, "")
		clean = reCloseFence.ReplaceAllString(clean, "")
	}
	return strings.TrimSpace(clean)
}

// Normalize locates the JSON object inside a model reply and decodes it. It performs no
// field-level validation; the caller decides what to do with a failure.
func Normalize(raw string) (*Record, error) {
	clean := CleanJSON(raw)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end < start {
		return nil, ErrNoJSONFound
	}

	var wire wireRecord
	if err := json.Unmarshal([]byte(clean[start:end+1]), &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	return wire.record(), nil
}

// wireRecord accepts any value type in every field, so only a syntax error can fail
// the decode. Unusable values become absent.
type wireRecord struct {
	Name               *FlexString     `json:"name"`
	Email              *FlexString     `json:"email"`
	Phone              *FlexString     `json:"phone"`
	LinkedInURL        *FlexString     `json:"linkedin_url"`
	PortfolioURL       *FlexString     `json:"portfolio_url"`
	Summary            *FlexString     `json:"summary"`
	WorkExperience     json.RawMessage `json:"work_experience"`
	Education          json.RawMessage `json:"education"`
	TechnicalSkills    StringList      `json:"technical_skills"`
	SoftSkills         StringList      `json:"soft_skills"`
	Projects           json.RawMessage `json:"projects"`
	Certifications     json.RawMessage `json:"certifications"`
	ResumeRating       json.RawMessage `json:"resume_rating"`
	ImprovementAreas   *FlexString     `json:"improvement_areas"`
	UpskillSuggestions StringList      `json:"upskill_suggestions"`
}

func (w wireRecord) record() *Record {
	return &Record{
		Name:               w.Name.ptr(),
		Email:              w.Email.ptr(),
		Phone:              w.Phone.ptr(),
		LinkedInURL:        w.LinkedInURL.ptr(),
		PortfolioURL:       w.PortfolioURL.ptr(),
		Summary:            w.Summary.ptr(),
		WorkExperience:     decodeItems[WorkExperience](w.WorkExperience),
		Education:          decodeItems[Education](w.Education),
		TechnicalSkills:    w.TechnicalSkills,
		SoftSkills:         w.SoftSkills,
		Projects:           decodeItems[Project](w.Projects),
		Certifications:     decodeItems[Certification](w.Certifications),
		ResumeRating:       parseRating(w.ResumeRating),
		ImprovementAreas:   w.ImprovementAreas.ptr(),
		UpskillSuggestions: w.UpskillSuggestions,
	}
}

// decodeItems reads a list of objects, skipping entries that are not objects.
// A value that is not an array yields no items.
func decodeItems[T any](raw json.RawMessage) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	items := make([]T, 0, len(elems))
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			continue
		}
		var item T
		if err := json.Unmarshal(e, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}
