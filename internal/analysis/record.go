package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type WorkExperience struct {
	Role        FlexString `json:"role"`
	Company     FlexString `json:"company"`
	Duration    FlexString `json:"duration"`
	Description StringList `json:"description"`
}

type Education struct {
	Degree         FlexString `json:"degree"`
	Institution    FlexString `json:"institution"`
	GraduationYear FlexString `json:"graduation_year"`
}

type Project struct {
	Name         FlexString `json:"name"`
	Description  FlexString `json:"description"`
	Technologies StringList `json:"technologies"`
}

type Certification struct {
	Name   FlexString `json:"name"`
	Issuer FlexString `json:"issuer"`
	Year   FlexString `json:"year"`
}

// Record is the structured analysis of one resume. Nullable scalars are pointers and
// encode as null; list fields always encode as arrays once the record has been finalized.
type Record struct {
	Name               *string          `json:"name"`
	Email              *string          `json:"email"`
	Phone              *string          `json:"phone"`
	LinkedInURL        *string          `json:"linkedin_url"`
	PortfolioURL       *string          `json:"portfolio_url"`
	Summary            *string          `json:"summary"`
	WorkExperience     []WorkExperience `json:"work_experience"`
	Education          []Education      `json:"education"`
	TechnicalSkills    StringList       `json:"technical_skills"`
	SoftSkills         StringList       `json:"soft_skills"`
	Projects           []Project        `json:"projects"`
	Certifications     []Certification  `json:"certifications"`
	ResumeRating       *Rating          `json:"resume_rating"`
	ImprovementAreas   *string          `json:"improvement_areas"`
	UpskillSuggestions StringList       `json:"upskill_suggestions"`

	// Degraded is set when the record came from the heuristic fallback.
	Degraded       bool   `json:"-"`
	FallbackReason string `json:"-"`
}

// FlexString holds a free-text field. Models write years and counts as numbers, so
// any JSON scalar is kept as its literal text and null decodes to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	switch {
	case bytes.Equal(raw, []byte("null")):
		*s = ""
	case len(raw) > 0 && raw[0] == '"':
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	default:
		*s = FlexString(raw)
	}
	return nil
}

func (s *FlexString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

// StringList decodes from a JSON array, a single value or null. Scalar items are kept
// as text; null, object and array items are dropped.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	out := StringList{}
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")) || raw[0] == '{':
	case raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		for _, item := range items {
			if s, ok := scalarText(item); ok {
				out = append(out, s)
			}
		}
	default:
		if s, ok := scalarText(raw); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || raw[0] == '{' || raw[0] == '[' {
		return "", false
	}
	var s FlexString
	if err := s.UnmarshalJSON(raw); err != nil {
		return "", false
	}
	return string(s), true
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

const (
	MinRating = 1
	MaxRating = 10
)

// Rating is the 1-10 resume score. Models sometimes answer "8", "8/10" or 7.5,
// all of which decode to an integer.
type Rating int

func (r *Rating) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	num := raw
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
		num = strings.TrimSpace(s)
		if i := strings.Index(num, "/"); i >= 0 {
			num = strings.TrimSpace(num[:i])
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("resume_rating %q is not a number", raw)
	}
	*r = Rating(math.Round(f))
	return nil
}

// parseRating decodes a rating, treating anything unparsable as absent.
func parseRating(raw json.RawMessage) *Rating {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var r Rating
	if err := r.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &r
}

func (r Rating) clamp() Rating {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// finalize returns a copy of rec that satisfies the record invariants: every list field
// is non-nil and the rating, when present, lies in [MinRating, MaxRating].
func finalize(rec Record) *Record {
	out := rec
	out.WorkExperience = make([]WorkExperience, 0, len(rec.WorkExperience))
	for _, w := range rec.WorkExperience {
		w.Description = nonNil(w.Description)
		out.WorkExperience = append(out.WorkExperience, w)
	}
	out.Education = append(make([]Education, 0, len(rec.Education)), rec.Education...)
	out.Projects = make([]Project, 0, len(rec.Projects))
	for _, p := range rec.Projects {
		p.Technologies = nonNil(p.Technologies)
		out.Projects = append(out.Projects, p)
	}
	out.Certifications = append(make([]Certification, 0, len(rec.Certifications)), rec.Certifications...)
	out.TechnicalSkills = nonNil(rec.TechnicalSkills)
	out.SoftSkills = nonNil(rec.SoftSkills)
	out.UpskillSuggestions = nonNil(rec.UpskillSuggestions)
	if rec.ResumeRating != nil {
		r := rec.ResumeRating.clamp()
		out.ResumeRating = &r
	}
	return &out
}

func nonNil(l StringList) StringList {
	return append(make(StringList, 0, len(l)), l...)
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
