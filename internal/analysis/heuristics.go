package analysis

import "regexp"

type FieldKind string

const (
	FieldName     FieldKind = "name"
	FieldEmail    FieldKind = "email"
	FieldPhone    FieldKind = "phone"
	FieldLinkedIn FieldKind = "linkedin"
)

var fieldPatterns = map[FieldKind]*regexp.Regexp{
	FieldName:     regexp.MustCompile(`(?m)^([A-Z][a-z]+ [A-Z][a-z]+)`),
	FieldEmail:    regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	FieldPhone:    regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
	FieldLinkedIn: regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/in/[a-zA-Z0-9-]+`),
}

// ExtractField returns the first match of kind in text, in document order.
func ExtractField(text string, kind FieldKind) (string, bool) {
	re, ok := fieldPatterns[kind]
	if !ok {
		return "", false
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}
