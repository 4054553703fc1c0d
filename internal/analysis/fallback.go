package analysis

const fallbackRating Rating = 7

// Fallback builds a complete record from pattern matches plus fixed placeholder content.
// It is used whenever the model path cannot produce a record.
func Fallback(text string) *Record {
	return fallback(text, "")
}

func fallback(text, reason string) *Record {
	rating := fallbackRating
	return finalize(Record{
		Name:         optional(ExtractField(text, FieldName)),
		Email:        optional(ExtractField(text, FieldEmail)),
		Phone:        optional(ExtractField(text, FieldPhone)),
		LinkedInURL:  optional(ExtractField(text, FieldLinkedIn)),
		PortfolioURL: nil,
		Summary:      optional("Professional with demonstrated experience. AI analysis temporarily unavailable.", true),
		WorkExperience: []WorkExperience{{
			Role:        "Professional Role",
			Company:     "Previous Company",
			Duration:    "Recent Years",
			Description: StringList{"Contributed to various projects and initiatives"},
		}},
		Education: []Education{{
			Degree:         "Degree",
			Institution:    "Educational Institution",
			GraduationYear: "Recent",
		}},
		TechnicalSkills: StringList{"Communication", "Problem Solving", "Team Collaboration"},
		SoftSkills:      StringList{"Leadership", "Adaptability", "Critical Thinking"},
		// projects and certifications cannot be inferred from patterns
		Projects:           nil,
		Certifications:     nil,
		ResumeRating:       &rating,
		ImprovementAreas:   optional("AI analysis temporarily unavailable. Consider adding more quantifiable achievements and specific technical details.", true),
		UpskillSuggestions: StringList{"Industry-relevant certifications", "Modern technical skills", "Leadership development"},
		Degraded:           true,
		FallbackReason:     reason,
	})
}
