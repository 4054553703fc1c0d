package analysis

import "fmt"

// RecordSchema is the shape the model must answer with. Its keys are the Record JSON names
// and the column names the persistence layer uses.
const RecordSchema = `{
  "name": "string | null",
  "email": "string | null",
  "phone": "string | null",
  "linkedin_url": "string | null",
  "portfolio_url": "string | null",
  "summary": "string | null",
  "work_experience": [
    {
      "role": "string",
      "company": "string",
      "duration": "string",
      "description": ["string"]
    }
  ],
  "education": [
    {
      "degree": "string",
      "institution": "string",
      "graduation_year": "string"
    }
  ],
  "technical_skills": ["string"],
  "soft_skills": ["string"],
  "projects": [
    {
      "name": "string",
      "description": "string",
      "technologies": ["string"]
    }
  ],
  "certifications": [
    {
      "name": "string",
      "issuer": "string",
      "year": "string"
    }
  ],
  "resume_rating": "number (1-10 based on overall quality, completeness, and presentation)",
  "improvement_areas": "string (specific actionable advice)",
  "upskill_suggestions": ["string (relevant skills to learn based on career trajectory)"]
}`

const promptTemplate = `
You are an expert technical recruiter and career coach. Analyze the following resume text and extract the information into a valid JSON object. The JSON object must conform to the following structure, and all fields must be populated. Do not include any text or markdown formatting before or after the JSON object.

Resume Text:
"""
%s
"""

Please analyze this resume and return a JSON object with the following exact structure:

%s

Instructions:
- Extract information accurately from the resume text
- If information is not available, use null for strings and empty arrays for arrays
- Rate the resume from 1-10 as an integer considering factors like clarity, completeness, achievements quantification, and relevance
- Provide specific, actionable improvement suggestions
- Suggest relevant upskilling opportunities based on the person's background and current market trends
- Ensure the response is valid JSON only, no additional text

Return only the JSON object.
`

// BuildPrompt embeds the resume text verbatim in the analysis instructions.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text, RecordSchema)
}
