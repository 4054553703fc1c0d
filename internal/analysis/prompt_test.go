package analysis

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptEmbedsTextVerbatim(t *testing.T) {
	text := "Jane Doe\n100% of deploys automated {and} \"quoted\""
	prompt := BuildPrompt(text)

	assert.Contains(t, prompt, "\"\"\"\n"+text+"\n\"\"\"")
	assert.Contains(t, prompt, RecordSchema)
	assert.Contains(t, prompt, "use null for strings and empty arrays for arrays")
	assert.Contains(t, prompt, "Rate the resume from 1-10")
	assert.Contains(t, prompt, "Return only the JSON object.")
	assert.Equal(t, prompt, BuildPrompt(text))
}

func TestRecordSchemaMatchesRecordFields(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(RecordSchema), &schema))

	body, err := json.Marshal(Fallback(""))
	require.NoError(t, err)
	var record map[string]any
	require.NoError(t, json.Unmarshal(body, &record))

	assert.ElementsMatch(t, keys(schema), keys(record))

	nested := map[string]any{
		"work_experience": WorkExperience{},
		"education":       Education{},
		"projects":        Project{},
		"certifications":  Certification{},
	}
	for field, zero := range nested {
		items, ok := schema[field].([]any)
		require.True(t, ok, field)
		require.Len(t, items, 1, field)

		b, err := json.Marshal(zero)
		require.NoError(t, err)
		var want map[string]any
		require.NoError(t, json.Unmarshal(b, &want))

		assert.ElementsMatch(t, keys(want), keys(items[0].(map[string]any)), field)
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestBuildPromptHasNoFormattingArtifacts(t *testing.T) {
	assert.False(t, strings.Contains(BuildPrompt("x"), "%!"))
}
