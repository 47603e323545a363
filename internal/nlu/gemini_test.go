package nlu

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-dev/finsight/internal/model"
)

func TestCleanModelJSON(t *testing.T) {
	want := `{"intent":"settlement","confidence":0.85}`

	tests := []struct {
		name string
		raw  string
	}{
		{"raw json", want},
		{"surrounding whitespace", "\n  " + want + "  \n"},
		{"json fence", "```json\n" + want + "\n```"},
		{"bare fence", "```\n" + want + "\n```"},
		{"prose around object", "Sure, here you go: " + want + " Hope that helps!"},
		{"fence plus prose", "```json\n" + want + "\n```\nLet me know if you need more."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cleaned := cleanModelJSON(tc.raw)
			assert.Equal(t, want, cleaned)

			var res Result
			require.NoError(t, json.Unmarshal([]byte(cleaned), &res))
			assert.Equal(t, "settlement", res.Intent)
			assert.Equal(t, 0.85, res.Confidence)
		})
	}
}

func TestCleanModelJSON_NoObject(t *testing.T) {
	got := cleanModelJSON("I could not classify that query.")
	assert.Equal(t, "I could not classify that query.", got)
}

func TestBuildPrompt(t *testing.T) {
	taxonomy := []model.IntentCategory{model.IntentSettlement, model.IntentSummary}
	prompt := buildPrompt("who owes me money", taxonomy)

	assert.Contains(t, prompt, "- settlement\n")
	assert.Contains(t, prompt, "- summary\n")
	assert.Contains(t, prompt, "Query: who owes me money")
	assert.Contains(t, prompt, "STRICT JSON")
	assert.True(t, strings.Contains(prompt, "needs_clarification"))
}

func TestResultJSONContract(t *testing.T) {
	raw := `{
		"intent": "spending_analysis",
		"confidence": 0.72,
		"entities": {"month": "march"},
		"needs_clarification": false,
		"suggested_query": "how much did I spend in march"
	}`

	var res Result
	require.NoError(t, json.Unmarshal([]byte(raw), &res))
	assert.Equal(t, "spending_analysis", res.Intent)
	assert.Equal(t, 0.72, res.Confidence)
	assert.Equal(t, "march", res.Entities["month"])
	assert.False(t, res.NeedsClarification)
	assert.Equal(t, "how much did I spend in march", res.SuggestedQuery)
}
