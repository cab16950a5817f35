package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPersonas_JSONFence(t *testing.T) {
	raw := "```json\n{\"personas\": [{\"persona_name\": \"Busy Ben\"}]}\n```"

	personas, err := ExtractPersonas(raw)
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, "Busy Ben", personas[0].Name)
	assert.Empty(t, personas[0].Type)
	assert.Empty(t, personas[0].Goals)
}

func TestExtractPersonas_PlainFence(t *testing.T) {
	raw := "Here you go:\n```\n{\"personas\": [{\"persona_name\": \"Ann\"}]}\n```\nAnything else?"

	personas, err := ExtractPersonas(raw)
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, "Ann", personas[0].Name)
}

func TestExtractPersonas_LeadingProse(t *testing.T) {
	raw := `Sure! Based on the questionnaire: {"personas": [{"persona_name": "Ann"}]}`

	personas, err := ExtractPersonas(raw)
	require.NoError(t, err)
	require.Len(t, personas, 1)
}

func TestExtractPersonas_BareArray(t *testing.T) {
	raw := `[{"persona_name": "Ann"}, {"persona_name": "Bob"}]`

	personas, err := ExtractPersonas(raw)
	require.NoError(t, err)
	require.Len(t, personas, 2)
	assert.Equal(t, "Bob", personas[1].Name)
}

func TestExtractPersonas_TruncatedArray(t *testing.T) {
	// Output cut off mid-stream: the missing closers are appended.
	raw := `[{"persona_name": "Ann"}, {"persona_name": "Bob"`

	personas, err := ExtractPersonas(raw)
	require.NoError(t, err)
	require.Len(t, personas, 2)
	assert.Equal(t, "Bob", personas[1].Name)
}

func TestExtractPersonas_TruncatedEnvelope(t *testing.T) {
	raw := `{"personas": [{"persona_name": "Ann"}]`

	personas, err := ExtractPersonas(raw)
	require.NoError(t, err)
	require.Len(t, personas, 1)
}

func TestExtractPersonas_MissingPersonasKey(t *testing.T) {
	// An object without the key is zero personas, not a parse failure.
	personas, err := ExtractPersonas(`{"people": []}`)
	require.NoError(t, err)
	assert.Empty(t, personas)
}

func TestExtractPersonas_NoJSON(t *testing.T) {
	_, err := ExtractPersonas("I could not generate any personas, sorry.")
	assert.ErrorIs(t, err, ErrParse)
}

func TestExtractPersonas_InvalidJSON(t *testing.T) {
	_, err := ExtractPersonas(`{"personas": [}]`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestExtractPersonas_ScalarTopLevel(t *testing.T) {
	_, err := ExtractPersonas("```json\n42\n```")
	assert.ErrorIs(t, err, ErrParse)
}

func TestSalvagePersonas_PicksLongestObject(t *testing.T) {
	raw := `Notes: {"draft": true} and the real payload ` +
		`{"personas": [{"persona_name": "Ann", "persona_type": "Primary"}]} done.`

	personas := SalvagePersonas(raw)
	require.Len(t, personas, 1)
	assert.Equal(t, "Ann", personas[0].Name)
	assert.Equal(t, "Primary", personas[0].Type)
}

func TestSalvagePersonas_NothingToSalvage(t *testing.T) {
	assert.Empty(t, SalvagePersonas("no objects in here at all"))
}

func TestSalvagePersonas_UnparsableCandidate(t *testing.T) {
	assert.Empty(t, SalvagePersonas(`{"personas": [not json]}`))
}
