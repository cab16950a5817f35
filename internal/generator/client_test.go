package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BerylCAtieno/persona-generator/internal/questionnaire"
	"github.com/BerylCAtieno/persona-generator/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type scriptedReply struct {
	text string
	err  error
}

// scriptedModel returns its replies in order; the last reply repeats.
type scriptedModel struct {
	replies []scriptedReply
	calls   int
	prompts []string
}

func (m *scriptedModel) generateText(_ context.Context, promptText string) (string, error) {
	m.prompts = append(m.prompts, promptText)
	i := m.calls
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	m.calls++
	r := m.replies[i]
	return r.text, r.err
}

func newTestClient(model *scriptedModel, maxAttempts int, sleeps *[]time.Duration) *Client {
	return &Client{
		model:       model,
		maxAttempts: maxAttempts,
		sleep: func(d time.Duration) {
			if sleeps != nil {
				*sleeps = append(*sleeps, d)
			}
		},
	}
}

func testDataset() *questionnaire.Dataset {
	return &questionnaire.Dataset{
		ClientInfo: questionnaire.ClientInfo{"Client Name": "Acme"},
		AllQA: []questionnaire.QA{
			{Section: "Persona", Question: "Who?", Answer: "Engineers"},
		},
	}
}

const goodReply = "```json\n{\"personas\": [{\"persona_name\": \"Busy Ben\"}]}\n```"

func TestGeneratePersonas_Success(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{{text: goodReply}}}
	client := newTestClient(model, 3, nil)

	personas, err := client.GeneratePersonas(context.Background(), testDataset())
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, "Busy Ben", personas[0].Name)

	assert.Equal(t, 1, model.calls)
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "CLIENT: Acme")
	assert.Contains(t, model.prompts[0], "Q: Who?")
}

func TestGeneratePersonas_RetriesTransientFailures(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{err: errors.New("429 rate limit exceeded")},
		{err: errors.New("503 service unavailable")},
		{err: errors.New("request timeout")},
		{text: goodReply},
	}}
	var sleeps []time.Duration
	client := newTestClient(model, 4, &sleeps)

	personas, err := client.GeneratePersonas(context.Background(), testDataset())
	require.NoError(t, err)
	require.Len(t, personas, 1)

	assert.Equal(t, 4, model.calls)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, sleeps)
}

func TestGeneratePersonas_NonRetryableFailsImmediately(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{err: errors.New("API key not valid")},
	}}
	var sleeps []time.Duration
	client := newTestClient(model, 3, &sleeps)

	_, err := client.GeneratePersonas(context.Background(), testDataset())
	require.Error(t, err)

	assert.Equal(t, 1, model.calls)
	assert.Empty(t, sleeps)

	var retryErr *retry.Error
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, 1, retryErr.Attempts)
}

func TestGeneratePersonas_EmptyResponseIsRetried(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{text: "   \n"},
		{text: goodReply},
	}}
	var sleeps []time.Duration
	client := newTestClient(model, 3, &sleeps)

	personas, err := client.GeneratePersonas(context.Background(), testDataset())
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, 2, model.calls)
	assert.Len(t, sleeps, 1)
}

func TestGeneratePersonas_ParseErrorRetriedThenSucceeds(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{
		{text: "I cannot answer that."},
		{text: goodReply},
	}}
	var sleeps []time.Duration
	client := newTestClient(model, 3, &sleeps)

	personas, err := client.GeneratePersonas(context.Background(), testDataset())
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, 2, model.calls)
}

func TestGeneratePersonas_FinalAttemptFallsBackToSalvage(t *testing.T) {
	// Broken prose around an object the strict path chokes on, every time.
	salvageable := `personas below {"personas": [{"persona_name": "Ann"}]} trailing ] brace`
	model := &scriptedModel{replies: []scriptedReply{{text: salvageable}}}
	client := newTestClient(model, 3, nil)

	personas, err := client.GeneratePersonas(context.Background(), testDataset())
	require.NoError(t, err)
	require.Len(t, personas, 1)
	assert.Equal(t, "Ann", personas[0].Name)
	assert.Equal(t, 3, model.calls)
}

func TestGeneratePersonas_TotalParseFailureYieldsEmptyList(t *testing.T) {
	model := &scriptedModel{replies: []scriptedReply{{text: "no json here"}}}
	client := newTestClient(model, 3, nil)

	personas, err := client.GeneratePersonas(context.Background(), testDataset())
	require.NoError(t, err)
	assert.Empty(t, personas)
	assert.Equal(t, 3, model.calls)
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", errors.New("Rate Limit exceeded"), true},
		{"quota", errors.New("quota exhausted for project"), true},
		{"timeout", errors.New("context deadline: timeout"), true},
		{"429 text", errors.New("server returned 429"), true},
		{"500 text", errors.New("HTTP 500 internal"), true},
		{"502 text", errors.New("bad gateway 502"), true},
		{"503 text", errors.New("503 unavailable"), true},
		{"empty response", ErrEmptyResponse, true},
		{"googleapi 429", &googleapi.Error{Code: 429}, true},
		{"googleapi 503", &googleapi.Error{Code: 503}, true},
		{"googleapi 400", &googleapi.Error{Code: 400, Message: "bad request"}, false},
		{"auth", errors.New("API key not valid"), false},
		{"generic", errors.New("something else"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsRetryable(tc.err))
		})
	}
}

func TestHint(t *testing.T) {
	assert.Contains(t, Hint(errors.New("429 rate limit")), "Rate limit")
	assert.Contains(t, Hint(errors.New("request timeout")), "timed out")
	assert.Contains(t, Hint(errors.New("API key not valid")), "GEMINI_API_KEY")
	assert.Contains(t, Hint(errors.New("weird failure")), "generation failed")
	assert.Empty(t, Hint(nil))
}
