package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisdomgraph/backend/internal/config"
)

func newFakeCompletionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Messages)

		if status != http.StatusOK {
			http.Error(w, "upstream unavailable", status)
			return
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestLLM(url string) *LLMService {
	return NewLLMService(&config.Config{
		OpenAIAPIKey: "test-key",
		OpenAIAPIURL: url,
		OpenAIModel:  "gpt-4o",
		AITimeout:    5 * time.Second,
	})
}

const mapJSON = `{"nodes":[{"id":"n1","label":"Basics"}],"edges":[{"from":"n1","to":"n2"}]}`

func TestGenerateMapParsesBareJSON(t *testing.T) {
	srv := newFakeCompletionServer(t, mapJSON, http.StatusOK)

	data, err := newTestLLM(srv.URL).GenerateMap("Go", "Beginner")
	require.NoError(t, err)
	assert.Contains(t, data, "nodes")
	assert.Contains(t, data, "edges")
}

func TestGenerateMapFencedEqualsBare(t *testing.T) {
	bareSrv := newFakeCompletionServer(t, mapJSON, http.StatusOK)
	fencedSrv := newFakeCompletionServer(t, "```json\n"+mapJSON+"\n```", http.StatusOK)

	bare, err := newTestLLM(bareSrv.URL).GenerateMap("Go", "Beginner")
	require.NoError(t, err)
	fenced, err := newTestLLM(fencedSrv.URL).GenerateMap("Go", "Beginner")
	require.NoError(t, err)

	assert.Equal(t, bare, fenced)
}

func TestGenerateMapUpstreamFailure(t *testing.T) {
	srv := newFakeCompletionServer(t, "", http.StatusServiceUnavailable)

	_, err := newTestLLM(srv.URL).GenerateMap("Go", "Beginner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate learning map")
	assert.Contains(t, err.Error(), "503")
}

func TestGenerateMapUnparseableResponse(t *testing.T) {
	srv := newFakeCompletionServer(t, "Sure! Here is your learning map:", http.StatusOK)

	_, err := newTestLLM(srv.URL).GenerateMap("Go", "Beginner")
	require.Error(t, err)
	assert.EqualError(t, err, "failed to parse AI response")
}

func TestGenerateMapEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	_, err := newTestLLM(srv.URL).GenerateMap("Go", "Beginner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestExpandNodeReturnsSubtopics(t *testing.T) {
	srv := newFakeCompletionServer(t, `{"subtopics":[{"label":"Goroutines"},{"label":"Channels"},{"label":"Select"}]}`, http.StatusOK)

	subtopics, err := newTestLLM(srv.URL).ExpandNode("Concurrency", "Go", "Intermediate")
	require.NoError(t, err)
	assert.Len(t, subtopics, 3)
}

func TestExpandNodeMissingKeyYieldsEmptySlice(t *testing.T) {
	srv := newFakeCompletionServer(t, `{"topics":[]}`, http.StatusOK)

	subtopics, err := newTestLLM(srv.URL).ExpandNode("Concurrency", "Go", "Intermediate")
	require.NoError(t, err)
	assert.NotNil(t, subtopics)
	assert.Empty(t, subtopics)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"language tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"no closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"multiline body", "```json\n{\n  \"a\": 1\n}\n```", "{\n  \"a\": 1\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}
