package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wisdomgraph/backend/internal/config"
)

const generateSystemPrompt = `You are an expert learning path designer. Generate structured learning maps that help users explore complex subjects.
Return ONLY valid JSON without any markdown formatting, code blocks, or explanations.

Format your response as:
{
  "nodes": [
    {"id": "unique-id", "label": "Topic Name", "description": "Brief description", "resources": ["resource1", "resource2"]},
    ...
  ],
  "edges": [
    {"from": "node-id", "to": "node-id"},
    ...
  ]
}`

const generatePromptTemplate = `Create a %s-level learning map for: %q

Generate a comprehensive learning roadmap with:
- Main concepts and subtopics
- Logical learning progression
- Key areas to master
- Practical learning resources

Return ONLY the JSON object, no markdown or code blocks.`

const expandPromptTemplate = `Expand the topic %q in the context of learning %q at %s level.

Provide 3-6 subtopics with:
- Clear, specific labels
- Brief descriptions
- 2-3 learning resources each

Return ONLY JSON, no markdown:
{"subtopics": [...]}`

// LLMService wraps an OpenAI-compatible chat completion endpoint. Responses
// are requested as bare JSON; a wrapping markdown code fence is stripped
// before decoding. The decoded structure is trusted, not schema-validated.
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

func NewLLMService(cfg *config.Config) *LLMService {
	return &LLMService{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: cfg.OpenAIAPIURL,
		model:  cfg.OpenAIModel,
		client: &http.Client{Timeout: cfg.AITimeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateMap asks the model for a full learning map on topic at level and
// returns the decoded JSON object as-is.
func (s *LLMService) GenerateMap(topic, level string) (map[string]interface{}, error) {
	content, err := s.complete([]chatMessage{
		{Role: "system", Content: generateSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(generatePromptTemplate, level, topic)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate learning map: %w", err)
	}

	var mapData map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &mapData); err != nil {
		slog.Error("model returned unparseable JSON", "action", "generate_map", "error", err)
		return nil, errors.New("failed to parse AI response")
	}
	return mapData, nil
}

// ExpandNode asks the model for subtopics of one node and returns the
// subtopics array. An absent key yields an empty slice, not an error.
func (s *LLMService) ExpandNode(nodeLabel, topic, level string) ([]interface{}, error) {
	content, err := s.complete([]chatMessage{
		{Role: "user", Content: fmt.Sprintf(expandPromptTemplate, nodeLabel, topic, level)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to expand node: %w", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &data); err != nil {
		slog.Error("model returned unparseable JSON", "action", "expand_node", "error", err)
		return nil, errors.New("failed to parse AI response")
	}

	subtopics, ok := data["subtopics"].([]interface{})
	if !ok {
		return []interface{}{}, nil
	}
	return subtopics, nil
}

func (s *LLMService) complete(messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode chat completion response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripCodeFence removes a single wrapping markdown code fence. A fence is a
// line starting with three backticks, optionally followed by a language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
