package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// OllamaAdapter implements the Adapter interface for models served by a
// local Ollama instance. Ollama exposes an OpenAI-compatible API, so no
// API key is required.
type OllamaAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// ollamaRequest represents the OpenAI-compatible request format.
type ollamaRequest struct {
	Model       string          `json:"model"`
	Messages    []ollamaMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream"`
}

// ollamaMessage represents a chat message.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaResponse represents the OpenAI-compatible response format.
type ollamaResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewOllamaAdapter creates an adapter talking to a local Ollama server.
// An empty baseURL selects the default localhost endpoint.
func NewOllamaAdapter(baseURL string) *OllamaAdapter {
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	return &OllamaAdapter{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Name returns the adapter identifier.
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Models returns the list of commonly pulled Ollama models. The server
// accepts any locally available model name.
func (a *OllamaAdapter) Models() []string {
	return []string{
		"mistral",
		"llama3.1",
		"qwen2.5-coder",
	}
}

// Generate sends the schema instruction and question to Ollama with
// deterministic sampling.
func (a *OllamaAdapter) Generate(ctx context.Context, model string, system string, user string) (*Response, error) {
	reqBody := ollamaRequest{
		Model: model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   1024,
		Temperature: 0,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Temporary: true, Err: fmt.Errorf("ollama request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var ollamaResp ollamaResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if ollamaResp.Error != nil {
		return nil, &ProviderError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("ollama error: %s (type: %s)", ollamaResp.Error.Message, ollamaResp.Error.Type),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	if len(ollamaResp.Choices) == 0 {
		return nil, fmt.Errorf("ollama returned no choices")
	}

	return &Response{
		Content: ollamaResp.Choices[0].Message.Content,
		Adapter: a.Name(),
		Model:   model,
	}, nil
}
