package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"commitlens/internal/apperr"
	"commitlens/internal/config"
	"commitlens/internal/logger"
)

// Summarizer produces a single summary for a prompt pair. One call maps to
// one inference request; there is no streaming, chunking or caching.
type Summarizer interface {
	Summarize(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAI is a minimal client for the chat-completions API
type OpenAI struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewOpenAI creates an OpenAI summarizer
func NewOpenAI(cfg config.ModelConfig, log *logger.Logger) *OpenAI {
	return &OpenAI{
		apiKey:     cfg.APIKey,
		model:      cfg.Engine,
		baseURL:    cfg.APIURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		log:        log,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Summarize sends the system + user prompts as one inference request and
// returns the text content of the first choice.
func (o *OpenAI) Summarize(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperr.Internal(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Internal(err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", apperr.Model(err, "model request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.Model(err, "reading model response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errorFromStatus(resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", apperr.Model(err, "parsing model response")
	}

	if len(parsed.Choices) == 0 {
		return "", apperr.New(apperr.KindModel, "model returned no choices")
	}

	o.log.Debugf("model produced %d characters", len(parsed.Choices[0].Message.Content))
	return parsed.Choices[0].Message.Content, nil
}

// errorFromStatus maps the provider's failure signal onto the error taxonomy
func errorFromStatus(status int, body []byte) error {
	var parsed chatResponse
	_ = json.Unmarshal(body, &parsed)
	message := string(body)
	var code string
	if parsed.Error != nil {
		message = parsed.Error.Message
		code = parsed.Error.Code
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperr.Authentication("model: " + message)
	case status == http.StatusTooManyRequests:
		return apperr.RateLimited("model: " + message)
	case status == http.StatusRequestEntityTooLarge:
		return apperr.InputTooLarge("model: " + message)
	case status == http.StatusBadRequest && isContextLength(message, code):
		return apperr.InputTooLarge("model: " + message)
	default:
		return apperr.Newf(apperr.KindModel, "model responded with status %d: %s", status, message)
	}
}

func isContextLength(message, code string) bool {
	if code == "context_length_exceeded" {
		return true
	}
	lower := strings.ToLower(message)
	return strings.Contains(lower, "context length") || strings.Contains(lower, "maximum context")
}
