// Package answer talks to an OpenAI-compatible chat completions endpoint.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultURL             = "https://api.openai.com/v1/chat/completions"
	DefaultModel           = "gpt-3.5-turbo"
	DefaultMaxTokens       = 1000
	DefaultTemperature     = 0.7
	DefaultMaxContentChars = 12000

	TruncationNotice = "\n\n[Document truncated due to length...]"
	EmptyAnswer      = "AI returned an empty response. Please try again."

	systemPrompt = `You are a helpful document assistant. You answer questions about documents provided by the user.
Be concise but thorough. If the answer is not in the document, say so clearly.
Format your responses using markdown when appropriate (lists, code blocks, etc.).`
)

var (
	ErrInvalidCredential = errors.New("invalid API key")
	ErrNoChoices         = errors.New("AI returned no choices in the response.")
)

// Error is a failed remote call. Message is what the remote said, or a generic status line.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

type Config struct {
	URL             string
	Model           string
	MaxTokens       int
	Temperature     float64
	MaxContentChars int
	// MaxContentTokens caps the document by tokens as well. Zero disables it.
	MaxContentTokens int
	Timeout          time.Duration
	Tokenizer        Tokenizer
}

// Request is one question about one document.
type Request struct {
	Credential   string
	DocumentName string
	Content      string
	Question     string
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.MaxContentChars <= 0 {
		cfg.MaxContentChars = DefaultMaxContentChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.Named("answer"),
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Answer asks the remote model the question and returns the trimmed answer text.
func (c *Client) Answer(ctx context.Context, req Request) (string, error) {
	content := c.fit(req.Content)
	temperature := c.cfg.Temperature
	body := completionRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Document: \"%s\"\n\nContent:\n%s\n\nQuestion: %s", req.DocumentName, content, req.Question)},
		},
		Temperature: &temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	start := time.Now()
	status, data, err := c.post(ctx, req.Credential, body)
	if err != nil {
		return "", err
	}

	var resp completionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		if status/100 != 2 {
			return "", statusError(status, "")
		}
		return "", &Error{StatusCode: status, Message: "AI returned a malformed response.", Err: err}
	}
	if status/100 != 2 || resp.Error != nil {
		msg := ""
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", statusError(status, msg)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		text = EmptyAnswer
	}
	c.logger.Debug("answer received",
		zap.String("completion_id", resp.ID),
		zap.Duration("took", time.Since(start)),
		zap.Int("answer_len", len(text)),
	)
	return text, nil
}

// ValidateCredential sends a minimal request. Only a 401 marks the key invalid; rate limits
// and other statuses count as valid.
func (c *Client) ValidateCredential(ctx context.Context, credential string) (bool, error) {
	body := completionRequest{
		Model:     c.cfg.Model,
		Messages:  []message{{Role: "user", Content: "Hi"}},
		MaxTokens: 5,
	}
	status, _, err := c.post(ctx, credential, body)
	if err != nil {
		return false, err
	}
	return status != http.StatusUnauthorized, nil
}

func (c *Client) post(ctx context.Context, credential string, body completionRequest) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, fmt.Errorf("encode completion request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+credential)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("call completion endpoint: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("read completion response: %w", err)
	}
	return res.StatusCode, data, nil
}

func statusError(status int, msg string) *Error {
	if msg == "" {
		msg = fmt.Sprintf("API Error: %d", status)
	}
	e := &Error{StatusCode: status, Message: msg}
	if status == http.StatusUnauthorized {
		e.Err = ErrInvalidCredential
	}
	return e
}
