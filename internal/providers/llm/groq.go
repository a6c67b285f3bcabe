package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.groq.com/openai"
	completionPath = "/v1/chat/completions"

	// Fixed model parameters; the service does not expose tuning knobs.
	groqModel       = "llama3-8b-8192"
	groqTemperature = 0.4
	groqMaxTokens   = 1024
	groqTimeout     = 30 * time.Second
)

// Groq talks to Groq's OpenAI-compatible chat-completions endpoint.
type Groq struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

func NewGroq(apiKey string) *Groq {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Groq{
		baseURL:    defaultBaseURL,
		apiKey:     strings.TrimSpace(apiKey),
		timeout:    groqTimeout,
		httpClient: &http.Client{Transport: tr},
	}
}

// NewGroqWithHTTPClient is intended for tests; it avoids network access by
// using a custom RoundTripper.
func NewGroqWithHTTPClient(apiKey, baseURL string, httpClient *http.Client) *Groq {
	g := NewGroq(apiKey)
	if baseURL != "" {
		g.baseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		g.httpClient = httpClient
	}
	return g
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// HTTPError is a non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("completion upstream returned %d: %s", e.StatusCode, e.Body)
}

func (g *Groq) Complete(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: groqModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userQuery},
		},
		Temperature: groqTemperature,
		MaxTokens:   groqMaxTokens,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+completionPath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("empty upstream completion")
	}
	return out.Choices[0].Message.Content, nil
}
