package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// GroqClient calls the chat completions endpoint of an OpenAI-compatible provider.
type GroqClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	defaults    Options
	rateLimiter *rate.Limiter
	cache       *Cache
}

// NewGroqClient builds a client from the AI_* configuration.
func NewGroqClient(cfg *config.Config) *GroqClient {
	limit := rate.Inf
	if cfg.AIRatePerSecond > 0 {
		limit = rate.Limit(cfg.AIRatePerSecond)
	}

	return &GroqClient{
		httpClient: &http.Client{Timeout: cfg.AITimeout},
		baseURL:    cfg.AIBaseURL,
		apiKey:     cfg.AIAPIKey,
		defaults: Options{
			Model:       cfg.AIModel,
			Temperature: Float(cfg.AITemperature),
			MaxTokens:   cfg.AIMaxTokens,
			TopP:        Float(cfg.AITopP),
		},
		rateLimiter: rate.NewLimiter(limit, cfg.AIRateBurst),
		cache:       NewCache(cfg.AICacheSize, cfg.AICacheTTL),
	}
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
	Stop        []string  `json:"stop,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

type chatCompletionChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type chatCompletionResponse struct {
	Choices []chatCompletionChoice `json:"choices"`
	Error   *apiError              `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (c *GroqClient) buildBody(req Request, stream bool) (chatCompletionRequest, error) {
	if len(req.Messages) == 0 {
		return chatCompletionRequest{}, ErrNoMessages
	}
	opts := req.Options.WithDefaults(c.defaults)
	body := chatCompletionRequest{
		Model:     opts.Model,
		Messages:  req.Messages,
		MaxTokens: opts.MaxTokens,
		Stop:      opts.Stop,
		Stream:    stream,
	}
	if opts.Temperature != nil {
		body.Temperature = *opts.Temperature
	}
	if opts.TopP != nil {
		body.TopP = *opts.TopP
	}
	return body, nil
}

// do sends the request and returns the response when the status is 2xx.
func (c *GroqClient) do(ctx context.Context, body chatCompletionRequest) (*http.Response, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode chat completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "could not create chat completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body.Stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "could not send chat completion request")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		defer res.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
		var decoded chatCompletionResponse
		if json.Unmarshal(raw, &decoded) == nil && decoded.Error != nil && decoded.Error.Message != "" {
			return nil, errors.Wrapf(ErrUpstream, "%s: %s", res.Status, decoded.Error.Message)
		}
		return nil, errors.Wrapf(ErrUpstream, "%s", res.Status)
	}
	return res, nil
}

// Generate returns the text of the first choice.
func (c *GroqClient) Generate(ctx context.Context, req Request) (string, error) {
	body, err := c.buildBody(req, false)
	if err != nil {
		return "", err
	}

	key := cacheKey(body)
	if text, ok := c.cache.Get(key); ok {
		customLog.Debugf("LLM cache hit for model %s", body.Model)
		return text, nil
	}

	res, err := c.do(ctx, body)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var decoded chatCompletionResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", errors.Wrap(err, "could not decode chat completion response")
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	text := decoded.Choices[0].Message.Content
	c.cache.Add(key, text)
	return text, nil
}

// Stream sends the request with stream=true and forwards every delta to onChunk.
func (c *GroqClient) Stream(ctx context.Context, req Request, onChunk func(chunk string) error) error {
	body, err := c.buildBody(req, true)
	if err != nil {
		return err
	}

	res, err := c.do(ctx, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return readEventStream(res.Body, onChunk)
}
