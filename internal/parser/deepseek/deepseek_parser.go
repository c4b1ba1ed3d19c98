package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"beanvault/internal/config"
	"beanvault/internal/extract"
	"beanvault/internal/parser"
	"beanvault/internal/port"
)

const (
	apiURL = "https://api.deepseek.com/v1/chat/completions"

	temperature = 0.1
	maxTokens   = 8100
)

func init() {
	parser.RegisterProvider("deepseek", func(cfg *config.ParserConfig) (port.PriceListParser, error) {
		return NewClient(cfg)
	})
}

// Client talks to the DeepSeek Chat Completions API. It implements
// port.PriceListParser, port.FlavorCategorizer and port.QueryGenerator.
type Client struct {
	apiKey        string
	model         string
	endpoint      string
	streaming     bool
	maxInputChars int
	client        *http.Client
}

// NewClient creates a DeepSeek client from a parser config. The API key is
// required; there is no built-in default.
func NewClient(cfg *config.ParserConfig) (*Client, error) {
	return newClient(cfg, apiURL)
}

// NewClientWithEndpoint creates a client pointing at a custom API endpoint (for testing).
func NewClientWithEndpoint(cfg *config.ParserConfig, endpoint string) (*Client, error) {
	return newClient(cfg, endpoint)
}

func newClient(cfg *config.ParserConfig, endpoint string) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("deepseek: API key is not configured")
	}
	model := cfg.DefaultModel
	if model == "" {
		model = "deepseek-chat"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 600 * time.Second
	}
	maxInput := cfg.MaxInputChars
	if maxInput == 0 {
		maxInput = 100000
	}
	return &Client{
		apiKey:        cfg.APIKey,
		model:         model,
		endpoint:      endpoint,
		streaming:     cfg.Streaming,
		maxInputChars: maxInput,
		client:        &http.Client{Timeout: timeout},
	}, nil
}

// Parse extracts structured bean records from raw price list text.
func (c *Client) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	text := truncateRunes(input.Text, c.maxInputChars)
	if len(text) < len(input.Text) {
		log.Printf("deepseek: input truncated from %d to %d bytes", len(input.Text), len(text))
	}

	prompt := parser.BuildPriceListPrompt(text, input.PageCount)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	pages, diag := parser.BeanSchema.ExtractAndNormalizePages(raw)
	if input.PageCount > 0 {
		pages = dropPhantomPages(pages, input.PageCount)
	}

	return &port.ParseOutput{
		Pages:      pages,
		ModelUsed:  c.model,
		PromptUsed: prompt,
		Diagnostic: diag,
	}, nil
}

// Categorize maps detailed flavor profiles onto the given categories.
func (c *Client) Categorize(ctx context.Context, profiles []port.FlavorProfile, categories []port.FlavorCategory) ([]port.FlavorAssignment, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	prompt := parser.BuildFlavorPrompt(profiles, categories)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	records, diag := parser.FlavorSchema.ExtractAndNormalize(raw)
	if !diag.OK {
		return nil, fmt.Errorf("deepseek: no usable JSON in categorization response (length %d)", diag.RawLength)
	}

	out := make([]port.FlavorAssignment, 0, len(records))
	for _, rec := range records {
		a := port.FlavorAssignment{
			Code:           stringField(rec, "code"),
			FlavorProfile:  stringField(rec, "flavor_profile"),
			FlavorCategory: stringField(rec, "flavor_category"),
		}
		if a.FlavorCategory == "" {
			a.FlavorCategory = parser.UncategorizedFlavor
		}
		out = append(out, a)
	}
	return out, nil
}

// GenerateQuery asks the model for a single SELECT statement answering the question.
func (c *Client) GenerateQuery(ctx context.Context, question string) (string, error) {
	prompt := parser.BuildQueryPrompt(question)
	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	span := extract.FirstJSONSpan(raw)
	if span == "" {
		return "", fmt.Errorf("deepseek: no JSON in query response (length %d)", len(raw))
	}

	var parsed struct {
		SQL string `json:"sql"`
	}
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling query response: %w", err)
	}
	if parsed.SQL == "" {
		return "", errors.New("deepseek: query response has no sql field")
	}
	return parsed.SQL, nil
}

// complete sends one user message and returns the assistant's full text,
// reassembling streamed fragments when streaming is enabled.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": temperature,
		"max_tokens":  maxTokens,
		"stream":      c.streaming,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling deepseek API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		baseErr := fmt.Errorf("deepseek API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return "", parser.NewRateLimitError("deepseek", baseErr, retryAfter)
		}
		return "", baseErr
	}

	if c.streaming {
		text, err := extract.AccumulateSSE(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading stream: %w", err)
		}
		return text, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("empty response from API: no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// apiResponse models the non-streaming chat completions response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// dropPhantomPages removes pages numbered beyond the source document.
func dropPhantomPages(pages []extract.Page, pageCount int) []extract.Page {
	kept := pages[:0]
	for _, p := range pages {
		if p.Number > pageCount {
			log.Printf("deepseek: dropping hallucinated page %d (document has %d pages)", p.Number, pageCount)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func stringField(rec extract.Record, name string) string {
	s, _ := rec[name].(string)
	return s
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
