// Package gemini sends disaster scene uploads to a Gemini multimodal model.
//
// The client never returns an error. Every call produces an Outcome that
// says whether the model answered, failed, or was skipped because no API key
// is configured.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/mr1hm/mycelium/internal/models"
)

const (
	DefaultModel   = "gemini-2.0-flash-thinking-exp-1219"
	DefaultTimeout = 30 * time.Second

	instruction = "Analyze disaster. Return JSON with severity_score, risk_assessment, reasoning_log, and action_plan."
)

var ErrEmptyResponse = errors.New("gemini returned no text")

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Request struct {
	Image    []byte
	MimeType string
	Context  string
}

// Outcome is the result of one model call. Text holds the raw model output
// and is only set when Status is ok.
type Outcome struct {
	Status  models.AIStatus
	Text    string
	Err     error
	Latency time.Duration
}

func (o Outcome) OK() bool {
	return o.Status == models.AIStatusOK
}

func (o Outcome) ErrorString() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// generator is the slice of *genai.Models the client needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	gen     generator
	model   string
	timeout time.Duration
}

// New builds a client. With an empty API key the client is disabled and
// every Analyze call is skipped without network I/O.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := newClient(nil, cfg)
	if strings.TrimSpace(cfg.APIKey) == "" {
		return c, nil
	}

	cl, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.gen = cl.Models
	return c, nil
}

// Disabled returns a client that skips every call.
func Disabled() *Client {
	return newClient(nil, Config{})
}

func newClient(gen generator, cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		gen:     gen,
		model:   model,
		timeout: timeout,
	}
}

func (c *Client) Enabled() bool { return c.gen != nil }

func (c *Client) Model() string { return c.model }

func (c *Client) Analyze(ctx context.Context, req Request) Outcome {
	if c.gen == nil {
		return Outcome{Status: models.AIStatusSkipped}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts(buildParts(req), genai.RoleUser),
	}

	start := time.Now()
	resp, err := c.gen.GenerateContent(ctx, c.model, contents, nil)
	latency := time.Since(start)
	if err != nil {
		return Outcome{
			Status:  models.AIStatusFailed,
			Err:     fmt.Errorf("gemini generate content: %w", err),
			Latency: latency,
		}
	}

	text := firstText(resp)
	if text == "" {
		return Outcome{Status: models.AIStatusFailed, Err: ErrEmptyResponse, Latency: latency}
	}
	return Outcome{Status: models.AIStatusOK, Text: text, Latency: latency}
}

func buildParts(req Request) []*genai.Part {
	return []*genai.Part{
		genai.NewPartFromBytes(req.Image, req.MimeType),
		genai.NewPartFromText("Context: " + req.Context),
		genai.NewPartFromText(instruction),
	}
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p != nil && p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
