package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tikona/stockchat/internal/config"
)

const geminiProviderName = "Gemini"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// GeminiClient calls the generateContent endpoint with the whole prompt as
// a single user part, matching how the assistant assembles context into one
// text block.
type GeminiClient struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewGeminiClient(cfg *config.Config) *GeminiClient {
	client := resty.New()
	client.SetBaseURL(cfg.GeminiBaseURL)
	client.SetTimeout(30 * time.Second)

	return &GeminiClient{
		client: client,
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.GeminiModel,
	}
}

func (gc *GeminiClient) Name() string {
	return "gemini"
}

func (gc *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if gc.apiKey == "" {
		return "", &CredentialError{Provider: geminiProviderName, EnvVar: "GEMINI_API_KEY"}
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	resp, err := gc.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", gc.apiKey).
		SetBody(payload).
		Post(fmt.Sprintf("/%s:generateContent", gc.model))
	if err != nil {
		return "", &TransportError{Provider: geminiProviderName, Err: err}
	}

	if resp.StatusCode() != 200 {
		return "", &HTTPError{Provider: geminiProviderName, Status: resp.StatusCode(), Body: resp.String()}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", &MalformedError{Provider: geminiProviderName, Raw: resp.String()}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &MalformedError{Provider: geminiProviderName, Raw: resp.String()}
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
