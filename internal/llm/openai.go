package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"github.com/tikona/stockchat/internal/config"
)

const openaiProviderName = "OpenAI"

// OpenAIClient drives an OpenAI-compatible chat completion endpoint via the
// eino chat model component.
type OpenAIClient struct {
	model *openai.ChatModel
}

func NewOpenAIClient(ctx context.Context, cfg *config.Config) (*OpenAIClient, error) {
	// Without a key the client still constructs; Generate degrades to the
	// credential warning instead of attempting a call.
	if cfg.OpenAIAPIKey == "" {
		return &OpenAIClient{}, nil
	}

	maxTokens := 2048
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   cfg.OpenAIBaseURL,
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.OpenAIModel,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("init openai chat model: %w", err)
	}

	return &OpenAIClient{model: chatModel}, nil
}

func (oc *OpenAIClient) Name() string {
	return "openai"
}

func (oc *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if oc.model == nil {
		return "", &CredentialError{Provider: openaiProviderName, EnvVar: "OPENAI_API_KEY"}
	}

	msg, err := oc.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", &TransportError{Provider: openaiProviderName, Err: err}
	}
	if msg == nil || msg.Content == "" {
		return "", &MalformedError{Provider: openaiProviderName}
	}

	return msg.Content, nil
}
