package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino/schema"

	"github.com/tikona/stockchat/internal/config"
)

const deepseekProviderName = "DeepSeek"

// DeepSeekClient drives the DeepSeek chat endpoint via the eino chat model
// component.
type DeepSeekClient struct {
	model *deepseek.ChatModel
}

func NewDeepSeekClient(ctx context.Context, cfg *config.Config) (*DeepSeekClient, error) {
	if cfg.DeepSeekAPIKey == "" {
		return &DeepSeekClient{}, nil
	}

	chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:    cfg.DeepSeekAPIKey,
		Model:     cfg.DeepSeekModel,
		MaxTokens: 2048,
	})
	if err != nil {
		return nil, fmt.Errorf("init deepseek chat model: %w", err)
	}

	return &DeepSeekClient{model: chatModel}, nil
}

func (dc *DeepSeekClient) Name() string {
	return "deepseek"
}

func (dc *DeepSeekClient) Generate(ctx context.Context, prompt string) (string, error) {
	if dc.model == nil {
		return "", &CredentialError{Provider: deepseekProviderName, EnvVar: "DEEPSEEK_API_KEY"}
	}

	msg, err := dc.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", &TransportError{Provider: deepseekProviderName, Err: err}
	}
	if msg == nil || msg.Content == "" {
		return "", &MalformedError{Provider: deepseekProviderName}
	}

	return msg.Content, nil
}
