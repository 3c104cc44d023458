package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIRecognizer asks an OpenAI vision model for the foods in an image.
type OpenAIRecognizer struct {
	client *openai.Client
	model  string
}

var _ FoodRecognizer = (*OpenAIRecognizer)(nil)

// NewOpenAIRecognizer creates a recognizer. An empty baseURL uses the public
// API.
func NewOpenAIRecognizer(apiKey, model, baseURL string) *OpenAIRecognizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIRecognizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIRecognizer) RecognizeFoods(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: FoodListPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
		MaxTokens: 200,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return []string{}, nil
	}
	return ParseFoodList(resp.Choices[0].Message.Content), nil
}
