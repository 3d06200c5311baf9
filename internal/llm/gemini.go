package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"plantdefender/internal/config"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg config.AIConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ai.apikey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (c *GeminiClient) Send(ctx context.Context, req Request) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(buildParts(req), genai.RoleUser),
	}

	var generateCfg *genai.GenerateContentConfig
	if req.System != "" {
		generateCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, generateCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return answerText(resp)
}

// answerText returns the first candidate's text as is; judging its content
// is left to the caller. Only a response without candidates is an error.
func answerText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

func buildParts(req Request) []*genai.Part {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if len(req.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.MIMEType))
	}
	return parts
}
