package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"plantdefender/internal/config"
)

func TestBuildPartsPromptThenImage(t *testing.T) {
	parts := buildParts(Request{
		Prompt:   "analyze",
		Image:    []byte{0xff, 0xd8, 0xff},
		MIMEType: "image/jpeg",
	})
	require.Len(t, parts, 2)
	assert.Equal(t, "analyze", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, parts[1].InlineData.Data)
}

func TestBuildPartsWithoutImage(t *testing.T) {
	parts := buildParts(Request{Prompt: "hello"})
	require.Len(t, parts, 1)
	assert.Equal(t, "hello", parts[0].Text)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), config.AIConfig{Model: "gemini-2.5-flash"})
	assert.Error(t, err)
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Provider: "openai", APIKey: "k"})
	assert.ErrorContains(t, err, "unsupported ai provider")
}

func TestAnswerTextKeepsBlankAnswers(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText("  ", genai.RoleModel)},
		},
	}

	text, err := answerText(resp)
	require.NoError(t, err)
	assert.Equal(t, "  ", text)
}

func TestAnswerTextWithoutCandidates(t *testing.T) {
	_, err := answerText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = answerText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
