package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"carad/llm"
)

const maxDescriptionImages = 5

// RunDescription writes the listing text from the current field values, the
// saved vision payload and up to five photos. The reply is plain text, not
// JSON.
func RunDescription(ctx context.Context, imagesBase64 []string, classification, visionResult, fields map[string]any) (string, error) {
	payload := map[string]any{
		"classification": classification,
		"vision":         visionResult,
		"fields":         fields,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("description agent: %w", err)
	}
	prompt := descriptionPrompt + "\n\nДанные автомобиля (JSON):\n" + string(data)

	if len(imagesBase64) > maxDescriptionImages {
		imagesBase64 = imagesBase64[:maxDescriptionImages]
	}

	var text string
	if len(imagesBase64) > 0 {
		text, err = LLM.ChatVision(ctx, prompt, imagesBase64, llm.ChatOptions{MaxTokens: 2048})
	} else {
		text, err = LLM.Chat(ctx, prompt, llm.ChatOptions{MaxTokens: 2048})
	}
	if err != nil {
		return "", fmt.Errorf("description agent: %w", err)
	}
	return strings.TrimSpace(text), nil
}
