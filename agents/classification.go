package agents

import (
	"context"
	"fmt"

	"carad/llm"
)

type ClassificationResult struct {
	Brand                 string `json:"brand"`
	Model                 string `json:"model"`
	BodyType              string `json:"body_type"`
	Color                 string `json:"color"`
	SteeringWheelPosition string `json:"steering_wheel_position"`
	Transmission          string `json:"transmission"`
	Confidence            struct {
		Category    string `json:"category"`
		Subcategory string `json:"subcategory"`
	} `json:"classification_confidence"`
	Status        string `json:"status"` // "ok" | "failed"
	FailureReason string `json:"failure_reason"`
}

// LowConfidence reports whether either confidence level came back low.
func (c *ClassificationResult) LowConfidence() bool {
	return c.Confidence.Category == "low" || c.Confidence.Subcategory == "low"
}

// RunClassification identifies the car on the photos: brand, model and the
// visually determinable identity fields.
func RunClassification(ctx context.Context, imagesBase64 []string) (*ClassificationResult, error) {
	text, err := LLM.ChatVision(ctx, classificationPrompt, imagesBase64, llm.ChatOptions{MaxTokens: 1024})
	if err != nil {
		return nil, fmt.Errorf("classification agent: %w", err)
	}
	var res ClassificationResult
	if err := llm.ExtractJSONObject(text, &res); err != nil {
		return nil, fmt.Errorf("classification agent: %w", err)
	}
	return &res, nil
}
