package agents

import (
	"context"
	"log"
	"strings"

	"carad/llm"
	"carad/models"
)

const maxRecommenderImages = 20

// ZeroPhotosRecommendation is the local answer for an empty photo set; no
// network call is made for it.
func ZeroPhotosRecommendation() models.PhotoRecommendationsResponse {
	return models.PhotoRecommendationsResponse{
		Verdict:           "has_recommendations",
		QualityIssues:     []string{},
		Recommendations:   []string{"Добавьте хотя бы одно фото автомобиля."},
		MissingPhotoTypes: []string{"Любое фото автомобиля"},
		Summary:           "Нет загруженных фото.",
	}
}

// RunPhotoRecommendations reviews the photo set: quality problems, missing
// shot types and general advice. Read-only — it never touches form state.
// Degrades to a neutral has_recommendations result on any failure.
func RunPhotoRecommendations(ctx context.Context, imagesBase64 []string, carContext string) models.PhotoRecommendationsResponse {
	if len(imagesBase64) == 0 {
		return ZeroPhotosRecommendation()
	}
	if len(imagesBase64) > maxRecommenderImages {
		imagesBase64 = imagesBase64[:maxRecommenderImages]
	}

	prompt := recommenderPrompt
	if ctxStr := strings.TrimSpace(carContext); ctxStr != "" {
		prompt += "\n\nКонтекст: автомобиль — " + ctxStr + "."
	}

	text, err := LLM.ChatVision(ctx, prompt, imagesBase64, llm.ChatOptions{MaxTokens: 2048})
	if err != nil {
		log.Printf("recommender agent: %v", err)
		return models.PhotoRecommendationsResponse{
			Verdict:           "has_recommendations",
			QualityIssues:     []string{},
			Recommendations:   []string{},
			MissingPhotoTypes: []string{},
			Summary:           "Не удалось получить рекомендации.",
		}
	}

	raw := map[string]any{}
	if err := llm.ExtractJSONObject(text, &raw); err != nil {
		log.Printf("recommender agent: parse: %v", err)
		return models.PhotoRecommendationsResponse{
			Verdict:           "has_recommendations",
			QualityIssues:     []string{},
			Recommendations:   []string{},
			MissingPhotoTypes: []string{},
			Summary:           "Не удалось разобрать ответ.",
		}
	}

	verdict := asString(raw["verdict"])
	if verdict != "all_ok" && verdict != "has_recommendations" {
		verdict = "has_recommendations"
	}
	summary := asString(raw["summary"])
	if summary == "" {
		summary = "Анализ выполнен."
	}
	return models.PhotoRecommendationsResponse{
		Verdict:           verdict,
		QualityIssues:     asStringSlice(raw["quality_issues"]),
		Recommendations:   asStringSlice(raw["recommendations"]),
		MissingPhotoTypes: asStringSlice(raw["missing_photo_types"]),
		Summary:           summary,
	}
}
