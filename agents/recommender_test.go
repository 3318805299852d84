package agents

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"carad/llm"
)

func TestRecommenderZeroPhotosSkipsLLM(t *testing.T) {
	fake := &llm.Fake{}
	useFake(t, fake)

	res := RunPhotoRecommendations(context.Background(), nil, "")
	assert.Equal(t, "has_recommendations", res.Verdict)
	assert.Equal(t, []string{"Добавьте хотя бы одно фото автомобиля."}, res.Recommendations)
	assert.Equal(t, []string{"Любое фото автомобиля"}, res.MissingPhotoTypes)
	assert.Equal(t, "Нет загруженных фото.", res.Summary)
	assert.Empty(t, fake.Calls())
}

func TestRecommenderHappyPath(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
			assert.Contains(t, prompt, "Контекст: автомобиль — Toyota Camry.")
			return `{
				"verdict": "has_recommendations",
				"quality_issues": ["Фото №1 размыто"],
				"recommendations": ["Снимите салон"],
				"missing_photo_types": ["Фото салона"],
				"summary": "Нужно два дополнительных кадра."
			}`, nil
		},
	}
	useFake(t, fake)

	res := RunPhotoRecommendations(context.Background(), []string{"aGk="}, "Toyota Camry")
	assert.Equal(t, "has_recommendations", res.Verdict)
	assert.Equal(t, []string{"Фото №1 размыто"}, res.QualityIssues)
	assert.Equal(t, []string{"Снимите салон"}, res.Recommendations)
	assert.Equal(t, []string{"Фото салона"}, res.MissingPhotoTypes)
	assert.Equal(t, "Нужно два дополнительных кадра.", res.Summary)
}

func TestRecommenderDegradesOnTransportError(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
			return "", errors.New("boom")
		},
	}
	useFake(t, fake)

	res := RunPhotoRecommendations(context.Background(), []string{"aGk="}, "")
	assert.Equal(t, "has_recommendations", res.Verdict)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, "Не удалось получить рекомендации.", res.Summary)
}

func TestRecommenderDegradesOnUnparseableReply(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
			return "извините, не могу помочь", nil
		},
	}
	useFake(t, fake)

	res := RunPhotoRecommendations(context.Background(), []string{"aGk="}, "")
	assert.Equal(t, "has_recommendations", res.Verdict)
	assert.Equal(t, "Не удалось разобрать ответ.", res.Summary)
}

func TestRecommenderNormalizesVerdictAndSummary(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
			return `{"verdict": "looks_great", "summary": ""}`, nil
		},
	}
	useFake(t, fake)

	res := RunPhotoRecommendations(context.Background(), []string{"aGk="}, "")
	assert.Equal(t, "has_recommendations", res.Verdict)
	assert.Equal(t, "Анализ выполнен.", res.Summary)
}

func TestRecommenderTruncatesPhotoSet(t *testing.T) {
	var seen int
	fake := &llm.Fake{
		ChatVisionFunc: func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
			seen = len(images)
			return `{"verdict": "all_ok", "summary": "Отлично."}`, nil
		},
	}
	useFake(t, fake)

	images := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		images = append(images, "img"+strconv.Itoa(i))
	}
	res := RunPhotoRecommendations(context.Background(), images, "")
	assert.Equal(t, maxRecommenderImages, seen)
	assert.Equal(t, "all_ok", res.Verdict)
}
