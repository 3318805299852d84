package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carad/llm"
	"carad/models"
)

const (
	goodVisionReply = `{
		"damage_flag": "не битый",
		"visual_condition_score": 0.85,
		"inspection_reliability_score": 0.9,
		"repaint_probability": 0.1,
		"defects": [{"type": "царапина", "severity": "слабая", "location": "задний бампер", "body_part": "rear_bumper"}],
		"raw_text_description": "Седан в хорошем состоянии."
	}`
	goodClassificationReply = `{
		"brand": "Toyota", "model": "Camry", "body_type": "седан", "color": "белый",
		"steering_wheel_position": "left", "transmission": "автомат",
		"classification_confidence": {"category": "high", "subcategory": "high"},
		"status": "ok", "failure_reason": ""
	}`
)

// routeVision dispatches the fan-out ChatVision calls by prompt: the
// inspection, identification and copywriting prompts are mutually distinct.
func routeVision(visionReply, clsReply, descReply string) func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
	return func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
		switch {
		case strings.Contains(prompt, "визуальному осмотру"):
			if visionReply == "" {
				return "", errors.New("vision unavailable")
			}
			return visionReply, nil
		case strings.Contains(prompt, "идентификации автомобилей"):
			if clsReply == "" {
				return "", errors.New("classification unavailable")
			}
			return clsReply, nil
		case strings.Contains(prompt, "копирайтер"):
			if descReply == "" {
				return "", errors.New("description unavailable")
			}
			return descReply, nil
		}
		return "", errors.New("unexpected prompt")
	}
}

func postPhotos(t *testing.T, router http.Handler, photos map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, "files", photos, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeNoFiles(t *testing.T) {
	fake := &llm.Fake{}
	useFake(t, fake)

	w := postPhotos(t, newRouter(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fake.Calls())
}

func TestAnalyzeHappyPath(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: routeVision(goodVisionReply, goodClassificationReply, "Продаётся Toyota Camry в отличном состоянии."),
	}
	useFake(t, fake)

	w := postPhotos(t, newRouter(), map[string][]byte{"car.jpg": testJPEG(t)})
	require.Equal(t, http.StatusOK, w.Code)

	var record models.AnalysisResponse
	decodeJSON(t, w, &record)

	assert.Equal(t, models.StatusOK, record.Status)
	assert.Equal(t, "Toyota", record.CarIdentity.Brand)
	assert.Equal(t, "Camry", record.CarIdentity.Model)
	assert.Equal(t, models.DamageFlagNotDamaged, record.CarIdentity.DamageFlag)
	assert.False(t, record.TechnicalAssumptions.AccidentSigns)
	assert.Equal(t, 0.85, record.VisualCondition.OverallScore)
	require.Len(t, record.VisualCondition.Defects, 1)
	assert.Equal(t, "scratch", record.VisualCondition.Defects[0].Type)
	assert.Equal(t, "Продаётся Toyota Camry в отличном состоянии.", record.GeneratedDescription)

	// year/engine/mileage are not on a photo, so pricing must decline
	assert.Nil(t, record.PriceEstimation.SuggestedPrice)
	assert.Contains(t, record.PriceEstimation.MissingFields, "year")
	assert.Equal(t, 0, fake.CallCount("chat"), "pricing must not call the model with fields missing")

	var fields []string
	for _, warn := range record.ConfidenceWarnings {
		fields = append(fields, warn.Field)
	}
	assert.Contains(t, fields, "price_estimation")
	assert.NotContains(t, fields, "model")
}

func TestAnalyzeVisionFailureDegrades(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: routeVision("", goodClassificationReply, "Текст объявления."),
	}
	useFake(t, fake)

	w := postPhotos(t, newRouter(), map[string][]byte{"car.jpg": testJPEG(t)})
	require.Equal(t, http.StatusOK, w.Code, "agent failure degrades the record, never the HTTP status")

	var record models.AnalysisResponse
	decodeJSON(t, w, &record)

	assert.Equal(t, models.StatusError, record.Status)
	assert.Equal(t, models.DamageFlagUndetermined, record.CarIdentity.DamageFlag)
	assert.Equal(t, "Toyota", record.CarIdentity.Brand, "identification still lands")

	var fields []string
	for _, warn := range record.ConfidenceWarnings {
		fields = append(fields, warn.Field)
	}
	assert.Contains(t, fields, "analysis")
	assert.Contains(t, fields, "visual_condition", "fallback reliability is below threshold")
}

func TestAnalyzeNotACar(t *testing.T) {
	visionReply := `{
		"damage_flag": "не определено",
		"inspection_reliability_score": 0.9,
		"defects": [],
		"raw_text_description": "изображение не содержит автомобиль"
	}`
	clsReply := `{
		"brand": "", "model": "",
		"classification_confidence": {"category": "low", "subcategory": "low"},
		"status": "failed", "failure_reason": "на фото нет автомобиля"
	}`
	fake := &llm.Fake{
		ChatVisionFunc: routeVision(visionReply, clsReply, "—"),
	}
	useFake(t, fake)

	w := postPhotos(t, newRouter(), map[string][]byte{"cat.jpg": testJPEG(t)})
	require.Equal(t, http.StatusOK, w.Code)

	var record models.AnalysisResponse
	decodeJSON(t, w, &record)
	assert.Equal(t, models.StatusNeedsUserInput, record.Status)

	var fields []string
	for _, warn := range record.ConfidenceWarnings {
		fields = append(fields, warn.Field)
	}
	assert.Contains(t, fields, "model")
}
