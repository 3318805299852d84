package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carad/catalog"
	"carad/llm"
	"carad/models"
)

func TestPhotoRecommendationsZeroPhotos(t *testing.T) {
	fake := &llm.Fake{}
	useFake(t, fake)

	w := postJSON(t, newRouter(), "/api/photo-recommendations", models.PhotoRecommendationsBody{})
	require.Equal(t, http.StatusOK, w.Code)

	var res models.PhotoRecommendationsResponse
	decodeJSON(t, w, &res)
	assert.Equal(t, "has_recommendations", res.Verdict)
	assert.Equal(t, "Нет загруженных фото.", res.Summary)
	assert.Empty(t, fake.Calls())
}

func TestPhotoRecommendationsWithPhotos(t *testing.T) {
	fake := &llm.Fake{
		ChatVisionFunc: func(ctx context.Context, prompt string, images []string, opts llm.ChatOptions) (string, error) {
			return `{"verdict": "all_ok", "summary": "Фото отличные."}`, nil
		},
	}
	useFake(t, fake)

	w := postJSON(t, newRouter(), "/api/photo-recommendations", models.PhotoRecommendationsBody{
		ImagesBase64: []string{"aGk="},
		CarContext:   "Kia Rio",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res models.PhotoRecommendationsResponse
	decodeJSON(t, w, &res)
	assert.Equal(t, "all_ok", res.Verdict)
	assert.Equal(t, "Фото отличные.", res.Summary)
}

func TestGetGenerations(t *testing.T) {
	fake := &llm.Fake{
		ChatFunc: func(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
			return `["XM3", "XM3 рестайлинг"]`, nil
		},
	}
	useFake(t, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/generations?brand=Renault&model=Arkana", nil)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Generations []string `json:"generations"`
	}
	decodeJSON(t, w, &res)
	assert.Equal(t, []string{"XM3", "XM3 рестайлинг"}, res.Generations)
}

func TestGetGenerationsMissingParams(t *testing.T) {
	fake := &llm.Fake{}
	useFake(t, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/generations?brand=Renault", nil)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Generations []string `json:"generations"`
	}
	decodeJSON(t, w, &res)
	assert.Empty(t, res.Generations)
	assert.Empty(t, fake.Calls())
}

func TestGetCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand_models.csv")
	require.NoError(t, os.WriteFile(path, []byte("Toyota;Camry\nToyota;Corolla\nKia;Rio\n"), 0o644))

	prev := Catalog
	Catalog = catalog.Load(path)
	t.Cleanup(func() { Catalog = prev })

	router := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var brands struct {
		Brands []string `json:"brands"`
	}
	decodeJSON(t, w, &brands)
	assert.Equal(t, []string{"Kia", "Toyota"}, brands.Brands)

	req = httptest.NewRequest(http.MethodGet, "/api/catalog?brand=toyota", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var modelsResp struct {
		Models []string `json:"models"`
	}
	decodeJSON(t, w, &modelsResp)
	assert.Equal(t, []string{"Camry", "Corolla"}, modelsResp.Models)
}

func TestRegenerateDescription(t *testing.T) {
	year := 2012
	fake := &llm.Fake{
		ChatFunc: func(ctx context.Context, prompt string, opts llm.ChatOptions) (string, error) {
			assert.Contains(t, prompt, "Subaru")
			return "Продаётся Subaru Forester 2012 года.", nil
		},
	}
	useFake(t, fake)

	w := postJSON(t, newRouter(), "/api/regenerate-description", models.RegenerateDescriptionBody{
		CarIdentity: models.CarIdentity{Brand: "Subaru", Model: "Forester", Year: &year},
		ExtraParams: map[string]any{"mileage": 150000},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		GeneratedDescription string `json:"generated_description"`
	}
	decodeJSON(t, w, &res)
	assert.Equal(t, "Продаётся Subaru Forester 2012 года.", res.GeneratedDescription)
}

func TestRegenerateDescriptionAgentFailure(t *testing.T) {
	fake := &llm.Fake{} // Chat unset fails loudly
	useFake(t, fake)

	w := postJSON(t, newRouter(), "/api/regenerate-description", models.RegenerateDescriptionBody{
		CarIdentity: models.CarIdentity{Brand: "Subaru", Model: "Forester"},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
