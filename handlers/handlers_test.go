package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"carad/agents"
	"carad/llm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newRouter registers the same routes main does, without the middleware.
func newRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/analyze", Analyze)
		api.POST("/recalculate-price", RecalculatePrice)
		api.POST("/regenerate-description", RegenerateDescription)
		api.POST("/augment-image", AugmentImage)
		api.POST("/photo-recommendations", PhotoRecommendations)
		api.POST("/listing/readiness", ListingReadiness)

		api.GET("/generations", GetGenerations)
		api.GET("/catalog", GetCatalog)
	}
	return router
}

func useFake(t *testing.T, fake *llm.Fake) {
	t.Helper()
	prev := agents.LLM
	agents.LLM = fake
	t.Cleanup(func() { agents.LLM = prev })
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// multipartUpload builds a request body with the given files under fieldName
// plus optional plain form fields.
func multipartUpload(t *testing.T, fieldName string, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+name+`"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
