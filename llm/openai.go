package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// OpenAI talks to the OpenAI HTTP API (or any compatible endpoint).
type OpenAI struct {
	apiKey     string
	baseURL    string
	client     *http.Client
	model      string
	imageModel string
}

func NewOpenAI(apiKey, model, imageModel, baseURL string) *OpenAI {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAI{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: 120 * time.Second},
		model:      model,
		imageModel: imageModel,
	}
}

func (o *OpenAI) Model() string { return o.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (o *OpenAI) Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	return o.complete(ctx, prompt, opts)
}

func (o *OpenAI) ChatVision(ctx context.Context, prompt string, imagesBase64 []string, opts ChatOptions) (string, error) {
	content := []map[string]any{{"type": "text", "text": prompt}}
	for _, b64 := range imagesBase64 {
		url := b64
		if !strings.HasPrefix(b64, "data:") {
			url = "data:image/jpeg;base64," + b64
		}
		content = append(content, map[string]any{
			"type":      "image_url",
			"image_url": map[string]string{"url": url},
		})
	}
	return o.chat(ctx, chatMessage{Role: "user", Content: content}, opts)
}

func (o *OpenAI) complete(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	return o.chat(ctx, chatMessage{Role: "user", Content: prompt}, opts)
}

func (o *OpenAI) chat(ctx context.Context, msg chatMessage, opts ChatOptions) (string, error) {
	body := map[string]any{
		"model":    o.model,
		"messages": []chatMessage{msg},
	}
	if opts.MaxTokens > 0 {
		body["max_completion_tokens"] = opts.MaxTokens
	}
	if opts.HasTemp {
		body["temperature"] = opts.Temperature
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai api error (status %d): %s", resp.StatusCode, truncate(string(respBytes), 500))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", err
	}
	if parsed.Error.Message != "" {
		return "", fmt.Errorf("openai api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return parsed.Choices[0].Message.Content, nil
}

type imageEditResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// EditImage calls the images edit endpoint with a multipart body carrying the
// source photo and the edit prompt. The result is the base64 payload of the
// first returned image.
func (o *OpenAI) EditImage(ctx context.Context, imageJPEG []byte, prompt string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("model", o.imageModel); err != nil {
		return "", err
	}
	if err := w.WriteField("prompt", prompt); err != nil {
		return "", err
	}
	if err := w.WriteField("size", "1024x1024"); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("image", "input.jpg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(imageJPEG); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/images/edits", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai image api error (status %d): %s", resp.StatusCode, truncate(string(respBytes), 500))
	}

	var parsed imageEditResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", err
	}
	if parsed.Error.Message != "" {
		return "", fmt.Errorf("openai image api error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) == 0 {
		return "", fmt.Errorf("empty response from image api")
	}
	if parsed.Data[0].B64JSON != "" {
		return parsed.Data[0].B64JSON, nil
	}
	if parsed.Data[0].URL != "" {
		return o.fetchAsBase64(ctx, parsed.Data[0].URL)
	}
	return "", fmt.Errorf("image api returned neither b64_json nor url")
}

func (o *OpenAI) fetchAsBase64(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image result (status %d)", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return encodeBase64(raw), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
