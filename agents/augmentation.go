package agents

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // uploads may be PNG, re-encoded to JPEG below
	"strings"

	"carad/llm"
	"carad/models"
)

// MinImagePayload is the shortest base64 payload that can possibly be a real
// image. Anything shorter coming back from the image API is treated as
// corrupted rather than rendered.
const MinImagePayload = 200

type augmentationCheck struct {
	Domain  string `json:"domain"`  // "car" | "not_car"
	Realism string `json:"realism"` // "acceptable" | "unacceptable"
	Mode    string `json:"mode"`    // "improve" | "augment"
}

// RunAugmentation first classifies the request (improve quality vs. add one
// object) and validates it is car-related and physically plausible, then runs
// the image edit. Rejections come back as structured reasons the UI renders
// verbatim, never generic errors.
func RunAugmentation(ctx context.Context, imageBytes []byte, userPrompt string) models.AugmentImageResponse {
	prompt := strings.TrimSpace(userPrompt)
	if prompt == "" {
		return models.AugmentImageResponse{Error: "Запрос пользователя пуст."}
	}

	text, err := LLM.Chat(ctx, fmt.Sprintf(augmentationModePrompt, prompt), llm.ChatOptions{MaxTokens: 256})
	if err != nil {
		return models.AugmentImageResponse{Error: fmt.Sprintf("Ошибка анализа запроса: %v", err)}
	}
	var check augmentationCheck
	if err := llm.ExtractJSONObject(text, &check); err != nil {
		return models.AugmentImageResponse{Error: fmt.Sprintf("Ошибка анализа запроса: %v", err)}
	}

	if check.Domain != "car" {
		return models.AugmentImageResponse{Error: "Запрос отклонён: не относится к автомобилю."}
	}
	if check.Realism != "acceptable" {
		return models.AugmentImageResponse{Error: "Запрос отклонён: нереалистичная сцена."}
	}
	if check.Mode != "improve" && check.Mode != "augment" {
		return models.AugmentImageResponse{Error: "Некорректный режим обработки.", Mode: check.Mode}
	}

	imagePrompt := fmt.Sprintf(augmentPrompt, prompt)
	if check.Mode == "improve" {
		imagePrompt = fmt.Sprintf(improvePrompt, prompt)
	}

	jpegBytes, err := reencodeJPEG(imageBytes)
	if err != nil {
		return models.AugmentImageResponse{Error: fmt.Sprintf("Ошибка чтения изображения: %v", err), Mode: check.Mode}
	}

	b64, err := LLM.EditImage(ctx, jpegBytes, imagePrompt)
	if err != nil {
		return models.AugmentImageResponse{Error: err.Error(), Mode: check.Mode}
	}
	if len(b64) < MinImagePayload {
		return models.AugmentImageResponse{Error: "Результат повреждён и не может быть отображён.", Mode: check.Mode}
	}
	return models.AugmentImageResponse{Success: true, ImageBase64: b64, Mode: check.Mode}
}

// reencodeJPEG normalizes any supported upload into an RGB JPEG the image API
// accepts.
func reencodeJPEG(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
