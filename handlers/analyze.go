package handlers

import (
	"context"
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carad/agents"
	"carad/models"
)

// Analyze handles the initial photo upload: runs vision and classification in
// parallel, maps their output into the canonical record, then runs pricing
// and description in parallel on top of it. Agent failures degrade the record
// (status "error" / "needs_user_input") but the response is always the full
// contract — the client can fall back to manual entry.
func Analyze(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Need at least one image"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Need at least one image"})
		return
	}

	imagesB64 := make([]string, 0, len(files))
	for _, fh := range files {
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			continue
		}
		if fh.Size > maxImageSize {
			log.Printf("analyze: skipping %s: too large (%d bytes)", fh.Filename, fh.Size)
			continue
		}
		f, err := fh.Open()
		if err != nil {
			continue
		}
		raw, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		imagesB64 = append(imagesB64, base64.StdEncoding.EncodeToString(raw))
	}
	if len(imagesB64) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid image files"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), AgentTimeout)
	defer cancel()

	// vision and classification only need the photos; run them side by side
	var vision *agents.VisionResult
	var visionErr error
	var cls *agents.ClassificationResult
	var clsErr error

	done := make(chan bool, 2)
	go func() {
		vision, visionErr = agents.RunVision(ctx, imagesB64)
		done <- true
	}()
	go func() {
		cls, clsErr = agents.RunClassification(ctx, imagesB64)
		done <- true
	}()
	<-done
	<-done

	if visionErr != nil {
		log.Printf("analyze: vision failed: %v", visionErr)
		vision = &agents.VisionResult{DamageFlag: models.DamageFlagUndetermined, ReliabilityScore: 0.5, Defects: []models.DefectItem{}, Raw: map[string]any{}}
	}
	if clsErr != nil {
		log.Printf("analyze: classification failed: %v", clsErr)
		cls = &agents.ClassificationResult{}
	}

	record := buildRecord(vision, cls)

	// pricing and description depend only on the record built so far
	pricingInput := agents.PricingInput{
		Identity:         record.CarIdentity,
		DamageFlag:       record.CarIdentity.DamageFlag,
		ConditionScore:   record.VisualCondition.OverallScore,
		ReliabilityScore: vision.ReliabilityScore,
		Defects:          record.VisualCondition.Defects,
	}
	var price models.PriceEstimation
	var description string
	var descErr error

	done2 := make(chan bool, 2)
	go func() {
		price = agents.RunPricing(ctx, pricingInput)
		done2 <- true
	}()
	go func() {
		description, descErr = agents.RunDescription(ctx, imagesB64,
			classificationPayload(record.CarIdentity), vision.Raw, pricingRow(record))
		done2 <- true
	}()
	<-done2
	<-done2

	if descErr != nil {
		log.Printf("analyze: description failed: %v", descErr)
		description = ""
	}
	record.PriceEstimation = price
	record.GeneratedDescription = description

	addWarnings(&record, vision, cls, visionErr != nil || clsErr != nil)
	record.Status = decideStatus(vision, cls, visionErr, clsErr)

	c.JSON(http.StatusOK, record)
}

// buildRecord maps the two visual agents into the canonical contract. Fields
// the photos cannot answer (year, mileage, engine) start empty and wait for
// the user.
func buildRecord(vision *agents.VisionResult, cls *agents.ClassificationResult) models.AnalysisResponse {
	damageFlag := vision.DamageFlag
	if strings.TrimSpace(damageFlag) == "" {
		damageFlag = models.DamageFlagUndetermined
	}
	return models.AnalysisResponse{
		CarIdentity: models.CarIdentity{
			Brand:                 cls.Brand,
			Model:                 cls.Model,
			BodyType:              cls.BodyType,
			Color:                 cls.Color,
			SteeringWheelPosition: cls.SteeringWheelPosition,
			Transmission:          cls.Transmission,
			DamageFlag:            damageFlag,
		},
		VisualCondition: models.VisualCondition{
			OverallScore: vision.ConditionScore,
			Defects:      vision.Defects,
		},
		TechnicalAssumptions: models.TechnicalAssumptions{
			AccidentSigns:      strings.EqualFold(damageFlag, models.DamageFlagDamaged),
			RepaintProbability: vision.RepaintProbability,
		},
		ConfidenceWarnings: []models.ConfidenceWarning{},
		VisionResult:       vision.Raw,
	}
}

func addWarnings(record *models.AnalysisResponse, vision *agents.VisionResult, cls *agents.ClassificationResult, agentFailed bool) {
	if agentFailed {
		record.AddWarning(models.ConfidenceWarning{
			Field: "analysis", Confidence: "low", Reason: "Часть агентов завершилась с ошибкой",
		})
	}
	if cls.LowConfidence() {
		record.AddWarning(models.ConfidenceWarning{
			Field: "model", Confidence: "low", Reason: "Низкая уверенность визуальной классификации",
		})
	}
	if cls.Brand == "" || cls.Model == "" {
		record.AddWarning(models.ConfidenceWarning{
			Field: "model", Confidence: "low", Reason: "Марка или модель не определены по фото",
		})
	}
	if vision.ReliabilityScore < 0.6 {
		record.AddWarning(models.ConfidenceWarning{
			Field: "visual_condition", Confidence: "medium", Reason: "Ограниченная видимость на фото",
		})
	}
	price := record.PriceEstimation
	if price.SuggestedPrice == nil && (len(price.MissingFields) > 0 || price.ErrorMessage != nil) {
		record.AddWarning(models.ConfidenceWarning{
			Field: "price_estimation", Confidence: "low", Reason: "Недостаточно данных для оценки цены",
		})
	}
}

// decideStatus: agent failure wins, then "not a car" style replies, then an
// undetermined identity; an intact record is "ok".
func decideStatus(vision *agents.VisionResult, cls *agents.ClassificationResult, visionErr, clsErr error) string {
	if visionErr != nil || clsErr != nil {
		return models.StatusError
	}
	rawDesc := strings.ToLower(vision.RawDescription)
	for _, marker := range []string{"анализ невозможен", "не содержит автомобиль", "не соответствует задаче"} {
		if strings.Contains(rawDesc, marker) {
			return models.StatusNeedsUserInput
		}
	}
	if cls.Status == "failed" && cls.FailureReason != "" {
		return models.StatusNeedsUserInput
	}
	if cls.Brand == "" && cls.Model == "" {
		return models.StatusNeedsUserInput
	}
	return models.StatusOK
}

func classificationPayload(id models.CarIdentity) map[string]any {
	return map[string]any{
		"brand":     id.Brand,
		"model":     id.Model,
		"body_type": id.BodyType,
		"color":     id.Color,
	}
}

// pricingRow flattens the record into the feature row the description agent
// receives for context.
func pricingRow(record models.AnalysisResponse) map[string]any {
	id := record.CarIdentity
	return map[string]any{
		"brand":                   id.Brand,
		"model":                   id.Model,
		"body_type":               id.BodyType,
		"color":                   id.Color,
		"steering_wheel_position": id.SteeringWheelPosition,
		"year":                    id.Year,
		"engine_capacity":         id.EngineCapacity,
		"transmission":            id.Transmission,
		"drive_type":              id.DriveType,
		"mileage":                 id.Mileage,
		"damage_flag":             id.DamageFlag,
		"visual_condition_score":  record.VisualCondition.OverallScore,
		"defects_cnt":             len(record.VisualCondition.Defects),
	}
}
