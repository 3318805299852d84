package agents

import (
	"context"
	"fmt"
	"log"

	"carad/listing"
	"carad/llm"
	"carad/models"
)

// PricingInput is the full feature row the price agent works from. DamageFlag
// must already be normalized (see listing.NormalizeDamageFlag).
type PricingInput struct {
	Identity         models.CarIdentity
	DamageFlag       string
	ConditionScore   float64
	ReliabilityScore float64
	Defects          []models.DefectItem
}

const (
	syntheticRows    = 50 // more rows, steadier estimate and lower MAE
	minUsableRows    = 10
	pricingMaxTokens = 16384
)

// RunPricing estimates the market price range. Strictly no defaults: when any
// required field is empty the result only carries missing_fields and no LLM
// call is made. Otherwise the model generates a synthetic market table for
// this brand+model and a local estimator prices the subject car against it.
// The returned range is suggested_price ± MAE.
func RunPricing(ctx context.Context, in PricingInput) models.PriceEstimation {
	id := in.Identity
	id.DamageFlag = in.DamageFlag
	if missing := listing.MissingPricingFields(id, models.TechnicalAssumptions{}); len(missing) > 0 {
		return models.PriceEstimation{MissingFields: missing}
	}

	prompt := fmt.Sprintf(pricingPrompt, syntheticRows, id.Brand, id.Model, syntheticRows, syntheticRows)

	var rawRows []map[string]any
	lastErr := "empty data"
	for attempt := 0; attempt < 2; attempt++ {
		temp := 0.7
		if attempt > 0 {
			temp = 0.9
		}
		text, err := LLM.Chat(ctx, prompt, llm.ChatOptions{MaxTokens: pricingMaxTokens, Temperature: temp, HasTemp: true})
		if err != nil {
			if ctx.Err() != nil {
				// caller's deadline hit, no point in a second attempt
				return priceError(err.Error())
			}
			lastErr = err.Error()
			continue
		}
		var rows []map[string]any
		if err := llm.ExtractJSONArray(text, &rows); err != nil {
			lastErr = "failed to parse synthetic data"
			continue
		}
		if len(rows) >= minUsableRows {
			rawRows = rows
			break
		}
		lastErr = "too few rows"
	}
	if len(rawRows) < minUsableRows {
		log.Printf("pricing agent: no usable synthetic data: %s", lastErr)
		return priceError(lastErr)
	}

	market := parseMarketRows(rawRows)
	if len(market) < minUsableRows {
		return priceError("too few valid prices")
	}

	subject := subjectRow(in)
	suggested, mae := estimate(subject, market)
	if suggested <= 0 {
		return priceError("estimation produced no price")
	}

	maeInt := int(mae + 0.5)
	minPrice := suggested - maeInt
	if minPrice < 0 {
		minPrice = 0
	}
	maxPrice := suggested + maeInt
	roundedMAE := float64(maeInt)
	return models.PriceEstimation{
		MinPrice:       &minPrice,
		MaxPrice:       &maxPrice,
		SuggestedPrice: &suggested,
		MAE:            &roundedMAE,
		MissingFields:  []string{},
		GeneratedRows:  rawRows,
	}
}

func priceError(msg string) models.PriceEstimation {
	return models.PriceEstimation{
		MissingFields: []string{},
		ErrorMessage:  &msg,
	}
}

func subjectRow(in PricingInput) marketRow {
	weak, moderate, strong := 0, 0, 0
	for _, d := range in.Defects {
		switch d.Severity {
		case "weak":
			weak++
		case "moderate":
			moderate++
		case "strong":
			strong++
		}
	}
	id := in.Identity
	row := marketRow{
		BodyType:     id.BodyType,
		Color:        id.Color,
		Steering:     id.SteeringWheelPosition,
		Transmission: id.Transmission,
		Drive:        id.DriveType,
		Damage:       in.DamageFlag,
		Condition:    in.ConditionScore,
		Reliability:  in.ReliabilityScore,
		DefectsCnt:   float64(weak + moderate + strong),
		Weak:         float64(weak),
		Moderate:     float64(moderate),
		Strong:       float64(strong),
	}
	if id.Year != nil {
		row.Year = float64(*id.Year)
	}
	if id.EngineCapacity != nil {
		row.Engine = *id.EngineCapacity
	}
	if id.Mileage != nil {
		row.Mileage = float64(*id.Mileage)
	}
	return row
}
