package listing

import (
	"strings"
	"time"

	"carad/models"
)

// RequiredForPricing lists the fields the price agent refuses to work
// without, in canonical order. No defaults are ever substituted — a missing
// field means the user must fill it in.
var RequiredForPricing = []string{
	"brand",
	"model",
	"body_type",
	"color",
	"steering_wheel_position",
	"year",
	"engine_capacity",
	"transmission",
	"drive_type",
	"mileage",
	"damage_flag",
}

const MinYear = 1980

// now is swapped by tests pinning the current year.
var now = time.Now

// MissingPricingFields returns the required fields that do not hold a valid
// value yet. An accident_signs checkbox set to true satisfies damage_flag
// regardless of the text in it.
func MissingPricingFields(id models.CarIdentity, tech models.TechnicalAssumptions) []string {
	missing := []string{}
	for _, field := range RequiredForPricing {
		if !fieldValid(field, id, tech.AccidentSigns) {
			missing = append(missing, field)
		}
	}
	return missing
}

// PriceRecomputeEnabled reports whether the recalculate-price control should
// be active: every required field holds a valid value.
func PriceRecomputeEnabled(id models.CarIdentity, tech models.TechnicalAssumptions) bool {
	return len(MissingPricingFields(id, tech)) == 0
}

// CountValidRequired counts required fields holding a valid value. Unlike
// MissingPricingFields, damage_flag is judged by its text alone — the
// readiness checklist does not honor the accident_signs exemption.
func CountValidRequired(id models.CarIdentity) int {
	count := 0
	for _, field := range RequiredForPricing {
		if fieldValid(field, id, false) {
			count++
		}
	}
	return count
}

func fieldValid(field string, id models.CarIdentity, accidentSigns bool) bool {
	switch field {
	case "brand":
		return strings.TrimSpace(id.Brand) != ""
	case "model":
		return strings.TrimSpace(id.Model) != ""
	case "body_type":
		return strings.TrimSpace(id.BodyType) != ""
	case "color":
		return strings.TrimSpace(id.Color) != ""
	case "steering_wheel_position":
		return id.SteeringWheelPosition == "left" || id.SteeringWheelPosition == "right"
	case "year":
		return id.Year != nil && *id.Year >= MinYear && *id.Year <= now().Year()
	case "engine_capacity":
		return id.EngineCapacity != nil && *id.EngineCapacity > 0
	case "mileage":
		return id.Mileage != nil && *id.Mileage >= 0
	case "transmission":
		return strings.TrimSpace(id.Transmission) != ""
	case "drive_type":
		return strings.TrimSpace(id.DriveType) != ""
	case "damage_flag":
		return accidentSigns || strings.TrimSpace(id.DamageFlag) != ""
	}
	return false
}

// NormalizeDamageFlag resolves the damage flag sent to the price agent: a
// checked accident_signs box wins over whatever text is in the field,
// otherwise the user's text stands, with the canonical "not damaged" default.
func NormalizeDamageFlag(id models.CarIdentity, tech models.TechnicalAssumptions) string {
	if tech.AccidentSigns {
		return models.DamageFlagDamaged
	}
	if flag := strings.TrimSpace(id.DamageFlag); flag != "" {
		return flag
	}
	return models.DamageFlagNotDamaged
}
