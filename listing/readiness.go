package listing

import (
	"strings"

	"carad/models"
)

// Checklist is the five-point "ready to publish" gate. The facts are
// independent booleans, not gated on each other.
type Checklist struct {
	HasPhotos          bool `json:"has_photos"`
	FieldsFilled       bool `json:"fields_filled"`
	ConditionEvaluated bool `json:"condition_evaluated"`
	HasPrice           bool `json:"has_price"`
	HasDescription     bool `json:"has_description"`
}

// BuildChecklist derives the checklist from the current draft.
// analysisRan is true once any analysis response has been produced — the
// condition facet is trivially satisfied from then on.
func BuildChecklist(record models.AnalysisResponse, photoCount int, analysisRan bool) Checklist {
	return Checklist{
		HasPhotos:          photoCount >= 1,
		FieldsFilled:       CountValidRequired(record.CarIdentity) >= len(RequiredForPricing),
		ConditionEvaluated: analysisRan,
		HasPrice:           record.PriceEstimation.SuggestedPrice != nil,
		HasDescription:     strings.TrimSpace(record.GeneratedDescription) != "",
	}
}

// Score counts satisfied facets, 0 through 5.
func (c Checklist) Score() int {
	score := 0
	for _, ok := range []bool{c.HasPhotos, c.FieldsFilled, c.ConditionEvaluated, c.HasPrice, c.HasDescription} {
		if ok {
			score++
		}
	}
	return score
}

// Ready reports whether all five facets hold.
func (c Checklist) Ready() bool {
	return c.Score() == 5
}

// Badge is the presentational state of one field. Both flags may hold at
// once: the AI filled the field and the user then changed it.
type Badge struct {
	AIFilled   bool `json:"ai_filled"`
	UserEdited bool `json:"user_edited"`
}

// Badges derives per-field badges for the identity block from the original
// analysis response and the edited-field set. Purely a derivation — nothing
// here is stored.
func Badges(original models.AnalysisResponse, edited FieldSet) map[string]Badge {
	out := make(map[string]Badge, len(identityPaths))
	for path, filled := range identityPaths {
		out[path] = Badge{
			AIFilled:   filled(original.CarIdentity),
			UserEdited: edited.Has(path),
		}
	}
	return out
}

// identityPaths maps each dotted identity path to its "was populated with a
// truthy value" check against the original analysis.
var identityPaths = map[string]func(models.CarIdentity) bool{
	"car_identity.brand":                   func(id models.CarIdentity) bool { return id.Brand != "" },
	"car_identity.model":                   func(id models.CarIdentity) bool { return id.Model != "" },
	"car_identity.generation":              func(id models.CarIdentity) bool { return id.Generation != "" },
	"car_identity.year":                    func(id models.CarIdentity) bool { return id.Year != nil && *id.Year != 0 },
	"car_identity.body_type":               func(id models.CarIdentity) bool { return id.BodyType != "" },
	"car_identity.color":                   func(id models.CarIdentity) bool { return id.Color != "" },
	"car_identity.steering_wheel_position": func(id models.CarIdentity) bool { return id.SteeringWheelPosition != "" },
	"car_identity.engine_capacity":         func(id models.CarIdentity) bool { return id.EngineCapacity != nil && *id.EngineCapacity != 0 },
	"car_identity.transmission":            func(id models.CarIdentity) bool { return id.Transmission != "" },
	"car_identity.drive_type":              func(id models.CarIdentity) bool { return id.DriveType != "" },
	"car_identity.mileage":                 func(id models.CarIdentity) bool { return id.Mileage != nil && *id.Mileage != 0 },
	"car_identity.damage_flag":             func(id models.CarIdentity) bool { return id.DamageFlag != "" },
}
