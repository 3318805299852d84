package models

// Canonical API contract. The backend always returns JSON of this shape,
// regardless of how much the agents managed to extract.

type CarIdentity struct {
	Brand                 string   `json:"brand"`
	Model                 string   `json:"model"`
	Generation            string   `json:"generation"`
	Year                  *int     `json:"year"`
	BodyType              string   `json:"body_type"`
	Color                 string   `json:"color"`
	SteeringWheelPosition string   `json:"steering_wheel_position"` // "left" | "right"
	EngineCapacity        *float64 `json:"engine_capacity"`
	Transmission          string   `json:"transmission"`
	DriveType             string   `json:"drive_type"`
	Mileage               *int     `json:"mileage"`
	DamageFlag            string   `json:"damage_flag"` // "битый" | "не битый" | "не определено"
}

type DefectItem struct {
	Type     string `json:"type"`     // scratch, dent, chip, corrosion, replaced, painted or free text
	Severity string `json:"severity"` // weak | moderate | strong
	Location string `json:"location"`
	BodyPart string `json:"body_part"` // hood, front_door_left, rear_bumper, ... for the body diagram
}

type VisualCondition struct {
	OverallScore float64      `json:"overall_score"` // 0.0 - 1.0
	Defects      []DefectItem `json:"defects"`
}

type TechnicalAssumptions struct {
	AccidentSigns      bool    `json:"accident_signs"`
	RepaintProbability float64 `json:"repaint_probability"` // 0.0 - 1.0
}

type PriceEstimation struct {
	MinPrice       *int             `json:"min_price"`
	MaxPrice       *int             `json:"max_price"`
	SuggestedPrice *int             `json:"suggested_price"`
	MAE            *float64         `json:"mae"`            // range is suggested_price ± MAE
	MissingFields  []string         `json:"missing_fields"` // fields the user must fill before pricing
	ErrorMessage   *string          `json:"error_message"`
	GeneratedRows  []map[string]any `json:"generated_rows,omitempty"` // synthetic market rows, passthrough for the UI
}

type ConfidenceWarning struct {
	Field      string `json:"field"`
	Confidence string `json:"confidence"` // high | medium | low
	Reason     string `json:"reason"`
}

const (
	StatusOK             = "ok"
	StatusNeedsUserInput = "needs_user_input"
	StatusError          = "error"
)

type AnalysisResponse struct {
	CarIdentity          CarIdentity          `json:"car_identity"`
	VisualCondition      VisualCondition      `json:"visual_condition"`
	TechnicalAssumptions TechnicalAssumptions `json:"technical_assumptions"`
	PriceEstimation      PriceEstimation      `json:"price_estimation"`
	GeneratedDescription string               `json:"generated_description"`
	ConfidenceWarnings   []ConfidenceWarning  `json:"confidence_warnings"`
	Status               string               `json:"status"`
	// Raw vision payload, kept so description regeneration works after edits.
	VisionResult map[string]any `json:"vision_result"`
}

type RecalculatePriceBody struct {
	CarIdentity          CarIdentity          `json:"car_identity"`
	VisualCondition      VisualCondition      `json:"visual_condition"`
	TechnicalAssumptions TechnicalAssumptions `json:"technical_assumptions"`
}

type RegenerateDescriptionBody struct {
	CarIdentity  CarIdentity    `json:"car_identity"`
	VisionResult map[string]any `json:"vision_result"`
	ExtraParams  map[string]any `json:"extra_params"`
	ImagesBase64 []string       `json:"images_base64"`
}

type PhotoRecommendationsBody struct {
	ImagesBase64 []string `json:"images_base64"`
	CarContext   string   `json:"car_context,omitempty"` // e.g. "Toyota Camry"
}

type PhotoRecommendationsResponse struct {
	Verdict           string   `json:"verdict"` // "all_ok" | "has_recommendations"
	QualityIssues     []string `json:"quality_issues"`
	Recommendations   []string `json:"recommendations"`
	MissingPhotoTypes []string `json:"missing_photo_types"`
	Summary           string   `json:"summary"`
}

type AugmentImageResponse struct {
	Success     bool   `json:"success"`
	ImageBase64 string `json:"image_base64,omitempty"`
	Error       string `json:"error,omitempty"`
	Mode        string `json:"mode,omitempty"` // "improve" | "augment"
}

// Canonical damage_flag values.
const (
	DamageFlagDamaged      = "битый"
	DamageFlagNotDamaged   = "не битый"
	DamageFlagUndetermined = "не определено"
)

// AddWarning appends a confidence warning, keeping at most one warning per
// field. A later warning for the same field replaces the earlier one in place,
// so reported order is otherwise preserved.
func (r *AnalysisResponse) AddWarning(w ConfidenceWarning) {
	for i := range r.ConfidenceWarnings {
		if r.ConfidenceWarnings[i].Field == w.Field {
			r.ConfidenceWarnings[i] = w
			return
		}
	}
	r.ConfidenceWarnings = append(r.ConfidenceWarnings, w)
}
