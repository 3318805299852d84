package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carad/listing"
	"carad/models"
)

type readinessBody struct {
	Record       models.AnalysisResponse `json:"record"`
	Original     models.AnalysisResponse `json:"original"` // as returned by /api/analyze, for AI-filled badges
	EditedFields listing.FieldSet        `json:"edited_fields"`
	PhotoCount   int                     `json:"photo_count"`
	AnalysisRan  bool                    `json:"analysis_ran"`
}

type readinessResponse struct {
	MissingFields         []string                 `json:"missing_fields"`
	PriceRecomputeEnabled bool                     `json:"price_recompute_enabled"`
	Checklist             listing.Checklist        `json:"checklist"`
	Score                 int                      `json:"score"`
	Ready                 bool                     `json:"ready"`
	Badges                map[string]listing.Badge `json:"badges"`
}

// ListingReadiness evaluates the reconciliation/readiness rules for the
// current draft: outstanding pricing fields, the five-point publish
// checklist and per-field badges. Pure derivation — nothing is stored
// between calls; the edited-field set travels with the request.
func ListingReadiness(c *gin.Context) {
	var body readinessBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.EditedFields == nil {
		body.EditedFields = listing.NewFieldSet()
	}

	missing := listing.MissingPricingFields(body.Record.CarIdentity, body.Record.TechnicalAssumptions)
	checklist := listing.BuildChecklist(body.Record, body.PhotoCount, body.AnalysisRan)

	c.JSON(http.StatusOK, readinessResponse{
		MissingFields:         missing,
		PriceRecomputeEnabled: len(missing) == 0,
		Checklist:             checklist,
		Score:                 checklist.Score(),
		Ready:                 checklist.Ready(),
		Badges:                listing.Badges(body.Original, body.EditedFields),
	})
}
