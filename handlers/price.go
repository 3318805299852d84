package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"carad/agents"
	"carad/listing"
	"carad/models"
)

// TimeoutMessage is the user-facing text for a price recompute that ran out
// of time. The client shows it instead of a generic failure and keeps the
// previously displayed price.
const TimeoutMessage = "Расчёт цены не уложился в отведённое время. Попробуйте ещё раз."

// RecalculatePrice reprices the car from the current (possibly user-edited)
// form values. Only the price estimation block is produced — nothing else in
// the form is touched. The call carries its own deadline, separate from the
// transport timeout.
func RecalculatePrice(c *gin.Context) {
	var body models.RecalculatePriceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// accident checkbox wins over free text, then the user's text, then the
	// canonical "not damaged" default
	damageFlag := listing.NormalizeDamageFlag(body.CarIdentity, body.TechnicalAssumptions)

	ctx, cancel := context.WithTimeout(c.Request.Context(), PriceTimeout)
	defer cancel()

	reliability := 0.7
	result := agents.RunPricing(ctx, agents.PricingInput{
		Identity:         body.CarIdentity,
		DamageFlag:       damageFlag,
		ConditionScore:   body.VisualCondition.OverallScore,
		ReliabilityScore: reliability,
		Defects:          body.VisualCondition.Defects,
	})

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Printf("recalculate-price: deadline exceeded after %s", PriceTimeout)
		msg := TimeoutMessage
		result = models.PriceEstimation{MissingFields: []string{}, ErrorMessage: &msg}
	}

	c.JSON(http.StatusOK, result)
}
