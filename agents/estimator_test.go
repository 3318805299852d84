package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarketRowsFiltersInvalidPrices(t *testing.T) {
	raw := []map[string]any{
		{"price": 1_000_000, "year": 2015, "mileage": 60000},
		{"price": 0, "year": 2016},
		{"price": -5, "year": 2017},
		{"price": "1200000", "year": 2018}, // numeric string is fine
		{"year": 2019},                     // no price at all
	}
	rows := parseMarketRows(raw)
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1_000_000), rows[0].Price)
	assert.Equal(t, float64(1_200_000), rows[1].Price)
	assert.Equal(t, float64(2015), rows[0].Year)
}

func cheapAndExpensiveMarket() []marketRow {
	var rows []marketRow
	for i := 0; i < 10; i++ {
		rows = append(rows, marketRow{
			Year: 2005, Mileage: 250000, Engine: 2.0, Condition: 0.4,
			Transmission: "manual", Drive: "fwd", Damage: "битый",
			Price: 500_000 + float64(i)*10_000,
		})
		rows = append(rows, marketRow{
			Year: 2021, Mileage: 30000, Engine: 2.0, Condition: 0.9,
			Transmission: "automatic", Drive: "fwd", Damage: "не битый",
			Price: 2_500_000 + float64(i)*10_000,
		})
	}
	return rows
}

func TestPredictFollowsNearestCluster(t *testing.T) {
	rows := cheapAndExpensiveMarket()

	newish := marketRow{Year: 2020, Mileage: 40000, Engine: 2.0, Condition: 0.85,
		Transmission: "automatic", Drive: "fwd", Damage: "не битый"}
	old := marketRow{Year: 2006, Mileage: 230000, Engine: 2.0, Condition: 0.45,
		Transmission: "manual", Drive: "fwd", Damage: "битый"}

	priceNew := predict(newish, rows)
	priceOld := predict(old, rows)

	assert.Greater(t, priceNew, 2_000_000.0)
	assert.Less(t, priceOld, 1_000_000.0)
	assert.Greater(t, priceNew, priceOld)
}

func TestEstimateProducesRangeAndMAE(t *testing.T) {
	rows := cheapAndExpensiveMarket()
	subject := marketRow{Year: 2021, Mileage: 35000, Engine: 2.0, Condition: 0.9,
		Transmission: "automatic", Drive: "fwd", Damage: "не битый"}

	suggested, mae := estimate(subject, rows)
	assert.Greater(t, suggested, 0)
	assert.GreaterOrEqual(t, mae, 0.0)
}

func TestFeatureScaleDegenerateMarket(t *testing.T) {
	// all rows identical: every range collapses, scales stay 1 and the
	// prediction is just the shared price
	rows := []marketRow{}
	for i := 0; i < 12; i++ {
		rows = append(rows, marketRow{Year: 2015, Mileage: 50000, Price: 900_000})
	}
	assert.InDelta(t, 900_000, predict(rows[0], rows), 1.0)
}
