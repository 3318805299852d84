package agents

import (
	"math"
	"sort"
	"strings"
)

// Local price estimator over the synthetic market table. A similarity-
// weighted nearest-neighbour average replaces the original training step:
// same inputs, same suggested ± MAE contract, no external ML runtime.

type marketRow struct {
	Year        float64
	Engine      float64
	Mileage     float64
	Condition   float64
	Reliability float64
	DefectsCnt  float64
	Weak        float64
	Moderate    float64
	Strong      float64

	BodyType     string
	Color        string
	Steering     string
	Transmission string
	Drive        string
	Damage       string

	Price float64
}

// parseMarketRows keeps only rows with a positive numeric price. Field order
// and unknown keys in the raw rows are irrelevant here; the raw table is
// passed through to the client separately.
func parseMarketRows(raw []map[string]any) []marketRow {
	out := make([]marketRow, 0, len(raw))
	for _, r := range raw {
		price, ok := asFloat(r["price"])
		if !ok || price <= 0 {
			continue
		}
		row := marketRow{
			BodyType:     asString(r["body_type"]),
			Color:        asString(r["color"]),
			Steering:     asString(r["steering_wheel_position"]),
			Transmission: asString(r["transmission"]),
			Drive:        asString(r["drive_type"]),
			Damage:       asString(r["damage_flag"]),
			Price:        price,
		}
		row.Year, _ = asFloat(r["year"])
		row.Engine, _ = asFloat(r["engine_capacity"])
		row.Mileage, _ = asFloat(r["mileage"])
		row.Condition, _ = asFloat(r["visual_condition_score"])
		row.Reliability, _ = asFloat(r["inspection_reliability_score"])
		row.DefectsCnt, _ = asFloat(r["defects_cnt"])
		row.Weak, _ = asFloat(r["defects_severity_weak_cnt"])
		row.Moderate, _ = asFloat(r["defects_severity_moderate_cnt"])
		row.Strong, _ = asFloat(r["defects_severity_strong_cnt"])
		out = append(out, row)
	}
	return out
}

// estimate prices the subject against the market rows and reports the MAE of
// the same predictor on a held-out fifth of the table.
func estimate(subject marketRow, market []marketRow) (suggested int, mae float64) {
	var train, test []marketRow
	for i, r := range market {
		if i%5 == 4 {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}
	if len(train) == 0 || len(test) == 0 {
		train = market
		test = market
	}

	var absErrSum float64
	for _, r := range test {
		absErrSum += math.Abs(predict(r, train) - r.Price)
	}
	mae = absErrSum / float64(len(test))

	suggested = int(predict(subject, market) + 0.5)
	return suggested, mae
}

const neighbours = 10

// predict is a weighted k-nearest-neighbour average: rows closer to the
// target in feature space contribute more to the price.
func predict(target marketRow, rows []marketRow) float64 {
	scale := featureScale(rows)
	type scored struct {
		dist  float64
		price float64
	}
	all := make([]scored, 0, len(rows))
	for _, r := range rows {
		all = append(all, scored{dist: distance(target, r, scale), price: r.Price})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	k := neighbours
	if k > len(all) {
		k = len(all)
	}
	var weightSum, priceSum float64
	for _, s := range all[:k] {
		w := 1.0 / (0.05 + s.dist)
		weightSum += w
		priceSum += w * s.price
	}
	if weightSum == 0 {
		return 0
	}
	return priceSum / weightSum
}

type scales struct {
	year, engine, mileage, defects float64
}

// featureScale derives min-max ranges so numeric distances are comparable
// across features with very different magnitudes.
func featureScale(rows []marketRow) scales {
	s := scales{year: 1, engine: 1, mileage: 1, defects: 1}
	if len(rows) == 0 {
		return s
	}
	minY, maxY := rows[0].Year, rows[0].Year
	minE, maxE := rows[0].Engine, rows[0].Engine
	minM, maxM := rows[0].Mileage, rows[0].Mileage
	minD, maxD := rows[0].DefectsCnt, rows[0].DefectsCnt
	for _, r := range rows[1:] {
		minY, maxY = math.Min(minY, r.Year), math.Max(maxY, r.Year)
		minE, maxE = math.Min(minE, r.Engine), math.Max(maxE, r.Engine)
		minM, maxM = math.Min(minM, r.Mileage), math.Max(maxM, r.Mileage)
		minD, maxD = math.Min(minD, r.DefectsCnt), math.Max(maxD, r.DefectsCnt)
	}
	if d := maxY - minY; d > 0 {
		s.year = d
	}
	if d := maxE - minE; d > 0 {
		s.engine = d
	}
	if d := maxM - minM; d > 0 {
		s.mileage = d
	}
	if d := maxD - minD; d > 0 {
		s.defects = d
	}
	return s
}

func distance(a, b marketRow, s scales) float64 {
	d := 0.0
	d += math.Abs(a.Year-b.Year) / s.year
	d += math.Abs(a.Engine-b.Engine) / s.engine
	d += math.Abs(a.Mileage-b.Mileage) / s.mileage
	d += math.Abs(a.Condition - b.Condition)
	d += 0.5 * math.Abs(a.Reliability-b.Reliability)
	d += math.Abs(a.DefectsCnt-b.DefectsCnt) / s.defects
	d += 0.5 * (math.Abs(a.Weak-b.Weak) + math.Abs(a.Moderate-b.Moderate) + math.Abs(a.Strong-b.Strong)) / (3 * s.defects)

	for _, pair := range [][2]string{
		{a.BodyType, b.BodyType},
		{a.Color, b.Color},
		{a.Steering, b.Steering},
		{a.Transmission, b.Transmission},
		{a.Drive, b.Drive},
		{a.Damage, b.Damage},
	} {
		if !strings.EqualFold(strings.TrimSpace(pair[0]), strings.TrimSpace(pair[1])) {
			d += 0.5
		}
	}
	return d
}
