// Package recommend turns a raw prediction and the multipliers read from a
// round history into a penalty-adjusted betting band.
package recommend

import "math"

// Kind identifies which rule produced a recommendation.
type Kind int

const (
	// KindDefault: band [prediction-0.3, prediction].
	KindDefault Kind = iota
	// KindDoNotBet: more than one multiplier at or above 6. No band.
	KindDoNotBet
	// KindHighMultiplier: a multiplier at or above 7. Band [prediction-1.2, prediction].
	KindHighMultiplier
	// KindPenalized: total penalty above 0.8. Band [adjusted, prediction].
	KindPenalized
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindDoNotBet:
		return "do_not_bet"
	case KindHighMultiplier:
		return "high_multiplier"
	case KindPenalized:
		return "penalized"
	default:
		return "unknown"
	}
}

const (
	doNotBetThreshold    = 6.0
	highMultiplierCutoff = 7.0
	penaltyBandThreshold = 0.8
	highMultiplierSpread = 1.2
	defaultSpread        = 0.3
	predictionFloor      = 1.0
)

// bucket is a half-open range (Lo, Hi] with a per-item penalty.
type bucket struct {
	Lo, Hi  float64
	Penalty float64
}

var buckets = [...]bucket{
	{Lo: 2, Hi: 3, Penalty: 0.15},
	{Lo: 3, Hi: 4, Penalty: 0.20},
	{Lo: 4, Hi: 5, Penalty: 0.30},
	{Lo: 5, Hi: 6, Penalty: 0.40},
}

// Recommendation is the engine output. Bounds are exact; formatting to two
// decimals happens in Message.
type Recommendation struct {
	Prediction         float64
	AdjustedPrediction float64
	TotalPenalty       float64
	LowerBound         float64
	UpperBound         float64
	Kind               Kind
}

// HasBand reports whether the recommendation carries betting bounds.
func (r Recommendation) HasBand() bool { return r.Kind != KindDoNotBet }

// BucketCounts returns how many multipliers fall in each penalty bucket.
func BucketCounts(multipliers []float64) [len(buckets)]int {
	var counts [len(buckets)]int
	for _, m := range multipliers {
		for i, b := range buckets {
			if m > b.Lo && m <= b.Hi {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// TotalPenalty sums count x penalty over the buckets. Values at or below 2
// and above 6 contribute nothing.
func TotalPenalty(multipliers []float64) float64 {
	counts := BucketCounts(multipliers)
	total := 0.0
	for i, b := range buckets {
		total += float64(counts[i]) * b.Penalty
	}
	return total
}

// Recommend is pure and independent of the order of multipliers. A
// prediction below 1 is accepted and clamps to 1 after adjustment.
func Recommend(prediction float64, multipliers []float64) Recommendation {
	penalty := TotalPenalty(multipliers)
	rec := Recommendation{
		Prediction:         prediction,
		TotalPenalty:       penalty,
		AdjustedPrediction: math.Max(predictionFloor, prediction-penalty),
	}

	atOrAboveSix := 0
	anyAboveSeven := false
	for _, m := range multipliers {
		if m >= doNotBetThreshold {
			atOrAboveSix++
		}
		if m >= highMultiplierCutoff {
			anyAboveSeven = true
		}
	}

	switch {
	case atOrAboveSix > 1:
		rec.Kind = KindDoNotBet
	case anyAboveSeven:
		rec.Kind = KindHighMultiplier
		rec.LowerBound = math.Max(predictionFloor, prediction-highMultiplierSpread)
		rec.UpperBound = prediction
	case penalty > penaltyBandThreshold:
		rec.Kind = KindPenalized
		rec.LowerBound = math.Max(predictionFloor, rec.AdjustedPrediction)
		rec.UpperBound = prediction
	default:
		rec.Kind = KindDefault
		rec.LowerBound = math.Max(predictionFloor, prediction-defaultSpread)
		rec.UpperBound = prediction
	}
	return rec
}
