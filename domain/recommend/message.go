package recommend

import "fmt"

const doNotBetMessage = "Do not bet: more than one multiplier is 6 or higher."

// Message renders the recommendation for display with two-decimal bounds.
func Message(r Recommendation) string {
	if !r.HasBand() {
		return doNotBetMessage
	}
	return fmt.Sprintf("Bet between %.2f and %.2f.", r.LowerBound, r.UpperBound)
}

func (r Recommendation) String() string { return Message(r) }
