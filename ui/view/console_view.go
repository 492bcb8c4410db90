package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/soocke/multiplier-advisor/domain/recommend"
	"github.com/soocke/multiplier-advisor/service"
)

// ConsoleView prints results and errors as plain text lines.
type ConsoleView struct {
	out   io.Writer
	state string
}

func NewConsoleView(out io.Writer) *ConsoleView { return &ConsoleView{out: out} }

func (v *ConsoleView) ShowResult(res service.PredictionResult, rec recommend.Recommendation) {
	if v == nil || v.out == nil {
		return
	}
	var b strings.Builder
	if res.Message != "" {
		fmt.Fprintf(&b, "Service: %s\n", res.Message)
	}
	if res.Text != "" {
		fmt.Fprintf(&b, "Text: %s\n", strings.Join(strings.Fields(res.Text), " "))
	}
	fmt.Fprintf(&b, "Multipliers: %s\n", formatMultipliers(res.Multipliers))
	fmt.Fprintf(&b, "Prediction: %.2f\n", res.Prediction)
	if rec.HasBand() {
		fmt.Fprintf(&b, "Adjusted prediction: %.2f (penalty %.2f)\n", rec.AdjustedPrediction, rec.TotalPenalty)
	}
	fmt.Fprintf(&b, "Recommendation: %s\n", recommend.Message(rec))
	_, _ = io.WriteString(v.out, b.String())
}

func (v *ConsoleView) ShowError(err error) {
	if v == nil || v.out == nil || err == nil {
		return
	}
	fmt.Fprintf(v.out, "Error: %v\n", err)
}

// SetStateLabel prints the selection state when it changes.
func (v *ConsoleView) SetStateLabel(s string) {
	if v == nil || v.out == nil || s == v.state {
		return
	}
	v.state = s
	fmt.Fprintln(v.out, s)
}

func formatMultipliers(ms []float64) string {
	if len(ms) == 0 {
		return "none"
	}
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = fmt.Sprintf("%.2fx", m)
	}
	return strings.Join(parts, " ")
}
