package multiplier

import (
	"strconv"
	"strings"
)

var separatorReplacer = strings.NewReplacer(":", ".", ";", ".", ",", ".")

// NormalizeTokens repairs common OCR damage in multiplier tokens. Colons,
// semicolons and commas become decimal points, and a token carrying an "x"
// with no decimal point and more than three characters gets one inserted
// before its last three characters ("150x" -> "1.50x").
func NormalizeTokens(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = separatorReplacer.Replace(w)
		if strings.Contains(w, "x") && !strings.Contains(w, ".") && len(w) > 3 {
			w = w[:len(w)-3] + "." + w[len(w)-3:]
		}
		out = append(out, w)
	}
	return out
}

// Parse extracts multiplier values from free text. Only tokens containing an
// "x" are considered; tokens that do not parse as a number once the "x" is
// removed are skipped.
func Parse(text string) []float64 {
	var values []float64
	for _, w := range NormalizeTokens(strings.Fields(text)) {
		if !strings.Contains(w, "x") {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(w, "x", ""), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}
