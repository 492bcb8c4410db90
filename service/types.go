package service

// PredictionResult is the recognition service response. Error is set instead
// of the other fields when the service rejects a request. Message accompanies
// successful edit-text responses.
type PredictionResult struct {
	Text        string    `json:"text"`
	Multipliers []float64 `json:"multipliers"`
	Prediction  float64   `json:"prediction"`
	Message     string    `json:"message,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// wireResult mirrors PredictionResult with an optional prediction so a reply
// that omits it can be told apart from a zero value.
type wireResult struct {
	Text        string    `json:"text"`
	Multipliers []float64 `json:"multipliers"`
	Prediction  *float64  `json:"prediction"`
	Message     string    `json:"message"`
	Error       string    `json:"error"`
}

func (w wireResult) result() *PredictionResult {
	out := &PredictionResult{Text: w.Text, Multipliers: w.Multipliers, Message: w.Message}
	if w.Prediction != nil {
		out.Prediction = *w.Prediction
	}
	return out
}

// ScreenshotRequest is the body of POST /predict-from-screenshot.
type ScreenshotRequest struct {
	Image string `json:"image" validate:"required,base64"`
}

// EditTextRequest is the body of POST /edit-text.
type EditTextRequest struct {
	Text string `json:"text" validate:"required"`
}

const (
	pathUpload     = "/upload"
	pathScreenshot = "/predict-from-screenshot"
	pathEditText   = "/edit-text"
	pathHealth     = "/"

	headerRequestID = "X-Request-ID"
	uploadField     = "image"

	msgMissingPrediction = "response has no prediction"
)
