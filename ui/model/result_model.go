package model

import (
	"time"

	"github.com/soocke/multiplier-advisor/domain/recommend"
	"github.com/soocke/multiplier-advisor/service"
)

// Snapshot is a copy of the displayed outcome.
type Snapshot struct {
	Result         *service.PredictionResult
	Recommendation recommend.Recommendation
	HasResult      bool
	LastError      error
	UpdatedAt      time.Time
}

// ResultModel holds the current prediction result and its recommendation.
// A successful round-trip replaces both; a failure only records the error.
// The zero value is ready to use.
type ResultModel struct {
	result    service.PredictionResult
	rec       recommend.Recommendation
	hasResult bool
	lastErr   error
	updatedAt time.Time

	successes int
	failures  int
}

func NewResultModel() *ResultModel { return &ResultModel{} }

// Apply replaces the current result wholesale and clears the last error.
func (m *ResultModel) Apply(res service.PredictionResult, rec recommend.Recommendation, now time.Time) {
	if m == nil {
		return
	}
	res.Multipliers = append([]float64(nil), res.Multipliers...)
	m.result = res
	m.rec = rec
	m.hasResult = true
	m.lastErr = nil
	m.updatedAt = now
	m.successes++
}

// Fail records err without touching the current result.
func (m *ResultModel) Fail(err error) {
	if m == nil || err == nil {
		return
	}
	m.lastErr = err
	m.failures++
}

// Snapshot returns a copy of the model state.
func (m *ResultModel) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	s := Snapshot{
		Recommendation: m.rec,
		HasResult:      m.hasResult,
		LastError:      m.lastErr,
		UpdatedAt:      m.updatedAt,
	}
	if m.hasResult {
		res := m.result
		res.Multipliers = append([]float64(nil), m.result.Multipliers...)
		s.Result = &res
	}
	return s
}

// Counts returns how many round-trips succeeded and failed.
func (m *ResultModel) Counts() (successes, failures int) {
	if m == nil {
		return 0, 0
	}
	return m.successes, m.failures
}
