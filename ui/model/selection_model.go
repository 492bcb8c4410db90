package model

import (
	"github.com/soocke/multiplier-advisor/domain/raster"
)

// SelectionModel holds the last committed region. Zero value means no region.
// No synchronization: only the presenter writes it.
type SelectionModel struct {
	rect raster.Rect
	set  bool
}

func NewSelectionModel() *SelectionModel { return &SelectionModel{} }

// Commit stores r. An empty rectangle clears the model.
func (m *SelectionModel) Commit(r raster.Rect) {
	if m == nil {
		return
	}
	if r.Empty() {
		m.Clear()
		return
	}
	m.rect, m.set = r, true
}

// Clear forgets the stored region.
func (m *SelectionModel) Clear() {
	if m == nil {
		return
	}
	m.rect, m.set = raster.Rect{}, false
}

// Region returns the committed rectangle and whether one exists.
func (m *SelectionModel) Region() (raster.Rect, bool) {
	if m == nil {
		return raster.Rect{}, false
	}
	return m.rect, m.set
}
