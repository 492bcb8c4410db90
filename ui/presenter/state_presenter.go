package presenter

import (
	"github.com/soocke/multiplier-advisor/domain/selection"
)

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatePresenter mirrors selector transitions into the view. Register OnState
// as a selector state listener.
type StatePresenter struct {
	view   StateView
	latest selection.State
	shown  bool
}

func NewStatePresenter(view StateView) *StatePresenter {
	return &StatePresenter{view: view}
}

// OnState updates the label when the state actually changed.
func (p *StatePresenter) OnState(_, next selection.State) {
	if p == nil || p.view == nil {
		return
	}
	if p.shown && next == p.latest {
		return
	}
	p.latest, p.shown = next, true
	p.view.SetStateLabel("Selection: " + next.String())
}
