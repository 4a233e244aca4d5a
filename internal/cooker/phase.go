package cooker

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/hammamikhairi/ricecooker/internal/domain"
)

// Phase machine events.
const (
	eventStart  = "start"  // idle or warming -> cooking
	eventFinish = "finish" // cooking -> idle
	eventHold   = "hold"   // cooking -> warming, when keep warm was on
)

// phaseMachine tracks Idle / Cooking / Warming. Guards that depend on power,
// ingredients or flags live in Cooker; this only rejects impossible moves.
type phaseMachine struct {
	fsm *fsm.FSM
}

func newPhaseMachine() *phaseMachine {
	idle := domain.PhaseIdle.String()
	cooking := domain.PhaseCooking.String()
	warming := domain.PhaseWarming.String()

	return &phaseMachine{
		fsm: fsm.NewFSM(
			idle,
			fsm.Events{
				{Name: eventStart, Src: []string{idle, warming}, Dst: cooking},
				{Name: eventFinish, Src: []string{cooking}, Dst: idle},
				{Name: eventHold, Src: []string{cooking}, Dst: warming},
			},
			fsm.Callbacks{},
		),
	}
}

func (p *phaseMachine) current() domain.Phase {
	return domain.PhaseFromString(p.fsm.Current())
}

func (p *phaseMachine) is(phase domain.Phase) bool {
	return p.fsm.Is(phase.String())
}

func (p *phaseMachine) fire(ctx context.Context, event string) error {
	return p.fsm.Event(ctx, event)
}
