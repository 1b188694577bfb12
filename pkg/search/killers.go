package search

import "github.com/wry-raven/raven/pkg/board"

const maxKillerPly = 128

// Killers remembers, per ply, the quiet moves that most recently caused a beta
// cutoff there. They are tried early in sibling nodes at the same ply, since a
// move that refuted one line often refutes a similar one.
type Killers struct {
	moves [maxKillerPly][2]board.Move
}

func NewKillers() *Killers {
	return &Killers{}
}

// Add records m as a killer at ply, displacing the older of the two slots.
// Captures are excluded by the caller: MVV-LVA already orders them well.
func (k *Killers) Add(ply int, m board.Move) {
	if ply >= maxKillerPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *Killers) Contains(ply int, m board.Move) bool {
	if ply >= maxKillerPly {
		return false
	}
	return k.moves[ply][0] == m || k.moves[ply][1] == m
}
