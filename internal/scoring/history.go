package scoring

// History is the undo stack of states captured before each accepted event.
type History struct {
	states []State
}

func (h *History) Push(s State) {
	h.states = append(h.states, s)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (State, bool) {
	if len(h.states) == 0 {
		return State{}, false
	}
	last := h.states[len(h.states)-1]
	h.states[len(h.states)-1] = State{}
	h.states = h.states[:len(h.states)-1]
	return last, true
}

func (h *History) Len() int {
	return len(h.states)
}

func (h *History) Clear() {
	h.states = nil
}
