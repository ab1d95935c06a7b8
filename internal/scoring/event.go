package scoring

type EventType string

const (
	EventRuns          EventType = "RUNS"
	EventExtra         EventType = "EXTRA"
	EventWicket        EventType = "WICKET"
	EventSelectBatsman EventType = "SELECT_BATSMAN"
	EventRetire        EventType = "RETIRE"
	EventSelectBowler  EventType = "SELECT_BOWLER"
)

// Event is one discrete scoring input. Only the fields relevant to Type are read.
type Event struct {
	Type      EventType     `json:"type"`
	Runs      int           `json:"runs,omitempty"`
	Extra     ExtraType     `json:"extra,omitempty"`
	Dismissal DismissalType `json:"dismissal,omitempty"`
	Player    *Player       `json:"player,omitempty"`
}

func Runs(n int) Event {
	return Event{Type: EventRuns, Runs: n}
}

func Extra(t ExtraType, runs int) Event {
	return Event{Type: EventExtra, Extra: t, Runs: runs}
}

func Wicket(d DismissalType) Event {
	return Event{Type: EventWicket, Dismissal: d}
}

func SelectBatsman(p Player) Event {
	return Event{Type: EventSelectBatsman, Player: &p}
}

func Retire(p Player) Event {
	return Event{Type: EventRetire, Player: &p}
}

func SelectBowler(p Player) Event {
	return Event{Type: EventSelectBowler, Player: &p}
}

// Delivery reports whether the event is a ball bowled, as opposed to a selection.
func (e Event) Delivery() bool {
	switch e.Type {
	case EventRuns, EventExtra, EventWicket:
		return true
	}
	return false
}
