package scoring

import "fmt"

type Phase string

const (
	PhaseFirstInnings  Phase = "first_innings"
	PhaseInningsBreak  Phase = "innings_break"
	PhaseSecondInnings Phase = "second_innings"
	PhaseComplete      Phase = "complete"
)

type MarginType string

const (
	MarginRuns    MarginType = "runs"
	MarginWickets MarginType = "wickets"
	MarginTie     MarginType = "tie"
)

// Result is handed to the caller once the second innings ends.
type Result struct {
	State        State      `json:"matchState"`
	FirstInnings State      `json:"firstInnings"`
	Outcome      string     `json:"result"`
	Winner       string     `json:"winner,omitempty"`
	Margin       int        `json:"margin"`
	MarginType   MarginType `json:"marginType"`
	TotalOvers   int        `json:"totalOvers"`
}

// Match drives one match through both innings. It is not safe for concurrent
// use; callers serialise access.
type Match struct {
	cfg     Config
	engine  Engine
	state   State
	first   *State
	history History
	phase   Phase
	result  *Result
}

func NewMatch(cfg Config) (*Match, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Match{
		cfg:    cfg,
		engine: NewEngine(cfg),
		state:  openingState(cfg, 1, cfg.BattingFirst(), 0),
		phase:  PhaseFirstInnings,
	}, nil
}

// Restore rebuilds a match from a stored snapshot. The undo history is not
// part of the snapshot and starts empty.
func Restore(cfg Config, phase Phase, state State, first *State) (*Match, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch phase {
	case PhaseFirstInnings, PhaseInningsBreak, PhaseSecondInnings, PhaseComplete:
	default:
		return nil, fmt.Errorf("%w: unknown phase %q", ErrInvalidConfig, phase)
	}
	m := &Match{
		cfg:    cfg,
		engine: NewEngine(cfg),
		state:  state.Clone(),
		phase:  phase,
	}
	if first != nil {
		f := first.Clone()
		m.first = &f
	}
	if phase == PhaseComplete {
		r := m.computeResult()
		m.result = &r
	}
	return m, nil
}

func openingState(cfg Config, inning int, batting Side, target int) State {
	bat := cfg.team(batting)
	bowl := cfg.team(batting.Other())

	batsmen := make([]Batter, 0, 2)
	for i, p := range bat.Players[:2] {
		batsmen = append(batsmen, Batter{
			ID:       i + 1,
			PlayerID: p.ID,
			Name:     p.Name,
			OnStrike: i == 0,
		})
	}
	opener := bowl.Players[0]

	return State{
		Inning:          inning,
		Target:          target,
		BattingTeamName: bat.Name,
		BowlingTeamName: bowl.Name,
		BattingSide:     batting,
		CurrentOver:     []Ball{},
		Batsmen:         batsmen,
		Partnership:     Partnership{Batter1: 1, Batter2: 2},
		Bowler:          Bowler{ID: 1, PlayerID: opener.ID, Name: opener.Name},
		BowlingCard:     []Bowler{},
		FallOfWickets:   []FallOfWicket{},
		NextBatsmanID:   3,
		NextBowlerID:    2,
		AllOvers:        []Over{},
		TeamAPlayers:    append([]Player(nil), cfg.TeamA.Players...),
		TeamBPlayers:    append([]Player(nil), cfg.TeamB.Players...),
		IsPowerplay:     true,
	}
}

func (m *Match) Config() Config { return m.cfg }

func (m *Match) Phase() Phase { return m.phase }

// State returns a copy of the live state.
func (m *Match) State() State { return m.state.Clone() }

// FirstInnings returns the final first-innings state once the second innings has started.
func (m *Match) FirstInnings() (State, bool) {
	if m.first == nil {
		return State{}, false
	}
	return m.first.Clone(), true
}

func (m *Match) Result() (Result, bool) {
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

func (m *Match) HistoryLen() int { return m.history.Len() }

// Apply runs ev through the engine and, if accepted, records the previous
// state for undo and re-evaluates the innings.
func (m *Match) Apply(ev Event) error {
	switch m.phase {
	case PhaseInningsBreak:
		return ErrInningsOver
	case PhaseComplete:
		return ErrMatchComplete
	}

	next, err := m.engine.Apply(m.state, ev)
	if err != nil {
		return err
	}
	m.history.Push(m.state)
	m.state = next
	m.evaluate()
	return nil
}

// Undo restores the state captured before the last accepted event. Undo
// never crosses into the previous innings and is closed once the result exists.
func (m *Match) Undo() error {
	if m.phase == PhaseComplete {
		return ErrMatchComplete
	}
	prev, ok := m.history.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	m.state = prev
	if m.phase == PhaseInningsBreak {
		m.phase = PhaseFirstInnings
	}
	return nil
}

func (m *Match) StartSecondInnings() error {
	switch m.phase {
	case PhaseComplete:
		return ErrMatchComplete
	case PhaseInningsBreak:
	default:
		return ErrNotInningsBreak
	}

	first := m.state
	m.first = &first
	m.state = openingState(m.cfg, 2, first.BattingSide.Other(), first.Target)
	m.history.Clear()
	m.phase = PhaseSecondInnings
	return nil
}

func (m *Match) inningsOver() bool {
	s := m.state
	if s.Overs >= m.cfg.TotalOvers {
		return true
	}
	if s.Wickets >= s.AllOutAt() {
		return true
	}
	// Retirements can empty the bench before the wicket limit is reached.
	if s.notOutCount() < 2 && len(s.AvailableBatsmen()) == 0 {
		return true
	}
	return s.Inning == 2 && s.Score >= s.Target
}

func (m *Match) evaluate() {
	if !m.inningsOver() {
		return
	}
	m.state.NeedBatsman = false
	m.state.NeedBowler = false

	if m.state.Inning == 1 {
		m.state.Target = m.state.Score + 1
		m.phase = PhaseInningsBreak
		return
	}

	r := m.computeResult()
	m.result = &r
	m.phase = PhaseComplete
}

func (m *Match) computeResult() Result {
	s := m.state
	r := Result{State: s.Clone(), TotalOvers: m.cfg.TotalOvers}
	if m.first != nil {
		r.FirstInnings = m.first.Clone()
	}

	switch {
	case s.Score == s.Target-1:
		r.MarginType = MarginTie
		r.Outcome = "Match Tied!"
	case s.Score >= s.Target:
		r.Winner = s.BattingTeamName
		r.Margin = s.AllOutAt() - s.Wickets
		r.MarginType = MarginWickets
		r.Outcome = fmt.Sprintf("%s won by %d %s", r.Winner, r.Margin, plural(r.Margin, "wicket"))
	default:
		r.Winner = s.BowlingTeamName
		r.Margin = s.Target - s.Score - 1
		r.MarginType = MarginRuns
		r.Outcome = fmt.Sprintf("%s won by %d %s", r.Winner, r.Margin, plural(r.Margin, "run"))
	}
	return r
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
