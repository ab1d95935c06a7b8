package scoring

import (
	"fmt"
	"slices"
)

// BallKind tags the variant held by a Ball.
type BallKind string

const (
	BallRuns   BallKind = "runs"
	BallExtra  BallKind = "extra"
	BallWicket BallKind = "wicket"
)

// Ball is a single entry of an over: runs off the bat, an extra, or a wicket.
type Ball struct {
	Kind      BallKind      `json:"kind"`
	Runs      int           `json:"runs"`
	Extra     ExtraType     `json:"extra,omitempty"`
	Dismissal DismissalType `json:"dismissal,omitempty"`
}

func RunsBall(n int) Ball {
	return Ball{Kind: BallRuns, Runs: n}
}

func ExtraBall(t ExtraType, runs int) Ball {
	return Ball{Kind: BallExtra, Extra: t, Runs: runs}
}

func WicketBall(d DismissalType) Ball {
	return Ball{Kind: BallWicket, Dismissal: d}
}

// IsDot reports whether the ball conceded nothing to the bowler's maiden.
// Byes and leg byes are not charged to the bowler.
func (b Ball) IsDot() bool {
	switch b.Kind {
	case BallRuns:
		return b.Runs == 0
	case BallExtra:
		return !b.Extra.ChargedToBowler()
	case BallWicket:
		return true
	}
	return false
}

// String renders the ball the way a scorer writes it: "4", "Wd+1", "Wkt-Bowled".
func (b Ball) String() string {
	switch b.Kind {
	case BallExtra:
		s := b.Extra.Short()
		if b.Runs > 0 {
			s += fmt.Sprintf("+%d", b.Runs)
		}
		return s
	case BallWicket:
		return "Wkt-" + string(b.Dismissal)
	default:
		return fmt.Sprintf("%d", b.Runs)
	}
}

// Extras holds the fixed extras categories.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"noballs"`
	Byes    int `json:"byes"`
	LegByes int `json:"legbyes"`
	Penalty int `json:"penalty"`
}

func (e Extras) Total() int {
	return e.Wides + e.NoBalls + e.Byes + e.LegByes + e.Penalty
}

func (e *Extras) add(t ExtraType, runs int) {
	switch t {
	case Wides:
		e.Wides += runs
	case NoBalls:
		e.NoBalls += runs
	case Byes:
		e.Byes += runs
	case LegByes:
		e.LegByes += runs
	case Penalty:
		e.Penalty += runs
	}
}

// Get returns the accumulated runs for one category.
func (e Extras) Get(t ExtraType) int {
	switch t {
	case Wides:
		return e.Wides
	case NoBalls:
		return e.NoBalls
	case Byes:
		return e.Byes
	case LegByes:
		return e.LegByes
	case Penalty:
		return e.Penalty
	}
	return 0
}

type Batter struct {
	ID        int           `json:"id"`
	PlayerID  string        `json:"playerId"`
	Name      string        `json:"name"`
	Runs      int           `json:"score"`
	Balls     int           `json:"balls"`
	Fours     int           `json:"fours"`
	Sixes     int           `json:"sixes"`
	OnStrike  bool          `json:"onStrike"`
	Out       bool          `json:"isOut"`
	Retired   bool          `json:"retired,omitempty"`
	Dismissal DismissalType `json:"dismissal,omitempty"`
}

type Bowler struct {
	ID       int    `json:"id"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Overs    int    `json:"overs"`
	Balls    int    `json:"balls"`
	Maidens  int    `json:"maidens"`
	Runs     int    `json:"runs"`
	Wickets  int    `json:"wickets"`
}

// Partnership tracks the current not-out pair. Batter ids are zero when the slot is empty.
type Partnership struct {
	Runs    int `json:"runs"`
	Balls   int `json:"balls"`
	Batter1 int `json:"batsman1"`
	Batter2 int `json:"batsman2"`
}

type Over struct {
	Number int    `json:"overNumber"`
	Balls  []Ball `json:"balls"`
	Bowler string `json:"bowler"`
}

type FallOfWicket struct {
	Wicket int    `json:"wicket"`
	Score  int    `json:"score"`
	Batter string `json:"batsman"`
	Over   string `json:"over"`
}

// State is the full snapshot of an innings in progress. It is treated as an
// immutable value: the engine clones before it mutates.
type State struct {
	Inning          int    `json:"inning"`
	Target          int    `json:"target"`
	BattingTeamName string `json:"battingTeamName"`
	BowlingTeamName string `json:"bowlingTeamName"`
	BattingSide     Side   `json:"battingSide"`

	Score       int    `json:"score"`
	Wickets     int    `json:"wickets"`
	Overs       int    `json:"overs"`
	Balls       int    `json:"balls"`
	CurrentOver []Ball `json:"currentOver"`
	Extras      Extras `json:"extras"`

	Batsmen       []Batter       `json:"batsmen"`
	Partnership   Partnership    `json:"partnership"`
	Bowler        Bowler         `json:"bowler"`
	BowlingCard   []Bowler       `json:"bowlingCard"`
	FallOfWickets []FallOfWicket `json:"fallOfWickets"`

	NextBatsmanID int `json:"nextBatsmanId"`
	NextBowlerID  int `json:"nextBowlerId"`

	AllOvers     []Over   `json:"allOvers"`
	TeamAPlayers []Player `json:"teamAPlayers"`
	TeamBPlayers []Player `json:"teamBPlayers"`
	IsPowerplay  bool     `json:"isPowerplay"`

	NeedBatsman bool `json:"needBatsman"`
	NeedBowler  bool `json:"needBowler"`
}

// Clone returns a deep copy that shares no memory with s.
func (s State) Clone() State {
	c := s
	c.CurrentOver = slices.Clone(s.CurrentOver)
	c.Batsmen = slices.Clone(s.Batsmen)
	c.BowlingCard = slices.Clone(s.BowlingCard)
	c.FallOfWickets = slices.Clone(s.FallOfWickets)
	c.TeamAPlayers = slices.Clone(s.TeamAPlayers)
	c.TeamBPlayers = slices.Clone(s.TeamBPlayers)
	c.AllOvers = slices.Clone(s.AllOvers)
	for i := range c.AllOvers {
		c.AllOvers[i].Balls = slices.Clone(c.AllOvers[i].Balls)
	}
	return c
}

func (s State) BattingSquad() []Player {
	if s.BattingSide == SideB {
		return s.TeamBPlayers
	}
	return s.TeamAPlayers
}

func (s State) BowlingSquad() []Player {
	if s.BattingSide == SideB {
		return s.TeamAPlayers
	}
	return s.TeamBPlayers
}

// AllOutAt is the wickets count that ends the innings.
func (s State) AllOutAt() int {
	return len(s.BattingSquad()) - 1
}

func (s State) strikerIndex() int {
	for i, b := range s.Batsmen {
		if b.OnStrike && !b.Out {
			return i
		}
	}
	return -1
}

func (s State) nonStrikerIndex() int {
	for i, b := range s.Batsmen {
		if !b.OnStrike && !b.Out {
			return i
		}
	}
	return -1
}

// Striker returns the not-out batter on strike.
func (s State) Striker() (Batter, bool) {
	if i := s.strikerIndex(); i >= 0 {
		return s.Batsmen[i], true
	}
	return Batter{}, false
}

func (s State) NonStriker() (Batter, bool) {
	if i := s.nonStrikerIndex(); i >= 0 {
		return s.Batsmen[i], true
	}
	return Batter{}, false
}

func (s State) notOutCount() int {
	n := 0
	for _, b := range s.Batsmen {
		if !b.Out {
			n++
		}
	}
	return n
}

// AvailableBatsmen lists batting-side players who have not yet come in.
func (s State) AvailableBatsmen() []Player {
	used := make(map[string]bool, len(s.Batsmen))
	for _, b := range s.Batsmen {
		used[b.PlayerID] = true
	}
	var out []Player
	for _, p := range s.BattingSquad() {
		if !used[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// AvailableBowlers lists bowling-side players other than the active bowler.
func (s State) AvailableBowlers() []Player {
	var out []Player
	for _, p := range s.BowlingSquad() {
		if p.ID != s.Bowler.PlayerID {
			out = append(out, p)
		}
	}
	return out
}

// OverNotation renders completed overs and balls as "O.B".
func OverNotation(overs, balls int) string {
	return fmt.Sprintf("%d.%d", overs, balls)
}
