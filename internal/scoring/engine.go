package scoring

// Engine applies scoring events to a State. It holds only the immutable
// parts of the configuration it needs and is safe to copy.
type Engine struct {
	ballsPerOver int
	totalOvers   int
}

func NewEngine(cfg Config) Engine {
	cfg = cfg.WithDefaults()
	return Engine{ballsPerOver: cfg.BallsPerOver, totalOvers: cfg.TotalOvers}
}

// Apply returns the state that results from ev. The input is never modified;
// on error the input is returned as-is together with the reason for rejection.
func (e Engine) Apply(s State, ev Event) (State, error) {
	if err := e.check(s, ev); err != nil {
		return s, err
	}

	next := s.Clone()
	switch ev.Type {
	case EventRuns:
		e.runs(&next, ev.Runs)
	case EventExtra:
		e.extra(&next, ev.Extra, ev.Runs)
	case EventWicket:
		e.wicket(&next, ev.Dismissal)
	case EventSelectBatsman:
		next.introduceBatter(*ev.Player)
	case EventRetire:
		i := next.strikerIndex()
		next.Batsmen[i].Out = true
		next.Batsmen[i].Retired = true
		next.Batsmen[i].OnStrike = false
		next.introduceBatter(*ev.Player)
	case EventSelectBowler:
		next.changeBowler(*ev.Player)
	}
	return next, nil
}

func (e Engine) check(s State, ev Event) error {
	if ev.Delivery() {
		if s.NeedBatsman {
			return ErrAwaitingBatsman
		}
		if s.NeedBowler {
			return ErrAwaitingBowler
		}
	}

	switch ev.Type {
	case EventRuns:
		if ev.Runs < 0 || ev.Runs > 6 {
			return ErrInvalidRuns
		}
		if s.strikerIndex() < 0 {
			return ErrNoStriker
		}
	case EventExtra:
		if !ev.Extra.Valid() || ev.Runs < 0 {
			return ErrInvalidExtra
		}
	case EventWicket:
		if !ev.Dismissal.Valid() {
			return ErrInvalidDismissal
		}
		if s.strikerIndex() < 0 {
			return ErrNoStriker
		}
		if s.Wickets >= s.AllOutAt() {
			return ErrAllOut
		}
	case EventSelectBatsman:
		if ev.Player == nil {
			return ErrInvalidEvent
		}
		if !s.NeedBatsman {
			return ErrBatsmanNotNeeded
		}
	case EventRetire:
		if ev.Player == nil {
			return ErrInvalidEvent
		}
		if s.NeedBatsman {
			return ErrAwaitingBatsman
		}
		if s.strikerIndex() < 0 {
			return ErrNoStriker
		}
		if s.Wickets >= s.AllOutAt() {
			return ErrAllOut
		}
	case EventSelectBowler:
		if ev.Player == nil {
			return ErrInvalidEvent
		}
		if !s.NeedBowler && (s.Balls > 0 || len(s.CurrentOver) > 0) {
			return ErrOverInProgress
		}
	default:
		return ErrInvalidEvent
	}
	return nil
}

func (e Engine) runs(s *State, n int) {
	striker := &s.Batsmen[s.strikerIndex()]

	s.Score += n
	striker.Runs += n
	striker.Balls++
	switch n {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}
	s.Bowler.Runs += n
	s.Partnership.Runs += n

	s.CurrentOver = append(s.CurrentOver, RunsBall(n))

	// An odd run off the last ball is covered by the end-of-over swap.
	if e.legalDelivery(s) {
		return
	}
	if n%2 != 0 {
		s.rotateStrike()
	}
}

func (e Engine) extra(s *State, t ExtraType, runs int) {
	s.Extras.add(t, runs)
	s.Score += runs
	if t.ChargedToBowler() {
		s.Bowler.Runs += runs
	}
	s.CurrentOver = append(s.CurrentOver, ExtraBall(t, runs))

	if t.Legal() {
		e.legalDelivery(s)
	}
}

func (e Engine) wicket(s *State, d DismissalType) {
	i := s.strikerIndex()
	out := &s.Batsmen[i]
	out.Out = true
	out.OnStrike = false
	out.Dismissal = d

	s.Wickets++
	s.Bowler.Wickets++
	s.CurrentOver = append(s.CurrentOver, WicketBall(d))
	s.FallOfWickets = append(s.FallOfWickets, FallOfWicket{
		Wicket: s.Wickets,
		Score:  s.Score,
		Batter: out.Name,
		Over:   OverNotation(s.Overs, s.Balls+1),
	})

	e.legalDelivery(s)
	s.Partnership = Partnership{}

	s.NeedBatsman = s.Wickets < s.AllOutAt() && len(s.AvailableBatsmen()) > 0
}

// legalDelivery counts one legal ball and completes the over when it is the last.
// It reports whether the over was completed.
func (e Engine) legalDelivery(s *State) bool {
	s.Balls++
	s.Partnership.Balls++
	s.Bowler.Balls++
	if s.Balls < e.ballsPerOver {
		return false
	}
	e.completeOver(s)
	return true
}

func (e Engine) completeOver(s *State) {
	maiden := true
	for _, b := range s.CurrentOver {
		if !b.IsDot() {
			maiden = false
			break
		}
	}

	s.AllOvers = append(s.AllOvers, Over{
		Number: s.Overs + 1,
		Balls:  s.CurrentOver,
		Bowler: s.Bowler.Name,
	})
	s.Overs++
	s.Bowler.Overs++
	s.Bowler.Balls = 0
	if maiden {
		s.Bowler.Maidens++
	}

	s.Balls = 0
	s.CurrentOver = []Ball{}
	s.rotateStrike()

	if s.Overs >= PowerplayOvers {
		s.IsPowerplay = false
	}
	s.NeedBowler = s.Overs < e.totalOvers
}

func (s *State) rotateStrike() {
	for i := range s.Batsmen {
		if !s.Batsmen[i].Out {
			s.Batsmen[i].OnStrike = !s.Batsmen[i].OnStrike
		}
	}
}

// introduceBatter seats p as a new not-out batter. The newcomer takes strike
// unless the survivor already holds it, which happens when the previous
// wicket fell on the last ball of an over.
func (s *State) introduceBatter(p Player) {
	b := Batter{
		ID:       s.NextBatsmanID,
		PlayerID: p.ID,
		Name:     p.Name,
		OnStrike: s.strikerIndex() < 0,
	}
	s.NextBatsmanID++
	s.Batsmen = append(s.Batsmen, b)
	s.NeedBatsman = false

	s.Partnership = Partnership{Batter1: b.ID}
	for _, other := range s.Batsmen {
		if !other.Out && other.ID != b.ID {
			s.Partnership.Batter2 = other.ID
			break
		}
	}
}

func (s *State) changeBowler(p Player) {
	if s.Bowler.Overs > 0 || s.Bowler.Balls > 0 || s.Bowler.Runs > 0 || s.Bowler.Wickets > 0 {
		s.BowlingCard = append(s.BowlingCard, s.Bowler)
	}
	s.Bowler = Bowler{
		ID:       s.NextBowlerID,
		PlayerID: p.ID,
		Name:     p.Name,
	}
	s.NextBowlerID++
	s.NeedBowler = false
}
