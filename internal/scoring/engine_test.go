package scoring

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestRunsAccumulate(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, Extra(Wides, 1), Runs(2), Runs(4), Runs(0), Runs(6))

	s := m.State()
	if s.Score != 13 {
		t.Fatalf("score = %d, want 13", s.Score)
	}
	if s.Balls != 4 || s.Overs != 0 {
		t.Fatalf("overs.balls = %d.%d, want 0.4", s.Overs, s.Balls)
	}
	striker, _ := s.Striker()
	if striker.Runs != 12 || striker.Balls != 4 || striker.Fours != 1 || striker.Sixes != 1 {
		t.Fatalf("unexpected striker figures %+v", striker)
	}
	if s.Bowler.Runs != 13 {
		t.Fatalf("bowler runs = %d, want 13", s.Bowler.Runs)
	}
	if s.Partnership.Runs != 12 || s.Partnership.Balls != 4 {
		t.Fatalf("partnership = %+v", s.Partnership)
	}
	checkInvariants(t, s, 6)
}

func TestOddRunsRotateStrike(t *testing.T) {
	m := newTestMatch(t, 5, 11)

	mustApply(t, m, Runs(1))
	if id := strikerID(t, m.State()); id != 2 {
		t.Fatalf("striker after single = %d, want 2", id)
	}
	mustApply(t, m, Runs(3))
	if id := strikerID(t, m.State()); id != 1 {
		t.Fatalf("striker after three = %d, want 1", id)
	}
	mustApply(t, m, Runs(2))
	if id := strikerID(t, m.State()); id != 1 {
		t.Fatalf("striker after two = %d, want 1", id)
	}
}

func TestOverCompletion(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, Runs(1), Runs(0), Extra(NoBalls, 1), Runs(2), Runs(0), Runs(4), Runs(0))

	s := m.State()
	if s.Overs != 1 || s.Balls != 0 {
		t.Fatalf("overs.balls = %d.%d, want 1.0", s.Overs, s.Balls)
	}
	if len(s.AllOvers) != 1 {
		t.Fatalf("allOvers len = %d, want 1", len(s.AllOvers))
	}
	over := s.AllOvers[0]
	want := []Ball{RunsBall(1), RunsBall(0), ExtraBall(NoBalls, 1), RunsBall(2), RunsBall(0), RunsBall(4), RunsBall(0)}
	if over.Number != 1 || over.Bowler != "b1" || !reflect.DeepEqual(over.Balls, want) {
		t.Fatalf("unexpected archived over %+v", over)
	}
	if len(s.CurrentOver) != 0 {
		t.Fatalf("current over not cleared: %v", s.CurrentOver)
	}
	if s.Bowler.Overs != 1 || s.Bowler.Balls != 0 {
		t.Fatalf("bowler overs = %s", s.Bowler.OversBowled())
	}
	if !s.NeedBowler {
		t.Fatalf("expected bowler prompt after the over")
	}
	checkInvariants(t, s, 6)
}

func TestLastBallOddRunSwapsOnce(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, dots(5)...)
	mustApply(t, m, Runs(1))

	if id := strikerID(t, m.State()); id != 2 {
		t.Fatalf("striker after odd last ball = %d, want 2 (single end-of-over swap)", id)
	}
}

func TestLastBallEvenRunSwapsAtOverEnd(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, dots(5)...)
	mustApply(t, m, Runs(2))

	if id := strikerID(t, m.State()); id != 2 {
		t.Fatalf("striker after over = %d, want 2", id)
	}
}

func TestExtrasLegality(t *testing.T) {
	tests := []struct {
		name        string
		extra       ExtraType
		runs        int
		wantBalls   int
		bowlerRuns  int
		partnership int
	}{
		{name: "wide", extra: Wides, runs: 1, wantBalls: 0, bowlerRuns: 1},
		{name: "no ball", extra: NoBalls, runs: 2, wantBalls: 0, bowlerRuns: 2},
		{name: "penalty", extra: Penalty, runs: 5, wantBalls: 0, bowlerRuns: 5},
		{name: "byes", extra: Byes, runs: 2, wantBalls: 1, bowlerRuns: 0, partnership: 1},
		{name: "leg byes", extra: LegByes, runs: 1, wantBalls: 1, bowlerRuns: 0, partnership: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, 5, 11)
			mustApply(t, m, Extra(tt.extra, tt.runs))

			s := m.State()
			if s.Balls != tt.wantBalls {
				t.Errorf("balls = %d, want %d", s.Balls, tt.wantBalls)
			}
			if s.Score != tt.runs || s.Extras.Get(tt.extra) != tt.runs {
				t.Errorf("score = %d, extras[%s] = %d, want %d", s.Score, tt.extra, s.Extras.Get(tt.extra), tt.runs)
			}
			if s.Bowler.Runs != tt.bowlerRuns {
				t.Errorf("bowler runs = %d, want %d", s.Bowler.Runs, tt.bowlerRuns)
			}
			if s.Partnership.Balls != tt.partnership {
				t.Errorf("partnership balls = %d, want %d", s.Partnership.Balls, tt.partnership)
			}
			if want := ExtraBall(tt.extra, tt.runs); s.CurrentOver[0] != want {
				t.Errorf("current over = %v, want %v", s.CurrentOver, want)
			}
			checkInvariants(t, s, 6)
		})
	}
}

func TestWidesNeverCompleteOver(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, dots(5)...)
	mustApply(t, m, Extra(Wides, 1), Extra(NoBalls, 0), Extra(Penalty, 5))

	s := m.State()
	if s.Balls != 5 || s.Overs != 0 {
		t.Fatalf("overs.balls = %d.%d, want 0.5", s.Overs, s.Balls)
	}

	mustApply(t, m, Extra(Byes, 1))
	s = m.State()
	if s.Balls != 0 || s.Overs != 1 {
		t.Fatalf("byes on the last ball should complete the over, got %d.%d", s.Overs, s.Balls)
	}
}

func TestWicket(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, Runs(2), Runs(2), Wicket(Caught))

	s := m.State()
	if s.Wickets != 1 || s.Balls != 3 {
		t.Fatalf("wickets = %d balls = %d", s.Wickets, s.Balls)
	}
	if s.Partnership != (Partnership{}) {
		t.Fatalf("partnership not reset: %+v", s.Partnership)
	}
	if s.Bowler.Wickets != 1 {
		t.Fatalf("bowler wickets = %d", s.Bowler.Wickets)
	}
	if !s.Batsmen[0].Out || s.Batsmen[0].Dismissal != Caught {
		t.Fatalf("striker not dismissed: %+v", s.Batsmen[0])
	}
	if want := (FallOfWicket{Wicket: 1, Score: 4, Batter: "a1", Over: "0.3"}); s.FallOfWickets[0] != want {
		t.Fatalf("fall of wicket = %+v, want %+v", s.FallOfWickets[0], want)
	}
	if !s.NeedBatsman {
		t.Fatalf("expected batter prompt")
	}
	if err := m.Apply(Runs(1)); !errors.Is(err, ErrAwaitingBatsman) {
		t.Fatalf("runs before selection: got %v, want ErrAwaitingBatsman", err)
	}

	mustApply(t, m, SelectBatsman(Player{ID: "a3", Name: "a3"}))
	s = m.State()
	if id := strikerID(t, s); id != 3 {
		t.Fatalf("new batter should take strike mid-over, striker = %d", id)
	}
	if s.NextBatsmanID != 4 {
		t.Fatalf("nextBatsmanId = %d, want 4", s.NextBatsmanID)
	}
	if s.Partnership != (Partnership{Batter1: 3, Batter2: 2}) {
		t.Fatalf("partnership = %+v", s.Partnership)
	}
	checkInvariants(t, s, 6)
}

func TestWicketOnLastBallNewBatterAtNonStrikerEnd(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, dots(5)...)
	mustApply(t, m, Wicket(Bowled))

	s := m.State()
	if !s.NeedBatsman || !s.NeedBowler {
		t.Fatalf("expected both prompts, got batsman=%v bowler=%v", s.NeedBatsman, s.NeedBowler)
	}
	if s.Bowler.Maidens != 1 {
		t.Fatalf("wicket maiden not credited, maidens = %d", s.Bowler.Maidens)
	}

	mustApply(t, m, SelectBatsman(Player{ID: "a3", Name: "a3"}), SelectBowler(Player{ID: "b2", Name: "b2"}))
	s = m.State()
	if id := strikerID(t, s); id != 2 {
		t.Fatalf("survivor should face the next over, striker = %d", id)
	}
	checkInvariants(t, s, 6)
}

func TestRetire(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, Runs(4), Retire(Player{ID: "a3", Name: "a3"}))

	s := m.State()
	if s.Wickets != 0 {
		t.Fatalf("retirement counted as wicket")
	}
	if !s.Batsmen[0].Out || !s.Batsmen[0].Retired {
		t.Fatalf("retired batter not marked: %+v", s.Batsmen[0])
	}
	if id := strikerID(t, s); id != 3 {
		t.Fatalf("striker = %d, want 3", id)
	}
	if s.Partnership != (Partnership{Batter1: 3, Batter2: 2}) {
		t.Fatalf("partnership = %+v", s.Partnership)
	}
	checkInvariants(t, s, 6)
}

func TestSelectBowler(t *testing.T) {
	m := newTestMatch(t, 5, 11)

	mustApply(t, m, Runs(1))
	if err := m.Apply(SelectBowler(Player{ID: "b2", Name: "b2"})); !errors.Is(err, ErrOverInProgress) {
		t.Fatalf("mid-over change: got %v, want ErrOverInProgress", err)
	}

	mustApply(t, m, Runs(4))
	mustApply(t, m, dots(4)...)
	if err := m.Apply(Runs(1)); !errors.Is(err, ErrAwaitingBowler) {
		t.Fatalf("delivery before bowler change: got %v, want ErrAwaitingBowler", err)
	}
	mustApply(t, m, SelectBowler(Player{ID: "b2", Name: "b2"}))

	s := m.State()
	if s.Bowler.ID != 2 || s.Bowler.Name != "b2" || s.Bowler.Overs != 0 || s.Bowler.Runs != 0 {
		t.Fatalf("unexpected new bowler %+v", s.Bowler)
	}
	if s.NextBowlerID != 3 {
		t.Fatalf("nextBowlerId = %d, want 3", s.NextBowlerID)
	}
	if len(s.BowlingCard) != 1 || s.BowlingCard[0].Runs != 5 || s.BowlingCard[0].Overs != 1 {
		t.Fatalf("previous spell not archived: %+v", s.BowlingCard)
	}
	mustApply(t, m, Runs(1))
}

func TestOpeningBowlerCanBeSwappedBeforeFirstBall(t *testing.T) {
	m := newTestMatch(t, 5, 11)
	mustApply(t, m, SelectBowler(Player{ID: "b4", Name: "b4"}))

	s := m.State()
	if s.Bowler.Name != "b4" || len(s.BowlingCard) != 0 {
		t.Fatalf("unexpected bowler state %+v / %+v", s.Bowler, s.BowlingCard)
	}
}

func TestMaidens(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{name: "six dots", events: dots(6), want: 1},
		{name: "byes and leg byes", events: []Event{Runs(0), Extra(Byes, 4), Runs(0), Extra(LegByes, 1), Runs(0), Runs(0)}, want: 1},
		{name: "single conceded", events: []Event{Runs(0), Runs(0), Runs(1), Runs(0), Runs(0), Runs(0)}, want: 0},
		{name: "boundary after dots", events: []Event{Runs(0), Runs(0), Runs(0), Runs(0), Runs(0), Runs(4)}, want: 0},
		{name: "wide", events: []Event{Extra(Wides, 1), Runs(0), Runs(0), Runs(0), Runs(0), Runs(0), Runs(0)}, want: 0},
		{name: "wicket in a dot over", events: []Event{Runs(0), Wicket(Bowled), SelectBatsman(Player{ID: "a3", Name: "a3"}), Runs(0), Runs(0), Runs(0), Runs(0)}, want: 1},
		{name: "run out in a dot over", events: []Event{Runs(0), Runs(0), Wicket(RunOut), SelectBatsman(Player{ID: "a3", Name: "a3"}), Runs(0), Runs(0), Runs(0)}, want: 1},
		{name: "no ball", events: []Event{Runs(0), Extra(NoBalls, 1), Runs(0), Runs(0), Runs(0), Runs(0), Runs(0)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, 5, 11)
			mustApply(t, m, tt.events...)
			if got := m.State().Bowler.Maidens; got != tt.want {
				t.Fatalf("maidens = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPowerplay(t *testing.T) {
	m := newTestMatch(t, 10, 11)
	bowlers := []Player{{ID: "b2", Name: "b2"}, {ID: "b1", Name: "b1"}}

	for over := 1; over <= 6; over++ {
		if !m.State().IsPowerplay {
			t.Fatalf("powerplay cleared early, before over %d", over)
		}
		mustApply(t, m, dots(6)...)
		mustApply(t, m, SelectBowler(bowlers[(over-1)%2]))
	}
	if m.State().IsPowerplay {
		t.Fatalf("powerplay should end after 6 overs")
	}
}

func TestRejectedEventsLeaveStateUnchanged(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want error
	}{
		{name: "seven runs", ev: Runs(7), want: ErrInvalidRuns},
		{name: "negative runs", ev: Runs(-1), want: ErrInvalidRuns},
		{name: "unknown extra", ev: Extra("Overthrow", 1), want: ErrInvalidExtra},
		{name: "negative extra", ev: Extra(Byes, -1), want: ErrInvalidExtra},
		{name: "unknown dismissal", ev: Wicket("Timed Out"), want: ErrInvalidDismissal},
		{name: "batter not needed", ev: SelectBatsman(Player{ID: "a3"}), want: ErrBatsmanNotNeeded},
		{name: "missing player", ev: Event{Type: EventSelectBowler}, want: ErrInvalidEvent},
		{name: "unknown type", ev: Event{Type: "DANCE"}, want: ErrInvalidEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, 5, 11)
			before := m.State()
			if err := m.Apply(tt.ev); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if !reflect.DeepEqual(before, m.State()) {
				t.Fatalf("state changed after rejected event")
			}
			if m.HistoryLen() != 0 {
				t.Fatalf("rejected event recorded in history")
			}
		})
	}
}

func TestWicketRejectedWhenAllOut(t *testing.T) {
	cfg := testConfig(5, 3)
	e := NewEngine(cfg)
	s := openingState(cfg, 1, SideA, 0)
	s.Wickets = 2

	if _, err := e.Apply(s, Wicket(Bowled)); !errors.Is(err, ErrAllOut) {
		t.Fatalf("got %v, want ErrAllOut", err)
	}
	if _, err := e.Apply(s, Retire(Player{ID: "a3"})); !errors.Is(err, ErrAllOut) {
		t.Fatalf("retire: got %v, want ErrAllOut", err)
	}
}

func TestRunsWithoutStriker(t *testing.T) {
	cfg := testConfig(5, 11)
	e := NewEngine(cfg)
	s := openingState(cfg, 1, SideA, 0)
	for i := range s.Batsmen {
		s.Batsmen[i].OnStrike = false
	}

	if _, err := e.Apply(s, Runs(1)); !errors.Is(err, ErrNoStriker) {
		t.Fatalf("got %v, want ErrNoStriker", err)
	}
	if _, err := e.Apply(s, Wicket(LBW)); !errors.Is(err, ErrNoStriker) {
		t.Fatalf("wicket: got %v, want ErrNoStriker", err)
	}
}

func TestEngineDoesNotMutateInput(t *testing.T) {
	cfg := testConfig(5, 11)
	e := NewEngine(cfg)
	s := openingState(cfg, 1, SideA, 0)
	for _, ev := range dots(5) {
		var err error
		if s, err = e.Apply(s, ev); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	before := s.Clone()

	next, err := e.Apply(s, Runs(4))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(before, s) {
		t.Fatalf("input state mutated")
	}
	if next.Overs != 1 || len(next.AllOvers) != 1 {
		t.Fatalf("expected completed over in result, got %d overs", next.Overs)
	}

	next.AllOvers[0].Balls[0] = RunsBall(6)
	next.Batsmen[0].Runs = 99
	if s.Batsmen[0].Runs != 0 {
		t.Fatalf("result aliases input batsmen")
	}
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	extras := []ExtraType{Wides, NoBalls, Byes, LegByes, Penalty}
	dismissals := []DismissalType{Bowled, Caught, LBW, RunOut, Stumped, HitWicket}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m := newTestMatch(t, 20, 11)

		for step := 0; step < 1000 && m.Phase() == PhaseFirstInnings; step++ {
			s := m.State()
			var ev Event
			switch {
			case s.NeedBatsman:
				ev = SelectBatsman(s.AvailableBatsmen()[0])
			case s.NeedBowler:
				ev = SelectBowler(s.AvailableBowlers()[rng.Intn(len(s.AvailableBowlers()))])
			default:
				switch r := rng.Intn(20); {
				case r < 13:
					ev = Runs(rng.Intn(7))
				case r < 17:
					ev = Extra(extras[rng.Intn(len(extras))], rng.Intn(3))
				default:
					ev = Wicket(dismissals[rng.Intn(len(dismissals))])
				}
			}

			if err := m.Apply(ev); err != nil {
				t.Fatalf("seed %d step %d (%s): %v", seed, step, ev.Type, err)
			}
			checkInvariants(t, m.State(), 6)
		}
		if m.Phase() != PhaseInningsBreak {
			t.Fatalf("seed %d: first innings never ended, phase %s", seed, m.Phase())
		}
	}
}
