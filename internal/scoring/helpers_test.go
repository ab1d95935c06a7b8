package scoring

import (
	"fmt"
	"testing"
)

func squad(prefix string, n int) []Player {
	players := make([]Player, n)
	for i := range players {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		players[i] = Player{ID: id, Name: id}
	}
	return players
}

func testConfig(overs, squadSize int) Config {
	return Config{
		TeamA:        Team{Name: "Lions", Players: squad("a", squadSize)},
		TeamB:        Team{Name: "Tigers", Players: squad("b", squadSize)},
		TotalOvers:   overs,
		BallsPerOver: 6,
		Toss:         Toss{Winner: "Lions", Choice: TossBat},
	}
}

func newTestMatch(t *testing.T, overs, squadSize int) *Match {
	t.Helper()
	m, err := NewMatch(testConfig(overs, squadSize))
	if err != nil {
		t.Fatalf("new match: %v", err)
	}
	return m
}

func mustApply(t *testing.T, m *Match, events ...Event) {
	t.Helper()
	for i, ev := range events {
		if err := m.Apply(ev); err != nil {
			t.Fatalf("event %d (%s): %v", i, ev.Type, err)
		}
	}
}

func dots(n int) []Event {
	evs := make([]Event, n)
	for i := range evs {
		evs[i] = Runs(0)
	}
	return evs
}

func strikerID(t *testing.T, s State) int {
	t.Helper()
	b, ok := s.Striker()
	if !ok {
		t.Fatalf("expected a striker")
	}
	return b.ID
}

// checkInvariants verifies the bookkeeping rules that must hold between events.
func checkInvariants(t *testing.T, s State, ballsPerOver int) {
	t.Helper()

	runs := 0
	notOut := 0
	onStrike := 0
	for _, b := range s.Batsmen {
		runs += b.Runs
		if !b.Out {
			notOut++
			if b.OnStrike {
				onStrike++
			}
		}
	}
	if s.Score != runs+s.Extras.Total() {
		t.Fatalf("score %d != batter runs %d + extras %d", s.Score, runs, s.Extras.Total())
	}
	if s.Wickets > s.AllOutAt() {
		t.Fatalf("wickets %d exceed all-out threshold %d", s.Wickets, s.AllOutAt())
	}
	if s.Balls < 0 || s.Balls >= ballsPerOver {
		t.Fatalf("balls %d out of range", s.Balls)
	}
	if len(s.AllOvers) != s.Overs {
		t.Fatalf("allOvers has %d entries, overs is %d", len(s.AllOvers), s.Overs)
	}
	if s.NeedBatsman {
		return
	}
	if notOut > 0 && onStrike != 1 {
		t.Fatalf("expected exactly one striker among %d not-out batters, got %d", notOut, onStrike)
	}
	if notOut == 2 {
		ids := map[int]bool{s.Partnership.Batter1: true, s.Partnership.Batter2: true}
		for _, b := range s.Batsmen {
			if !b.Out && !ids[b.ID] {
				t.Fatalf("partnership %+v does not include not-out batter %d", s.Partnership, b.ID)
			}
		}
	}
}
