package scoring

// LegalBalls is the number of legal deliveries bowled in the innings.
func (s State) LegalBalls(ballsPerOver int) int {
	return s.Overs*ballsPerOver + s.Balls
}

func (s State) RunRate(ballsPerOver int) float64 {
	balls := s.LegalBalls(ballsPerOver)
	if balls == 0 {
		return 0
	}
	return float64(s.Score) / (float64(balls) / float64(ballsPerOver))
}

func (s State) BallsRemaining(ballsPerOver, totalOvers int) int {
	left := totalOvers*ballsPerOver - s.LegalBalls(ballsPerOver)
	if left < 0 {
		return 0
	}
	return left
}

// RunsNeeded is zero outside a chase.
func (s State) RunsNeeded() int {
	if s.Inning != 2 || s.Score >= s.Target {
		return 0
	}
	return s.Target - s.Score
}

func (s State) RequiredRunRate(ballsPerOver, totalOvers int) float64 {
	need := s.RunsNeeded()
	left := s.BallsRemaining(ballsPerOver, totalOvers)
	if need == 0 || left == 0 {
		return 0
	}
	return float64(need) / (float64(left) / float64(ballsPerOver))
}

// BowlingFigures lists every spell of the innings, the active one last.
func (s State) BowlingFigures() []Bowler {
	out := make([]Bowler, 0, len(s.BowlingCard)+1)
	out = append(out, s.BowlingCard...)
	return append(out, s.Bowler)
}

func (b Batter) StrikeRate() float64 {
	if b.Balls == 0 {
		return 0
	}
	return float64(b.Runs) / float64(b.Balls) * 100
}

func (b Bowler) Economy(ballsPerOver int) float64 {
	balls := b.Overs*ballsPerOver + b.Balls
	if balls == 0 {
		return 0
	}
	return float64(b.Runs) / (float64(balls) / float64(ballsPerOver))
}

func (b Bowler) OversBowled() string {
	return OverNotation(b.Overs, b.Balls)
}

func (p Partnership) RunRate(ballsPerOver int) float64 {
	if p.Balls == 0 {
		return 0
	}
	return float64(p.Runs) / float64(p.Balls) * float64(ballsPerOver)
}
