package scoring

type BattingLine struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strikeRate"`
	Status     string  `json:"status"`
}

type BowlingLine struct {
	Name    string  `json:"name"`
	Overs   string  `json:"overs"`
	Maidens int     `json:"maidens"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
}

// Scorecard is a read-only rendering of one innings.
type Scorecard struct {
	Inning          int            `json:"inning"`
	BattingTeam     string         `json:"battingTeam"`
	BowlingTeam     string         `json:"bowlingTeam"`
	Score           int            `json:"score"`
	Wickets         int            `json:"wickets"`
	Overs           string         `json:"overs"`
	Target          int            `json:"target,omitempty"`
	RunRate         float64        `json:"runRate"`
	RequiredRate    float64        `json:"requiredRate,omitempty"`
	RunsNeeded      int            `json:"runsNeeded,omitempty"`
	BallsRemaining  int            `json:"ballsRemaining"`
	Powerplay       bool           `json:"powerplay"`
	Extras          Extras         `json:"extras"`
	ExtrasTotal     int            `json:"extrasTotal"`
	Batting         []BattingLine  `json:"batting"`
	Bowling         []BowlingLine  `json:"bowling"`
	FallOfWickets   []FallOfWicket `json:"fallOfWickets"`
	Partnership     Partnership    `json:"partnership"`
	PartnershipRate float64        `json:"partnershipRate"`
	ThisOver        []string       `json:"thisOver"`
}

func BuildScorecard(cfg Config, s State) Scorecard {
	cfg = cfg.WithDefaults()
	bpo := cfg.BallsPerOver

	sc := Scorecard{
		Inning:          s.Inning,
		BattingTeam:     s.BattingTeamName,
		BowlingTeam:     s.BowlingTeamName,
		Score:           s.Score,
		Wickets:         s.Wickets,
		Overs:           OverNotation(s.Overs, s.Balls),
		RunRate:         s.RunRate(bpo),
		BallsRemaining:  s.BallsRemaining(bpo, cfg.TotalOvers),
		Powerplay:       s.IsPowerplay,
		Extras:          s.Extras,
		ExtrasTotal:     s.Extras.Total(),
		FallOfWickets:   s.FallOfWickets,
		Partnership:     s.Partnership,
		PartnershipRate: s.Partnership.RunRate(bpo),
		ThisOver:        make([]string, 0, len(s.CurrentOver)),
	}
	if s.Inning == 2 {
		sc.Target = s.Target
		sc.RunsNeeded = s.RunsNeeded()
		sc.RequiredRate = s.RequiredRunRate(bpo, cfg.TotalOvers)
	}

	for _, b := range s.Batsmen {
		status := "not out"
		switch {
		case b.Retired:
			status = "retired"
		case b.Out:
			status = string(b.Dismissal)
		case b.OnStrike:
			status = "not out*"
		}
		sc.Batting = append(sc.Batting, BattingLine{
			Name:       b.Name,
			Runs:       b.Runs,
			Balls:      b.Balls,
			Fours:      b.Fours,
			Sixes:      b.Sixes,
			StrikeRate: b.StrikeRate(),
			Status:     status,
		})
	}
	for _, b := range s.BowlingFigures() {
		sc.Bowling = append(sc.Bowling, BowlingLine{
			Name:    b.Name,
			Overs:   b.OversBowled(),
			Maidens: b.Maidens,
			Runs:    b.Runs,
			Wickets: b.Wickets,
			Economy: b.Economy(bpo),
		})
	}
	for _, b := range s.CurrentOver {
		sc.ThisOver = append(sc.ThisOver, b.String())
	}
	return sc
}
