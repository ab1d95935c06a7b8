package scoring

import (
	"fmt"
	"strings"
)

const (
	DefaultBallsPerOver = 6
	PowerplayOvers      = 6
)

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Team struct {
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

type TossChoice string

const (
	TossBat  TossChoice = "Bat"
	TossBowl TossChoice = "Bowl"
)

type Toss struct {
	Winner string     `json:"winner"`
	Choice TossChoice `json:"choice"`
}

// Config is supplied once when a match starts and never changes afterwards.
type Config struct {
	TeamA        Team `json:"teamA"`
	TeamB        Team `json:"teamB"`
	TotalOvers   int  `json:"totalOvers"`
	BallsPerOver int  `json:"ballsPerOver"`
	Toss         Toss `json:"toss"`
}

// WithDefaults fills optional fields.
func (c Config) WithDefaults() Config {
	if c.BallsPerOver == 0 {
		c.BallsPerOver = DefaultBallsPerOver
	}
	if c.Toss.Winner == "" {
		c.Toss = Toss{Winner: c.TeamA.Name, Choice: TossBat}
	}
	return c
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.TeamA.Name) == "" || strings.TrimSpace(c.TeamB.Name) == "" {
		return fmt.Errorf("%w: both team names are required", ErrInvalidConfig)
	}
	if c.TeamA.Name == c.TeamB.Name {
		return fmt.Errorf("%w: team names must differ", ErrInvalidConfig)
	}
	if c.TotalOvers <= 0 {
		return fmt.Errorf("%w: totalOvers must be > 0", ErrInvalidConfig)
	}
	if c.BallsPerOver <= 0 {
		return fmt.Errorf("%w: ballsPerOver must be > 0", ErrInvalidConfig)
	}
	for _, t := range []Team{c.TeamA, c.TeamB} {
		if len(t.Players) < 2 {
			return fmt.Errorf("%w: %s needs at least 2 players", ErrInvalidConfig, t.Name)
		}
		seen := make(map[string]bool, len(t.Players))
		for _, p := range t.Players {
			if p.ID == "" {
				return fmt.Errorf("%w: %s has a player without an id", ErrInvalidConfig, t.Name)
			}
			if seen[p.ID] {
				return fmt.Errorf("%w: %s has duplicate player id %q", ErrInvalidConfig, t.Name, p.ID)
			}
			seen[p.ID] = true
		}
	}
	if c.Toss.Winner != c.TeamA.Name && c.Toss.Winner != c.TeamB.Name {
		return fmt.Errorf("%w: toss winner %q is not playing", ErrInvalidConfig, c.Toss.Winner)
	}
	if c.Toss.Choice != TossBat && c.Toss.Choice != TossBowl {
		return fmt.Errorf("%w: toss choice must be Bat or Bowl", ErrInvalidConfig)
	}
	return nil
}

// BattingFirst resolves the toss into the side that opens the batting.
func (c Config) BattingFirst() Side {
	winner := SideA
	if c.Toss.Winner == c.TeamB.Name {
		winner = SideB
	}
	if c.Toss.Choice == TossBat {
		return winner
	}
	return winner.Other()
}

func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func (c Config) team(s Side) Team {
	if s == SideB {
		return c.TeamB
	}
	return c.TeamA
}

type ExtraType string

const (
	Wides   ExtraType = "Wides"
	NoBalls ExtraType = "NoBalls"
	Byes    ExtraType = "Byes"
	LegByes ExtraType = "LegByes"
	Penalty ExtraType = "Penalty"
)

func (t ExtraType) Valid() bool {
	switch t {
	case Wides, NoBalls, Byes, LegByes, Penalty:
		return true
	}
	return false
}

// Legal reports whether the extra still counts as one of the over's deliveries.
func (t ExtraType) Legal() bool {
	return t == Byes || t == LegByes
}

// ChargedToBowler reports whether the runs go against the bowler's figures.
func (t ExtraType) ChargedToBowler() bool {
	return t != Byes && t != LegByes
}

func (t ExtraType) Short() string {
	switch t {
	case Wides:
		return "Wd"
	case NoBalls:
		return "Nb"
	case Byes:
		return "B"
	case LegByes:
		return "Lb"
	case Penalty:
		return "P"
	}
	return string(t)
}

type DismissalType string

const (
	Bowled    DismissalType = "Bowled"
	Caught    DismissalType = "Catch"
	LBW       DismissalType = "LBW"
	RunOut    DismissalType = "Run Out"
	Stumped   DismissalType = "Stumped"
	HitWicket DismissalType = "Hit Wicket"
)

func (d DismissalType) Valid() bool {
	switch d {
	case Bowled, Caught, LBW, RunOut, Stumped, HitWicket:
		return true
	}
	return false
}
