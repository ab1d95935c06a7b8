package scoring

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid match configuration")
	ErrInvalidEvent     = errors.New("invalid event")
	ErrInvalidRuns      = errors.New("runs must be between 0 and 6")
	ErrInvalidExtra     = errors.New("invalid extra")
	ErrInvalidDismissal = errors.New("invalid dismissal type")
	ErrNoStriker        = errors.New("no batter on strike")
	ErrAllOut           = errors.New("batting side is all out")
	ErrAwaitingBatsman  = errors.New("new batter must be selected first")
	ErrAwaitingBowler   = errors.New("new bowler must be selected first")
	ErrBatsmanNotNeeded = errors.New("no batter is waiting to be replaced")
	ErrOverInProgress   = errors.New("bowler can only change between overs")
	ErrInningsOver      = errors.New("innings is over")
	ErrMatchComplete    = errors.New("match is complete")
	ErrNotInningsBreak  = errors.New("second innings can only start after the first innings")
	ErrNothingToUndo    = errors.New("no more actions to undo")
)
