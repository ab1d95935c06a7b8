package service

import (
	"sync"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"

	"github.com/rs/zerolog"
)

// LiveFeed fans match updates out to per-match subscribers. A subscriber
// that falls behind misses updates instead of blocking scoring.
type LiveFeed struct {
	mu     sync.RWMutex
	subs   map[string]map[chan domain.MatchView]struct{}
	logger zerolog.Logger
}

func NewLiveFeed(logger zerolog.Logger) *LiveFeed {
	return &LiveFeed{
		subs:   make(map[string]map[chan domain.MatchView]struct{}),
		logger: logger,
	}
}

// Subscribe registers for updates of one match. The returned func
// unsubscribes and closes the channel; it is safe to call more than once.
func (f *LiveFeed) Subscribe(matchID string) (<-chan domain.MatchView, func()) {
	ch := make(chan domain.MatchView, constants.LiveFeedBuffer)

	f.mu.Lock()
	if f.subs[matchID] == nil {
		f.subs[matchID] = make(map[chan domain.MatchView]struct{})
	}
	f.subs[matchID][ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[matchID], ch)
			if len(f.subs[matchID]) == 0 {
				delete(f.subs, matchID)
			}
			f.mu.Unlock()
			close(ch)
		})
	}
}

func (f *LiveFeed) Publish(matchID string, v domain.MatchView) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for ch := range f.subs[matchID] {
		select {
		case ch <- v:
		default:
			f.logger.Debug().Str("match_id", matchID).Msg("live subscriber lagging, update dropped")
		}
	}
}

func (f *LiveFeed) Subscribers(matchID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[matchID])
}
