package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cricket-scorer/internal/api"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrMatchNotFound = errors.New("match not found")
	ErrNoResult      = errors.New("match has no result yet")
)

// session owns one live match. Operations on a match are serialised by mu.
// resultPending is set while a complete match has no stored result.
type session struct {
	mu            sync.Mutex
	match         *scoring.Match
	resultPending bool
}

type MatchService struct {
	repo      *repository.MatchRepository
	publisher *api.ResultPublisher
	feed      *LiveFeed
	logger    zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session
	loads    singleflight.Group
}

func NewMatchService(repo *repository.MatchRepository, publisher *api.ResultPublisher, feed *LiveFeed, logger zerolog.Logger) *MatchService {
	return &MatchService{
		repo:      repo,
		publisher: publisher,
		feed:      feed,
		logger:    logger,
		sessions:  make(map[string]*session),
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, cfg scoring.Config) (*domain.MatchView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	m, err := scoring.NewMatch(cfg)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &domain.MatchRecord{
		ID:         uuid.NewString(),
		TeamA:      m.Config().TeamA.Name,
		TeamB:      m.Config().TeamB.Name,
		TotalOvers: m.Config().TotalOvers,
		Config:     m.Config(),
		Phase:      m.Phase(),
		State:      m.State(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()
	if err := s.repo.Create(dbCtx, rec); err != nil {
		s.logger.Error().Err(err).Msg("failed to create match")
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.mu.Lock()
	s.sessions[rec.ID] = &session{match: m}
	s.mu.Unlock()

	s.logger.Info().
		Str("match_id", rec.ID).
		Str("team_a", rec.TeamA).
		Str("team_b", rec.TeamB).
		Int("overs", rec.TotalOvers).
		Str("batting_first", m.State().BattingTeamName).
		Msg("match created")

	return view(rec.ID, m), nil
}

func (s *MatchService) Apply(ctx context.Context, id string, ev scoring.Event) (*domain.MatchView, error) {
	return s.mutate(ctx, id, string(ev.Type), ev, func(m *scoring.Match) error {
		return m.Apply(ev)
	})
}

func (s *MatchService) Undo(ctx context.Context, id string) (*domain.MatchView, error) {
	return s.mutate(ctx, id, domain.OpUndo, struct{}{}, func(m *scoring.Match) error {
		return m.Undo()
	})
}

func (s *MatchService) StartSecondInnings(ctx context.Context, id string) (*domain.MatchView, error) {
	return s.mutate(ctx, id, domain.OpStartSecondInnings, struct{}{}, func(m *scoring.Match) error {
		return m.StartSecondInnings()
	})
}

func (s *MatchService) GetMatch(ctx context.Context, id string) (*domain.MatchView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return view(id, sess.match), nil
}

func (s *MatchService) GetResult(ctx context.Context, id string) (*scoring.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.storePendingResult(ctx, id, sess)

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()
	rec, err := s.repo.GetResult(dbCtx, id)
	if err == nil {
		return &rec.Result, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn().Err(err).Str("match_id", id).Msg("failed to load stored result")
	}

	res, ok := sess.match.Result()
	if !ok {
		return nil, ErrNoResult
	}
	return &res, nil
}

func (s *MatchService) ListMatches(ctx context.Context, limit int) ([]domain.MatchSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if limit <= 0 {
		limit = constants.DefaultListLimit
	}
	limit = min(limit, constants.MaxListLimit)

	matches, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list matches")
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *MatchService) Scorecard(ctx context.Context, id string) (*domain.MatchScorecard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m := sess.match
	card := &domain.MatchScorecard{ID: id, Phase: m.Phase()}
	if first, ok := m.FirstInnings(); ok {
		card.Innings = append(card.Innings, scoring.BuildScorecard(m.Config(), first))
	}
	card.Innings = append(card.Innings, scoring.BuildScorecard(m.Config(), m.State()))
	if res, ok := m.Result(); ok {
		card.Result = res.Outcome
	}
	return card, nil
}

// Events returns the audit log of a match.
func (s *MatchService) Events(ctx context.Context, id string) ([]domain.EventRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.session(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.repo.Events(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

// Subscribe follows a match's live updates. The current view is returned
// alongside the channel so the subscriber starts from a known state.
func (s *MatchService) Subscribe(ctx context.Context, id string) (*domain.MatchView, <-chan domain.MatchView, func(), error) {
	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	updates, cancel := s.feed.Subscribe(id)
	return view(id, sess.match), updates, cancel, nil
}

func (s *MatchService) mutate(ctx context.Context, id, kind string, payload any, op func(*scoring.Match) error) (*domain.MatchView, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	sess, err := s.session(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.storePendingResult(ctx, id, sess)

	m := sess.match
	wasComplete := m.Phase() == scoring.PhaseComplete
	if err := op(m); err != nil {
		s.logger.Debug().Err(err).Str("match_id", id).Str("op", kind).Msg("operation rejected")
		return nil, err
	}

	if err := s.persist(ctx, id, kind, payload, m); err != nil {
		// the stored snapshot is now behind; reload it on next access
		s.evict(id)
		s.logger.Error().Err(err).Str("match_id", id).Str("op", kind).Msg("failed to persist match")
		return nil, err
	}

	v := view(id, m)
	s.feed.Publish(id, *v)

	if !wasComplete && m.Phase() == scoring.PhaseComplete {
		res, _ := m.Result()
		if err := s.finalize(ctx, id, res); err != nil {
			sess.resultPending = true
			s.logger.Error().Err(err).Str("match_id", id).Msg("failed to finalize match")
			return nil, err
		}
	}

	s.logger.Debug().
		Str("match_id", id).
		Str("op", kind).
		Str("phase", string(m.Phase())).
		Int("score", v.State.Score).
		Int("wickets", v.State.Wickets).
		Msg("operation applied")
	return v, nil
}

func (s *MatchService) persist(ctx context.Context, id, kind string, payload any, m *scoring.Match) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var first *scoring.State
	if f, ok := m.FirstInnings(); ok {
		first = &f
	}
	if err := s.repo.SaveState(ctx, id, m.Phase(), m.State(), first); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	if _, err := s.repo.AppendEvent(ctx, id, kind, payload); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// finalize stores the result and hands it to the publisher concurrently.
// Publishing is best effort.
func (s *MatchService) finalize(ctx context.Context, id string, res scoring.Result) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		dbCtx, cancel := context.WithTimeout(gCtx, constants.DatabaseTimeout)
		defer cancel()
		return s.repo.SaveResult(dbCtx, id, res)
	})

	g.Go(func() error {
		apiCtx, cancel := context.WithTimeout(gCtx, constants.ExternalAPITimeout)
		defer cancel()
		if err := s.publisher.Publish(apiCtx, id, res); err != nil {
			s.logger.Warn().Err(err).Str("match_id", id).Msg("failed to publish result")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	s.logger.Info().Str("match_id", id).Str("result", res.Outcome).Msg("match complete")
	return nil
}

// storePendingResult retries saving the result of a complete match whose
// earlier save failed. The caller holds sess.mu.
func (s *MatchService) storePendingResult(ctx context.Context, id string, sess *session) {
	if !sess.resultPending {
		return
	}
	res, ok := sess.match.Result()
	if !ok {
		sess.resultPending = false
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.repo.SaveResult(dbCtx, id, res); err != nil {
		s.logger.Warn().Err(err).Str("match_id", id).Msg("result still not stored")
		return
	}
	sess.resultPending = false
	s.logger.Info().Str("match_id", id).Str("result", res.Outcome).Msg("pending result stored")
}

// session returns the in-memory match, rehydrating it from storage when needed.
// Rehydrated matches start with an empty undo history.
func (s *MatchService) session(ctx context.Context, id string) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	v, err, _ := s.loads.Do(id, func() (any, error) {
		s.mu.Lock()
		if sess, ok := s.sessions[id]; ok {
			s.mu.Unlock()
			return sess, nil
		}
		s.mu.Unlock()

		dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
		defer cancel()

		rec, err := s.repo.Get(dbCtx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load match: %w", err)
		}

		m, err := scoring.Restore(rec.Config, rec.Phase, rec.State, rec.FirstInnings)
		if err != nil {
			return nil, fmt.Errorf("failed to restore match %s: %w", id, err)
		}

		sess := &session{match: m}
		if rec.Phase == scoring.PhaseComplete {
			if _, err := s.repo.GetResult(dbCtx, id); err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					s.logger.Warn().Err(err).Str("match_id", id).Msg("failed to check stored result")
				}
				sess.resultPending = true
			}
		}

		s.mu.Lock()
		s.sessions[id] = sess
		s.mu.Unlock()

		s.logger.Info().Str("match_id", id).Str("phase", string(rec.Phase)).Msg("match restored from storage")
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*session), nil
}

func (s *MatchService) evict(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func view(id string, m *scoring.Match) *domain.MatchView {
	v := &domain.MatchView{
		ID:      id,
		Phase:   m.Phase(),
		Config:  m.Config(),
		State:   m.State(),
		CanUndo: m.HistoryLen() > 0 && m.Phase() != scoring.PhaseComplete,
	}
	if first, ok := m.FirstInnings(); ok {
		v.FirstInnings = &first
	}
	if res, ok := m.Result(); ok {
		v.Result = &res
	}
	return v
}
