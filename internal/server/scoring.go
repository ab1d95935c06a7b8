package server

import (
	"context"
	"errors"
	"net/http"

	"cricket-scorer/internal/scoring"
	"cricket-scorer/internal/service"

	"connectrpc.com/connect"
)

const ScoringServiceName = "cricket.v1.ScoringService"

const (
	CreateMatchProcedure        = "/" + ScoringServiceName + "/CreateMatch"
	ApplyEventProcedure         = "/" + ScoringServiceName + "/ApplyEvent"
	UndoProcedure               = "/" + ScoringServiceName + "/Undo"
	StartSecondInningsProcedure = "/" + ScoringServiceName + "/StartSecondInnings"
	GetMatchProcedure           = "/" + ScoringServiceName + "/GetMatch"
	GetResultProcedure          = "/" + ScoringServiceName + "/GetResult"
	ListMatchesProcedure        = "/" + ScoringServiceName + "/ListMatches"
)

type ScoringServer struct {
	matchSvc *service.MatchService
}

func NewScoringServer(matchSvc *service.MatchService) *ScoringServer {
	return &ScoringServer{matchSvc: matchSvc}
}

// NewScoringServiceHandler returns the path prefix and handler serving every procedure.
func NewScoringServiceHandler(s *ScoringServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CreateMatchProcedure, connect.NewUnaryHandler(CreateMatchProcedure, s.CreateMatch, opts...))
	mux.Handle(ApplyEventProcedure, connect.NewUnaryHandler(ApplyEventProcedure, s.ApplyEvent, opts...))
	mux.Handle(UndoProcedure, connect.NewUnaryHandler(UndoProcedure, s.Undo, opts...))
	mux.Handle(StartSecondInningsProcedure, connect.NewUnaryHandler(StartSecondInningsProcedure, s.StartSecondInnings, opts...))
	mux.Handle(GetMatchProcedure, connect.NewUnaryHandler(GetMatchProcedure, s.GetMatch, opts...))
	mux.Handle(GetResultProcedure, connect.NewUnaryHandler(GetResultProcedure, s.GetResult, opts...))
	mux.Handle(ListMatchesProcedure, connect.NewUnaryHandler(ListMatchesProcedure, s.ListMatches, opts...))
	return "/" + ScoringServiceName + "/", mux
}

func (s *ScoringServer) CreateMatch(ctx context.Context, req *connect.Request[CreateMatchRequest]) (*connect.Response[MatchResponse], error) {
	v, err := s.matchSvc.CreateMatch(ctx, req.Msg.Config)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&MatchResponse{Match: *v}), nil
}

func (s *ScoringServer) ApplyEvent(ctx context.Context, req *connect.Request[ApplyEventRequest]) (*connect.Response[MatchResponse], error) {
	v, err := s.matchSvc.Apply(ctx, req.Msg.MatchID, req.Msg.Event)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&MatchResponse{Match: *v}), nil
}

func (s *ScoringServer) Undo(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchResponse], error) {
	v, err := s.matchSvc.Undo(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&MatchResponse{Match: *v}), nil
}

func (s *ScoringServer) StartSecondInnings(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchResponse], error) {
	v, err := s.matchSvc.StartSecondInnings(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&MatchResponse{Match: *v}), nil
}

func (s *ScoringServer) GetMatch(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchResponse], error) {
	v, err := s.matchSvc.GetMatch(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&MatchResponse{Match: *v}), nil
}

func (s *ScoringServer) GetResult(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[ResultResponse], error) {
	res, err := s.matchSvc.GetResult(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ResultResponse{MatchID: req.Msg.MatchID, Result: *res}), nil
}

func (s *ScoringServer) ListMatches(ctx context.Context, req *connect.Request[ListMatchesRequest]) (*connect.Response[ListMatchesResponse], error) {
	matches, err := s.matchSvc.ListMatches(ctx, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListMatchesResponse{Matches: matches}), nil
}

func toConnectError(err error) error {
	return connect.NewError(errorCode(err), err)
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		return connect.CodeNotFound
	case errors.Is(err, scoring.ErrInvalidConfig),
		errors.Is(err, scoring.ErrInvalidEvent),
		errors.Is(err, scoring.ErrInvalidRuns),
		errors.Is(err, scoring.ErrInvalidExtra),
		errors.Is(err, scoring.ErrInvalidDismissal):
		return connect.CodeInvalidArgument
	case errors.Is(err, service.ErrNoResult),
		errors.Is(err, scoring.ErrNoStriker),
		errors.Is(err, scoring.ErrAllOut),
		errors.Is(err, scoring.ErrAwaitingBatsman),
		errors.Is(err, scoring.ErrAwaitingBowler),
		errors.Is(err, scoring.ErrBatsmanNotNeeded),
		errors.Is(err, scoring.ErrOverInProgress),
		errors.Is(err, scoring.ErrInningsOver),
		errors.Is(err, scoring.ErrMatchComplete),
		errors.Is(err, scoring.ErrNotInningsBreak),
		errors.Is(err, scoring.ErrNothingToUndo):
		return connect.CodeFailedPrecondition
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	}
	return connect.CodeInternal
}
