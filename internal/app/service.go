package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jaminalder/neko-gomoku/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound    = errors.New("game not found")
	ErrNotYourTurn = errors.New("not your turn")
	ErrAIThinking  = errors.New("computer is thinking")
	ErrClosed      = errors.New("service closed")
)

// The computer always plays the second side in PvE.
const aiPlayer = domain.Second

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID         string
	Game       domain.Game
	Mode       Mode
	Difficulty domain.Difficulty
	AIThinking bool
	Created    time.Time
	Updated    time.Time

	// gen changes on every state transition; a pending AI search commits
	// only if it still matches.
	gen uint64
}

// AITurn reports whether the computer is due to move.
func (gs GameState) AITurn() bool {
	return gs.Mode == PvE && !gs.Game.Over && gs.Game.Turn == aiPlayer
}

// HumanTurn reports whether a person may draw a move now.
func (gs GameState) HumanTurn() bool {
	return !gs.Game.Over && !gs.AITurn()
}

func (gs *GameState) snapshot() GameState {
	cp := *gs
	cp.Game = gs.Game.Clone()
	return cp
}

// EventKind names what happened in a game.
type EventKind string

const (
	EventMove     EventKind = "move"
	EventPass     EventKind = "pass"
	EventWin      EventKind = "win"
	EventDraw     EventKind = "draw"
	EventReset    EventKind = "reset"
	EventSettings EventKind = "settings"
	EventThinking EventKind = "thinking"
)

// Event notifies subscribers of a state change. Cells holds the stones just
// placed for moves and the winning run for wins.
type Event struct {
	Kind   EventKind
	Player domain.Player
	Cells  []domain.Coord
	State  GameState
}

type subscriber struct {
	ch        chan Event
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

const subscriberBuffer = 16

// Options tunes a Service.
type Options struct {
	// AIDelay is how long the computer waits before searching.
	AIDelay time.Duration
	// Rand drives turn lengths and search noise. Nil uses domain.DefaultRand.
	Rand domain.Rand
}

// Service manages games, runs the computer player and fans out events.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	opts   Options
	rng    domain.Rand
	log    *zap.Logger
	closed bool
}

// NewService creates an empty service. A nil logger discards logs.
func NewService(opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = domain.DefaultRand
	}
	return &Service{
		games: make(map[string]*GameState),
		subs:  make(map[string]map[*subscriber]struct{}),
		opts:  opts,
		rng:   rng,
		log:   logger,
	}
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame(mode Mode, d domain.Difficulty) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	now := time.Now()
	gs := &GameState{
		ID:         newGameID(),
		Game:       domain.New(s.rng),
		Mode:       mode,
		Difficulty: d,
		Created:    now,
		Updated:    now,
	}
	s.games[gs.ID] = gs
	s.log.Info("game created",
		zap.String("game_id", gs.ID),
		zap.Stringer("mode", mode),
		zap.Stringer("difficulty", d),
		zap.Int("turn_length", gs.Game.TurnLength))
	cp := gs.snapshot()
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := gs.snapshot()
	return &cp, true
}

// Play commits a path drawn by the player whose turn it is.
func (s *Service) Play(id string, path []domain.Coord) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	if gs.AIThinking {
		return nil, ErrAIThinking
	}
	if gs.AITurn() {
		return nil, ErrNotYourTurn
	}
	player := gs.Game.Turn
	if err := gs.Game.PlayPath(path, s.rng); err != nil {
		return nil, err
	}
	s.broadcastLocked(id, s.afterMoveLocked(gs, player, path))
	cp := gs.snapshot()
	return &cp, nil
}

// Reset starts the game over with the given mode and difficulty. Any
// pending computer move is discarded.
func (s *Service) Reset(id string, mode Mode, d domain.Difficulty) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	gs.Game = domain.New(s.rng)
	gs.Mode = mode
	gs.Difficulty = d
	gs.AIThinking = false
	s.touchLocked(gs)
	s.log.Info("game reset",
		zap.String("game_id", id),
		zap.Stringer("mode", mode),
		zap.Stringer("difficulty", d))
	events := []Event{{Kind: EventReset, State: gs.snapshot()}}
	events = append(events, s.settleLocked(gs)...)
	s.broadcastLocked(id, events)
	cp := gs.snapshot()
	return &cp, nil
}

// SetDifficulty changes the computer's strength. A search already scheduled
// is restarted at the new level.
func (s *Service) SetDifficulty(id string, d domain.Difficulty) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	gs.Difficulty = d
	s.touchLocked(gs)
	if gs.AIThinking {
		s.scheduleAILocked(gs)
	}
	s.broadcastLocked(id, []Event{{Kind: EventSettings, State: gs.snapshot()}})
	cp := gs.snapshot()
	return &cp, nil
}

// Sweep forgets games untouched for longer than maxIdle and returns how many
// were removed. Their subscribers are closed.
func (s *Service) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, gs := range s.games {
		if gs.Updated.After(cutoff) {
			continue
		}
		delete(s.games, id)
		for sub := range s.subs[id] {
			sub.close()
		}
		delete(s.subs, id)
		removed++
	}
	if removed > 0 {
		s.log.Info("swept idle games", zap.Int("removed", removed), zap.Int("remaining", len(s.games)))
	}
	return removed
}

// Close stops pending computer moves and closes every subscription.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, set := range s.subs {
		for sub := range set {
			sub.close()
		}
		delete(s.subs, id)
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an
// unsubscribe func; the channel closes when ctx ends.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan Event, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, ErrClosed
	}
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

func (s *Service) touchLocked(gs *GameState) {
	gs.gen++
	gs.Updated = time.Now()
}

// afterMoveLocked records the outcome of a committed move and hands the
// turn on.
func (s *Service) afterMoveLocked(gs *GameState, player domain.Player, cells []domain.Coord) []Event {
	s.touchLocked(gs)
	events := []Event{{Kind: EventMove, Player: player, Cells: append([]domain.Coord(nil), cells...), State: gs.snapshot()}}
	switch {
	case gs.Game.Over && gs.Game.Winner != domain.None:
		s.log.Info("game won",
			zap.String("game_id", gs.ID),
			zap.Stringer("player", gs.Game.Winner),
			zap.Int("moves", gs.Game.Moves))
		events = append(events, Event{Kind: EventWin, Player: gs.Game.Winner, Cells: gs.Game.Clone().WinningLine, State: gs.snapshot()})
	case gs.Game.Over:
		s.log.Info("game drawn", zap.String("game_id", gs.ID), zap.Int("moves", gs.Game.Moves))
		events = append(events, Event{Kind: EventDraw, State: gs.snapshot()})
	default:
		events = append(events, s.settleLocked(gs)...)
	}
	return events
}

// maxAutoPasses bounds settleLocked when the rolls keep missing the room
// that is left.
const maxAutoPasses = 64

// settleLocked runs the turn on until someone can act: the computer is
// scheduled on its turn, and a human with no room for the rolled length
// passes automatically.
func (s *Service) settleLocked(gs *GameState) []Event {
	var events []Event
	for passes := 0; !gs.Game.Over && !s.closed; passes++ {
		if gs.AITurn() {
			s.scheduleAILocked(gs)
			events = append(events, Event{Kind: EventThinking, Player: aiPlayer, State: gs.snapshot()})
			return events
		}
		if domain.HasLegalPath(&gs.Game.Board, gs.Game.TurnLength) {
			return events
		}
		if passes == maxAutoPasses {
			s.log.Warn("giving up on auto-pass", zap.String("game_id", gs.ID))
			return events
		}
		player := gs.Game.Turn
		s.log.Debug("no room for turn, passing",
			zap.String("game_id", gs.ID),
			zap.Stringer("player", player),
			zap.Int("turn_length", gs.Game.TurnLength))
		_ = gs.Game.Pass(s.rng)
		s.touchLocked(gs)
		events = append(events, Event{Kind: EventPass, Player: player, State: gs.snapshot()})
	}
	return events
}

func (s *Service) scheduleAILocked(gs *GameState) {
	gs.AIThinking = true
	id, gen := gs.ID, gs.gen
	time.AfterFunc(s.opts.AIDelay, func() { s.runAI(id, gen) })
}

// runAI searches on a snapshot outside the lock and commits only if the
// game has not moved on in the meantime.
func (s *Service) runAI(id string, gen uint64) {
	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok || s.closed || gs.gen != gen {
		s.mu.Unlock()
		return
	}
	board, length, diff := gs.Game.Board, gs.Game.TurnLength, gs.Difficulty
	s.mu.Unlock()

	start := time.Now()
	move, found := domain.FindBestMove(board, length, aiPlayer, diff, s.rng)
	elapsed := time.Since(start)

	s.mu.Lock()
	gs, ok = s.games[id]
	if !ok || s.closed || gs.gen != gen {
		s.mu.Unlock()
		s.log.Debug("discarding stale search", zap.String("game_id", id))
		return
	}
	gs.AIThinking = false
	var events []Event
	if found {
		s.log.Debug("computer move",
			zap.String("game_id", id),
			zap.Stringer("difficulty", diff),
			zap.Int("anchor_x", move.Anchor.X),
			zap.Int("anchor_y", move.Anchor.Y),
			zap.Int("cells", len(move.Shape)),
			zap.Duration("elapsed", elapsed))
		if err := gs.Game.PlayShape(move, s.rng); err != nil {
			s.log.Error("computer move rejected", zap.String("game_id", id), zap.Error(err))
			found = false
		} else {
			events = s.afterMoveLocked(gs, aiPlayer, move.Cells())
		}
	}
	if !found {
		s.log.Info("computer passes", zap.String("game_id", id), zap.Int("turn_length", length))
		_ = gs.Game.Pass(s.rng)
		s.touchLocked(gs)
		events = append(events, Event{Kind: EventPass, Player: aiPlayer, State: gs.snapshot()})
		events = append(events, s.settleLocked(gs)...)
	}
	s.broadcastLocked(id, events)
	s.mu.Unlock()
}

// broadcastLocked fans events out in commit order. Sends never block: a
// subscriber whose buffer is full is closed and dropped.
func (s *Service) broadcastLocked(id string, events []Event) {
	if len(events) == 0 {
		return
	}
	dropped := 0
	for sub := range s.subs[id] {
		for _, ev := range events {
			select {
			case sub.ch <- ev:
				continue
			default:
			}
			sub.close()
			delete(s.subs[id], sub)
			dropped++
			break
		}
	}
	if dropped > 0 {
		s.log.Debug("dropped slow subscribers", zap.String("game_id", id), zap.Int("count", dropped))
	}
}
