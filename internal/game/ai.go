// game/ai.go
package game

import (
	"math"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SearchConfig bounds the alpha-beta search.
type SearchConfig struct {
	// MaxDepth is the search-tree depth at which nodes are scored statically.
	MaxDepth int
	// Width is how many ordered moves are explored per node before the
	// endgame window (ply >= Cells-MaxDepth). Zero explores every move.
	Width int
	// FollowPasses makes a node whose mover has no legal move hand the turn to
	// the opponent, like the game loop does. When false such a node is a leaf.
	FollowPasses bool
	// Workers > 1 evaluates root children concurrently, each on its own board.
	Workers int
}

// DefaultSearchConfig is depth 4, top-3 ordered moves, leaf on pass, sequential.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxDepth: 4,
		Width:    3,
		Workers:  1,
	}
}

// Searcher runs depth-bounded minimax with alpha-beta pruning and heuristic
// move ordering. A Searcher is safe for concurrent use; each call works on its
// own copy of the board. Leaves are scored with Utility for the root mover, not
// for a fixed color, so White searches maximize White's utility.
type Searcher struct {
	cfg     SearchConfig
	weights Weights
	nodes   atomic.Int64
}

func NewSearcher(cfg SearchConfig, w Weights) *Searcher {
	return &Searcher{cfg: cfg, weights: w}
}

func (s *Searcher) Config() SearchConfig { return s.cfg }

func (s *Searcher) Weights() Weights { return s.weights }

// Nodes returns the number of nodes visited since the Searcher was created.
func (s *Searcher) Nodes() int64 { return s.nodes.Load() }

// Search returns the move chosen for color, or false when color cannot move
// or the game is over.
func (s *Searcher) Search(gs *GameState, color Color) (Move, bool) {
	_, mv, ok := s.SearchScore(gs, color)
	return mv, ok
}

// SearchScore is Search that also reports the backed-up score. The score is
// from color's point of view.
func (s *Searcher) SearchScore(gs *GameState, color Color) (float64, Move, bool) {
	b := gs.Board.Clone()
	if s.cfg.Workers > 1 {
		return s.rootParallel(b, gs.Ply, color)
	}
	return s.alphaBeta(b, gs.Ply, color, color, 0, math.Inf(-1), math.Inf(1), true)
}

// endgame reports whether ply lies inside the full-width window.
func (s *Searcher) endgame(ply int) bool {
	return ply >= Cells-s.cfg.MaxDepth
}

// alphaBeta searches the node (b, ply) with color to move. agent is the root
// mover whose utility is maximized. maximizing is true when color == agent,
// except when FollowPasses hands a move back.
func (s *Searcher) alphaBeta(b *Board, ply int, color, agent Color, depth int, alpha, beta float64, maximizing bool) (float64, Move, bool) {
	s.nodes.Add(1)

	if depth >= s.cfg.MaxDepth || b.GameOver() {
		return Utility(b, agent, &s.weights), NoMove, false
	}

	moves := b.LegalMoves(color)
	if len(moves) == 0 {
		if s.cfg.FollowPasses {
			score, _, _ := s.alphaBeta(b, ply, color.Opponent(), agent, depth+1, alpha, beta, !maximizing)
			return score, NoMove, false
		}
		return Utility(b, agent, &s.weights), NoMove, false
	}

	moves = s.candidates(b, ply, color, agent, moves, maximizing)

	bestMove := NoMove
	if maximizing {
		best := math.Inf(-1)
		for _, mv := range moves {
			u, _ := b.MakeMove(color, mv.Row, mv.Col)
			score, _, _ := s.alphaBeta(b, ply+1, color.Opponent(), agent, depth+1, alpha, beta, false)
			b.UnmakeMove(u)
			if score > best {
				best = score
				bestMove = mv
			}
			if best >= beta {
				return best, bestMove, true
			}
			alpha = math.Max(alpha, best)
		}
		return best, bestMove, true
	}

	best := math.Inf(1)
	for _, mv := range moves {
		u, _ := b.MakeMove(color, mv.Row, mv.Col)
		score, _, _ := s.alphaBeta(b, ply+1, color.Opponent(), agent, depth+1, alpha, beta, true)
		b.UnmakeMove(u)
		if score < best {
			best = score
			bestMove = mv
		}
		if best <= alpha {
			return best, bestMove, true
		}
		beta = math.Min(beta, best)
	}
	return best, bestMove, true
}

type scoredMove struct {
	mv    Move
	score float64
}

// candidates orders moves by one-ply lookahead utility (descending for the
// maximizer, ascending for the minimizer, stable on ties) and keeps the first
// Width of them unless ply is inside the endgame window.
func (s *Searcher) candidates(b *Board, ply int, color, agent Color, moves []Move, maximizing bool) []Move {
	scored := make([]scoredMove, len(moves))
	for i, mv := range moves {
		u, _ := b.MakeMove(color, mv.Row, mv.Col)
		scored[i] = scoredMove{mv: mv, score: Utility(b, agent, &s.weights)}
		b.UnmakeMove(u)
	}
	if maximizing {
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	} else {
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].score < scored[j].score })
	}

	n := len(scored)
	if s.cfg.Width > 0 && n > s.cfg.Width && !s.endgame(ply) {
		n = s.cfg.Width
	}
	out := make([]Move, n)
	for i := range out {
		out[i] = scored[i].mv
	}
	return out
}

// rootParallel scores every root candidate with a full window on a private
// board per task and returns the first best one in candidate order. The
// backed-up score equals the sequential search; only the node count grows.
func (s *Searcher) rootParallel(b *Board, ply int, color Color) (float64, Move, bool) {
	s.nodes.Add(1)
	if s.cfg.MaxDepth <= 0 || b.GameOver() {
		return Utility(b, color, &s.weights), NoMove, false
	}
	moves := b.LegalMoves(color)
	if len(moves) == 0 {
		return s.alphaBeta(b, ply, color, color, 0, math.Inf(-1), math.Inf(1), true)
	}
	moves = s.candidates(b, ply, color, color, moves, true)

	scores := make([]float64, len(moves))
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for i, mv := range moves {
		i, mv := i, mv
		g.Go(func() error {
			local := b.Clone()
			// Candidates come from LegalMoves on b, so MakeMove cannot fail here.
			local.MakeMove(color, mv.Row, mv.Col)
			scores[i], _, _ = s.alphaBeta(local, ply+1, color.Opponent(), color, 1, math.Inf(-1), math.Inf(1), false)
			return nil
		})
	}
	g.Wait()

	best, bestMove := math.Inf(-1), NoMove
	for i, sc := range scores {
		if sc > best {
			best = sc
			bestMove = moves[i]
		}
	}
	return best, bestMove, true
}
