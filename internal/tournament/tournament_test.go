package tournament

import (
	"context"
	"testing"

	"othello_go/internal/game"
)

func TestSameWeightsGameTerminates(t *testing.T) {
	r := NewRunner(game.SearchConfig{MaxDepth: 2, Width: 3, Workers: 1})
	res, err := r.Play(context.Background(), game.DefaultWeights, game.DefaultWeights)
	if err != nil {
		t.Fatal(err)
	}
	if res.Black+res.White > game.Cells {
		t.Fatalf("%d disks on a 64-cell board", res.Black+res.White)
	}
	if res.Moves < 1 || res.Moves > game.Cells-4 {
		t.Fatalf("moves = %d", res.Moves)
	}
	if res.Decided != (res.Black != res.White) {
		t.Fatalf("inconsistent result %+v", res)
	}
	if res.Decided && (res.Winner == game.Black) != (res.Black > res.White) {
		t.Fatalf("winner does not match disk counts: %+v", res)
	}
}

func TestPlayIsDeterministic(t *testing.T) {
	r := NewRunner(game.SearchConfig{MaxDepth: 2, Width: 3, Workers: 1})
	a := game.Weights{10, 20, 30, 40, 50, 60, 70, 80, 5}
	b := game.DefaultWeights
	first, err := r.Play(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Play(context.Background(), a, b)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("replay differs: %v vs %v", first, second)
	}
}

func TestPlayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(game.DefaultSearchConfig())
	if _, err := r.Play(ctx, game.DefaultWeights, game.DefaultWeights); err == nil {
		t.Fatalf("cancelled context should stop the game")
	}
}

func TestPlayFromLeavesStartUntouched(t *testing.T) {
	start := game.NewGameState()
	if _, err := start.MakeMove(game.Move{Row: 2, Col: 3}); err != nil {
		t.Fatal(err)
	}
	before := start.Clone()
	r := NewRunner(game.SearchConfig{MaxDepth: 1, Width: 3, Workers: 1})
	res, err := r.PlayFrom(context.Background(), start, game.DefaultWeights, game.DefaultWeights)
	if err != nil {
		t.Fatal(err)
	}
	if *start.Board != *before.Board || start.Turn != before.Turn || start.Ply != before.Ply {
		t.Fatalf("start position was modified")
	}
	if res.Moves <= start.Ply {
		t.Fatalf("moves = %d, start ply %d", res.Moves, start.Ply)
	}
}
