package game

import "testing"

func TestApplyMoveDryRunAndCommit(t *testing.T) {
	gs := NewGameState()
	if gs.ApplyMove(Black, 0, 0, false) {
		t.Fatalf("(0,0) is not a legal opening move")
	}
	if !gs.ApplyMove(Black, 2, 3, false) {
		t.Fatalf("(2,3) should be legal for Black")
	}
	if gs.Ply != 0 || gs.Board.At(2, 3) != Empty {
		t.Fatalf("dry run changed the state")
	}
	if !gs.ApplyMove(Black, 2, 3, true) {
		t.Fatalf("commit of a legal move failed")
	}
	if gs.Ply != 1 || gs.GetTurn() != White {
		t.Fatalf("ply=%d turn=%v after first move", gs.Ply, gs.Turn)
	}
	if gs.Score(Black) != 4 || gs.Score(White) != 1 {
		t.Fatalf("score black=%d white=%d, want 4/1", gs.Score(Black), gs.Score(White))
	}
	snap := gs.GetBoard()
	snap.Cells[0][0] = WhiteDisk
	if gs.Board.At(0, 0) != Empty {
		t.Fatalf("board snapshot aliases the live board")
	}
}

func TestTurnStaysWhenOpponentMustPass(t *testing.T) {
	// After Black plays (0,2) White has no disks left to move with.
	b, err := ParseBoard(`
		bw______
		________
		________
		________
		________
		________
		________
		_______b`)
	if err != nil {
		t.Fatal(err)
	}
	gs := &GameState{Board: b, Turn: Black}
	if !gs.LegalCell(0, 2) {
		t.Fatalf("(0,2) should be legal for Black")
	}
	if _, err := gs.MakeMove(Move{0, 2}); err != nil {
		t.Fatal(err)
	}
	if !gs.GameOver() {
		t.Fatalf("white has no disks; game should be over")
	}
	if w, ok := gs.Winner(); !ok || w != Black {
		t.Fatalf("winner = %v,%v", w, ok)
	}
	if gs.Turn != Black {
		t.Fatalf("turn switched to a color with no moves")
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	gs := NewGameState()
	if _, err := gs.MakeMove(Move{3, 3}); err == nil {
		t.Fatalf("occupied square accepted")
	}
	if gs.Ply != 0 || gs.Turn != Black {
		t.Fatalf("illegal move changed the state")
	}
}
