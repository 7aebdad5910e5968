package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestSquareClassesPartitionBoard(t *testing.T) {
	var counts [NumFeatures]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			counts[squareClass[r][c]]++
		}
	}
	want := [NumFeatures]int{4, 8, 8, 8, 4, 16, 4, 12, 0}
	if counts != want {
		t.Fatalf("class sizes = %v, want %v", counts, want)
	}
	if squareClass[0][7] != FeatCorners || squareClass[1][6] != FeatPreEdgeCorners || squareClass[3][4] != FeatInnerNormal {
		t.Fatalf("unexpected class layout")
	}
}

func TestExtractFullBoard(t *testing.T) {
	b := &Board{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b.Cells[r][c] = BlackDisk
		}
	}
	got := Extract(b, Black)
	want := FeatureVector{4, -4, 4, 4, -4, -16.0 / 3, 4, 4, 64.0 / 6}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("feature %d = %v, want %v", i, got[i], want[i])
		}
	}
	opp := Extract(b, White)
	for i := 0; i < FeatDiskDifferential; i++ {
		if opp[i] != 0 {
			t.Fatalf("white feature %d = %v, want 0", i, opp[i])
		}
	}
	if opp[FeatDiskDifferential] != -64.0/6 {
		t.Fatalf("white differential = %v", opp[FeatDiskDifferential])
	}
}

func TestExtractInitialBoard(t *testing.T) {
	fv := Extract(NewBoard(), Black)
	// (3,4) and (4,3) are inner-square normal squares.
	if fv[FeatInnerNormal] != 2.0/3 {
		t.Fatalf("inner normal = %v, want 2/3", fv[FeatInnerNormal])
	}
	if fv[FeatDiskDifferential] != 0 {
		t.Fatalf("differential = %v, want 0", fv[FeatDiskDifferential])
	}
}

func TestUtilityAntisymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, b := range RandomBoards(200, r) {
		var w Weights
		for i := range w {
			w[i] = 1 + r.Intn(200)
		}
		black := Utility(b, Black, &w)
		white := Utility(b, White, &w)
		if math.Abs(black+white) > 1e-9 {
			t.Fatalf("utility(Black)=%v utility(White)=%v are not negations", black, white)
		}
	}
}

func TestUtilityPrefersCorners(t *testing.T) {
	b := NewBoard()
	b.Cells[0][0] = BlackDisk
	w := DefaultWeights
	if Utility(b, Black, &w) <= 0 {
		t.Fatalf("an extra corner disk should score positively for its owner")
	}
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights(DefaultWeights.String())
	if err != nil {
		t.Fatal(err)
	}
	if w != DefaultWeights {
		t.Fatalf("got %v, want %v", w, DefaultWeights)
	}
	w, err = ParseWeights("1, 2,3 4,5,6,7,8,9")
	if err != nil {
		t.Fatal(err)
	}
	if w != (Weights{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Fatalf("got %v", w)
	}
	for _, bad := range []string{"", "[1 2 3]", "[1 2 3 4 5 6 7 8 x]", "1 2 3 4 5 6 7 8 9 10"} {
		if _, err := ParseWeights(bad); err == nil {
			t.Errorf("ParseWeights(%q) accepted", bad)
		}
	}
}

func TestDiskDifferentialIgnoresEmptyCells(t *testing.T) {
	b := NewBoard()
	if err := b.Apply(Black, 2, 3); err != nil {
		t.Fatal(err)
	}
	// 4 black, 1 white, 59 empty.
	if got := Extract(b, Black)[FeatDiskDifferential]; got != 3.0/6 {
		t.Fatalf("black differential = %v, want 0.5", got)
	}
	if got := Extract(b, White)[FeatDiskDifferential]; got != -3.0/6 {
		t.Fatalf("white differential = %v, want -0.5", got)
	}
}
