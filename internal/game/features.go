package game

// NumFeatures is the length of every FeatureVector and Weights.
const NumFeatures = 9

// Feature indices. The order is shared with Weights.
const (
	FeatCorners           = iota // (k,k) corners of the outer ring
	FeatCornerEdges              // edge squares next to a corner
	FeatSecondEdges              // edge squares two away from a corner
	FeatMiddleEdges              // the two middle squares of each edge
	FeatPreEdgeCorners           // corners of the second ring
	FeatPreEdgeNormal            // non-corner squares of the second ring
	FeatInnerCorners             // corners of the inner 4x4 square
	FeatInnerNormal              // the rest of the inner 4x4 square
	FeatDiskDifferential         // own disks minus opponent disks
)

// FeatureVector holds the normalized features for one (board, color) pair.
type FeatureVector [NumFeatures]float64

// featureScale divides each raw count. Negative entries mark squares that hurt
// their owner, so the sign is inverted as the feature is stored.
var featureScale = [NumFeatures]float64{
	FeatCorners:          1,
	FeatCornerEdges:      -2,
	FeatSecondEdges:      2,
	FeatMiddleEdges:      2,
	FeatPreEdgeCorners:   -1,
	FeatPreEdgeNormal:    -3,
	FeatInnerCorners:     1,
	FeatInnerNormal:      3,
	FeatDiskDifferential: 6,
}

// Square classes of the geometry below:
//
//	1 2 3 4 4 3 2 1
//	2 5 6 6 6 6 5 2
//	3 6 7 8 8 7 6 3
//	4 6 8 8 8 8 6 4
//	4 6 8 8 8 8 6 4
//	3 6 7 8 8 7 6 3
//	2 5 6 6 6 6 5 2
//	1 2 3 4 4 3 2 1
//
// squareClass[r][c] is the feature index (0..7) that an owned disk at (r,c) counts toward.
var squareClass [Size][Size]int

func init() {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			squareClass[r][c] = classify(r, c)
		}
	}
}

func classify(x, y int) int {
	switch {
	case isCorner(x, y, 0):
		return FeatCorners
	case onEdgeNotCorner(x, y, 1):
		return FeatCornerEdges
	case onEdgeNotCorner(x, y, 2):
		return FeatSecondEdges
	case onEdgeNotCorner(x, y, 3):
		return FeatMiddleEdges
	case isCorner(x, y, 1):
		return FeatPreEdgeCorners
	case insideRingNotCorner(x, y, 1):
		return FeatPreEdgeNormal
	case isCorner(x, y, 2):
		return FeatInnerCorners
	case insideRingNotCorner(x, y, 2), isCorner(x, y, 3):
		return FeatInnerNormal
	}
	// every square belongs to exactly one class
	panic("classify: unclassified square")
}

// isCorner reports whether (x,y) is a corner of ring k.
func isCorner(x, y, k int) bool {
	lo, hi := k, Size-1-k
	return (x == lo || x == hi) && (y == lo || y == hi)
}

// onEdgeNotCorner reports whether (x,y) is on the outer edge at offset k from a corner.
func onEdgeNotCorner(x, y, k int) bool {
	lo, hi := k, Size-1-k
	onOffset := func(v int) bool { return v == lo || v == hi }
	return ((x == 0 || x == Size-1) && onOffset(y)) ||
		((y == 0 || y == Size-1) && onOffset(x))
}

// insideRingNotCorner reports whether (x,y) lies on ring k strictly between its corners.
func insideRingNotCorner(x, y, k int) bool {
	lo, hi := k, Size-1-k
	between := func(v int) bool { return v >= lo+1 && v <= hi-1 }
	return ((x == lo || x == hi) && between(y)) ||
		((y == lo || y == hi) && between(x))
}

// Extract computes the FeatureVector of b for color in a single pass.
func Extract(b *Board, color Color) FeatureVector {
	var counts [NumFeatures]int
	me, opp := color.Disk(), color.Opponent().Disk()
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b.Cells[r][c] {
			case me:
				counts[squareClass[r][c]]++
				counts[FeatDiskDifferential]++
			case opp:
				counts[FeatDiskDifferential]--
			}
		}
	}
	var fv FeatureVector
	for i, n := range counts {
		fv[i] = float64(n) / featureScale[i]
	}
	return fv
}
