// file: internal/game/evaluate.go
package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Weights is the tunable parameter vector of the evaluator, one weight per feature.
type Weights [NumFeatures]int

// DefaultWeights is the vector produced by a long tuning run.
var DefaultWeights = Weights{51, 151, 74, 97, 103, 78, 151, 126, 26}

func (w Weights) String() string {
	return fmt.Sprint([NumFeatures]int(w))
}

// ParseWeights reads the String form ("[51 151 ...]") or a comma or space
// separated list of NumFeatures integers.
func ParseWeights(s string) (Weights, error) {
	var w Weights
	s = strings.Trim(strings.TrimSpace(s), "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != NumFeatures {
		return w, errors.Errorf("want %d weights, got %d in %q", NumFeatures, len(fields), s)
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return w, errors.Wrapf(err, "weight %d", i)
		}
		w[i] = v
	}
	return w, nil
}

func dot(w *Weights, fv *FeatureVector) float64 {
	total := 0.0
	for i := 0; i < NumFeatures; i++ {
		total += float64(w[i]) * fv[i]
	}
	return total
}

// Utility scores b from agent's point of view: the weighted features of agent
// minus the same weights applied to the opponent's features. It does not look
// at whose turn it is; the search handles sign through max/min alternation.
// Searcher passes the root mover as agent rather than always Black.
func Utility(b *Board, agent Color, w *Weights) float64 {
	own := Extract(b, agent)
	opp := Extract(b, agent.Opponent())
	return dot(w, &own) - dot(w, &opp)
}
