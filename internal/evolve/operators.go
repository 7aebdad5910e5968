package evolve

import (
	"math"
	"math/rand"

	"othello_go/internal/game"
)

// Blend returns floor(alpha*a[i] + (1-alpha)*b[i]) for every component.
func Blend(a, b game.Weights, alpha float64) game.Weights {
	var out game.Weights
	for i := range out {
		out[i] = int(math.Floor(alpha*float64(a[i]) + (1-alpha)*float64(b[i])))
	}
	return out
}

// Mutate perturbs at most one component of w with probability
// MutationProbability / generation. The mutated component is clamped to
// [MinWeight, MaxWeight]; the others are left as they are.
func (o *Optimizer) Mutate(w game.Weights) game.Weights {
	return mutate(o.rng, w, o.cfg.MutationProbability/float64(o.gen), o.cfg.MutationBias, o.cfg.MinWeight, o.cfg.MaxWeight)
}

func mutate(r *rand.Rand, w game.Weights, p float64, bias, lo, hi int) game.Weights {
	if r.Float64() >= p {
		return w
	}
	i := r.Intn(game.NumFeatures)
	w[i] += r.Intn(2*bias) - bias
	if w[i] > hi {
		w[i] = hi
	} else if w[i] < lo {
		w[i] = lo
	}
	return w
}

// Crossover makes n children. With other == nil both parents come from pool;
// otherwise the first parent comes from pool and the second from other. Each
// child blends its parents with one shared alpha and is then mutated.
func (o *Optimizer) Crossover(pool, other []*Gene, n int) []*Gene {
	children := make([]*Gene, 0, n)
	for k := 0; k < n; k++ {
		var pa, pb *Gene
		if other == nil {
			parents := sample(o.rng, pool, 2)
			pa, pb = parents[0], parents[1]
		} else {
			pa = sample(o.rng, pool, 1)[0]
			pb = sample(o.rng, other, 1)[0]
		}
		alpha := o.rng.Float64()
		children = append(children, NewGene(o.Mutate(Blend(pa.Weights, pb.Weights, alpha))))
	}
	return children
}
