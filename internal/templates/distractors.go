package templates

import (
	"math"
	"math/rand"

	"github.com/abhisek/adaptix/internal/learner"
)

// commonError produces an operation-specific plausible mistake: the kind
// of wrong answer a learner actually gives, rather than random noise.
func commonError(rng *rand.Rand, op learner.Operation, a, b, answer float64) float64 {
	switch op {
	case learner.OpAddition:
		// Off-by-one miscounts and dropped carries.
		switch rng.Intn(3) {
		case 0:
			return answer + 1
		case 1:
			return answer - 1
		default:
			return answer - 10
		}
	case learner.OpSubtraction:
		// Off-by-one, or borrowing the wrong way.
		switch rng.Intn(3) {
		case 0:
			return answer + 1
		case 1:
			return answer - 1
		default:
			return math.Abs(b - a)
		}
	case learner.OpMultiplication:
		// Slipping one row in the times table, or a ±10% estimate.
		switch rng.Intn(3) {
		case 0:
			return answer + a
		case 1:
			return answer - a
		default:
			return round2(answer * 1.1)
		}
	case learner.OpDivision:
		// ±10%, or forgetting which operand divides which.
		switch rng.Intn(3) {
		case 0:
			return round2(answer * 1.1)
		case 1:
			return round2(answer * 0.9)
		default:
			if a != 0 {
				return round2(b / a)
			}
			return answer + 1
		}
	default:
		return answer + 1
	}
}

// perturb shifts the answer by a random offset scaled by the
// difficulty-dependent variance. The result always differs from answer.
func perturb(rng *rand.Rand, answer, variance float64) float64 {
	span := math.Abs(answer) * variance
	if span < 1 {
		span = 1
	}
	delta := (rng.Float64()*2 - 1) * span
	candidate := round2(answer + delta)
	if candidate == round2(answer) {
		candidate = round2(answer + math.Copysign(1, delta))
	}
	return candidate
}
