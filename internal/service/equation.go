package service

import (
	"fmt"
	"math/rand/v2"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// GenerateEquations produces count distinct equations whose operands
// and answers stay within [1, maxNumber]. mode selects addition,
// subtraction, or a random mix. Duplicate draws are retried a bounded
// number of times, so a tiny maxNumber yields fewer equations rather
// than a spin.
func GenerateEquations(rng *rand.Rand, count, maxNumber int, mode string) []domain.Equation {
	if maxNumber < 3 {
		maxNumber = 3
	}

	equations := make([]domain.Equation, 0, count)
	seen := make(map[string]bool, count)
	for attempts := 0; len(equations) < count && attempts < count*50; attempts++ {
		op := domain.OpAdd
		switch mode {
		case "subtraction":
			op = domain.OpSub
		case "mixed":
			if rng.IntN(2) == 1 {
				op = domain.OpSub
			}
		}

		var eq domain.Equation
		if op == domain.OpAdd {
			// Answers of at least 3 keep both operands positive.
			answer := rng.IntN(maxNumber-2) + 3
			a := rng.IntN(answer-2) + 1
			eq = domain.Equation{A: a, B: answer - a, Op: domain.OpAdd, Answer: answer}
		} else {
			a := rng.IntN(maxNumber-2) + 3
			b := rng.IntN(a-1) + 1
			eq = domain.Equation{A: a, B: b, Op: domain.OpSub, Answer: a - b}
		}

		key := fmt.Sprintf("%d%s%d", eq.A, eq.Op, eq.B)
		if seen[key] {
			continue
		}
		seen[key] = true
		equations = append(equations, eq)
	}
	return equations
}
