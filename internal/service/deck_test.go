package service_test

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

func TestBuildDotsDeck_WindowOfTen(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	start := 11
	p := &service.DotsProgress{CurrentDay: 8, CardStart: &start}

	stimuli, cards := service.BuildDotsDeck(rng, p)
	if len(stimuli) != 10 {
		t.Fatalf("expected 10 stimuli, got %d", len(stimuli))
	}

	sorted := append([]int(nil), cards...)
	sort.Ints(sorted)
	for i, n := range sorted {
		if n != start+i {
			t.Fatalf("expected cards %d..%d, got %v", start, start+9, sorted)
		}
	}
	for i, st := range stimuli {
		if st.Kind != domain.StimulusDots || st.Number != cards[i] {
			t.Fatalf("stimulus %d does not match card %d: %+v", i, cards[i], st)
		}
	}
}

func TestBuildDotsDeck_CapsAtHundred(t *testing.T) {
	rng := rand.New(rand.NewPCG(6, 6))
	start := 97
	p := &service.DotsProgress{CurrentDay: 53, CardStart: &start}

	stimuli, cards := service.BuildDotsDeck(rng, p)
	if len(stimuli) != 4 {
		t.Fatalf("expected 4 cards at the end of the program, got %d", len(stimuli))
	}
	for _, n := range cards {
		if n > 100 {
			t.Fatalf("card %d exceeds the program", n)
		}
	}
}

func TestBuildDotsDeck_EmptyAfterProgramEnd(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	start := 101
	p := &service.DotsProgress{CurrentDay: 60, CardStart: &start}

	stimuli, _ := service.BuildDotsDeck(rng, p)
	if len(stimuli) != 0 {
		t.Fatalf("expected empty deck past card 100, got %d", len(stimuli))
	}
}

func TestBuildEnglishDeck_UnlearnedFirst(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 8))
	p := &service.EnglishProgress{Category: "colors"}

	// The colors category has ten words; learn seven so the deck must
	// lead with the remaining three.
	stimuli, words := service.BuildEnglishDeck(rng, p)
	if len(stimuli) == 0 {
		t.Fatal("expected a non-empty deck")
	}
	pool := make(map[string]bool, len(words))
	for _, w := range words {
		pool[w] = true
	}

	learned := words[:len(words)-3]
	p.LearnedWords = learned
	stimuli, words = service.BuildEnglishDeck(rng, p)
	if len(stimuli) > 10 {
		t.Fatalf("deck too large: %d", len(stimuli))
	}

	learnedSet := make(map[string]bool, len(learned))
	for _, w := range learned {
		learnedSet[w] = true
	}
	for i := 0; i < 3; i++ {
		if learnedSet[words[i]] {
			t.Fatalf("expected unlearned words first, got learned %q at position %d", words[i], i)
		}
	}
}

func TestBuildHiraganaDeck_RespectsRow(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	p := &service.HiraganaProgress{Row: "a"}

	stimuli, kanas := service.BuildHiraganaDeck(rng, p)
	if len(stimuli) != 5 {
		t.Fatalf("expected the 5 kana of the a-row, got %d", len(stimuli))
	}
	allowed := map[string]bool{"あ": true, "い": true, "う": true, "え": true, "お": true}
	for _, k := range kanas {
		if !allowed[k] {
			t.Fatalf("kana %q does not belong to the a-row", k)
		}
	}
}

func TestBuildMathDeck_UsesSettings(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 10))
	p := &service.MathProgress{Mode: "addition", MaxNumber: 10, EquationsPerSession: 4}

	stimuli, equations := service.BuildMathDeck(rng, p)
	if len(stimuli) != 4 || len(equations) != 4 {
		t.Fatalf("expected 4 equations, got %d stimuli, %d equations", len(stimuli), len(equations))
	}
	for _, eq := range equations {
		if eq.Answer > 10 {
			t.Fatalf("answer %d exceeds maxNumber", eq.Answer)
		}
	}
	for _, st := range stimuli {
		if st.Kind != domain.StimulusEquation || st.Equation == nil {
			t.Fatalf("expected equation stimulus, got %+v", st)
		}
	}
}
