package service

import (
	"math/rand/v2"

	"github.com/kodomo-labs/kodomo/internal/content"
	"github.com/kodomo-labs/kodomo/internal/domain"
)

const (
	dotsCardsPerSession  = 10
	dotsMaxCard          = 100
	flashCardsPerSession = 10
	wordsPerLevel        = 10
)

// BuildDotsDeck selects the session's card numbers from the child's
// pacing window and returns them as shuffled dot stimuli. An empty deck
// means the child has finished the 100-card program.
func BuildDotsDeck(rng *rand.Rand, p *DotsProgress) ([]domain.Stimulus, []int) {
	start := CardStartForDay(p.CurrentDay)
	if p.CardStart != nil {
		start = *p.CardStart
	}
	if start > dotsMaxCard {
		return nil, nil
	}

	var cards []int
	for n := start; n < start+dotsCardsPerSession && n <= dotsMaxCard; n++ {
		cards = append(cards, n)
	}
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })

	stimuli := make([]domain.Stimulus, len(cards))
	for i, n := range cards {
		stimuli[i] = domain.Stimulus{Kind: domain.StimulusDots, Number: n}
	}
	return stimuli, cards
}

// BuildMathDeck generates the session's equations per the child's mode
// and number range.
func BuildMathDeck(rng *rand.Rand, p *MathProgress) ([]domain.Stimulus, []domain.Equation) {
	count := p.EquationsPerSession
	if count <= 0 {
		count = 3
	}
	equations := GenerateEquations(rng, count, p.MaxNumber, p.Mode)

	stimuli := make([]domain.Stimulus, len(equations))
	for i := range equations {
		stimuli[i] = domain.Stimulus{Kind: domain.StimulusEquation, Equation: &equations[i]}
	}
	return stimuli, equations
}

// BuildEnglishDeck picks up to ten vocabulary cards from the child's
// category, unlearned words first so each session pushes the frontier.
func BuildEnglishDeck(rng *rand.Rand, p *EnglishProgress) ([]domain.Stimulus, []string) {
	pool := content.WordsByCategory(p.Category)

	learned := make(map[string]bool, len(p.LearnedWords))
	for _, w := range p.LearnedWords {
		learned[w] = true
	}
	var fresh, review []content.WordCard
	for _, card := range pool {
		if learned[card.Word] {
			review = append(review, card)
		} else {
			fresh = append(fresh, card)
		}
	}
	rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
	rng.Shuffle(len(review), func(i, j int) { review[i], review[j] = review[j], review[i] })

	deck := append(fresh, review...)
	if len(deck) > flashCardsPerSession {
		deck = deck[:flashCardsPerSession]
	}

	stimuli := make([]domain.Stimulus, len(deck))
	words := make([]string, len(deck))
	for i, card := range deck {
		stimuli[i] = domain.Stimulus{Kind: domain.StimulusWord, Word: card.Word, Emoji: card.Emoji}
		words[i] = card.Word
	}
	return stimuli, words
}

// BuildHiraganaDeck picks up to ten kana cards from the child's row,
// unlearned kana first.
func BuildHiraganaDeck(rng *rand.Rand, p *HiraganaProgress) ([]domain.Stimulus, []string) {
	pool := content.HiraganaByRow(p.Row)

	learned := make(map[string]bool, len(p.LearnedKanas))
	for _, k := range p.LearnedKanas {
		learned[k] = true
	}
	var fresh, review []content.KanaCard
	for _, card := range pool {
		if learned[card.Kana] {
			review = append(review, card)
		} else {
			fresh = append(fresh, card)
		}
	}
	rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
	rng.Shuffle(len(review), func(i, j int) { review[i], review[j] = review[j], review[i] })

	deck := append(fresh, review...)
	if len(deck) > flashCardsPerSession {
		deck = deck[:flashCardsPerSession]
	}

	stimuli := make([]domain.Stimulus, len(deck))
	kanas := make([]string, len(deck))
	for i, card := range deck {
		stimuli[i] = domain.Stimulus{
			Kind:    domain.StimulusKana,
			Word:    card.Word,
			Kana:    card.Kana,
			Kanji:   card.Kanji,
			Emoji:   card.Emoji,
			Display: p.DisplayMode,
		}
		kanas[i] = card.Kana
	}
	return stimuli, kanas
}

// mergeLearned unions shown items into the learned list, preserving
// the original order.
func mergeLearned(learned, shown []string) []string {
	seen := make(map[string]bool, len(learned))
	out := make([]string, 0, len(learned)+len(shown))
	for _, v := range learned {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range shown {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
