package domain

// StimulusKind discriminates the displayable unit types a flash run can
// present.
type StimulusKind string

const (
	StimulusDots     StimulusKind = "dots"
	StimulusWord     StimulusKind = "word"
	StimulusKana     StimulusKind = "kana"
	StimulusEquation StimulusKind = "equation"
)

// Operation is an arithmetic operator in an equation stimulus.
type Operation string

const (
	OpAdd Operation = "+"
	OpSub Operation = "-"
)

// Equation is a two-operand arithmetic stimulus. It decomposes into
// five sub-steps: a, op, b, equals, answer.
type Equation struct {
	A      int
	B      int
	Op     Operation
	Answer int
}

// Stimulus is one unit in a flash sequence. Exactly one of the
// kind-specific fields is meaningful, per Kind.
type Stimulus struct {
	Kind StimulusKind

	// Dots.
	Number int

	// Word and kana cards. Display selects the kana card layout:
	// "full", "hiragana", or "kanji".
	Word    string
	Kana    string
	Kanji   string
	Emoji   string
	Display string

	// Equation.
	Equation *Equation
}

// Point is a dot position inside the padded unit card, both coordinates
// in percent of the card edge.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
