// Package entities contains domain entities used across the application.
package entities

import "strings"

// RootKind classifies a morphological unit by its spelling.
type RootKind string

const (
	KindPrefix RootKind = "prefix" // spelled with a trailing dash, e.g. "re-"
	KindSuffix RootKind = "suffix" // spelled with a leading dash, e.g. "-able"
	KindRoot   RootKind = "root"   // everything else, e.g. "spect"
)

// Root is one catalog item: a prefix, suffix or root together with
// example words and the quiz attached to it.
type Root struct {
	ID          int       `json:"id"`          // catalog id, unique and positive
	Root        string    `json:"root"`        // spelling, e.g. "spect" or "re-"
	Origin      string    `json:"origin"`      // language of origin, e.g. "Latin"
	Meaning     string    `json:"meaning"`     // short meaning shown to the learner
	MeaningEn   string    `json:"meaningEn"`   // English gloss of the meaning
	Description string    `json:"description"` // longer explanation
	Examples    []Example `json:"examples"`    // example words built on this root
	Quiz        *Quiz     `json:"quiz"`        // attached single-choice quiz, may be nil
}

// Example is a word that contains the root.
type Example struct {
	Word        string    `json:"word"`
	Breakdown   Breakdown `json:"breakdown"`
	Meaning     string    `json:"meaning"`
	Explanation string    `json:"explanation"`
}

// Breakdown splits an example word into its morphemes.
type Breakdown struct {
	Prefix string `json:"prefix,omitempty"`
	Root   string `json:"root"`
	Suffix string `json:"suffix,omitempty"`
}

// Quiz is the single-choice question attached to a catalog item.
type Quiz struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
}

// Kind derives the item kind from its spelling.
func (r *Root) Kind() RootKind {
	name := strings.ToLower(strings.TrimSpace(r.Root))

	switch {
	case strings.HasPrefix(name, "-"):
		return KindSuffix
	case strings.HasSuffix(name, "-"):
		return KindPrefix
	default:
		return KindRoot
	}
}

// Validate checks that the item can be used for learning and quizzes.
func (r *Root) Validate() error {
	if r.ID <= 0 {
		return NewValidationError("id", "must be positive")
	}
	if strings.TrimSpace(r.Root) == "" {
		return NewValidationError("root", "must not be empty")
	}
	if len(r.Examples) == 0 {
		return NewValidationError("examples", "at least one example is required")
	}
	for _, ex := range r.Examples {
		if strings.TrimSpace(ex.Word) == "" {
			return NewValidationError("examples.word", "must not be empty")
		}
		if strings.TrimSpace(ex.Meaning) == "" {
			return NewValidationError("examples.meaning", "must not be empty")
		}
	}
	if r.Quiz != nil {
		if len(r.Quiz.Options) < 2 {
			return NewValidationError("quiz.options", "at least two options are required")
		}
		if r.Quiz.CorrectAnswer < 0 || r.Quiz.CorrectAnswer >= len(r.Quiz.Options) {
			return NewValidationError("quiz.correctAnswer", "out of range")
		}
	}
	return nil
}
