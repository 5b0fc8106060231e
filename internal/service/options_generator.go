package service

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

// wrongOptionsPerQuestion is the number of distractors next to the correct option.
const wrongOptionsPerQuestion = 3

// OptionGenerator generates multiple choice questions from the catalog.
// Distractors are drawn from the whole catalog, not only from the subset
// a session is built on.
type OptionGenerator struct {
	allRoots []*entities.Root
}

// NewOptionGenerator creates a new option generator.
func NewOptionGenerator(allRoots []*entities.Root) *OptionGenerator {
	return &OptionGenerator{
		allRoots: allRoots,
	}
}

// GenerateQuestions builds count questions over subset. Slot i asks about
// subset[i%len(subset)] with a randomly chosen variant. All randomness comes
// from rng, so the same seed yields the same sequence.
//
// Every question has exactly one correct option. Distractors come from
// other roots and never repeat the correct option; with a catalog too small
// to supply three of them, the question has fewer options.
func (g *OptionGenerator) GenerateQuestions(subset []*entities.Root, count int, rng *rand.Rand) ([]entities.Question, error) {
	if len(subset) == 0 {
		return nil, entities.NewValidationError("subset", "catalog subset is empty")
	}
	if count <= 0 {
		return []entities.Question{}, nil
	}

	questions := make([]entities.Question, 0, count)
	for i := 0; i < count; i++ {
		root := subset[i%len(subset)]
		if len(root.Examples) == 0 {
			return nil, entities.NewValidationError("examples", fmt.Sprintf("root %d has no examples", root.ID))
		}

		if rng.Float64() > 0.5 {
			questions = append(questions, g.wordMeaningQuestion(root, rng))
		} else {
			questions = append(questions, g.rootIdentificationQuestion(root, rng))
		}
	}

	return questions, nil
}

// ItemQuestion returns the quiz attached to root. Roots without a quiz get a
// generated word-meaning question instead.
func (g *OptionGenerator) ItemQuestion(root *entities.Root, rng *rand.Rand) entities.Question {
	if root.Quiz == nil {
		return g.wordMeaningQuestion(root, rng)
	}

	options := make([]string, len(root.Quiz.Options))
	copy(options, root.Quiz.Options)

	explanation := root.Description
	if explanation == "" && len(root.Examples) > 0 {
		explanation = root.Examples[0].Explanation
	}

	return entities.Question{
		ItemID:        root.ID,
		Type:          entities.QuestionItemQuiz,
		Prompt:        root.Quiz.Question,
		Options:       options,
		CorrectIndex:  root.Quiz.CorrectAnswer,
		CorrectAnswer: options[root.Quiz.CorrectAnswer],
		Explanation:   explanation,
	}
}

func (g *OptionGenerator) wordMeaningQuestion(root *entities.Root, rng *rand.Rand) entities.Question {
	example := root.Examples[rng.Intn(len(root.Examples))]

	var pool []string
	for _, other := range g.allRoots {
		if other.ID == root.ID {
			continue
		}
		for _, ex := range other.Examples {
			pool = append(pool, ex.Meaning)
		}
	}

	wrong := pickWrongOptions(pool, example.Meaning, wrongOptionsPerQuestion, rng)
	options, correctIndex := buildOptionsWithCorrect(example.Meaning, wrong, rng)

	return entities.Question{
		ItemID:        root.ID,
		Type:          entities.QuestionWordMeaning,
		Prompt:        fmt.Sprintf("What does the word %q mean?", example.Word),
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: example.Meaning,
		Explanation:   example.Explanation,
	}
}

func (g *OptionGenerator) rootIdentificationQuestion(root *entities.Root, rng *rand.Rand) entities.Question {
	example := root.Examples[0]
	fold := cases.Fold()

	var pool []string
	for _, other := range g.allRoots {
		if other.ID == root.ID {
			continue
		}
		for _, ex := range other.Examples {
			// A word of another root can still carry this morpheme.
			if containsMorpheme(fold, root, ex.Word) {
				continue
			}
			pool = append(pool, ex.Word)
		}
	}

	wrong := pickWrongOptions(pool, example.Word, wrongOptionsPerQuestion, rng)
	options, correctIndex := buildOptionsWithCorrect(example.Word, wrong, rng)

	return entities.Question{
		ItemID:        root.ID,
		Type:          entities.QuestionRootIdentification,
		Prompt:        fmt.Sprintf("Which word contains the root %q (%s)?", root.Root, root.Meaning),
		Options:       options,
		CorrectIndex:  correctIndex,
		CorrectAnswer: example.Word,
		Explanation:   fmt.Sprintf("%s = %s", example.Word, example.Explanation),
	}
}

// containsMorpheme reports whether word carries root's morpheme in the
// position its kind implies.
func containsMorpheme(fold cases.Caser, root *entities.Root, word string) bool {
	morpheme := fold.String(strings.Trim(strings.TrimSpace(root.Root), "-"))
	if morpheme == "" {
		return false
	}
	w := fold.String(strings.TrimSpace(word))

	switch root.Kind() {
	case entities.KindPrefix:
		return strings.HasPrefix(w, morpheme)
	case entities.KindSuffix:
		return strings.HasSuffix(w, morpheme)
	default:
		return strings.Contains(w, morpheme)
	}
}

// pickWrongOptions shuffles the candidate pool and returns up to count
// unique, non-empty values different from correct.
func pickWrongOptions(pool []string, correct string, count int, rng *rand.Rand) []string {
	candidates := make([]string, len(pool))
	copy(candidates, pool)

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	used := map[string]bool{correct: true}
	wrong := make([]string, 0, count)
	for _, c := range candidates {
		if len(wrong) >= count {
			break
		}
		if c == "" || used[c] {
			continue
		}
		used[c] = true
		wrong = append(wrong, c)
	}

	return wrong
}

// buildOptionsWithCorrect shuffles the correct option in among the wrong
// ones and returns the options with the index of the correct one.
func buildOptionsWithCorrect(correct string, wrong []string, rng *rand.Rand) ([]string, int) {
	options := make([]string, 0, len(wrong)+1)
	options = append(options, correct)
	options = append(options, wrong...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i, opt := range options {
		if opt == correct {
			return options, i
		}
	}
	return options, 0
}
