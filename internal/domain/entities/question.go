package entities

// QuestionType is the variant of a generated question.
type QuestionType string

const (
	QuestionWordMeaning        QuestionType = "word-meaning"        // given a word, pick its meaning
	QuestionRootIdentification QuestionType = "root-identification" // given a root, pick a word containing it
	QuestionItemQuiz           QuestionType = "item-quiz"           // the quiz attached to a catalog item
)

// Question is a single-choice question with exactly one correct option.
type Question struct {
	ItemID        int
	Type          QuestionType
	Prompt        string
	Options       []string // multiple choice, shuffled
	CorrectIndex  int
	CorrectAnswer string
	Explanation   string
}

// IsCorrect reports whether choice points at the correct option.
func (q *Question) IsCorrect(choice int) bool {
	return choice == q.CorrectIndex
}

// AnswerResult is the feedback for one answered question.
type AnswerResult struct {
	IsCorrect     bool
	CorrectAnswer string
	Explanation   string
}
