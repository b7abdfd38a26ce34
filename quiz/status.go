package quiz

// QuestionStatus tracks where a question sits in the review lifecycle.
// It is derived from SRSLevel plus attempt evidence; the normalization
// engine enforces the pairing (level 2 is always mastered, level 1 is
// always passed_once).
type QuestionStatus string

const (
	StatusNotAttempted QuestionStatus = "not_attempted"
	StatusAttempted    QuestionStatus = "attempted"
	StatusPassedOnce   QuestionStatus = "passed_once"
	StatusMastered     QuestionStatus = "mastered"
)

// Valid reports whether s is one of the defined statuses.
func (s QuestionStatus) Valid() bool {
	switch s {
	case StatusNotAttempted, StatusAttempted, StatusPassedOnce, StatusMastered:
		return true
	}
	return false
}

// QuestionType distinguishes multiple-choice from true/false questions.
type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeTrueFalse QuestionType = "true_false"
)

// Valid reports whether t is one of the defined types.
func (t QuestionType) Valid() bool {
	return t == TypeMCQ || t == TypeTrueFalse
}

// True/false questions carry two synthesized options with these fixed IDs.
const (
	TrueOptionID  = "true"
	FalseOptionID = "false"
)
