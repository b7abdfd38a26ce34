package quiz

import "time"

// FormatVersion is the schemaVersion stamped on exported module JSON.
// Imports accept any older version (normalization upgrades them) and
// reject data whose major version is newer than this.
const FormatVersion = "1.1.0"

// QuizOption is one selectable answer for a question.
type QuizOption struct {
	OptionID   string `json:"optionId"`
	OptionText string `json:"optionText"`
}

// QuizQuestion is a single question plus its review state. The parser
// creates questions in the initial state (level 0, not attempted, no
// review scheduled); afterwards only the scheduler and the normalization
// engine mutate review fields.
type QuizQuestion struct {
	QuestionID                   string         `json:"questionId"`
	QuestionText                 string         `json:"questionText"`
	Options                      []QuizOption   `json:"options"`
	CorrectOptionIDs             []string       `json:"correctOptionIds"`
	ExplanationText              string         `json:"explanationText"`
	Type                         QuestionType   `json:"type,omitempty"`
	Status                       QuestionStatus `json:"status"`
	TimesAnsweredCorrectly       int            `json:"timesAnsweredCorrectly"`
	TimesAnsweredIncorrectly     int            `json:"timesAnsweredIncorrectly"`
	LastSelectedOptionID         string         `json:"lastSelectedOptionId,omitempty"`
	HistoryOfIncorrectSelections []string       `json:"historyOfIncorrectSelections"`
	LastAttemptedAt              *time.Time     `json:"lastAttemptedAt,omitempty"`
	SRSLevel                     int            `json:"srsLevel"`
	NextReviewAt                 *time.Time     `json:"nextReviewAt"`
	ShownIncorrectOptionIDs      []string       `json:"shownIncorrectOptionIds"`
}

// HasOption reports whether the question contains an option with the given ID.
func (q *QuizQuestion) HasOption(optionID string) bool {
	for _, opt := range q.Options {
		if opt.OptionID == optionID {
			return true
		}
	}
	return false
}

// IsCorrect reports whether selecting the given option answers the
// question correctly.
func (q *QuizQuestion) IsCorrect(optionID string) bool {
	for _, id := range q.CorrectOptionIDs {
		if id == optionID {
			return true
		}
	}
	return false
}

// QuizChapter groups questions. The counter fields are derived: the
// normalization engine recomputes them from the question list and never
// trusts stored values.
type QuizChapter struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description,omitempty"`
	Questions         []QuizQuestion `json:"questions"`
	TotalQuestions    int            `json:"totalQuestions"`
	AnsweredQuestions int            `json:"answeredQuestions"`
	CorrectAnswers    int            `json:"correctAnswers"`
	IsCompleted       bool           `json:"isCompleted"`
}

// QuizModule is the root of the owned tree. Question IDs are unique
// across the whole module, chapter IDs within it.
type QuizModule struct {
	SchemaVersion string        `json:"schemaVersion,omitempty"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Chapters      []QuizChapter `json:"chapters"`
}

// QuestionCount returns the total number of questions across all chapters.
func (m *QuizModule) QuestionCount() int {
	n := 0
	for i := range m.Chapters {
		n += len(m.Chapters[i].Questions)
	}
	return n
}

// FindQuestion returns the question with the given ID, or nil.
func (m *QuizModule) FindQuestion(questionID string) *QuizQuestion {
	for ci := range m.Chapters {
		for qi := range m.Chapters[ci].Questions {
			if m.Chapters[ci].Questions[qi].QuestionID == questionID {
				return &m.Chapters[ci].Questions[qi]
			}
		}
	}
	return nil
}
