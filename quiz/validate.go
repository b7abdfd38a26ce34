package quiz

import (
	"fmt"
	"strings"
)

// Validate checks the module against every data model invariant without
// mutating it. It returns false plus one message per violation, each
// naming the offending chapter/question by ID or position. Use Normalize
// to repair instead of report.
func Validate(m *QuizModule) (bool, []string) {
	var errs []string

	if m == nil {
		return false, []string{"module is nil"}
	}

	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, "module name is empty")
	}
	if len(m.Chapters) == 0 {
		errs = append(errs, "module has no chapters")
	}

	// Check ID presence and uniqueness: chapter IDs within the module,
	// question IDs across the entire module.
	chapterIDs := make(map[string]bool, len(m.Chapters))
	questionIDs := make(map[string]bool)
	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		cref := chapterRef(ch, ci)

		if strings.TrimSpace(ch.ID) == "" {
			errs = append(errs, fmt.Sprintf("%s: missing chapter ID", cref))
		} else if chapterIDs[ch.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate chapter ID %q", cref, ch.ID))
		}
		chapterIDs[ch.ID] = true

		for qi := range ch.Questions {
			q := &ch.Questions[qi]
			qref := questionRef(ch, ci, q, qi)
			if strings.TrimSpace(q.QuestionID) == "" {
				errs = append(errs, fmt.Sprintf("%s: missing question ID", qref))
			} else if questionIDs[q.QuestionID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate question ID %q", qref, q.QuestionID))
			}
			questionIDs[q.QuestionID] = true

			errs = append(errs, validateQuestion(q, qref)...)
		}

		errs = append(errs, validateAggregates(ch, cref)...)
	}

	return len(errs) == 0, errs
}

func validateQuestion(q *QuizQuestion, ref string) []string {
	var errs []string

	if strings.TrimSpace(q.QuestionText) == "" {
		errs = append(errs, fmt.Sprintf("%s: missing question text", ref))
	}
	if strings.TrimSpace(q.ExplanationText) == "" {
		errs = append(errs, fmt.Sprintf("%s: missing explanation", ref))
	}
	if q.Type != "" && !q.Type.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown question type %q", ref, q.Type))
	}

	if len(q.Options) < 2 {
		errs = append(errs, fmt.Sprintf("%s: %d option(s), need at least 2", ref, len(q.Options)))
	}
	optionIDs := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt.OptionID) == "" {
			errs = append(errs, fmt.Sprintf("%s: option %d has no ID", ref, i+1))
		} else if optionIDs[opt.OptionID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate option ID %q", ref, opt.OptionID))
		}
		optionIDs[opt.OptionID] = true
		if strings.TrimSpace(opt.OptionText) == "" {
			errs = append(errs, fmt.Sprintf("%s: option %d has no text", ref, i+1))
		}
	}

	if len(q.CorrectOptionIDs) == 0 {
		errs = append(errs, fmt.Sprintf("%s: no correct options", ref))
	}
	for _, id := range q.CorrectOptionIDs {
		if !optionIDs[id] {
			errs = append(errs, fmt.Sprintf("%s: correct option %q does not exist", ref, id))
		}
	}

	// Review state invariants.
	if q.SRSLevel < 0 || q.SRSLevel > MaxSRSLevel {
		errs = append(errs, fmt.Sprintf("%s: srsLevel %d out of range [0, %d]", ref, q.SRSLevel, MaxSRSLevel))
	}
	if !q.Status.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown status %q", ref, q.Status))
	}
	if q.TimesAnsweredCorrectly < 0 {
		errs = append(errs, fmt.Sprintf("%s: negative timesAnsweredCorrectly %d", ref, q.TimesAnsweredCorrectly))
	}
	if q.TimesAnsweredIncorrectly < 0 {
		errs = append(errs, fmt.Sprintf("%s: negative timesAnsweredIncorrectly %d", ref, q.TimesAnsweredIncorrectly))
	}

	mastered := q.Status == StatusMastered
	if mastered != (q.SRSLevel == MaxSRSLevel) {
		errs = append(errs, fmt.Sprintf("%s: status %q does not match srsLevel %d", ref, q.Status, q.SRSLevel))
	}
	wantNilReview := q.SRSLevel == MaxSRSLevel || (q.SRSLevel == 0 && q.Status == StatusNotAttempted)
	if wantNilReview && q.NextReviewAt != nil {
		errs = append(errs, fmt.Sprintf("%s: nextReviewAt must be null for %s question at srsLevel %d", ref, q.Status, q.SRSLevel))
	}
	if !wantNilReview && q.NextReviewAt == nil {
		errs = append(errs, fmt.Sprintf("%s: nextReviewAt missing for %s question at srsLevel %d", ref, q.Status, q.SRSLevel))
	}

	return errs
}

// validateAggregates checks the derived chapter counters against the
// question list they were supposedly derived from.
func validateAggregates(ch *QuizChapter, ref string) []string {
	var errs []string

	answered, correct := 0, 0
	for i := range ch.Questions {
		if ch.Questions[i].Status != StatusNotAttempted {
			answered++
		}
		if ch.Questions[i].TimesAnsweredCorrectly > 0 {
			correct++
		}
	}

	if ch.TotalQuestions != len(ch.Questions) {
		errs = append(errs, fmt.Sprintf("%s: totalQuestions %d, have %d questions", ref, ch.TotalQuestions, len(ch.Questions)))
	}
	if ch.AnsweredQuestions != answered {
		errs = append(errs, fmt.Sprintf("%s: answeredQuestions %d, counted %d", ref, ch.AnsweredQuestions, answered))
	}
	if ch.CorrectAnswers != correct {
		errs = append(errs, fmt.Sprintf("%s: correctAnswers %d, counted %d", ref, ch.CorrectAnswers, correct))
	}
	if ch.IsCompleted != (answered == len(ch.Questions)) {
		errs = append(errs, fmt.Sprintf("%s: isCompleted %v, expected %v", ref, ch.IsCompleted, answered == len(ch.Questions)))
	}

	return errs
}

func chapterRef(ch *QuizChapter, ci int) string {
	if strings.TrimSpace(ch.ID) != "" {
		return fmt.Sprintf("chapter %q", ch.ID)
	}
	return fmt.Sprintf("chapter %d", ci+1)
}

func questionRef(ch *QuizChapter, ci int, q *QuizQuestion, qi int) string {
	cref := chapterRef(ch, ci)
	if strings.TrimSpace(q.QuestionID) != "" {
		return fmt.Sprintf("%s question %q", cref, q.QuestionID)
	}
	return fmt.Sprintf("%s question %d", cref, qi+1)
}
