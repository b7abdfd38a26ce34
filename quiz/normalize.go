package quiz

import (
	"fmt"
	"strings"
	"time"
)

// UntitledModuleName replaces an empty module name during normalization.
const UntitledModuleName = "Untitled Module"

// Normalize repairs the module in place until it satisfies every data
// model invariant, removing questions that cannot be repaired. It returns
// the full list of repairs and removals in document order. now anchors
// repairs that need a clock: a question whose state requires a scheduled
// review but carries no usable timestamp becomes due immediately.
//
// For a fixed now, Normalize is deterministic and idempotent: running it
// twice yields the same module as running it once.
func Normalize(m *QuizModule, now time.Time) []Issue {
	if m == nil {
		return nil
	}
	var issues []Issue

	m.SchemaVersion = FormatVersion

	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		m.Name = UntitledModuleName
		issues = append(issues, Warnf("", "", "module name is empty, using %q", UntitledModuleName))
	}
	m.Description = strings.TrimSpace(m.Description)

	// IDs first so that every later issue can name its offender.
	// Duplicates are reported, never renamed.
	for _, dup := range ResolveIdentity(m) {
		issues = append(issues, Errorf("", "", "%s", dup))
	}

	if len(m.Chapters) == 0 {
		issues = append(issues, Errorf("", "", "module has no chapters"))
	}

	for ci := range m.Chapters {
		issues = append(issues, normalizeChapter(&m.Chapters[ci], now)...)
	}

	return issues
}

func normalizeChapter(ch *QuizChapter, now time.Time) []Issue {
	var issues []Issue

	ch.Name = strings.TrimSpace(ch.Name)
	ch.Description = strings.TrimSpace(ch.Description)

	kept := ch.Questions[:0]
	for qi := range ch.Questions {
		q := &ch.Questions[qi]
		qIssues, ok := normalizeQuestion(q, ch.ID, now)
		issues = append(issues, qIssues...)
		if ok {
			kept = append(kept, *q)
		}
	}
	ch.Questions = kept

	// Aggregates are derived, never trusted from input.
	ch.TotalQuestions = len(ch.Questions)
	ch.AnsweredQuestions = 0
	ch.CorrectAnswers = 0
	for i := range ch.Questions {
		if ch.Questions[i].Status != StatusNotAttempted {
			ch.AnsweredQuestions++
		}
		if ch.Questions[i].TimesAnsweredCorrectly > 0 {
			ch.CorrectAnswers++
		}
	}
	ch.IsCompleted = ch.AnsweredQuestions == ch.TotalQuestions

	return issues
}

// normalizeQuestion repairs one question in place. ok is false when the
// question is structurally unusable and must be removed from its chapter.
func normalizeQuestion(q *QuizQuestion, chapterID string, now time.Time) ([]Issue, bool) {
	var issues []Issue
	qid := q.QuestionID

	q.QuestionText = strings.TrimSpace(q.QuestionText)
	q.ExplanationText = strings.TrimSpace(q.ExplanationText)

	issues = append(issues, normalizeOptions(q, chapterID)...)
	issues = append(issues, normalizeCorrectSet(q, chapterID)...)

	switch {
	case q.QuestionText == "":
		issues = append(issues, Errorf(chapterID, qid, "question removed: missing question text"))
		return issues, false
	case len(q.Options) < 2:
		issues = append(issues, Errorf(chapterID, qid, "question removed: %d option(s), need at least 2", len(q.Options)))
		return issues, false
	case len(q.CorrectOptionIDs) == 0:
		issues = append(issues, Errorf(chapterID, qid, "question removed: no resolvable correct options"))
		return issues, false
	case q.ExplanationText == "":
		issues = append(issues, Errorf(chapterID, qid, "question removed: missing explanation"))
		return issues, false
	}

	if !q.Type.Valid() {
		inferred := inferType(q)
		if q.Type != "" {
			issues = append(issues, Warnf(chapterID, qid, "unknown question type %q, using %q", q.Type, inferred))
		}
		q.Type = inferred
	}

	issues = append(issues, normalizeReviewState(q, chapterID, now)...)

	if q.HistoryOfIncorrectSelections == nil {
		q.HistoryOfIncorrectSelections = []string{}
	}
	if q.ShownIncorrectOptionIDs == nil {
		q.ShownIncorrectOptionIDs = []string{}
	}

	return issues, true
}

func normalizeOptions(q *QuizQuestion, chapterID string) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(q.Options))

	for i := range q.Options {
		opt := &q.Options[i]
		opt.OptionID = strings.TrimSpace(opt.OptionID)
		opt.OptionText = strings.TrimSpace(opt.OptionText)

		if opt.OptionID == "" {
			opt.OptionID = freeOptionID(seen, i)
			issues = append(issues, Warnf(chapterID, q.QuestionID, "option %d has no ID, assigned %q", i+1, opt.OptionID))
		} else if seen[opt.OptionID] {
			old := opt.OptionID
			opt.OptionID = freeOptionID(seen, i)
			issues = append(issues, Warnf(chapterID, q.QuestionID, "duplicate option ID %q, reassigned to %q", old, opt.OptionID))
		}
		seen[opt.OptionID] = true

		if opt.OptionText == "" {
			opt.OptionText = opt.OptionID
			issues = append(issues, Warnf(chapterID, q.QuestionID, "option %q has no text, using its ID", opt.OptionID))
		}
	}
	return issues
}

// freeOptionID returns the first positional ID not already taken.
func freeOptionID(seen map[string]bool, index int) string {
	id := fmt.Sprintf("A%d", index+1)
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("A%d-%d", index+1, n)
	}
	return id
}

func normalizeCorrectSet(q *QuizQuestion, chapterID string) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(q.CorrectOptionIDs))
	kept := q.CorrectOptionIDs[:0]

	for _, id := range q.CorrectOptionIDs {
		id = strings.TrimSpace(id)
		switch {
		case id == "":
			issues = append(issues, Warnf(chapterID, q.QuestionID, "empty correct option entry dropped"))
		case seen[id]:
			issues = append(issues, Warnf(chapterID, q.QuestionID, "duplicate correct option %q dropped", id))
		case !q.HasOption(id):
			issues = append(issues, Warnf(chapterID, q.QuestionID, "correct option %q does not exist, dropped", id))
		default:
			seen[id] = true
			kept = append(kept, id)
		}
	}
	q.CorrectOptionIDs = kept
	return issues
}

func inferType(q *QuizQuestion) QuestionType {
	if len(q.Options) == 2 {
		ids := map[string]bool{}
		for _, opt := range q.Options {
			ids[opt.OptionID] = true
		}
		if ids[TrueOptionID] && ids[FalseOptionID] {
			return TypeTrueFalse
		}
	}
	return TypeMCQ
}

// normalizeReviewState repairs the SRS fields. SRSLevel is the source of
// truth: status is derived from it, with level demoted to 0 when the
// counters show no correct answer ever happened.
func normalizeReviewState(q *QuizQuestion, chapterID string, now time.Time) []Issue {
	var issues []Issue
	qid := q.QuestionID

	if lvl := clampLevel(q.SRSLevel); lvl != q.SRSLevel {
		issues = append(issues, Warnf(chapterID, qid, "srsLevel %d out of range, clamped to %d", q.SRSLevel, lvl))
		q.SRSLevel = lvl
	}
	if n := clampCount(q.TimesAnsweredCorrectly); n != q.TimesAnsweredCorrectly {
		issues = append(issues, Warnf(chapterID, qid, "timesAnsweredCorrectly %d clamped to %d", q.TimesAnsweredCorrectly, n))
		q.TimesAnsweredCorrectly = n
	}
	if n := clampCount(q.TimesAnsweredIncorrectly); n != q.TimesAnsweredIncorrectly {
		issues = append(issues, Warnf(chapterID, qid, "timesAnsweredIncorrectly %d clamped to %d", q.TimesAnsweredIncorrectly, n))
		q.TimesAnsweredIncorrectly = n
	}

	if q.SRSLevel >= 1 && q.TimesAnsweredCorrectly == 0 {
		issues = append(issues, Warnf(chapterID, qid, "srsLevel %d without a recorded correct answer, demoted to 0", q.SRSLevel))
		q.SRSLevel = 0
	}

	attempted := q.TimesAnsweredCorrectly > 0 || q.TimesAnsweredIncorrectly > 0 ||
		q.LastAttemptedAt != nil || q.LastSelectedOptionID != ""

	var status QuestionStatus
	switch {
	case q.SRSLevel == MaxSRSLevel:
		status = StatusMastered
	case q.SRSLevel == 1:
		status = StatusPassedOnce
	case attempted:
		status = StatusAttempted
	default:
		status = StatusNotAttempted
	}
	if q.Status != status {
		issues = append(issues, Warnf(chapterID, qid, "status %q does not match srsLevel %d, set to %q", q.Status, q.SRSLevel, status))
		q.Status = status
	}

	mustBeNil := q.SRSLevel == MaxSRSLevel || (q.SRSLevel == 0 && q.Status == StatusNotAttempted)
	switch {
	case mustBeNil && q.NextReviewAt != nil:
		issues = append(issues, Warnf(chapterID, qid, "nextReviewAt cleared for %s question", q.Status))
		q.NextReviewAt = nil
	case !mustBeNil && q.NextReviewAt == nil:
		at := now
		if q.LastAttemptedAt != nil {
			delay := FailDelay
			if q.SRSLevel == 1 {
				delay = PassDelay
			}
			at = q.LastAttemptedAt.Add(delay)
		}
		q.NextReviewAt = &at
		issues = append(issues, Warnf(chapterID, qid, "nextReviewAt missing for %s question, scheduled at %s", q.Status, at.Format(time.RFC3339)))
	}

	return issues
}
