package srs

import (
	"slices"
	"time"

	"github.com/quizmd/quizmd/quiz"
)

// Advance applies one Leitner transition to a question after an answer.
// Value in, value out: the caller's question is untouched.
//
// A correct answer moves the question up one level, capped at
// quiz.MaxSRSLevel. Reaching the cap masters the question and clears its
// schedule; below the cap it is scheduled again after quiz.PassDelay. An
// incorrect answer resets the question to level 0 and schedules a quick
// retry after quiz.FailDelay. Each branch increments only its own
// counter, and lastAttemptedAt is stamped on both.
func Advance(q quiz.QuizQuestion, correct bool, now time.Time) quiz.QuizQuestion {
	q.LastAttemptedAt = &now

	if correct {
		q.TimesAnsweredCorrectly++
		if q.SRSLevel < quiz.MaxSRSLevel {
			q.SRSLevel++
		}
		if q.SRSLevel == quiz.MaxSRSLevel {
			q.Status = quiz.StatusMastered
			q.NextReviewAt = nil
		} else {
			q.Status = quiz.StatusPassedOnce
			next := now.Add(quiz.PassDelay)
			q.NextReviewAt = &next
		}
		return q
	}

	q.TimesAnsweredIncorrectly++
	q.SRSLevel = 0
	q.Status = quiz.StatusAttempted
	next := now.Add(quiz.FailDelay)
	q.NextReviewAt = &next
	return q
}

// ApplyAnswer records a selected option and advances the schedule. The
// answer is correct when the selected option is one of the question's
// correct options. An incorrect selection is appended to the incorrect
// history; the history slice is cloned first so the result never aliases
// the caller's question.
func ApplyAnswer(q quiz.QuizQuestion, selectedOptionID string, now time.Time) quiz.QuizQuestion {
	correct := q.IsCorrect(selectedOptionID)
	q.LastSelectedOptionID = selectedOptionID
	if !correct {
		q.HistoryOfIncorrectSelections = append(slices.Clone(q.HistoryOfIncorrectSelections), selectedOptionID)
	}
	return Advance(q, correct, now)
}

// IsDue reports whether the question should be asked now. Mastered
// questions are never due. A question that was never scheduled is due
// immediately if it is still at level 0; otherwise its review time must
// have arrived.
func IsDue(q *quiz.QuizQuestion, now time.Time) bool {
	if q.Status == quiz.StatusMastered {
		return false
	}
	if q.NextReviewAt == nil {
		return q.SRSLevel == 0
	}
	return !now.Before(*q.NextReviewAt)
}
