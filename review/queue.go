package review

import (
	"sort"
	"time"

	"github.com/quizmd/quizmd/quiz"
	"github.com/quizmd/quizmd/srs"
)

// Entry is one due question together with the chapter it belongs to.
// Question points into the module tree, so updating it through the entry
// updates the module.
type Entry struct {
	ChapterID   string
	ChapterName string
	Question    *quiz.QuizQuestion
}

// BuildQueue collects every question due at now, most overdue first
// (earliest nextReviewAt). Questions that have never been scheduled come
// after all overdue ones, in document order, which is also the tiebreak
// for equal review times.
func BuildQueue(m *quiz.QuizModule, now time.Time) []Entry {
	type dueQuestion struct {
		entry    Entry
		reviewAt *time.Time
		position int
	}
	var due []dueQuestion

	position := 0
	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		for qi := range ch.Questions {
			q := &ch.Questions[qi]
			position++
			if !srs.IsDue(q, now) {
				continue
			}
			due = append(due, dueQuestion{
				entry:    Entry{ChapterID: ch.ID, ChapterName: ch.Name, Question: q},
				reviewAt: q.NextReviewAt,
				position: position,
			})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if (a.reviewAt == nil) != (b.reviewAt == nil) {
			return b.reviewAt == nil
		}
		if a.reviewAt != nil && !a.reviewAt.Equal(*b.reviewAt) {
			return a.reviewAt.Before(*b.reviewAt)
		}
		return a.position < b.position
	})

	entries := make([]Entry, len(due))
	for i, d := range due {
		entries[i] = d.entry
	}
	return entries
}
