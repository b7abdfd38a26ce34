package quiz

import (
	"fmt"
	"strings"
)

// DeriveChapterID returns the deterministic ID for a chapter without a
// sentinel, from its 0-based position. Re-parsing identical content
// yields identical IDs.
func DeriveChapterID(chapterIndex int) string {
	return fmt.Sprintf("ch%d", chapterIndex+1)
}

// DeriveQuestionID returns the deterministic ID for a question without a
// sentinel, from its 0-based chapter and question positions.
func DeriveQuestionID(chapterIndex, questionIndex int) string {
	return fmt.Sprintf("ch%d-q%d", chapterIndex+1, questionIndex+1)
}

// ResolveIdentity fills blank chapter and question IDs from document
// position and reports duplicated IDs. Duplicates are reported, never
// renamed; each entry names the ID and every position that holds it, so
// all colliding occurrences are identifiable. Chapter IDs must be unique
// within the module, question IDs across the entire module. Callers
// decide whether duplicates are fatal.
func ResolveIdentity(m *QuizModule) []string {
	var duplicates []string

	chapterSeen := map[string][]string{}
	var chapterOrder []string
	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		if strings.TrimSpace(ch.ID) == "" {
			ch.ID = DeriveChapterID(ci)
		}
		if _, ok := chapterSeen[ch.ID]; !ok {
			chapterOrder = append(chapterOrder, ch.ID)
		}
		chapterSeen[ch.ID] = append(chapterSeen[ch.ID], fmt.Sprintf("chapter %d", ci+1))
	}
	for _, id := range chapterOrder {
		if at := chapterSeen[id]; len(at) > 1 {
			duplicates = append(duplicates, fmt.Sprintf("duplicate chapter ID %q at %s", id, strings.Join(at, "; ")))
		}
	}

	questionSeen := map[string][]string{}
	var questionOrder []string
	for ci := range m.Chapters {
		for qi := range m.Chapters[ci].Questions {
			q := &m.Chapters[ci].Questions[qi]
			if strings.TrimSpace(q.QuestionID) == "" {
				q.QuestionID = DeriveQuestionID(ci, qi)
			}
			if _, ok := questionSeen[q.QuestionID]; !ok {
				questionOrder = append(questionOrder, q.QuestionID)
			}
			questionSeen[q.QuestionID] = append(questionSeen[q.QuestionID],
				fmt.Sprintf("chapter %d question %d", ci+1, qi+1))
		}
	}
	for _, id := range questionOrder {
		if at := questionSeen[id]; len(at) > 1 {
			duplicates = append(duplicates, fmt.Sprintf("duplicate question ID %q at %s", id, strings.Join(at, "; ")))
		}
	}

	return duplicates
}
