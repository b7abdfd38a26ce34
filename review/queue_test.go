package review

import (
	"testing"
	"time"

	"github.com/quizmd/quizmd/quiz"
)

var queueNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func scheduledQuestion(id string, at time.Time) quiz.QuizQuestion {
	return quiz.QuizQuestion{
		QuestionID:   id,
		QuestionText: "placeholder",
		Status:       quiz.StatusAttempted,
		NextReviewAt: &at,
	}
}

func freshQuestion(id string) quiz.QuizQuestion {
	return quiz.QuizQuestion{
		QuestionID:   id,
		QuestionText: "placeholder",
		Status:       quiz.StatusNotAttempted,
	}
}

func queueIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Question.QuestionID
	}
	return ids
}

func TestBuildQueue_OverdueBeforeNeverScheduled(t *testing.T) {
	m := &quiz.QuizModule{
		Name: "Geography",
		Chapters: []quiz.QuizChapter{
			{
				ID:   "ch1",
				Name: "Capitals",
				Questions: []quiz.QuizQuestion{
					freshQuestion("ch1-q1"),
					scheduledQuestion("ch1-q2", queueNow.Add(-5*time.Minute)),
					scheduledQuestion("ch1-q3", queueNow.Add(-30*time.Minute)),
				},
			},
		},
	}

	got := queueIDs(BuildQueue(m, queueNow))
	want := []string{"ch1-q3", "ch1-q2", "ch1-q1"}
	if len(got) != len(want) {
		t.Fatalf("queue length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("queue[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildQueue_SkipsMasteredAndFutureQuestions(t *testing.T) {
	mastered := freshQuestion("ch1-q1")
	mastered.Status = quiz.StatusMastered
	mastered.SRSLevel = 2

	unscheduledAboveZero := freshQuestion("ch1-q2")
	unscheduledAboveZero.Status = quiz.StatusPassedOnce
	unscheduledAboveZero.SRSLevel = 1

	m := &quiz.QuizModule{
		Name: "Geography",
		Chapters: []quiz.QuizChapter{
			{
				ID:   "ch1",
				Name: "Capitals",
				Questions: []quiz.QuizQuestion{
					mastered,
					unscheduledAboveZero,
					scheduledQuestion("ch1-q3", queueNow.Add(time.Hour)),
					scheduledQuestion("ch1-q4", queueNow.Add(-time.Minute)),
				},
			},
		},
	}

	got := queueIDs(BuildQueue(m, queueNow))
	if len(got) != 1 || got[0] != "ch1-q4" {
		t.Errorf("queue = %v, want [ch1-q4]", got)
	}
}

func TestBuildQueue_EqualTimesKeepDocumentOrder(t *testing.T) {
	at := queueNow.Add(-10 * time.Minute)
	m := &quiz.QuizModule{
		Name: "Geography",
		Chapters: []quiz.QuizChapter{
			{
				ID:   "ch1",
				Name: "Capitals",
				Questions: []quiz.QuizQuestion{
					scheduledQuestion("ch1-q1", at),
					scheduledQuestion("ch1-q2", at),
				},
			},
			{
				ID:   "ch2",
				Name: "Rivers",
				Questions: []quiz.QuizQuestion{
					scheduledQuestion("ch2-q1", at),
				},
			},
		},
	}

	got := queueIDs(BuildQueue(m, queueNow))
	want := []string{"ch1-q1", "ch1-q2", "ch2-q1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("queue[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildQueue_NeverScheduledFollowDocumentOrder(t *testing.T) {
	m := &quiz.QuizModule{
		Name: "Geography",
		Chapters: []quiz.QuizChapter{
			{
				ID:        "ch1",
				Name:      "Capitals",
				Questions: []quiz.QuizQuestion{freshQuestion("ch1-q1")},
			},
			{
				ID:        "ch2",
				Name:      "Rivers",
				Questions: []quiz.QuizQuestion{freshQuestion("ch2-q1"), freshQuestion("ch2-q2")},
			},
		},
	}

	got := queueIDs(BuildQueue(m, queueNow))
	want := []string{"ch1-q1", "ch2-q1", "ch2-q2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("queue[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildQueue_CarriesChapterMetadata(t *testing.T) {
	m := &quiz.QuizModule{
		Name: "Geography",
		Chapters: []quiz.QuizChapter{
			{
				ID:        "caps",
				Name:      "Capitals of Europe",
				Questions: []quiz.QuizQuestion{freshQuestion("caps-q1")},
			},
		},
	}

	entries := BuildQueue(m, queueNow)
	if len(entries) != 1 {
		t.Fatalf("queue length = %d, want 1", len(entries))
	}
	if entries[0].ChapterID != "caps" {
		t.Errorf("ChapterID = %q, want %q", entries[0].ChapterID, "caps")
	}
	if entries[0].ChapterName != "Capitals of Europe" {
		t.Errorf("ChapterName = %q, want %q", entries[0].ChapterName, "Capitals of Europe")
	}
}

func TestBuildQueue_EntriesPointIntoModule(t *testing.T) {
	m := &quiz.QuizModule{
		Name: "Geography",
		Chapters: []quiz.QuizChapter{
			{
				ID:        "ch1",
				Name:      "Capitals",
				Questions: []quiz.QuizQuestion{freshQuestion("ch1-q1")},
			},
		},
	}

	entries := BuildQueue(m, queueNow)
	entries[0].Question.Status = quiz.StatusAttempted

	if m.Chapters[0].Questions[0].Status != quiz.StatusAttempted {
		t.Error("updating the entry should update the module question")
	}
}

func TestBuildQueue_EmptyModule(t *testing.T) {
	m := &quiz.QuizModule{Name: "Geography"}
	if got := BuildQueue(m, queueNow); len(got) != 0 {
		t.Errorf("queue length = %d, want 0", len(got))
	}
}
