package quiz

import (
	"strings"
	"testing"
	"time"
)

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidate_NilModule(t *testing.T) {
	ok, errs := Validate(nil)
	if ok || len(errs) == 0 {
		t.Fatal("nil module should be invalid")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	m := testModule()
	m.Chapters[0].Questions[0].SRSLevel = 99
	m.Chapters[0].Questions[0].QuestionID = ""
	before := moduleJSON(t, m)

	Validate(m)

	if moduleJSON(t, m) != before {
		t.Error("Validate mutated the module")
	}
}

func TestValidate_FlagsEveryInvariantViolation(t *testing.T) {
	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		mutil func(m *QuizModule)
		want  string
	}{
		{"empty name", func(m *QuizModule) { m.Name = " " }, "module name is empty"},
		{"no chapters", func(m *QuizModule) { m.Chapters = nil }, "no chapters"},
		{"missing chapter ID", func(m *QuizModule) { m.Chapters[0].ID = "" }, "missing chapter ID"},
		{"missing question ID", func(m *QuizModule) { m.Chapters[0].Questions[0].QuestionID = "" }, "missing question ID"},
		{"missing question text", func(m *QuizModule) { m.Chapters[0].Questions[0].QuestionText = "" }, "missing question text"},
		{"missing explanation", func(m *QuizModule) { m.Chapters[0].Questions[0].ExplanationText = "" }, "missing explanation"},
		{"too few options", func(m *QuizModule) {
			m.Chapters[0].Questions[0].Options = m.Chapters[0].Questions[0].Options[:1]
		}, "need at least 2"},
		{"duplicate option IDs", func(m *QuizModule) {
			m.Chapters[0].Questions[0].Options[1].OptionID = "A1"
		}, "duplicate option ID"},
		{"no correct options", func(m *QuizModule) {
			m.Chapters[0].Questions[0].CorrectOptionIDs = nil
		}, "no correct options"},
		{"dangling correct option", func(m *QuizModule) {
			m.Chapters[0].Questions[0].CorrectOptionIDs = []string{"ghost"}
		}, `correct option "ghost" does not exist`},
		{"srsLevel out of range", func(m *QuizModule) {
			m.Chapters[0].Questions[0].SRSLevel = 3
		}, "srsLevel 3 out of range"},
		{"unknown status", func(m *QuizModule) {
			m.Chapters[0].Questions[0].Status = "odd"
		}, `unknown status "odd"`},
		{"negative counter", func(m *QuizModule) {
			m.Chapters[0].Questions[0].TimesAnsweredCorrectly = -1
		}, "negative timesAnsweredCorrectly"},
		{"mastered without level", func(m *QuizModule) {
			m.Chapters[0].Questions[0].Status = StatusMastered
		}, "does not match srsLevel"},
		{"scheduled while not attempted", func(m *QuizModule) {
			m.Chapters[0].Questions[0].NextReviewAt = &next
		}, "nextReviewAt must be null"},
		{"unscheduled while attempted", func(m *QuizModule) {
			q := &m.Chapters[0].Questions[0]
			q.Status = StatusAttempted
			q.TimesAnsweredIncorrectly = 1
		}, "nextReviewAt missing"},
		{"stale totalQuestions", func(m *QuizModule) {
			m.Chapters[0].TotalQuestions = 9
		}, "totalQuestions 9"},
		{"stale answeredQuestions", func(m *QuizModule) {
			m.Chapters[0].AnsweredQuestions = 1
		}, "answeredQuestions 1"},
		{"stale isCompleted", func(m *QuizModule) {
			m.Chapters[0].IsCompleted = true
		}, "isCompleted true"},
	}

	for _, tt := range tests {
		m := normalizedTestModule(t, testNow)
		tt.mutil(m)

		ok, errs := Validate(m)
		if ok {
			t.Errorf("%s: module should be invalid", tt.name)
			continue
		}
		if !containsError(errs, tt.want) {
			t.Errorf("%s: errors %v missing %q", tt.name, errs, tt.want)
		}
	}
}

func TestValidate_DuplicateQuestionIDAcrossChapters(t *testing.T) {
	m := normalizedTestModule(t, testNow)
	m.Chapters = append(m.Chapters, m.Chapters[0])
	m.Chapters[1].ID = "ch2"

	ok, errs := Validate(m)
	if ok {
		t.Fatal("module with reused question IDs should be invalid")
	}
	if !containsError(errs, "duplicate question ID") {
		t.Errorf("errors %v missing duplicate question ID", errs)
	}
}

func TestValidate_AcceptsMissingOptionalFields(t *testing.T) {
	m := normalizedTestModule(t, testNow)
	q := &m.Chapters[0].Questions[0]
	q.Type = ""
	q.LastSelectedOptionID = ""
	q.LastAttemptedAt = nil

	ok, errs := Validate(m)
	if !ok {
		t.Errorf("optional fields absent should still validate, got %v", errs)
	}
}
