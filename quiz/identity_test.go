package quiz

import (
	"strings"
	"testing"
)

func TestResolveIdentity_DerivesStableIDs(t *testing.T) {
	m := &QuizModule{
		Name: "M",
		Chapters: []QuizChapter{
			{Name: "One", Questions: []QuizQuestion{{QuestionText: "a"}, {QuestionText: "b"}}},
			{Name: "Two", Questions: []QuizQuestion{{QuestionText: "c"}}},
		},
	}

	dups := ResolveIdentity(m)
	if len(dups) != 0 {
		t.Fatalf("unexpected duplicates: %v", dups)
	}

	if m.Chapters[0].ID != "ch1" || m.Chapters[1].ID != "ch2" {
		t.Errorf("chapter IDs = %q, %q, want ch1, ch2", m.Chapters[0].ID, m.Chapters[1].ID)
	}
	want := [][]string{{"ch1-q1", "ch1-q2"}, {"ch2-q1"}}
	for ci, ids := range want {
		for qi, id := range ids {
			if got := m.Chapters[ci].Questions[qi].QuestionID; got != id {
				t.Errorf("question (%d,%d) ID = %q, want %q", ci, qi, got, id)
			}
		}
	}

	// Resolving again must not change anything.
	ResolveIdentity(m)
	if m.Chapters[0].Questions[0].QuestionID != "ch1-q1" {
		t.Error("re-resolving changed a derived ID")
	}
}

func TestResolveIdentity_KeepsSentinelIDs(t *testing.T) {
	m := &QuizModule{
		Name: "M",
		Chapters: []QuizChapter{
			{ID: "intro", Name: "One", Questions: []QuizQuestion{
				{QuestionID: "warmup", QuestionText: "a"},
				{QuestionText: "b"},
			}},
		},
	}

	ResolveIdentity(m)

	if m.Chapters[0].ID != "intro" {
		t.Errorf("chapter ID = %q, want intro", m.Chapters[0].ID)
	}
	if m.Chapters[0].Questions[0].QuestionID != "warmup" {
		t.Errorf("question ID = %q, want warmup", m.Chapters[0].Questions[0].QuestionID)
	}
	if m.Chapters[0].Questions[1].QuestionID != "ch1-q2" {
		t.Errorf("derived ID = %q, want ch1-q2", m.Chapters[0].Questions[1].QuestionID)
	}
}

func TestResolveIdentity_ReportsCrossChapterQuestionDuplicates(t *testing.T) {
	m := &QuizModule{
		Name: "M",
		Chapters: []QuizChapter{
			{ID: "a", Name: "A", Questions: []QuizQuestion{{QuestionID: "shared", QuestionText: "x"}}},
			{ID: "b", Name: "B", Questions: []QuizQuestion{{QuestionID: "shared", QuestionText: "y"}}},
		},
	}

	dups := ResolveIdentity(m)

	if len(dups) != 1 {
		t.Fatalf("duplicates = %v, want exactly one entry", dups)
	}
	if !strings.Contains(dups[0], `"shared"`) {
		t.Errorf("entry should name the ID: %s", dups[0])
	}
	if !strings.Contains(dups[0], "chapter 1 question 1") || !strings.Contains(dups[0], "chapter 2 question 1") {
		t.Errorf("entry should name both occurrences: %s", dups[0])
	}
	// Never renamed.
	if m.Chapters[0].Questions[0].QuestionID != "shared" || m.Chapters[1].Questions[0].QuestionID != "shared" {
		t.Error("duplicate IDs must stay as authored")
	}
}

func TestResolveIdentity_ReportsChapterDuplicates(t *testing.T) {
	m := &QuizModule{
		Name: "M",
		Chapters: []QuizChapter{
			{ID: "same", Name: "A"},
			{ID: "same", Name: "B"},
			{ID: "same", Name: "C"},
		},
	}

	dups := ResolveIdentity(m)

	if len(dups) != 1 {
		t.Fatalf("duplicates = %v, want one entry covering all occurrences", dups)
	}
	for _, pos := range []string{"chapter 1", "chapter 2", "chapter 3"} {
		if !strings.Contains(dups[0], pos) {
			t.Errorf("entry missing %s: %s", pos, dups[0])
		}
	}
}

func TestResolveIdentity_DerivedCanCollideWithSentinel(t *testing.T) {
	m := &QuizModule{
		Name: "M",
		Chapters: []QuizChapter{
			{Name: "One", Questions: []QuizQuestion{
				{QuestionID: "ch1-q2", QuestionText: "sentinel squats on the derived slot"},
				{QuestionText: "gets ch1-q2 by position"},
			}},
		},
	}

	dups := ResolveIdentity(m)

	if len(dups) != 1 || !strings.Contains(dups[0], `"ch1-q2"`) {
		t.Errorf("expected a collision on ch1-q2, got %v", dups)
	}
}
