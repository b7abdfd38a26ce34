package markdown

import (
	"testing"
)

func TestSplit_SentinelForms(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantID   string
		captured bool
	}{
		{"canonical", "<!-- CH_ID: caps -->", "caps", true},
		{"tight", "<!--CH_ID:caps-->", "caps", true},
		{"extra spaces", "<!--   CH_ID :  caps   -->", "caps", true},
		{"empty id", "<!-- CH_ID: -->", "", false},
		{"wrong tag", "<!-- CHID: caps -->", "", false},
		{"not a comment", "CH_ID: caps", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := sentinelID(tt.line, "CH_ID")
			if ok != tt.captured || id != tt.wantID {
				t.Errorf("sentinelID(%q) = %q, %v; want %q, %v", tt.line, id, ok, tt.wantID, tt.captured)
			}
		})
	}
}

func TestSplit_SentinelAfterContentIgnored(t *testing.T) {
	d, _ := Split(doc(
		"# M",
		"## Chapter",
		"_some description_",
		"<!-- CH_ID: late -->",
		"### Q: x?",
	))
	if d == nil {
		t.Fatal("expected a document")
	}
	if d.Chapters[0].SentinelID != "" {
		t.Errorf("sentinel after content captured: %q", d.Chapters[0].SentinelID)
	}
	if d.Chapters[0].Description != "some description" {
		t.Errorf("description = %q", d.Chapters[0].Description)
	}
}

func TestSplit_BlankLinesBeforeQuestionSentinel(t *testing.T) {
	d, _ := Split(doc(
		"# M",
		"## C",
		"### Q: x?",
		"",
		"",
		"<!-- Q_ID: q-late -->",
		"body",
	))
	if d == nil {
		t.Fatal("expected a document")
	}
	q := d.Chapters[0].Questions[0]
	if q.SentinelID != "q-late" {
		t.Errorf("sentinel = %q, want q-late", q.SentinelID)
	}
}

func TestSplit_DeepHeadingsAreContent(t *testing.T) {
	d, _ := Split(doc(
		"# M",
		"## C",
		"### Q: x?",
		"#### not a boundary",
		"##### nor this",
	))
	if d == nil {
		t.Fatal("expected a document")
	}
	if len(d.Chapters) != 1 || len(d.Chapters[0].Questions) != 1 {
		t.Fatalf("deep headings split blocks: %+v", d.Chapters)
	}
	q := d.Chapters[0].Questions[0]
	if len(q.Lines) != 2 {
		t.Errorf("lines = %v", q.Lines)
	}
}

func TestSplit_HashWithoutSpaceIsContent(t *testing.T) {
	d, _ := Split(doc(
		"# M",
		"## C",
		"### Q: x?",
		"##notaheading",
	))
	if d == nil {
		t.Fatal("expected a document")
	}
	if len(d.Chapters) != 1 {
		t.Fatalf("chapters = %d", len(d.Chapters))
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		in        string
		wantLevel int
		wantRest  string
	}{
		{"# Title", 1, "Title"},
		{"## Chapter", 2, "Chapter"},
		{"### Q: x", 3, "Q: x"},
		{"####", 4, ""},
		{"##", 2, ""},
		{"#no space", 0, ""},
		{"plain", 0, ""},
		{"", 0, ""},
	}
	for _, tt := range tests {
		level, rest := headingLevel(tt.in)
		if level != tt.wantLevel || rest != tt.wantRest {
			t.Errorf("headingLevel(%q) = %d, %q; want %d, %q", tt.in, level, rest, tt.wantLevel, tt.wantRest)
		}
	}
}

func TestIsHorizontalRule(t *testing.T) {
	for _, s := range []string{"---", "----", "----------"} {
		if !isHorizontalRule(s) {
			t.Errorf("isHorizontalRule(%q) = false", s)
		}
	}
	for _, s := range []string{"--", "", "- - -", "--- x", "___"} {
		if isHorizontalRule(s) {
			t.Errorf("isHorizontalRule(%q) = true", s)
		}
	}
}

func TestParseMarker(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantLabel string
		wantRest  string
		ok        bool
	}{
		{"canonical", "**A1:** Paris", "A1", "Paris", true},
		{"alias", "**A1**: Paris", "A1", "Paris", true},
		{"bulleted", "- **A1:** Paris", "A1", "Paris", true},
		{"starred", "* **A1:** Paris", "A1", "Paris", true},
		{"bare marker", "**Exp:**", "Exp", "", true},
		{"no closing bold", "**A1: Paris", "", "", false},
		{"label with space", "**two words:** x", "", "", false},
		{"empty label", "**:** x", "", "", false},
		{"plain bold", "**emphasis** only", "", "", false},
		{"not bold", "A1: Paris", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, rest, ok := parseMarker(tt.in)
			if label != tt.wantLabel || rest != tt.wantRest || ok != tt.ok {
				t.Errorf("parseMarker(%q) = %q, %q, %v; want %q, %q, %v",
					tt.in, label, rest, ok, tt.wantLabel, tt.wantRest, tt.ok)
			}
		})
	}
}
