package markdown

import (
	"strings"

	"github.com/quizmd/quizmd/quiz"
)

// Document is the block-level decomposition of one Markdown module file.
type Document struct {
	Header   ModuleHeader
	Chapters []ChapterBlock
}

// ModuleHeader holds the module title and its optional description line.
type ModuleHeader struct {
	Name        string
	Description string
}

// ChapterBlock is one ## region with its question sub-blocks. SentinelID
// is the ID pinned by a <!-- CH_ID: x --> comment, empty when absent.
type ChapterBlock struct {
	Heading     string
	SentinelID  string
	Description string
	HeadingLine int
	Questions   []QuestionBlock
}

// QuestionBlock is one ### region: the heading remainder plus the raw
// lines up to the next boundary. Lines keep code fences and horizontal
// rules verbatim; the decoder interprets them.
type QuestionBlock struct {
	Heading     string
	SentinelID  string
	HeadingLine int
	Lines       []string
}

// Split slices raw Markdown into module, chapter and question regions.
// Heading syntax is honored only outside fenced code blocks; level 4+
// headings and repeated # lines are content, not boundaries. A missing
// module title or a document with no chapters is fatal and no Document
// is returned; every other finding accumulates as an issue.
func Split(rawText string) (*Document, []quiz.Issue) {
	var issues []quiz.Issue

	doc := &Document{}
	var (
		chapter  *ChapterBlock
		question *QuestionBlock

		inFence         bool
		titleSeen       bool
		chapterPreamble bool
		questionOpening bool
		skipQuestion    bool
	)

	flushQuestion := func() {
		if question != nil && chapter != nil {
			chapter.Questions = append(chapter.Questions, *question)
		}
		question = nil
		skipQuestion = false
	}
	flushChapter := func() {
		flushQuestion()
		if chapter != nil {
			doc.Chapters = append(doc.Chapters, *chapter)
		}
		chapter = nil
	}

	for i, raw := range splitLines(rawText) {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			if question != nil {
				question.Lines = append(question.Lines, raw)
			}
			continue
		}
		if inFence {
			if question != nil {
				question.Lines = append(question.Lines, raw)
			}
			continue
		}

		level, rest := headingLevel(trimmed)
		switch {
		case level == 1 && !titleSeen:
			titleSeen = true
			doc.Header.Name = rest
			continue
		case level == 2:
			flushChapter()
			chapter = &ChapterBlock{Heading: rest, HeadingLine: lineNo}
			chapterPreamble = true
			continue
		case level == 3:
			flushQuestion()
			if chapter == nil {
				issues = append(issues, quiz.Warnf("", "", "line %d: question heading before any chapter, ignored", lineNo))
				skipQuestion = true
				continue
			}
			question = &QuestionBlock{Heading: rest, HeadingLine: lineNo}
			questionOpening = true
			continue
		}

		switch {
		case skipQuestion:
			// Content of an orphaned question region, dropped.
		case question != nil:
			if questionOpening && trimmed != "" {
				questionOpening = false
				if id, ok := sentinelID(trimmed, "Q_ID"); ok {
					question.SentinelID = id
					continue
				}
			}
			question.Lines = append(question.Lines, raw)
		case chapter != nil:
			if trimmed == "" || isHorizontalRule(trimmed) {
				continue
			}
			if chapterPreamble {
				chapterPreamble = false
				if id, ok := sentinelID(trimmed, "CH_ID"); ok {
					chapter.SentinelID = id
					continue
				}
			}
			if d, ok := descriptionText(trimmed); ok && chapter.Description == "" {
				chapter.Description = d
			}
			// Other chapter-level content is tolerated and dropped.
		default:
			if trimmed == "" || isHorizontalRule(trimmed) {
				continue
			}
			if d, ok := descriptionText(trimmed); ok && titleSeen && doc.Header.Description == "" {
				doc.Header.Description = d
			}
		}
	}
	flushChapter()

	if inFence {
		issues = append(issues, quiz.Warnf("", "", "unclosed code fence at end of input"))
	}

	fatal := false
	if !titleSeen {
		issues = append(issues, quiz.Errorf("", "", "module title missing (no # heading)"))
		fatal = true
	}
	if len(doc.Chapters) == 0 {
		issues = append(issues, quiz.Errorf("", "", "module has no chapters"))
		fatal = true
	}
	if fatal {
		return nil, issues
	}
	return doc, issues
}

// splitLines splits on \n and strips a trailing \r so CRLF input scans
// the same as LF input.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// headingLevel reports the ATX heading level of a trimmed line, or 0
// when the line is not a heading. The # run must be followed by a space
// or end the line.
func headingLevel(s string) (int, string) {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n == 0 {
		return 0, ""
	}
	if n < len(s) && s[n] != ' ' {
		return 0, ""
	}
	return n, strings.TrimSpace(s[n:])
}

// isHorizontalRule matches a separator line of three or more dashes.
func isHorizontalRule(s string) bool {
	if len(s) < 3 {
		return false
	}
	for _, r := range s {
		if r != '-' {
			return false
		}
	}
	return true
}

// sentinelID extracts the ID from a comment like <!-- CH_ID: x -->.
// An empty ID counts as no sentinel.
func sentinelID(line, tag string) (string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "<!--") || !strings.HasSuffix(s, "-->") {
		return "", false
	}
	inner := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "<!--"), "-->"))
	rest, found := strings.CutPrefix(inner, tag)
	if !found {
		return "", false
	}
	rest, found = strings.CutPrefix(strings.TrimSpace(rest), ":")
	if !found {
		return "", false
	}
	id := strings.TrimSpace(rest)
	return id, id != ""
}

// descriptionText recognizes the _..._ description line form.
func descriptionText(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if len(s) < 3 || !strings.HasPrefix(s, "_") || !strings.HasSuffix(s, "_") {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}
