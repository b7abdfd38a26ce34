package markdown

import (
	"time"

	"github.com/quizmd/quizmd/quiz"
)

// ParseResult is what ParseModule hands back: the parsed module
// (possibly partial), every issue in document order, and the raw
// duplicate-ID report. Success is false only when the document itself
// was unusable; a module with excluded questions still parses with
// Success true, and callers decide how hard to treat the issues.
type ParseResult struct {
	Success    bool
	Module     *quiz.QuizModule
	Issues     []quiz.Issue
	Duplicates []string
}

// ParseModule runs the full Markdown import path: split into blocks,
// decode each question, resolve identities, then normalize. Malformed
// questions are excluded with error issues and the rest of the module
// comes back normalized; only a missing title or a chapterless document
// aborts the parse.
func ParseModule(text string) *ParseResult {
	doc, issues := Split(text)
	if doc == nil {
		return &ParseResult{Issues: issues}
	}

	m := &quiz.QuizModule{
		Name:        doc.Header.Name,
		Description: doc.Header.Description,
		Chapters:    make([]quiz.QuizChapter, 0, len(doc.Chapters)),
	}
	for ci, cb := range doc.Chapters {
		chapterID := cb.SentinelID
		if chapterID == "" {
			chapterID = quiz.DeriveChapterID(ci)
		}
		ch := quiz.QuizChapter{
			ID:          chapterID,
			Name:        cb.Heading,
			Description: cb.Description,
		}
		for qi, qb := range cb.Questions {
			q, ok, qIssues := decodeQuestion(qb, chapterID, qi+1)
			issues = append(issues, qIssues...)
			if ok {
				ch.Questions = append(ch.Questions, q)
			}
		}
		m.Chapters = append(m.Chapters, ch)
	}

	duplicates := quiz.ResolveIdentity(m)
	issues = append(issues, quiz.Normalize(m, time.Now().UTC())...)

	return &ParseResult{
		Success:    true,
		Module:     m,
		Issues:     issues,
		Duplicates: duplicates,
	}
}
