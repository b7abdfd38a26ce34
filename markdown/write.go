package markdown

import (
	"fmt"
	"strings"

	"github.com/quizmd/quizmd/quiz"
)

// Write renders the module in the canonical dialect. Sentinel comments
// are always emitted so identity survives a write/parse cycle.
// Multi-line question and option text is emitted as continuation lines
// under a bare marker, which the parser reads back intact. SRS and
// progress fields have no Markdown form; they round-trip through JSON
// only.
func Write(m *quiz.QuizModule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", oneLine(m.Name))
	if m.Description != "" {
		fmt.Fprintf(&b, "_%s_\n", oneLine(m.Description))
	}

	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "## %s\n", oneLine(ch.Name))
		fmt.Fprintf(&b, "<!-- CH_ID: %s -->\n", ch.ID)
		if ch.Description != "" {
			fmt.Fprintf(&b, "_%s_\n", oneLine(ch.Description))
		}
		for qi := range ch.Questions {
			b.WriteString("\n")
			writeQuestion(&b, &ch.Questions[qi])
		}
	}

	return b.String()
}

func writeQuestion(b *strings.Builder, q *quiz.QuizQuestion) {
	prefix := "Q:"
	if q.Type == quiz.TypeTrueFalse {
		prefix = "T/F:"
	}

	if strings.Contains(q.QuestionText, "\n") {
		fmt.Fprintf(b, "### %s\n", prefix)
		fmt.Fprintf(b, "<!-- Q_ID: %s -->\n", q.QuestionID)
		b.WriteString(q.QuestionText + "\n")
	} else {
		fmt.Fprintf(b, "### %s %s\n", prefix, q.QuestionText)
		fmt.Fprintf(b, "<!-- Q_ID: %s -->\n", q.QuestionID)
	}

	if q.Type == quiz.TypeTrueFalse {
		correct := "False"
		if q.IsCorrect(quiz.TrueOptionID) {
			correct = "True"
		}
		fmt.Fprintf(b, "**Correct:** %s\n", correct)
	} else {
		b.WriteString("**Options:**\n")
		for _, opt := range q.Options {
			if strings.Contains(opt.OptionText, "\n") {
				fmt.Fprintf(b, "**%s:**\n%s\n", opt.OptionID, opt.OptionText)
			} else {
				fmt.Fprintf(b, "**%s:** %s\n", opt.OptionID, opt.OptionText)
			}
		}
		fmt.Fprintf(b, "**Correct:** %s\n", strings.Join(q.CorrectOptionIDs, ", "))
	}

	b.WriteString("**Exp:**\n")
	b.WriteString(q.ExplanationText + "\n")
	b.WriteString("\n---\n")
}

// oneLine flattens names and descriptions onto a single line; the
// dialect has no multi-line form for them.
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}
