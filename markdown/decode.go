package markdown

import (
	"fmt"
	"strings"

	"github.com/quizmd/quizmd/quiz"
)

type decodePhase int

const (
	phaseQuestion decodePhase = iota
	phaseOptions
	phaseExplanation
	phaseDone
)

type optionBuf struct {
	label string
	lines []string
}

// decodeQuestion parses one question region into a QuizQuestion with
// the initial review state. ok is false when the question is
// structurally unusable and must be excluded; the issues explain why.
// position is the 1-based question position within its chapter, used to
// name offenders that carry no sentinel ID.
func decodeQuestion(block QuestionBlock, chapterID string, position int) (quiz.QuizQuestion, bool, []quiz.Issue) {
	var issues []quiz.Issue

	q := quiz.QuizQuestion{
		QuestionID:                   block.SentinelID,
		Status:                       quiz.StatusNotAttempted,
		HistoryOfIncorrectSelections: []string{},
		ShownIncorrectOptionIDs:      []string{},
	}

	heading := strings.TrimSpace(block.Heading)
	switch {
	case strings.HasPrefix(heading, "T/F:"):
		q.Type = quiz.TypeTrueFalse
		heading = strings.TrimSpace(strings.TrimPrefix(heading, "T/F:"))
	case strings.HasPrefix(heading, "Q:"):
		q.Type = quiz.TypeMCQ
		heading = strings.TrimSpace(strings.TrimPrefix(heading, "Q:"))
	default:
		q.Type = quiz.TypeMCQ
	}

	var (
		phase         = phaseQuestion
		inFence       bool
		questionLines []string
		opts          []optionBuf
		expLines      []string
		correctRaw    string
		correctSeen   bool
	)

	appendContent := func(raw string) {
		switch phase {
		case phaseQuestion:
			questionLines = append(questionLines, raw)
		case phaseOptions:
			if len(opts) > 0 && !correctSeen {
				opts[len(opts)-1].lines = append(opts[len(opts)-1].lines, raw)
			}
		case phaseExplanation:
			expLines = append(expLines, raw)
		}
	}

	for _, raw := range block.Lines {
		trimmed := strings.TrimSpace(raw)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			appendContent(raw)
			continue
		}
		if inFence {
			appendContent(raw)
			continue
		}

		if isHorizontalRule(trimmed) {
			if phase == phaseExplanation {
				phase = phaseDone
			}
			continue
		}
		if phase == phaseExplanation || phase == phaseDone {
			appendContent(raw)
			continue
		}

		if label, rest, ok := parseMarker(trimmed); ok {
			switch {
			case strings.EqualFold(label, "Options"):
				phase = phaseOptions
			case strings.EqualFold(label, "Correct"):
				correctRaw = rest
				correctSeen = true
				phase = phaseOptions
			case strings.EqualFold(label, "Exp"):
				phase = phaseExplanation
				if rest != "" {
					expLines = append(expLines, rest)
				}
			default:
				phase = phaseOptions
				opts = append(opts, optionBuf{label: label})
				if rest != "" {
					opts[len(opts)-1].lines = append(opts[len(opts)-1].lines, rest)
				}
			}
			continue
		}

		appendContent(raw)
	}

	q.QuestionText = joinHeading(heading, questionLines)

	if q.Type == quiz.TypeMCQ {
		seen := make(map[string]bool, len(opts))
		for i, ob := range opts {
			id := ob.label
			if seen[id] {
				reassigned := fmt.Sprintf("A%d", i+1)
				for n := 2; seen[reassigned]; n++ {
					reassigned = fmt.Sprintf("A%d-%d", i+1, n)
				}
				issues = append(issues, quiz.Warnf(chapterID, block.SentinelID,
					"question %d: duplicate option label %q, reassigned to %q", position, id, reassigned))
				id = reassigned
			}
			seen[id] = true
			q.Options = append(q.Options, quiz.QuizOption{OptionID: id, OptionText: joinTrimmed(ob.lines)})
		}
	} else {
		q.Options = []quiz.QuizOption{
			{OptionID: quiz.TrueOptionID, OptionText: "True"},
			{OptionID: quiz.FalseOptionID, OptionText: "False"},
		}
	}

	q.ExplanationText = joinTrimmed(expLines)

	fail := func(format string, args ...any) (quiz.QuizQuestion, bool, []quiz.Issue) {
		msg := fmt.Sprintf(format, args...)
		issues = append(issues, quiz.Errorf(chapterID, block.SentinelID,
			"question %d removed: %s", position, msg))
		return q, false, issues
	}

	if q.QuestionText == "" {
		return fail("missing question text")
	}
	if q.Type == quiz.TypeMCQ && len(q.Options) < 2 {
		return fail("%d option(s), need at least 2", len(q.Options))
	}
	if !correctSeen || strings.TrimSpace(correctRaw) == "" {
		return fail("missing **Correct:** line")
	}

	if q.Type == quiz.TypeTrueFalse {
		switch strings.ToLower(strings.TrimSpace(correctRaw)) {
		case "true":
			q.CorrectOptionIDs = []string{quiz.TrueOptionID}
		case "false":
			q.CorrectOptionIDs = []string{quiz.FalseOptionID}
		default:
			return fail("unrecognized true/false answer %q", correctRaw)
		}
	} else {
		for _, label := range strings.Split(correctRaw, ",") {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if q.HasOption(label) {
				q.CorrectOptionIDs = append(q.CorrectOptionIDs, label)
			} else {
				issues = append(issues, quiz.Warnf(chapterID, block.SentinelID,
					"question %d: correct label %q does not match any option, dropped", position, label))
			}
		}
		if len(q.CorrectOptionIDs) == 0 {
			return fail("no resolvable correct options")
		}
	}

	if q.ExplanationText == "" {
		return fail("missing explanation")
	}

	return q, true, issues
}

// parseMarker recognizes a **Label:** line, accepting the **Label**:
// alias and an optional leading list bullet. The label must be a single
// token without whitespace; the remainder of the line comes back
// trimmed.
func parseMarker(s string) (label, rest string, ok bool) {
	if cut, found := strings.CutPrefix(s, "- "); found {
		s = strings.TrimSpace(cut)
	} else if cut, found := strings.CutPrefix(s, "* "); found {
		s = strings.TrimSpace(cut)
	}

	body, found := strings.CutPrefix(s, "**")
	if !found {
		return "", "", false
	}
	end := strings.Index(body, "**")
	if end < 0 {
		return "", "", false
	}
	inner := body[:end]
	after := body[end+2:]

	switch {
	case strings.HasSuffix(inner, ":"):
		label = strings.TrimSpace(strings.TrimSuffix(inner, ":"))
		rest = strings.TrimSpace(after)
	case strings.HasPrefix(after, ":"):
		label = strings.TrimSpace(inner)
		rest = strings.TrimSpace(after[1:])
	default:
		return "", "", false
	}

	if label == "" || strings.ContainsAny(label, " \t") {
		return "", "", false
	}
	return label, rest, true
}

// joinTrimmed joins captured lines, dropping leading and trailing blank
// lines but keeping interior ones.
func joinTrimmed(lines []string) string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// joinHeading combines the heading remainder with continuation lines.
func joinHeading(heading string, lines []string) string {
	body := joinTrimmed(lines)
	switch {
	case heading == "":
		return body
	case body == "":
		return heading
	}
	return heading + "\n" + body
}
