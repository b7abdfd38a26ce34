package quiz

import "fmt"

// Severity classifies an issue. Errors exclude content or fail the
// operation; warnings record a repair or a dropped detail.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
)

// Issue is a single parse or validation finding. Issues accumulate in
// document order and travel alongside partial results as plain values;
// nothing panics or throws across the parse/validate boundary.
type Issue struct {
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
	ChapterID  string   `json:"chapterId,omitempty"`
	QuestionID string   `json:"questionId,omitempty"`
}

func (i Issue) String() string {
	switch {
	case i.ChapterID != "" && i.QuestionID != "":
		return fmt.Sprintf("[%s] chapter %q, question %q: %s", i.Severity, i.ChapterID, i.QuestionID, i.Message)
	case i.ChapterID != "":
		return fmt.Sprintf("[%s] chapter %q: %s", i.Severity, i.ChapterID, i.Message)
	case i.QuestionID != "":
		return fmt.Sprintf("[%s] question %q: %s", i.Severity, i.QuestionID, i.Message)
	}
	return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
}

// Errorf builds an error issue. Chapter and question IDs may be empty
// when the offender is the document itself.
func Errorf(chapterID, questionID, format string, args ...any) Issue {
	return Issue{
		Severity:   SeverityError,
		Message:    fmt.Sprintf(format, args...),
		ChapterID:  chapterID,
		QuestionID: questionID,
	}
}

// Warnf builds a warning issue.
func Warnf(chapterID, questionID, format string, args ...any) Issue {
	return Issue{
		Severity:   SeverityWarning,
		Message:    fmt.Sprintf(format, args...),
		ChapterID:  chapterID,
		QuestionID: questionID,
	}
}

// HasErrors reports whether any issue in the list is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error entries, preserving order.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns only the warning entries, preserving order.
func Warnings(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityWarning {
			out = append(out, i)
		}
	}
	return out
}
