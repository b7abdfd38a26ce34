package quiz

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// ImportResult is what ValidateAndNormalize hands back: the repaired
// module (possibly partial), the ordered issue list, and the raw
// duplicate-ID report. IsValid is true only when no error-severity issue
// was recorded.
type ImportResult struct {
	IsValid    bool
	Module     *QuizModule
	Issues     []Issue
	Duplicates []string
}

// EncodeJSON renders the module as canonical indented JSON with the
// current format version stamped.
func EncodeJSON(m *QuizModule) ([]byte, error) {
	if m.SchemaVersion == "" {
		m.SchemaVersion = FormatVersion
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode module: %w", err)
	}
	return data, nil
}

// DecodeJSON decodes untrusted module JSON into a typed, not yet
// normalized module. The document must pass the structural schema gate
// and the format version gate; inside those bounds the decode is lenient:
// numeric review fields arrive as float64 and are clamped onto legal
// integers, timestamps accept RFC 3339 strings or epoch milliseconds, and
// every numeric or timestamp repair is reported as a warning issue.
// Callers run ResolveIdentity and Normalize on the result.
func DecodeJSON(data []byte) (*QuizModule, []Issue, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil, ErrEmptyInput
	}
	if err := checkSchema(data); err != nil {
		return nil, nil, err
	}

	var wire moduleWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil, fmt.Errorf("decode module: %w", err)
	}

	var issues []Issue
	if err := checkFormatVersion(wire.SchemaVersion, &issues); err != nil {
		return nil, nil, err
	}

	m := &QuizModule{
		SchemaVersion: wire.SchemaVersion,
		Name:          wire.Name,
		Description:   wire.Description,
		Chapters:      make([]QuizChapter, 0, len(wire.Chapters)),
	}
	for _, cw := range wire.Chapters {
		ch := QuizChapter{
			ID:          cw.ID,
			Name:        cw.Name,
			Description: cw.Description,
			Questions:   make([]QuizQuestion, 0, len(cw.Questions)),
		}
		for _, qw := range cw.Questions {
			ch.Questions = append(ch.Questions, qw.toQuestion(cw.ID, &issues))
		}
		m.Chapters = append(m.Chapters, ch)
	}
	return m, issues, nil
}

// ValidateAndNormalize is the full import path for untrusted JSON:
// schema gate, version gate, lenient decode, identity resolution, then
// normalization. The module comes back even when issues were found, so
// callers can surface partial results; only document-level failures
// (unusable JSON, schema or version rejection) leave Module nil.
func ValidateAndNormalize(data []byte, now time.Time) *ImportResult {
	m, issues, err := DecodeJSON(data)
	if err != nil {
		issues = append(issues, Errorf("", "", "%v", err))
		return &ImportResult{IsValid: false, Issues: issues}
	}

	duplicates := ResolveIdentity(m)
	issues = append(issues, Normalize(m, now)...)

	return &ImportResult{
		IsValid:    !HasErrors(issues),
		Module:     m,
		Issues:     issues,
		Duplicates: duplicates,
	}
}

// checkFormatVersion enforces the semver gate on schemaVersion. Missing
// means pre-versioning legacy data and passes. An unparsable version is
// downgraded to a warning and treated as legacy. A major version newer
// than FormatVersion is rejected: that data was written by a newer
// release and this build cannot promise to read it.
func checkFormatVersion(found string, issues *[]Issue) error {
	if found == "" {
		return nil
	}
	v := found
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		*issues = append(*issues, Warnf("", "", "unparsable schemaVersion %q, treating as legacy", found))
		return nil
	}
	if semver.Compare(semver.Major(v), semver.Major("v"+FormatVersion)) > 0 {
		return &VersionError{Found: found, Supported: FormatVersion}
	}
	return nil
}

type moduleWire struct {
	SchemaVersion string        `json:"schemaVersion"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Chapters      []chapterWire `json:"chapters"`
}

// chapterWire ignores the aggregate counters on purpose: they are
// derived and recomputed.
type chapterWire struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Questions   []questionWire `json:"questions"`
}

type questionWire struct {
	QuestionID                   string          `json:"questionId"`
	QuestionText                 string          `json:"questionText"`
	Options                      []QuizOption    `json:"options"`
	CorrectOptionIDs             []string        `json:"correctOptionIds"`
	ExplanationText              string          `json:"explanationText"`
	Type                         string          `json:"type"`
	Status                       string          `json:"status"`
	TimesAnsweredCorrectly       *float64        `json:"timesAnsweredCorrectly"`
	TimesAnsweredIncorrectly     *float64        `json:"timesAnsweredIncorrectly"`
	LastSelectedOptionID         string          `json:"lastSelectedOptionId"`
	HistoryOfIncorrectSelections []string        `json:"historyOfIncorrectSelections"`
	LastAttemptedAt              json.RawMessage `json:"lastAttemptedAt"`
	SRSLevel                     *float64        `json:"srsLevel"`
	NextReviewAt                 json.RawMessage `json:"nextReviewAt"`
	ShownIncorrectOptionIDs      []string        `json:"shownIncorrectOptionIds"`
}

func (qw *questionWire) toQuestion(chapterID string, issues *[]Issue) QuizQuestion {
	q := QuizQuestion{
		QuestionID:                   qw.QuestionID,
		QuestionText:                 qw.QuestionText,
		Options:                      qw.Options,
		CorrectOptionIDs:             qw.CorrectOptionIDs,
		ExplanationText:              qw.ExplanationText,
		Type:                         QuestionType(qw.Type),
		Status:                       QuestionStatus(qw.Status),
		LastSelectedOptionID:         qw.LastSelectedOptionID,
		HistoryOfIncorrectSelections: qw.HistoryOfIncorrectSelections,
		ShownIncorrectOptionIDs:      qw.ShownIncorrectOptionIDs,
	}

	q.SRSLevel = decodeLevel(qw.SRSLevel, "srsLevel", chapterID, qw.QuestionID, issues)
	q.TimesAnsweredCorrectly = decodeCounter(qw.TimesAnsweredCorrectly, "timesAnsweredCorrectly", chapterID, qw.QuestionID, issues)
	q.TimesAnsweredIncorrectly = decodeCounter(qw.TimesAnsweredIncorrectly, "timesAnsweredIncorrectly", chapterID, qw.QuestionID, issues)
	q.LastAttemptedAt = decodeTime(qw.LastAttemptedAt, "lastAttemptedAt", chapterID, qw.QuestionID, issues)
	q.NextReviewAt = decodeTime(qw.NextReviewAt, "nextReviewAt", chapterID, qw.QuestionID, issues)

	return q
}

func decodeLevel(v *float64, field, chapterID, questionID string, issues *[]Issue) int {
	if v == nil {
		return 0
	}
	n := ClampSRSLevel(*v)
	if float64(n) != *v {
		*issues = append(*issues, Warnf(chapterID, questionID, "%s %v normalized to %d", field, *v, n))
	}
	return n
}

func decodeCounter(v *float64, field, chapterID, questionID string, issues *[]Issue) int {
	if v == nil {
		return 0
	}
	n := ClampCounter(*v)
	if float64(n) != *v {
		*issues = append(*issues, Warnf(chapterID, questionID, "%s %v normalized to %d", field, *v, n))
	}
	return n
}

// decodeTime accepts an RFC 3339 string or an epoch-milliseconds number;
// null, absence, or an unreadable value become nil (with a warning for
// the unreadable case, leaving re-derivation to Normalize).
func decodeTime(raw json.RawMessage, field, chapterID, questionID string, issues *[]Issue) *time.Time {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			*issues = append(*issues, Warnf(chapterID, questionID, "%s %q is not a valid timestamp, dropped", field, str))
			return nil
		}
		return &t
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		if math.IsNaN(ms) || math.IsInf(ms, 0) {
			*issues = append(*issues, Warnf(chapterID, questionID, "%s is not a finite timestamp, dropped", field))
			return nil
		}
		t := time.UnixMilli(int64(ms)).UTC()
		return &t
	}

	*issues = append(*issues, Warnf(chapterID, questionID, "%s %s is not a valid timestamp, dropped", field, s))
	return nil
}
