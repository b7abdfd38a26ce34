package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Session event actions.
const (
	SessionStart  = "start"
	SessionFinish = "finish"
)

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID        string
	ModuleName       string
	QuestionID       string
	SelectedOptionID string
	Correct          bool
	LevelBefore      int
	LevelAfter       int
	StatusAfter      string
}

// SessionEventData captures the start or finish of a review session.
type SessionEventData struct {
	SessionID       string
	Action          string
	QuestionsServed int
	CorrectAnswers  int
}

// QuestionAccuracy aggregates the answer history of one question.
type QuestionAccuracy struct {
	QuestionID string
	Attempts   int
	Correct    int
}

// Accuracy returns the fraction of correct attempts, 0 when there are none.
func (a QuestionAccuracy) Accuracy() float64 {
	if a.Attempts == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempts)
}

// SessionSummary is one finished review session from the event log.
type SessionSummary struct {
	Sequence        int64
	Timestamp       time.Time
	SessionID       string
	QuestionsServed int
	CorrectAnswers  int
}

// EventRepo provides append access to the event log plus the queries the
// stats command needs.
type EventRepo interface {
	// AppendAnswer records one answered question.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session start or finish.
	AppendSession(ctx context.Context, data SessionEventData) error

	// AccuracyByQuestion aggregates answer events per question for one
	// module, ordered by question ID.
	AccuracyByQuestion(ctx context.Context, moduleName string) ([]QuestionAccuracy, error)

	// RecentSessions returns finished sessions, newest first. A limit of
	// zero or less returns all of them.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	correct := 0
	if data.Correct {
		correct = 1
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO answer_events (
			sequence, timestamp, session_id, module_name, question_id,
			selected_option_id, correct, level_before, level_after, status_after
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatStoredTime(time.Now()), data.SessionID, data.ModuleName,
		data.QuestionID, data.SelectedOptionID, correct,
		data.LevelBefore, data.LevelAfter, data.StatusAfter,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session_events (
			sequence, timestamp, session_id, action, questions_served, correct_answers
		) VALUES (?, ?, ?, ?, ?, ?)`,
		seqNum, formatStoredTime(time.Now()), data.SessionID, data.Action,
		data.QuestionsServed, data.CorrectAnswers,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AccuracyByQuestion(ctx context.Context, moduleName string) ([]QuestionAccuracy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id, COUNT(*), SUM(correct)
		FROM answer_events
		WHERE module_name = ?
		GROUP BY question_id
		ORDER BY question_id`, moduleName)
	if err != nil {
		return nil, fmt.Errorf("query question accuracy: %w", err)
	}
	defer rows.Close()

	var accs []QuestionAccuracy
	for rows.Next() {
		var a QuestionAccuracy
		if err := rows.Scan(&a.QuestionID, &a.Attempts, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan accuracy row: %w", err)
		}
		accs = append(accs, a)
	}
	return accs, rows.Err()
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT sequence, timestamp, session_id, questions_served, correct_answers
		FROM session_events
		WHERE action = ?
		ORDER BY sequence DESC
		LIMIT ?`, SessionFinish, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionSummary
	for rows.Next() {
		var (
			s         SessionSummary
			timestamp string
		)
		if err := rows.Scan(&s.Sequence, &timestamp, &s.SessionID, &s.QuestionsServed, &s.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		if s.Timestamp, err = parseStoredTime(timestamp); err != nil {
			return nil, fmt.Errorf("session timestamp: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
