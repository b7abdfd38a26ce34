package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quizmd/quizmd/internal/store"
	"github.com/quizmd/quizmd/quiz"
	"github.com/quizmd/quizmd/review"
	"github.com/quizmd/quizmd/srs"
)

// snapshotKeep is how many per-module snapshots survive pruning after a
// session.
const snapshotKeep = 20

var reviewCmd = &cobra.Command{
	Use:   "review [module]",
	Short: "Review due questions interactively",
	Long: `Build the queue of questions due for review and present them one at a
time. Answers update the spaced-repetition state and are persisted after
every question, so a session can be stopped at any point.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().Int("limit", 0, "Maximum questions per session (0 = no cap)")
	reviewCmd.Flags().Int("options", 0, "Options displayed per question (0 = all)")
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	name, err := resolveModuleName(ctx, st.Modules(), args)
	if err != nil {
		return err
	}
	m, err := st.Modules().Load(ctx, name)
	if err != nil {
		return err
	}

	limit := cfg.Review.Limit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}
	optionLimit := cfg.Review.Options
	if cmd.Flags().Changed("options") {
		optionLimit, _ = cmd.Flags().GetInt("options")
	}

	queue := review.BuildQueue(m, time.Now().UTC())
	if len(queue) == 0 {
		fmt.Println("No questions due.")
		return nil
	}
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}

	sessionID := uuid.NewString()
	logger.Debugw("session starting", "module", name, "session", sessionID, "due", len(queue))
	events := st.Events()
	if err := events.AppendSession(ctx, store.SessionEventData{
		SessionID: sessionID,
		Action:    store.SessionStart,
	}); err != nil {
		return err
	}

	var tally review.Tally
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Reviewing %q: %d question(s) due.\n", name, len(queue))
	fmt.Println("Enter the option number, press Enter to skip, or q to quit.")
	fmt.Println()

loop:
	for i, entry := range queue {
		q := entry.Question
		opts := review.DisplayOptions(q, optionLimit)

		fmt.Printf("── Question %d/%d ── %s\n", i+1, len(queue), entry.ChapterName)
		fmt.Println(q.QuestionText)
		for j, opt := range opts {
			fmt.Printf("  %d) %s\n", j+1, opt.OptionText)
		}

		var selected string
		for {
			fmt.Print("\nYour answer: ")
			if !scanner.Scan() {
				fmt.Println("\n(input closed)")
				break loop
			}
			answer := strings.TrimSpace(scanner.Text())
			if answer == "" {
				break
			}
			if strings.EqualFold(answer, "q") {
				break loop
			}
			n, err := strconv.Atoi(answer)
			if err != nil || n < 1 || n > len(opts) {
				fmt.Printf("Enter a number from 1 to %d, Enter to skip, or q to quit.\n", len(opts))
				continue
			}
			selected = opts[n-1].OptionID
			break
		}
		if selected == "" {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}

		correct := q.IsCorrect(selected)
		levelBefore := q.SRSLevel
		*q = srs.ApplyAnswer(*q, selected, time.Now().UTC())
		tally.Record(correct)

		if correct {
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Correct: %s\n", correctOptionTexts(q))
		}
		if q.ExplanationText != "" {
			fmt.Printf("Explanation: %s\n", q.ExplanationText)
		}
		fmt.Println()

		if issues := quiz.Normalize(m, time.Now().UTC()); quiz.HasErrors(issues) {
			return fmt.Errorf("module state became invalid: %v", quiz.Errors(issues))
		}
		if err := st.Modules().Save(ctx, name, m); err != nil {
			return fmt.Errorf("persist module: %w", err)
		}
		if err := events.AppendAnswer(ctx, store.AnswerEventData{
			SessionID:        sessionID,
			ModuleName:       name,
			QuestionID:       q.QuestionID,
			SelectedOptionID: selected,
			Correct:          correct,
			LevelBefore:      levelBefore,
			LevelAfter:       q.SRSLevel,
			StatusAfter:      string(q.Status),
		}); err != nil {
			return err
		}
	}

	return finishSession(ctx, st, name, m, sessionID, &tally)
}

// finishSession persists the final module state, appends the finish event
// and takes a snapshot.
func finishSession(ctx context.Context, st *store.Store, name string, m *quiz.QuizModule, sessionID string, tally *review.Tally) error {
	if err := st.Modules().Save(ctx, name, m); err != nil {
		return fmt.Errorf("persist module: %w", err)
	}
	if err := st.Events().AppendSession(ctx, store.SessionEventData{
		SessionID:       sessionID,
		Action:          store.SessionFinish,
		QuestionsServed: tally.Served(),
		CorrectAnswers:  tally.Correct(),
	}); err != nil {
		return err
	}
	if err := st.Modules().SaveSnapshot(ctx, name, m, time.Now().UTC()); err != nil {
		return err
	}
	if err := st.Modules().Prune(ctx, name, snapshotKeep); err != nil {
		return err
	}

	fmt.Printf("── Summary: %d/%d correct", tally.Correct(), tally.Served())
	if tally.Served() > 0 {
		fmt.Printf(" (%.0f%%)", tally.Accuracy()*100)
	}
	fmt.Println(" ──")
	return nil
}

// correctOptionTexts joins the text of every correct option.
func correctOptionTexts(q *quiz.QuizQuestion) string {
	var texts []string
	for _, opt := range q.Options {
		if q.IsCorrect(opt.OptionID) {
			texts = append(texts, opt.OptionText)
		}
	}
	return strings.Join(texts, ", ")
}
