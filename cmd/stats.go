package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizmd/quizmd/quiz"
)

var statsCmd = &cobra.Command{
	Use:   "stats [module]",
	Short: "Show module statistics",
	Long: `Show chapter aggregates from the stored module plus per-question
accuracy and recent sessions from the event log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("%s\n\n", m.Name)
	fmt.Printf("%-10s  %-30s  %9s  %8s  %7s  %8s  %s\n",
		"ID", "Chapter", "Questions", "Answered", "Correct", "Mastered", "Done")
	fmt.Println(strings.Repeat("─", 90))

	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		mastered := 0
		for qi := range ch.Questions {
			if ch.Questions[qi].Status == quiz.StatusMastered {
				mastered++
			}
		}
		done := ""
		if ch.IsCompleted {
			done = "yes"
		}
		fmt.Printf("%-10s  %-30s  %9d  %8d  %7d  %8d  %s\n",
			ch.ID, truncateName(ch.Name, 30), ch.TotalQuestions,
			ch.AnsweredQuestions, ch.CorrectAnswers, mastered, done)
	}

	accs, err := st.Events().AccuracyByQuestion(ctx, name)
	if err != nil {
		return err
	}
	if len(accs) > 0 {
		fmt.Printf("\n%-14s  %8s  %7s  %s\n", "Question", "Attempts", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 45))
		for _, a := range accs {
			fmt.Printf("%-14s  %8d  %7d  %7.0f%%\n",
				a.QuestionID, a.Attempts, a.Correct, a.Accuracy()*100)
		}
	}

	sessions, err := st.Events().RecentSessions(ctx, 5)
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		fmt.Println("\nRecent sessions:")
		for _, s := range sessions {
			fmt.Printf("  %s  %d/%d correct\n",
				s.Timestamp.Local().Format("2006-01-02 15:04"),
				s.CorrectAnswers, s.QuestionsServed)
		}
	}
	return nil
}
