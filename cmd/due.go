package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizmd/quizmd/quiz"
	"github.com/quizmd/quizmd/srs"
)

var dueCmd = &cobra.Command{
	Use:   "due [module]",
	Short: "Show due counts per chapter",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
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

	now := time.Now().UTC()

	fmt.Printf("%-10s  %-30s  %5s  %s\n", "ID", "Chapter", "Due", "Next review")
	fmt.Println(strings.Repeat("─", 70))

	totalDue := 0
	for ci := range m.Chapters {
		ch := &m.Chapters[ci]
		due := 0
		var next *time.Time
		for qi := range ch.Questions {
			q := &ch.Questions[qi]
			if srs.IsDue(q, now) {
				due++
				continue
			}
			if q.Status == quiz.StatusMastered || q.NextReviewAt == nil {
				continue
			}
			if next == nil || q.NextReviewAt.Before(*next) {
				next = q.NextReviewAt
			}
		}
		totalDue += due
		fmt.Printf("%-10s  %-30s  %5d  %s\n", ch.ID, truncateName(ch.Name, 30), due, nextDueText(due, next, now))
	}

	fmt.Printf("\n%d question(s) due in %q\n", totalDue, m.Name)
	return nil
}

func nextDueText(due int, next *time.Time, now time.Time) string {
	if due > 0 {
		return "now"
	}
	if next == nil {
		return "-"
	}
	return "in " + next.Sub(now).Round(time.Second).String()
}

func truncateName(name string, max int) string {
	if len(name) > max {
		return name[:max-3] + "..."
	}
	return name
}
