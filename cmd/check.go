package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a quiz module file",
	Long: `Parse a Markdown or JSON quiz module, resolve question identities,
normalize review state and report every issue found.

Exits non-zero when the file has errors, or on any issue with --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	res, err := runPipeline(args[0], time.Now().UTC())
	if err != nil {
		return err
	}
	logger.Debugw("pipeline finished",
		"file", args[0],
		"parsed", res.Module != nil,
		"issues", len(res.Issues),
		"duplicates", len(res.Duplicates),
	)

	errCount, warnCount := printIssues(res.Issues)
	fmt.Printf("%s: %d error(s), %d warning(s)\n", args[0], errCount, warnCount)

	if errCount > 0 {
		return fmt.Errorf("%d error(s) found", errCount)
	}
	if cfg.Strict && warnCount > 0 {
		return fmt.Errorf("%d warning(s) found (strict mode)", warnCount)
	}
	return nil
}
