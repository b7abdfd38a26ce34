package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quizmd/quizmd/markdown"
	"github.com/quizmd/quizmd/quiz"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a module between Markdown and JSON",
	Long: `Run the full ingest pipeline on the input file and write the module in
the format implied by the output extension. Questions that fail to parse
are dropped with an error report; the conversion is refused only when the
whole document fails, or on any issue with --strict.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inPath, outPath := args[0], args[1]
	res, err := runPipeline(inPath, time.Now().UTC())
	if err != nil {
		return err
	}

	errCount, warnCount := printIssues(res.Issues)
	if res.Module == nil {
		return fmt.Errorf("cannot convert %s: module failed to parse", inPath)
	}
	if cfg.Strict && (errCount > 0 || warnCount > 0 || len(res.Duplicates) > 0) {
		return fmt.Errorf("refusing to convert in strict mode: %d error(s), %d warning(s), %d duplicate ID(s)",
			errCount, warnCount, len(res.Duplicates))
	}

	var out []byte
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".md", ".markdown":
		out = []byte(markdown.Write(res.Module))
	case ".json":
		if out, err = quiz.EncodeJSON(res.Module); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported output type %q (want .md or .json)", filepath.Ext(outPath))
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Debugw("converted", "from", inPath, "to", outPath, "bytes", len(out))
	fmt.Printf("Wrote %s (%d question(s))\n", outPath, res.Module.QuestionCount())
	return nil
}
