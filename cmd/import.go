package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a module into the store",
	Long: `Run the full ingest pipeline on the file and save the resulting module
into the store under its module name. A file with errors is refused;
fix it or check it first with "quizmd check".`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("name", "", "Store the module under this name instead of its own")
}

func runImport(cmd *cobra.Command, args []string) error {
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

	errCount, warnCount := printIssues(res.Issues)
	if res.Module == nil || errCount > 0 {
		return fmt.Errorf("refusing to import: %d error(s)", errCount)
	}
	if cfg.Strict && warnCount > 0 {
		return fmt.Errorf("refusing to import in strict mode: %d warning(s)", warnCount)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = res.Module.Name
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.Modules().Save(cmd.Context(), name, res.Module); err != nil {
		return err
	}
	logger.Infow("module imported", "name", name, "questions", res.Module.QuestionCount())
	fmt.Printf("Imported %q: %d chapter(s), %d question(s)\n",
		name, len(res.Module.Chapters), res.Module.QuestionCount())
	return nil
}
