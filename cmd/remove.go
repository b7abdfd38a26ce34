package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [module]",
	Short: "Delete an imported module and its snapshots",
	Long: `Remove a module from the store along with its saved snapshots. Review
history stays in the event log. With a single imported module the name
can be omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	name, err := resolveModuleName(cmd.Context(), st.Modules(), args)
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Printf("Delete module %q and its snapshots? [y/N] ", name)
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
		default:
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := st.Modules().Delete(cmd.Context(), name); err != nil {
		return err
	}
	fmt.Printf("Removed %q\n", name)
	return nil
}
