package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hearthline-ai/rampart/internal/engine"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the loaded classification rules",
	RunE:  rulesCommand,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func rulesCommand(cmd *cobra.Command, args []string) error {
	_, lib, cleanup, err := buildPipeline()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("INPUT RULES")
	printRules(lib.Input)
	fmt.Println()
	fmt.Println("OUTPUT RULES")
	printRules(lib.Output)
	return nil
}

func printRules(rules []engine.Rule) {
	for _, r := range rules {
		fmt.Printf("  %-10s %-40s %s\n", r.Tier, r.ID, r.Description)
	}
}
