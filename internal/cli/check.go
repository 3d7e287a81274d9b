package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hearthline-ai/rampart/internal/engine"
)

var (
	checkOutput bool
	checkUser   string
)

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Run text through the guardrail pipeline",
	Long: `Classify a piece of text and print the verdict. Text is taken from
the arguments, or from stdin when no arguments are given.

By default the text is treated as user input; pass --output to screen it
as a model response instead.

  rampart check "Is this a good neighborhood for families?"
  echo "Prices will certainly double" | rampart check --output`,
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().BoolVar(&checkOutput, "output", false, "Screen the text as model output instead of user input")
	checkCmd.Flags().StringVar(&checkUser, "user", "", "User identifier for violation tracking (input only)")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	p, _, cleanup, err := buildPipeline()
	if err != nil {
		return err
	}

	var allowed bool
	var message string
	var verdict engine.Verdict
	if checkOutput {
		allowed, message, verdict = p.FilterOutput(text, nil)
	} else {
		allowed, message, verdict = p.FilterInput(text, checkUser)
	}

	fmt.Printf("allowed:    %v\n", allowed)
	fmt.Printf("severity:   %s\n", verdict.Severity)
	fmt.Printf("action:     %s\n", verdict.Action)
	fmt.Printf("confidence: %.2f\n", verdict.Confidence)
	fmt.Printf("reason:     %s\n", verdict.Reason)
	if len(verdict.Patterns) > 0 {
		fmt.Printf("patterns:   %s\n", strings.Join(verdict.Patterns, ", "))
	}
	if !allowed || message != text {
		fmt.Printf("message:    %s\n", strings.TrimSpace(message))
	}

	cleanup()
	if !allowed {
		os.Exit(1)
	}
	return nil
}
