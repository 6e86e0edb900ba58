package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oncorag/gliorag/server"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question-answering over the indexed guideline corpus",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	engine, vs, err := buildEngine(ctx, currentConfig)
	if err != nil {
		return err
	}
	defer vs.Close()

	color.Cyan("Ask about GBM clinical guidelines (type 'exit' to quit)")

	scanner := bufio.NewScanner(os.Stdin)
	userPrompt := color.New(color.FgGreen).PrintfFunc()
	assistantPrompt := color.New(color.FgCyan).PrintfFunc()

	for {
		userPrompt("\nYou: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") || strings.EqualFold(question, "quit") {
			break
		}

		spinner := getSpinner("Searching guidelines & generating...")
		answer, err := engine.AnswerQuestion(ctx, question)
		spinner.Finish()
		fmt.Print("\r")

		if err != nil {
			color.Red("Error: %v\n", err)
			continue
		}

		assistantPrompt("\nAssistant: %s\n", answer.Text)

		if len(answer.Sources) > 0 {
			color.Blue("\nSources:\n")
			for _, src := range server.SummarizeSources(answer.Sources) {
				fmt.Printf("[%s] %s | %s | %s | extra=%s\n",
					src.Label, src.SourceType, src.Name, src.Year, src.Extra)
			}
		}
	}

	return scanner.Err()
}
