package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "view <corpus>",
		Short: "Print a corpus with line, word and character counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	RootCmd.AddCommand(cmd)
}

func runView(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(loadSettings())
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer eng.Close()

	content, err := eng.ViewCorpus(args[0])
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}

	if textOutput() {
		fmt.Print(content.Content)
		fmt.Printf("\n-- %s: %d lines, %d words, %d characters\n",
			content.Filename, content.LineCount, content.WordCount, content.CharCount)
		return nil
	}
	return printJSON(content)
}
