package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "corpora",
		Short: "List the corpora in the samples directory",
		Args:  cobra.NoArgs,
		RunE:  runCorpora,
	}

	RootCmd.AddCommand(cmd)
}

func runCorpora(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(loadSettings())
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer eng.Close()

	names, err := eng.ListCorpora()
	if err != nil {
		return fmt.Errorf("list corpora: %w", err)
	}

	if textOutput() {
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}
	return printJSON(map[string]any{"corpora": names, "total": len(names)})
}
