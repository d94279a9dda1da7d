package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the source documents a draft run would use",
	Long: `Sources loads the source directory the same way the draft command does
and lists each document with its page and character counts. Use it to
verify PDF text extraction before starting an interactive run.`,
	RunE: runSources,
}

func runSources(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("sources")
	if dir == "" {
		dir = viper.GetString("sources.dir")
	}
	if dir == "" {
		dir = "sources"
	}

	set, err := source.Load(dir)
	if err != nil {
		return err
	}

	for _, doc := range set.Documents {
		if doc.Pages > 0 {
			fmt.Fprintf(os.Stdout, "%s  (%d pages, %d chars)\n", doc.Name, doc.Pages, len(doc.Text))
		} else {
			fmt.Fprintf(os.Stdout, "%s  (%d chars)\n", doc.Name, len(doc.Text))
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d document(s), %d chars total\n", len(set.Documents), set.TotalChars())
	return nil
}

func init() {
	sourcesCmd.Flags().String("sources", "", "directory of source documents (default: sources)")

	rootCmd.AddCommand(sourcesCmd)
}
