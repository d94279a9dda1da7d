package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/history"
	"github.com/pdiddy/report-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past drafting runs",
	Long: `History lists completed drafting runs recorded in the local run
database: when each run started, its topic, where the report was written,
and how many revisions the outline and sections went through.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%s  %q  %d section(s), %d outline rev, %d section rev\n    %s\n",
			r.CreatedAt.Local().Format(time.RFC3339), r.Topic,
			r.SectionCount, r.OutlineRevisions, r.SectionRevisions, r.OutputPath)
	}
	return nil
}

// historyConfig reads the history settings from flags and the config file.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dir := ""
	if f := cmd.Flags().Lookup("history-dir"); f != nil {
		dir = f.Value.String()
	}
	if dir == "" {
		dir = viper.GetString("history.dir")
	}
	if dir == "" {
		dir = ".report-engine"
	}
	return types.HistoryConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().String("history-dir", "", "directory containing the history database (default: .report-engine)")

	// The draft command records into the same database.
	draftCmd.Flags().String("history-dir", "", "directory containing the history database (default: .report-engine)")

	rootCmd.AddCommand(historyCmd)
}
