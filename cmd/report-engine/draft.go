package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/report-engine/internal/agent"
	"github.com/pdiddy/report-engine/internal/draft"
	"github.com/pdiddy/report-engine/internal/history"
	"github.com/pdiddy/report-engine/internal/report"
	"github.com/pdiddy/report-engine/internal/review"
	"github.com/pdiddy/report-engine/internal/secrets"
	"github.com/pdiddy/report-engine/pkg/types"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a report from source documents with interactive review",
	Long: `Draft loads the source documents, asks the generation service for a
report outline, and writes each section in turn. The outline and every
section wait for you to accept them or request a revision with free-text
feedback. Approved sections are assembled in outline order and saved as
report_<timestamp>.md, with the approved outline saved alongside.`,
	RunE: runDraft,
}

func runDraft(cmd *cobra.Command, args []string) error {
	topic, err := resolveTopic(cmd)
	if err != nil {
		return err
	}

	cfg := draftConfig(cmd)

	backend, err := agent.NewBackend(cfg.AIConfig)
	if err != nil {
		return err
	}

	sourcesDir, _ := cmd.Flags().GetString("sources")
	if sourcesDir == "" {
		sourcesDir = viper.GetString("sources.dir")
	}
	if sourcesDir == "" {
		sourcesDir = "sources"
	}

	deps := draft.Deps{
		Topic:      topic,
		SourcesDir: sourcesDir,
		OutputDir:  cfg.OutputDir,
		HTML:       cfg.HTML,
		Outliner:   &agent.OutlineAgent{Completer: backend, MaxRetries: cfg.MaxRetries},
		Writer:     &agent.SectionWriter{Completer: backend, MaxRetries: cfg.MaxRetries},
		Prompter:   review.NewTerminalPrompter(os.Stdin, os.Stdout),
		Out:        os.Stdout,
	}

	if outlinePath, _ := cmd.Flags().GetString("outline"); outlinePath != "" {
		outline, err := report.LoadOutline(outlinePath)
		if err != nil {
			return err
		}
		deps.Outline = outline
	}

	result, err := draft.Run(context.Background(), deps)
	if err != nil {
		return err
	}

	recordRun(cmd, topic, result)
	return nil
}

// recordRun stores the completed run in the history database. History is
// best-effort bookkeeping; a failure warns but does not fail the run.
func recordRun(cmd *cobra.Command, topic string, result *draft.Result) {
	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open run history: %v\n", err)
		return
	}
	defer store.Close()

	run := history.Run{
		CreatedAt:        result.Report.CreatedAt,
		Topic:            topic,
		OutputPath:       result.Path,
		SectionCount:     len(result.Report.Sections),
		OutlineRevisions: result.OutlineRevisions,
		SectionRevisions: result.SectionRevisions,
	}
	if _, err := store.Record(context.Background(), run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
	}
}

// resolveTopic returns the report topic from --topic or --topic-file.
func resolveTopic(cmd *cobra.Command) (string, error) {
	topic, _ := cmd.Flags().GetString("topic")
	topicFile, _ := cmd.Flags().GetString("topic-file")

	switch {
	case topic != "" && topicFile != "":
		return "", fmt.Errorf("--topic and --topic-file are mutually exclusive")
	case topic != "":
		return topic, nil
	case topicFile != "":
		data, err := os.ReadFile(topicFile)
		if err != nil {
			return "", fmt.Errorf("reading topic file: %w", err)
		}
		t := strings.TrimSpace(string(data))
		if t == "" {
			return "", fmt.Errorf("topic file %s is empty", topicFile)
		}
		return t, nil
	default:
		return "", fmt.Errorf("a topic is required: use --topic or --topic-file")
	}
}

// draftConfig merges flags, the config file, and loaded secrets into a
// DraftConfig. Flags win over the config file.
func draftConfig(cmd *cobra.Command) types.DraftConfig {
	cfg := types.DraftConfig{
		AIConfig: types.AIConfig{
			Provider:   types.AIProvider(stringSetting(cmd, "provider", "draft.provider", string(types.ProviderAnthropic))),
			Model:      stringSetting(cmd, "model", "draft.model", ""),
			BaseURL:    stringSetting(cmd, "base-url", "draft.base_url", ""),
			MaxRetries: viper.GetInt("draft.max_retries"),
		},
		OutputDir: stringSetting(cmd, "output-dir", "draft.output_dir", "."),
	}
	cfg.Timeout = viper.GetDuration("draft.timeout")
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Minute
	}

	html, _ := cmd.Flags().GetBool("html")
	cfg.HTML = html || viper.GetBool("draft.html")

	// API key: flag, then config, then the provider's secret file.
	apiKey := stringSetting(cmd, "api-key", "draft.api_key", "")
	cfg.APIKey = secretDefault(secrets.KeyFile(cfg.Provider), apiKey)

	return cfg
}

// stringSetting reads a flag, falling back to the config file key, then
// the default.
func stringSetting(cmd *cobra.Command, flag, configKey, def string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(configKey); v != "" {
		return v
	}
	return def
}

func init() {
	draftCmd.Flags().String("topic", "", "report topic")
	draftCmd.Flags().String("topic-file", "", "file containing the report topic")
	draftCmd.Flags().String("sources", "", "directory of source documents (default: sources)")
	draftCmd.Flags().String("output-dir", "", "directory for the finished report (default: .)")
	draftCmd.Flags().String("outline", "", "previously approved outline file; skips the outline stage")
	draftCmd.Flags().String("provider", "", "generation backend: anthropic or openai")
	draftCmd.Flags().String("model", "", "AI model identifier")
	draftCmd.Flags().String("api-key", "", "API key for the generation service")
	draftCmd.Flags().String("base-url", "", "API endpoint override for OpenAI-compatible gateways")
	draftCmd.Flags().Bool("html", false, "also write an HTML rendering of the report")

	rootCmd.AddCommand(draftCmd)
}
