package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillsync-engine/internal/extraction"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Extract and normalize skill mentions from free text",
	Long:  "Extract skill mentions from a text file using the LLM classifier when an API key is configured, falling back to taxonomy matching. With --mentions, print raw taxonomy matches with confidences instead.",
	RunE:  runTaxonomy,
}

var (
	taxonomyInputFile    string
	taxonomyConfigFile   string
	taxonomyShowMentions bool
	taxonomyJSONOutput   bool
)

func init() {
	taxonomyCmd.Flags().StringVarP(&taxonomyInputFile, "in", "i", "", "Path to input text file (required)")
	taxonomyCmd.Flags().StringVar(&taxonomyConfigFile, "config", "", "Path to config JSON file")
	taxonomyCmd.Flags().BoolVar(&taxonomyShowMentions, "mentions", false, "Print raw taxonomy mentions with confidences")
	taxonomyCmd.Flags().BoolVar(&taxonomyJSONOutput, "json", false, "Print results as JSON")
	_ = taxonomyCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(_ *cobra.Command, _ []string) error {
	cfg, err := loadEngineConfig(taxonomyConfigFile)
	if err != nil {
		return err
	}
	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	content, err := os.ReadFile(taxonomyInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	text := string(content)

	matcher := buildMatcher(cfg, log)

	if taxonomyShowMentions {
		mentions := matcher.FindMentions(text, cfg.MinMatchConfidence)
		if taxonomyJSONOutput {
			return printJSON(mentions)
		}
		for _, mention := range mentions {
			_, _ = fmt.Fprintf(os.Stdout, "%-30s %-12s %-6s %.2f\n",
				mention.Skill, mention.Category, mention.MatchType, mention.Confidence)
		}
		_, _ = fmt.Fprintf(os.Stdout, "%d mentions\n", len(mentions))
		return nil
	}

	ctx := context.Background()
	var client extraction.Client
	if cfg.APIKey != "" {
		classifier, err := extraction.NewGeminiClassifier(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return fmt.Errorf("failed to create classifier: %w", err)
		}
		defer func() { _ = classifier.Close() }()
		client = classifier
	}

	extractor := extraction.NewExtractor(client, matcher, log)
	if cfg.MinMatchConfidence > 0 {
		extractor.SetMinConfidence(cfg.MinMatchConfidence)
	}
	skills := extractor.Extract(ctx, text)

	if taxonomyJSONOutput {
		return printJSON(skills)
	}
	for _, skill := range skills {
		_, _ = fmt.Fprintln(os.Stdout, skill)
	}
	_, _ = fmt.Fprintf(os.Stdout, "%d skills\n", len(skills))
	return nil
}
