// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/pattern"
	"github.com/pdiddy/narrative-engine/internal/plan"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var patternCmd = &cobra.Command{
	Use:   "pattern [script.yaml]",
	Short: "Map script scenes to visual patterns",
	Long: `Pattern runs each scene of a generated script through the ordered rule
chain (hook-title, data-chart, metric-stats, quote, list-steps,
cta-title, default-callout) and emits one validated pattern decision
per scene. The mapping is deterministic: the same script always yields
the same decisions.`,
	Args: cobra.ExactArgs(1),
	RunE: runPattern,
}

func runPattern(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	var s types.VOScript
	if err := readYAMLFile(args[0], &s); err != nil {
		return err
	}

	beats := make([]types.StoryBeat, len(s.Scenes))
	for i, sc := range s.Scenes {
		beats[i] = plan.BeatForScene(sc)
	}

	decisions, err := pattern.MapBeats(context.Background(), beats, s.Class)
	if err != nil {
		return err
	}

	for i, d := range decisions {
		fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", s.Scenes[i].ID, d.Pattern, d.Rationale)
	}
	return writeYAMLOutput(output, decisions)
}

func init() {
	patternCmd.Flags().StringP("output", "o", "", "output path for the decisions YAML (default: stdout)")

	rootCmd.AddCommand(patternCmd)
}
