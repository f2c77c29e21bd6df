// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/brief"
	"github.com/pdiddy/narrative-engine/internal/story"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var briefCmd = &cobra.Command{
	Use:   "brief [source.md]",
	Short: "Distill source material into a narrative brief",
	Long: `Brief extracts story beats from a source document, distills them into
problem, solution, and proof insights, and fills one of the fixed arc
templates (problem-turn, case-led, data-led) to produce a narrative
brief. All brief fields are clamped to 120 characters; proof pillars
are capped at three.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrief,
}

func runBrief(cmd *cobra.Command, args []string) error {
	arcName, _ := cmd.Flags().GetString("arc")
	audienceName, _ := cmd.Flags().GetString("audience")
	duration, _ := cmd.Flags().GetInt("duration")
	output, _ := cmd.Flags().GetString("output")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	beats, err := story.Extract(string(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Extracted %d story beats\n", len(beats))

	b, err := brief.New(story.Distill(beats), duration, types.ArcID(arcName), types.Audience(audienceName))
	if err != nil {
		return err
	}
	return writeYAMLOutput(output, b)
}

func init() {
	briefCmd.Flags().String("arc", string(types.ArcProblemTurn), "arc template: problem-turn, case-led, or data-led")
	briefCmd.Flags().String("audience", string(types.AudienceGeneral), "target audience: exec, technical, or general")
	briefCmd.Flags().Int("duration", 60, "target runtime in seconds (30-90)")
	briefCmd.Flags().StringP("output", "o", "", "output path for the brief YAML (default: stdout)")

	rootCmd.AddCommand(briefCmd)
}
