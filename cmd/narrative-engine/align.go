// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/align"
	"github.com/pdiddy/narrative-engine/internal/storyboard"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Check reveal-to-cue synchronization and animation concurrency",
	Long: `Align verifies the synchronization properties of a planned program.
Use subcommands to match visual reveals against speech cues, validate
the animation concurrency ceiling, or reconcile storyboard overhead.`,
}

// --- cues subcommand ---

var alignCuesCmd = &cobra.Command{
	Use:   "cues",
	Short: "Match visual reveals to their nearest speech cues",
	Long: `Cues matches each planned reveal to its nearest extracted speech cue
and reports the frame offset. A reveal is aligned when its offset is
within the tolerance (default 0.2 s at the target frame rate).
Misaligned reveals are reported, never moved.`,
	RunE: runAlignCues,
}

func runAlignCues(cmd *cobra.Command, args []string) error {
	revealsPath, _ := cmd.Flags().GetString("reveals")
	cuesPath, _ := cmd.Flags().GetString("cues")
	tolerance, _ := cmd.Flags().GetFloat64("tolerance")
	fps, _ := cmd.Flags().GetInt("fps")
	strict, _ := cmd.Flags().GetBool("strict")
	output, _ := cmd.Flags().GetString("output")

	var reveals []align.Reveal
	if err := readYAMLFile(revealsPath, &reveals); err != nil {
		return err
	}
	var cues []align.Cue
	if err := readYAMLFile(cuesPath, &cues); err != nil {
		return err
	}

	cfg := align.ApplyDefaults(types.AlignConfig{FPS: fps, ToleranceSec: tolerance})
	alignments := align.AlignReveals(reveals, cues, align.ToleranceFrames(cfg.ToleranceSec, cfg.FPS))
	for _, a := range align.Unaligned(alignments) {
		fmt.Fprintln(os.Stderr, align.Summarize(a))
	}

	unaligned := len(align.Unaligned(alignments))
	fmt.Fprintf(os.Stderr, "%d/%d reveals aligned within %.2fs\n",
		len(alignments)-unaligned, len(alignments), cfg.ToleranceSec)

	if err := writeYAMLOutput(output, alignments); err != nil {
		return err
	}
	if strict && unaligned > 0 {
		return fmt.Errorf("%d reveal(s) outside tolerance", unaligned)
	}
	return nil
}

// --- concurrency subcommand ---

var alignConcurrencyCmd = &cobra.Command{
	Use:   "concurrency [spans.yaml]",
	Short: "Validate the simultaneous-animation ceiling",
	Long: `Concurrency scans every frame covered by the given animation spans
(endpoints inclusive) and reports each frame where more animations are
active than the ceiling allows. Violations fail the command; resolving
them is left to the author.`,
	Args: cobra.ExactArgs(1),
	RunE: runAlignConcurrency,
}

func runAlignConcurrency(cmd *cobra.Command, args []string) error {
	ceiling, _ := cmd.Flags().GetInt("ceiling")
	cfg := align.ApplyDefaults(types.AlignConfig{MaxConcurrent: ceiling})

	var spans []align.Span
	if err := readYAMLFile(args[0], &spans); err != nil {
		return err
	}

	violations := align.ValidateConcurrency(spans, cfg.MaxConcurrent)
	for _, v := range violations {
		fmt.Fprintln(os.Stderr, v)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d frame(s) exceed the concurrency ceiling", len(violations))
	}

	fmt.Fprintf(os.Stderr, "%d spans within ceiling\n", len(spans))
	return nil
}

// --- overhead subcommand ---

var alignOverheadCmd = &cobra.Command{
	Use:   "overhead [storyboard.yaml]",
	Short: "Reconcile storyboard duration against gap overhead",
	Long: `Overhead tallies the inter-beat, inter-scene, and inter-act gaps of a
storyboard and reports the total program duration: the sum of all beat
durations plus the summed gap time.`,
	Args: cobra.ExactArgs(1),
	RunE: runAlignOverhead,
}

func runAlignOverhead(cmd *cobra.Command, args []string) error {
	cfg := overheadConfigFromFlags(cmd)

	sb, err := storyboard.Load(args[0])
	if err != nil {
		return err
	}

	o := align.CountOverhead(sb, cfg)
	fmt.Fprintf(os.Stdout, "Beat gaps:  %d x %ds\n", o.BeatGaps, o.BeatGapSec)
	fmt.Fprintf(os.Stdout, "Scene gaps: %d x %ds\n", o.SceneGaps, o.SceneGapSec)
	fmt.Fprintf(os.Stdout, "Act gaps:   %d x %ds\n", o.ActGaps, o.ActGapSec)
	fmt.Fprintf(os.Stdout, "Overhead:   %ds\n", o.TotalSec())
	fmt.Fprintf(os.Stdout, "Total:      %ds\n", align.EstimateTotalSec(sb, cfg))
	return nil
}

func overheadConfigFromFlags(cmd *cobra.Command) types.OverheadConfig {
	beatGap, _ := cmd.Flags().GetInt("beat-gap")
	sceneGap, _ := cmd.Flags().GetInt("scene-gap")
	actGap, _ := cmd.Flags().GetInt("act-gap")
	return types.OverheadConfig{BeatGapSec: beatGap, SceneGapSec: sceneGap, ActGapSec: actGap}
}

func init() {
	alignCuesCmd.Flags().String("reveals", "", "YAML file of planned reveals")
	alignCuesCmd.Flags().String("cues", "", "YAML file of extracted speech cues")
	alignCuesCmd.Flags().Float64("tolerance", align.DefaultToleranceSec, "maximum reveal-to-cue offset in seconds")
	alignCuesCmd.Flags().Int("fps", align.DefaultFPS, "target frame rate")
	alignCuesCmd.Flags().Bool("strict", false, "fail when any reveal is outside tolerance")
	alignCuesCmd.Flags().StringP("output", "o", "", "output path for the alignment YAML (default: stdout)")
	alignCuesCmd.MarkFlagRequired("reveals")
	alignCuesCmd.MarkFlagRequired("cues")

	alignConcurrencyCmd.Flags().Int("ceiling", align.DefaultMaxConcurrent, "maximum simultaneously active animations")

	alignOverheadCmd.Flags().Int("beat-gap", align.DefaultBeatGapSec, "seconds between beats within a scene")
	alignOverheadCmd.Flags().Int("scene-gap", align.DefaultSceneGapSec, "seconds between scenes within an act")
	alignOverheadCmd.Flags().Int("act-gap", align.DefaultActGapSec, "seconds between acts")

	alignCmd.AddCommand(alignCuesCmd)
	alignCmd.AddCommand(alignConcurrencyCmd)
	alignCmd.AddCommand(alignOverheadCmd)

	rootCmd.AddCommand(alignCmd)
}
