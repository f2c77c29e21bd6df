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

var calibrateCmd = &cobra.Command{
	Use:   "calibrate [storyboard.yaml]",
	Short: "Retime a storyboard from one reference beat",
	Long: `Calibrate derives a pacing rate (units per second) from a single
reference beat and its known duration, then retimes every beat in the
storyboard at that rate (rounded up, minimum 1 second). The storyboard
is rewritten in place; running calibrate twice with the same reference
is idempotent.

The reference beat is addressed by --scene and --beat indexes over the
storyboard's scenes flattened across acts. Its duration defaults to the
value recorded in the storyboard; --duration overrides it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCalibrate,
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	sceneIdx, _ := cmd.Flags().GetInt("scene")
	beatIdx, _ := cmd.Flags().GetInt("beat")
	duration, _ := cmd.Flags().GetInt("duration")
	unitName, _ := cmd.Flags().GetString("unit")
	fieldName, _ := cmd.Flags().GetString("field")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	unit, err := align.ParseUnit(unitName)
	if err != nil {
		return err
	}
	field, err := align.ParseTextField(fieldName)
	if err != nil {
		return err
	}

	sb, err := storyboard.Load(args[0])
	if err != nil {
		return err
	}

	ref, err := storyboard.Beat(sb, sceneIdx, beatIdx)
	if err != nil {
		return err
	}
	if duration == 0 {
		duration = ref.DurationSec
	}

	text := ref.Text
	if field == align.FieldOnScreen {
		text = ref.OnScreenText
	}

	rate, err := align.NewRate(text, duration, unit, field)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Calibration rate: %.2f %s/sec (from scene %d beat %d over %ds)\n",
		rate.UnitsPerSec, rate.Unit, sceneIdx, beatIdx, duration)

	align.Retime(sb, rate)

	total := align.EstimateTotalSec(sb, types.OverheadConfig{})
	fmt.Fprintf(os.Stderr, "Estimated program duration: %ds (including gaps)\n", total)

	if dryRun {
		return writeYAMLOutput("", sb)
	}
	if err := storyboard.Save(args[0], sb); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Rewrote %s\n", args[0])
	return nil
}

func init() {
	calibrateCmd.Flags().Int("scene", 0, "reference scene index (flattened across acts)")
	calibrateCmd.Flags().Int("beat", 0, "reference beat index within the scene")
	calibrateCmd.Flags().Int("duration", 0, "reference beat duration in seconds (0 = use storyboard value)")
	calibrateCmd.Flags().String("unit", string(align.UnitCharacters), "pacing unit: characters or words")
	calibrateCmd.Flags().String("field", string(align.FieldNarration), "text field to measure: text or onscreen")
	calibrateCmd.Flags().Bool("dry-run", false, "print the retimed storyboard instead of rewriting it")

	rootCmd.AddCommand(calibrateCmd)
}
