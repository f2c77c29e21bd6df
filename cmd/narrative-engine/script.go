// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/brief"
	"github.com/pdiddy/narrative-engine/internal/script"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var scriptCmd = &cobra.Command{
	Use:   "script [brief.yaml]",
	Short: "Generate a word-budgeted voice-over script from a brief",
	Long: `Script expands a narrative brief into one voice-over scene per arc role,
fitted to the duration class word budget (30s: 47-55 words, 60s: 95-110,
90s: 140-160). Provenance entries, when given, become [prov:<id>]
evidence tokens in proof and data scenes.

Budget violations are reported as diagnostics; with --strict they fail
the command instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	className, _ := cmd.Flags().GetString("class")
	provPath, _ := cmd.Flags().GetString("provenance")
	wpm, _ := cmd.Flags().GetInt("wpm")
	strict, _ := cmd.Flags().GetBool("strict")
	output, _ := cmd.Flags().GetString("output")

	class, err := parseClass(className)
	if err != nil {
		return err
	}

	var b types.NarrativeBrief
	if err := readYAMLFile(args[0], &b); err != nil {
		return err
	}
	if err := brief.Validate(&b); err != nil {
		return fmt.Errorf("invalid brief %s: %w", args[0], err)
	}

	var provs []types.Provenance
	if provPath != "" {
		if err := readYAMLFile(provPath, &provs); err != nil {
			return err
		}
	}

	s, err := script.Generate(&b, class, provs, types.ScriptConfig{TargetWPM: wpm})
	if err != nil {
		return err
	}

	report, err := script.Validate(s)
	if err != nil {
		return err
	}
	report.Report(os.Stderr)
	if strict && !report.Clean() {
		return fmt.Errorf("script violates the %s word budget", class)
	}

	return writeYAMLOutput(output, s)
}

// parseClass validates a duration class name against the budget table.
func parseClass(name string) (types.DurationClass, error) {
	class := types.DurationClass(name)
	if _, ok := types.WordBudgets[class]; !ok {
		return "", fmt.Errorf("unknown duration class %q: use 30s, 60s, or 90s", name)
	}
	return class, nil
}

func init() {
	scriptCmd.Flags().String("class", string(types.Class60), "duration class: 30s, 60s, or 90s")
	scriptCmd.Flags().String("provenance", "", "YAML file of provenance entries for evidence tokens")
	scriptCmd.Flags().Int("wpm", 0, "speaking rate for duration estimates (0 = default 110)")
	scriptCmd.Flags().Bool("strict", false, "fail on word-budget violations instead of reporting them")
	scriptCmd.Flags().StringP("output", "o", "", "output path for the script YAML (default: stdout)")

	rootCmd.AddCommand(scriptCmd)
}
