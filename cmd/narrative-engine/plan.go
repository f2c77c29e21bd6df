// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/align"
	"github.com/pdiddy/narrative-engine/internal/brief"
	"github.com/pdiddy/narrative-engine/internal/pattern"
	"github.com/pdiddy/narrative-engine/internal/plan"
	"github.com/pdiddy/narrative-engine/internal/planstore"
	"github.com/pdiddy/narrative-engine/internal/script"
	"github.com/pdiddy/narrative-engine/internal/story"
	"github.com/pdiddy/narrative-engine/internal/timing"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [source.md]",
	Short: "Run the pipeline end to end and store the render plan",
	Long: `Plan runs every pipeline stage in order: story beat extraction, brief
generation, script generation, pattern mapping, and timing extraction,
then reconciles the results into a render plan. The plan is written to
the plans directory and indexed for listing.

Requires a Deepgram API key via --api-key or .secrets/deepgram-api-key.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	arcName, _ := cmd.Flags().GetString("arc")
	audienceName, _ := cmd.Flags().GetString("audience")
	className, _ := cmd.Flags().GetString("class")
	provPath, _ := cmd.Flags().GetString("provenance")
	fps, _ := cmd.Flags().GetInt("fps")
	strict, _ := cmd.Flags().GetBool("strict")
	plansDir, _ := cmd.Flags().GetString("plans-dir")

	class, err := parseClass(className)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	if title == "" {
		title = strings.TrimSuffix(args[0], ".md")
	}

	ctx := context.Background()

	// Story beats → brief.
	beats, err := story.Extract(string(data))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Extracted %d story beats\n", len(beats))

	b, err := brief.New(story.Distill(beats), classDurationSec(class), types.ArcID(arcName), types.Audience(audienceName))
	if err != nil {
		return err
	}

	// Brief → script.
	var provs []types.Provenance
	if provPath != "" {
		if err := readYAMLFile(provPath, &provs); err != nil {
			return err
		}
	}
	s, err := script.Generate(b, class, provs, types.ScriptConfig{})
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

	// Script → pattern decisions.
	sceneBeats := make([]types.StoryBeat, len(s.Scenes))
	for i, sc := range s.Scenes {
		sceneBeats[i] = plan.BeatForScene(sc)
	}
	decisions, err := pattern.MapBeats(ctx, sceneBeats, class)
	if err != nil {
		return err
	}

	// Script → speech timing.
	cfg := timingConfigFromFlags(cmd)
	if cfg.TTS.APIKey == "" {
		return fmt.Errorf("no synthesis API key: pass --api-key or create .secrets/deepgram-api-key")
	}
	extractor := timing.NewExtractor(timing.NewDeepgramSynthesizer(cfg.TTS), cfg)
	result, _, err := extractor.Extract(ctx, s)
	if err != nil {
		return err
	}
	if result.CacheHit {
		fmt.Fprintf(os.Stderr, "Timing cache hit (key %s)\n", result.CacheKey)
	}

	// Reconcile into the render plan.
	p, err := plan.Assemble(title, s, decisions, result, fps, overheadConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	path, err := plan.Write(plansDir, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)

	store, err := planstore.NewStore(types.StoreConfig{PlansDir: plansDir})
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Put(ctx, p); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Plan %s: %d scenes, ~%ds at %d fps\n",
		p.ID, len(p.Scenes), p.EstimatedTotalDurationSec, p.FPS)
	return nil
}

// classDurationSec maps a duration class to its nominal runtime.
func classDurationSec(class types.DurationClass) int {
	switch class {
	case types.Class30:
		return 30
	case types.Class90:
		return 90
	default:
		return 60
	}
}

// --- list subcommand ---

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored render plans, newest first",
	RunE:  runPlanList,
}

func runPlanList(cmd *cobra.Command, args []string) error {
	plansDir, _ := cmd.Flags().GetString("plans-dir")
	max, _ := cmd.Flags().GetInt("max-results")

	store, err := planstore.NewStore(types.StoreConfig{PlansDir: plansDir})
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(context.Background(), max)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No plans stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-24s  %-5s  %-6s  %-8s  %s\n",
		"ID", "Title", "Class", "Scenes", "Duration", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, sum := range summaries {
		title := sum.Title
		if len(title) > 24 {
			title = title[:21] + "..."
		}
		created := sum.CreatedAt
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			created = t.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-24s  %-5s  %-6d  %-8s  %s\n",
			sum.ID, title, sum.Class, sum.SceneCount, fmt.Sprintf("%ds", sum.DurationSec), created)
	}
	fmt.Fprintf(os.Stdout, "\n%d plans\n", len(summaries))
	return nil
}

// --- show subcommand ---

var planShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one stored render plan as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanShow,
}

func runPlanShow(cmd *cobra.Command, args []string) error {
	plansDir, _ := cmd.Flags().GetString("plans-dir")

	store, err := planstore.NewStore(types.StoreConfig{PlansDir: plansDir})
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	return writeYAMLOutput("", p)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	planCmd.PersistentFlags().String("plans-dir", plan.DefaultPlansDir, "directory for plan documents and the index database")

	planCmd.Flags().String("title", "", "plan title (default: source filename)")
	planCmd.Flags().String("arc", string(types.ArcProblemTurn), "arc template: problem-turn, case-led, or data-led")
	planCmd.Flags().String("audience", string(types.AudienceGeneral), "target audience: exec, technical, or general")
	planCmd.Flags().String("class", string(types.Class60), "duration class: 30s, 60s, or 90s")
	planCmd.Flags().String("provenance", "", "YAML file of provenance entries for evidence tokens")
	planCmd.Flags().Int("fps", align.DefaultFPS, "target frame rate")
	planCmd.Flags().Bool("strict", false, "fail on word-budget violations instead of reporting them")

	// Timing stage flags, consumed by timingConfigFromFlags.
	planCmd.Flags().String("cache-dir", "cache/timing", "directory for content-addressed timing results")
	planCmd.Flags().Int("wpm", 0, "speaking rate for sentence estimates (0 = default 110)")
	planCmd.Flags().String("voice", timing.DefaultVoice, "synthesis voice identifier")
	planCmd.Flags().String("api-key", "", "Deepgram API key (default: .secrets/deepgram-api-key)")
	planCmd.Flags().Duration("timeout", 60*time.Second, "synthesis request timeout")
	planCmd.Flags().Int("max-retries", 0, "retry budget for rate-limited synthesis calls (0 = no retries)")

	// Overhead gap flags, consumed by overheadConfigFromFlags.
	planCmd.Flags().Int("beat-gap", align.DefaultBeatGapSec, "seconds between beats within a scene")
	planCmd.Flags().Int("scene-gap", align.DefaultSceneGapSec, "seconds between scenes within an act")
	planCmd.Flags().Int("act-gap", align.DefaultActGapSec, "seconds between acts")

	planListCmd.Flags().Int("max-results", 0, "maximum plans to list (0 = store default)")

	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)

	rootCmd.AddCommand(planCmd)
}
