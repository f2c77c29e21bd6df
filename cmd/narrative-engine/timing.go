// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/narrative-engine/internal/timing"
	"github.com/pdiddy/narrative-engine/pkg/types"
)

var timingCmd = &cobra.Command{
	Use:   "timing [script.yaml]",
	Short: "Extract speech timing for a script through the synthesis collaborator",
	Long: `Timing synthesizes the script's full narration, derives hierarchical
scene, sentence, and word timings from the generated audio, and caches
the result keyed by the script text's content hash. Re-running on an
unchanged script is a cache hit and skips synthesis entirely.

Requires a Deepgram API key via --api-key or .secrets/deepgram-api-key.`,
	Args: cobra.ExactArgs(1),
	RunE: runTiming,
}

func runTiming(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	audioPath, _ := cmd.Flags().GetString("audio")

	var s types.VOScript
	if err := readYAMLFile(args[0], &s); err != nil {
		return err
	}

	cfg := timingConfigFromFlags(cmd)
	if cfg.TTS.APIKey == "" {
		return fmt.Errorf("no synthesis API key: pass --api-key or create .secrets/deepgram-api-key")
	}

	extractor := timing.NewExtractor(timing.NewDeepgramSynthesizer(cfg.TTS), cfg)
	result, audio, err := extractor.Extract(context.Background(), &s)
	if err != nil {
		return err
	}

	if result.CacheHit {
		fmt.Fprintf(os.Stderr, "Cache hit for key %s\n", result.CacheKey)
	} else {
		fmt.Fprintf(os.Stderr, "Synthesized %d bytes of audio (key %s)\n", len(audio), result.CacheKey)
	}

	if audioPath != "" {
		if err := os.WriteFile(audioPath, audio, 0o644); err != nil {
			return fmt.Errorf("writing audio: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", audioPath)
	}
	return writeYAMLOutput(output, result)
}

// timingConfigFromFlags assembles the timing stage configuration from
// flags, falling back to loaded secrets for the API key.
func timingConfigFromFlags(cmd *cobra.Command) types.TimingConfig {
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	wpm, _ := cmd.Flags().GetInt("wpm")
	voice, _ := cmd.Flags().GetString("voice")
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.TimingConfig{
		CacheDir:  cacheDir,
		TargetWPM: wpm,
		TTS: types.TTSConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: "narrative-engine/" + version,
			},
			Voice:      voice,
			Speed:      timing.NeutralSpeed,
			APIKey:     secretDefault("deepgram-api-key", apiKey),
			MaxRetries: maxRetries,
		},
	}
}

func init() {
	timingCmd.Flags().String("cache-dir", "cache/timing", "directory for content-addressed timing results")
	timingCmd.Flags().Int("wpm", 0, "speaking rate for sentence estimates (0 = default 110)")
	timingCmd.Flags().String("voice", timing.DefaultVoice, "synthesis voice identifier")
	timingCmd.Flags().String("api-key", "", "Deepgram API key (default: .secrets/deepgram-api-key)")
	timingCmd.Flags().Duration("timeout", 60*time.Second, "synthesis request timeout")
	timingCmd.Flags().Int("max-retries", 0, "retry budget for rate-limited synthesis calls (0 = no retries)")
	timingCmd.Flags().String("audio", "", "also write the synthesized audio to this path")
	timingCmd.Flags().StringP("output", "o", "", "output path for the timing YAML (default: stdout)")

	rootCmd.AddCommand(timingCmd)
}
