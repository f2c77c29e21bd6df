// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package storyboard loads and saves the durable scene→beat→duration tree
// the calibration stage reads and rewrites idempotently.
// Implements: prd015-alignment (R2.6, R5);
//
//	docs/ARCHITECTURE § Storyboard Documents.
package storyboard

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// Load reads a storyboard YAML document.
func Load(path string) (*types.Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading storyboard: %w", err)
	}
	var sb types.Storyboard
	if err := yaml.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("parsing storyboard: %w", err)
	}
	return &sb, nil
}

// Save writes the storyboard back as YAML. Saving an unchanged storyboard
// reproduces the same document, so load/save round-trips are idempotent.
func Save(path string, sb *types.Storyboard) error {
	data, err := yaml.Marshal(sb)
	if err != nil {
		return fmt.Errorf("marshaling storyboard: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Beat resolves a (scene, beat) index pair against the storyboard's scenes
// flattened across acts, which is how the calibration CLI addresses beats.
func Beat(sb *types.Storyboard, sceneIdx, beatIdx int) (*types.StoryboardBeat, error) {
	scenes := flatScenes(sb)
	if sceneIdx < 0 || sceneIdx >= len(scenes) {
		return nil, fmt.Errorf("scene index %d out of range (storyboard has %d scenes)", sceneIdx, len(scenes))
	}
	scene := scenes[sceneIdx]
	if beatIdx < 0 || beatIdx >= len(scene.Beats) {
		return nil, fmt.Errorf("beat index %d out of range (scene %d has %d beats)", beatIdx, sceneIdx, len(scene.Beats))
	}
	return &scene.Beats[beatIdx], nil
}

func flatScenes(sb *types.Storyboard) []*types.StoryboardScene {
	var scenes []*types.StoryboardScene
	for ai := range sb.Acts {
		for si := range sb.Acts[ai].Scenes {
			scenes = append(scenes, &sb.Acts[ai].Scenes[si])
		}
	}
	return scenes
}
