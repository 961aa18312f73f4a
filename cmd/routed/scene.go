package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	elbow "elbow-router"
)

// sceneDocument is the on-disk scene format: the block snapshots the
// host would otherwise upload through POST /scene.
type sceneDocument struct {
	Blocks []elbow.SceneBlock `json:"blocks"`
}

// loadScene reads block snapshots from a JSON scene file.
func loadScene(filename string) ([]elbow.SceneBlock, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc sceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scene: %w", err)
	}

	return doc.Blocks, nil
}

// saveScene serializes the block snapshots to a JSON scene file.
func saveScene(blocks []elbow.SceneBlock, filename string) error {
	data, err := json.MarshalIndent(sceneDocument{Blocks: blocks}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("💾 Scene saved to %s (%d bytes)\n", filename, len(data))
	return nil
}
