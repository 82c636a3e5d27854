package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Create for names that are neither built in nor found on disk
var ErrUnknownScene = errors.New("unknown scene")

// ScenesDir is searched for *.json scene files
var ScenesDir = "scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name passed to Create
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to the JSON file (file type only)
}

type builtin struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtins = []builtin{
	{
		info:  SceneInfo{ID: "cover", DisplayName: "Cover", Description: "Random field of small spheres around three large ones"},
		build: func(seed int64) *Scene { return NewCoverScene(rand.New(rand.NewSource(seed))) },
	},
	{
		info:  SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Diffuse, glass and gold spheres on a ground sphere"},
		build: func(int64) *Scene { return NewDefaultScene() },
	},
	{
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Grid of rainbow-colored metal spheres"},
		build: func(int64) *Scene { return NewSphereGridScene(10) },
	},
	{
		info:  SceneInfo{ID: "ground", DisplayName: "Ground", Description: "Ground sphere under the sky gradient"},
		build: func(int64) *Scene { return NewGroundScene() },
	},
	{
		info:  SceneInfo{ID: "empty", DisplayName: "Empty", Description: "Sky gradient only"},
		build: func(int64) *Scene { return NewEmptyScene() },
	},
}

// List returns the built-in scenes followed by the JSON scenes in ScenesDir,
// sorted by display name
func List() ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		info := b.info
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	files, err := listSceneFiles()
	if err != nil {
		return scenes, err
	}
	return append(scenes, files...), nil
}

func listSceneFiles() ([]SceneInfo, error) {
	if _, err := os.Stat(ScenesDir); err != nil {
		// No scenes directory found, nothing to add
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(ScenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		info := SceneInfo{
			ID:          "file:" + name,
			DisplayName: titleCase(name),
			Type:        "file",
			FilePath:    path,
		}
		if s, err := LoadFile(path); err == nil {
			info.Description = s.Description
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// Create builds the named scene. Built-in scenes take their randomness from seed;
// "file:<name>" loads ScenesDir/<name>.json.
func Create(name string, seed int64) (*Scene, error) {
	if fileName, ok := strings.CutPrefix(name, "file:"); ok {
		if fileName == "" || strings.ContainsAny(fileName, `/\`) || strings.Contains(fileName, "..") {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
		}
		path := filepath.Join(ScenesDir, fileName+".json")
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
		}
		return LoadFile(path)
	}

	for _, b := range builtins {
		if b.info.ID == name {
			return b.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-marbles" -> "Glass Marbles"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
