// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// =============================================================================
// SINK INTERFACE
// =============================================================================

// ArtifactSink receives the finished artifact. The save is the only side
// effect in the pipeline; keeping it behind an interface lets tests capture
// artifacts in memory instead of touching the filesystem.
type ArtifactSink interface {
	// Save persists the artifact and returns where it ended up.
	Save(a Artifact) (string, error)
}

// =============================================================================
// FILE SINK
// =============================================================================

// FileSink writes artifacts into a directory, optionally opening the file in
// the platform's default application afterwards.
type FileSink struct {
	// Dir is the output directory. Default: current working directory.
	Dir string

	// OpenAfterSave opens the file after writing. The open is fire-and-forget:
	// a failure to open is not a failure to save.
	OpenAfterSave bool
}

// Save writes the artifact to disk.
func (s *FileSink) Save(a Artifact) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, a.Bytes, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if s.OpenAfterSave {
		// Non-fatal - the file was still created successfully
		_ = openFile(path)
	}

	return path, nil
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
