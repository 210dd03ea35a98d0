package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// profileFileMode is the permission for startup files the bootstrap creates.
const profileFileMode = os.FileMode(0o644)

// EnsurePathLine appends the marker comment and PATH line for binDir to the
// profile, creating the file (and its directory, for fish) when missing.
// The append is skipped when any existing line already references the bin
// directory or carries the marker, so repeated runs never duplicate it.
// It reports whether the file was changed.
func EnsurePathLine(profile Profile, binDir, home string) (bool, error) {
	line := profile.PathExportLine(binDir, home)
	block := Marker + "\n" + line + "\n"

	contents, err := os.ReadFile(profile.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("read profile: %w", err)
	}

	if errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(filepath.Dir(profile.Path), 0o755); err != nil {
			return false, fmt.Errorf("create profile directory: %w", err)
		}

		if err = os.WriteFile(profile.Path, []byte(block), profileFileMode); err != nil {
			return false, fmt.Errorf("create profile: %w", err)
		}

		return true, nil
	}

	if hasPathReference(string(contents), binDir, home) {
		return false, nil
	}

	final := string(contents)
	if final != "" && !strings.HasSuffix(final, "\n") {
		final += "\n"
	}

	final += "\n" + block

	if err = os.WriteFile(profile.Path, []byte(final), profileFileMode); err != nil {
		return false, fmt.Errorf("update profile: %w", err)
	}

	return true, nil
}

// RemovePathLine strips the marker comment and every line referencing the
// bin directory from the profile. It reports whether the file was changed.
func RemovePathLine(profile Profile, binDir, home string) (bool, error) {
	contents, err := os.ReadFile(profile.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("read profile: %w", err)
	}

	lines := strings.Split(string(contents), "\n")
	filtered := make([]string, 0, len(lines))
	removed := false

	for _, existing := range lines {
		if strings.Contains(existing, Marker) || lineReferencesBin(existing, binDir, home) {
			removed = true
			continue
		}

		filtered = append(filtered, existing)
	}

	if !removed {
		return false, nil
	}

	final := strings.Join(filtered, "\n")
	if final != "" && !strings.HasSuffix(final, "\n") {
		final += "\n"
	}

	if err = os.WriteFile(profile.Path, []byte(final), profileFileMode); err != nil {
		return false, fmt.Errorf("update profile: %w", err)
	}

	return true, nil
}

// hasPathReference reports whether the profile already mentions the bin
// directory in any spelling, or carries the marker from an earlier run.
func hasPathReference(contents, binDir, home string) bool {
	if strings.Contains(contents, Marker) {
		return true
	}

	for _, existing := range strings.Split(contents, "\n") {
		if lineReferencesBin(existing, binDir, home) {
			return true
		}
	}

	return false
}

// lineReferencesBin matches both the absolute and the $HOME spelling
// of the bin directory.
func lineReferencesBin(line, binDir, home string) bool {
	return strings.Contains(line, binDir) ||
		strings.Contains(line, FriendlyPath(binDir, home))
}
