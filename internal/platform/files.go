package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ytget/yt-music/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// ErrArtifactNotFound is returned when no file matches the expected name
var ErrArtifactNotFound = errors.New("artifact not found")

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	info, err := os.Stat(dirPath)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dirPath)
	}
	return nil
}

// FindArtifact locates the file a backend wrote for baseName inside dir.
// Lookup order, first match wins:
//  1. {dir}/{baseName}{ext} exists
//  2. the first regular file in dir (by name) that starts with baseName and
//     has extension ext
//
// Returns ErrArtifactNotFound when neither rule matches.
func FindArtifact(dir, baseName, ext string) (string, model.ResolveRule, error) {
	if baseName == "" {
		return "", model.ResolveRuleNone, fmt.Errorf("empty base name")
	}

	exact := filepath.Join(dir, baseName+ext)
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, model.ResolveRuleExact, nil
	}

	// os.ReadDir returns entries sorted by filename
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", model.ResolveRuleNone, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, baseName) && filepath.Ext(name) == ext {
			return filepath.Join(dir, name), model.ResolveRulePrefix, nil
		}
	}

	return "", model.ResolveRuleNone, fmt.Errorf("%w: %s*%s in %s", ErrArtifactNotFound, baseName, ext, dir)
}

// RevealInFileManager opens the system file manager at the file's location
func RevealInFileManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		// File selection is not standardized on Linux, open the parent directory
		return exec.Command(XDGOpenCommand, filepath.Dir(absPath)).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func existingAbsPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}
