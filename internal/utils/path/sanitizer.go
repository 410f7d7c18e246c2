// Package pathutils normalizes user-supplied paths and file name lists before
// they reach the migration plan.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant             = "~"
	tildeForwardSlashPrefixConstant = "~/"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts leading tilde shortcuts to absolute paths.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return &HomeExpander{homeDirectoryProvider: os.UserHomeDir}
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand resolves a leading tilde prefix to the user's home directory and
// returns other paths unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, tildeSymbolConstant) {
		return candidatePath
	}

	resolvedHomeDirectory := expander.resolveHomeDirectory()
	if len(resolvedHomeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == tildeSymbolConstant {
		return resolvedHomeDirectory
	}

	if strings.HasPrefix(candidatePath, tildeForwardSlashPrefixConstant) {
		return filepath.Join(resolvedHomeDirectory, strings.TrimPrefix(candidatePath, tildeForwardSlashPrefixConstant))
	}

	return candidatePath
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}

// FileNameSanitizer normalizes widget file name lists consistently across the
// built-in plan, plan files, and configuration overrides.
type FileNameSanitizer struct{}

// NewFileNameSanitizer constructs a FileNameSanitizer.
func NewFileNameSanitizer() *FileNameSanitizer {
	return &FileNameSanitizer{}
}

// Sanitize trims whitespace, removes empty entries, and drops duplicates
// while preserving the original ordering.
func (sanitizer *FileNameSanitizer) Sanitize(candidateFileNames []string) []string {
	if sanitizer == nil || len(candidateFileNames) == 0 {
		return nil
	}

	seenFileNames := make(map[string]struct{}, len(candidateFileNames))
	sanitizedFileNames := make([]string, 0, len(candidateFileNames))
	for _, candidateFileName := range candidateFileNames {
		trimmedFileName := strings.TrimSpace(candidateFileName)
		if len(trimmedFileName) == 0 {
			continue
		}
		if _, alreadySeen := seenFileNames[trimmedFileName]; alreadySeen {
			continue
		}
		seenFileNames[trimmedFileName] = struct{}{}
		sanitizedFileNames = append(sanitizedFileNames, trimmedFileName)
	}

	return sanitizedFileNames
}
