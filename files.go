package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// fileRefPattern matches '@' followed by one run of non-whitespace characters.
var fileRefPattern = regexp.MustCompile(`@(\S+)`)

// TaskInput is a task description after file references have been resolved
type TaskInput struct {
	Task     string   // task text with every @path token removed
	Paths    []string // referenced paths in order of appearance
	Combined string   // concatenated contents of the referenced paths
}

// Prompt joins the clean task and combined file contents with a blank line.
func (t TaskInput) Prompt() string {
	if t.Combined == "" {
		return t.Task
	}
	return t.Task + "\n\n" + t.Combined
}

// ExtractFileRefs removes every @path token from task and returns the cleaned
// text together with the referenced paths, left to right.
func ExtractFileRefs(task string) (string, []string) {
	clean := strings.TrimSpace(fileRefPattern.ReplaceAllString(task, ""))

	paths := []string{}
	for _, match := range fileRefPattern.FindAllStringSubmatch(task, -1) {
		paths = append(paths, match[1])
	}

	return clean, paths
}

// SanitizePath rejects any path with a ".." component. It does not touch the
// filesystem.
func SanitizePath(path string) error {
	for _, part := range strings.FieldsFunc(path, isPathSeparator) {
		if part == ".." {
			return fmt.Errorf("%w in path: %s", ErrPathTraversal, path)
		}
	}
	return nil
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == filepath.Separator
}

// ValidatePaths ensures every path exists, stopping at the first missing one.
func ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, fs.ErrNotExist)
			}
			return fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
		}
	}
	return nil
}

// ReadInputs reads and concatenates the contents of all paths, walking
// directories recursively. Each file is preceded by a header naming it.
func ReadInputs(paths []string) (string, error) {
	var sb strings.Builder

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
		}

		if !info.IsDir() {
			if !info.Mode().IsRegular() {
				continue
			}
			if err := appendFile(&sb, path, path); err != nil {
				return "", err
			}
			continue
		}

		if err := appendDir(&sb, path); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// appendDir appends every regular file under dir. A symlinked root is
// resolved first; headers keep the path as the user gave it.
func appendDir(sb *strings.Builder, dir string) error {
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileRead, dir, err)
	}

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: walking %s: %w", ErrFileRead, p, walkErr)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFileRead, p, err)
		}
		return appendFile(sb, p, filepath.Join(dir, rel))
	})
}

// appendFile writes the header for shown and the content of path
func appendFile(sb *strings.Builder, path, shown string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: %s: stream did not contain valid UTF-8", ErrFileRead, path)
	}

	sb.WriteString(fileHeader(shown))
	sb.Write(data)
	sb.WriteString("\n")
	return nil
}

func fileHeader(path string) string {
	return fmt.Sprintf("\n\n----- File: %s -----\n", path)
}

// LoadPaths guards, validates and reads paths in that order.
func LoadPaths(paths []string) (string, error) {
	for _, path := range paths {
		if err := SanitizePath(path); err != nil {
			return "", err
		}
	}
	if err := ValidatePaths(paths); err != nil {
		return "", err
	}
	return ReadInputs(paths)
}

// ResolveTask extracts file references from a task description and loads them.
func ResolveTask(task string) (TaskInput, error) {
	clean, paths := ExtractFileRefs(task)

	combined, err := LoadPaths(paths)
	if err != nil {
		return TaskInput{}, err
	}

	return TaskInput{Task: clean, Paths: paths, Combined: combined}, nil
}

// WriteFileContents overwrites path with text.
func WriteFileContents(path, text string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFileWrite, path, err)
	}
	return nil
}
