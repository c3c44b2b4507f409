package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFileRefs(t *testing.T) {
	tests := []struct {
		name      string
		task      string
		wantClean string
		wantPaths []string
	}{
		{
			name:      "no references",
			task:      "  Build a REST API for todos  ",
			wantClean: "Build a REST API for todos",
			wantPaths: []string{},
		},
		{
			name:      "single reference",
			task:      "Refactor @src/main.go please",
			wantClean: "Refactor  please",
			wantPaths: []string{"src/main.go"},
		},
		{
			name:      "order preserved",
			task:      "@b.go compare with @a.go and @dir/",
			wantClean: "compare with  and",
			wantPaths: []string{"b.go", "a.go", "dir/"},
		},
		{
			name:      "duplicates kept",
			task:      "@x @x",
			wantClean: "",
			wantPaths: []string{"x", "x"},
		},
		{
			name:      "bare at sign is not a reference",
			task:      "meet @ noon",
			wantClean: "meet @ noon",
			wantPaths: []string{},
		},
		{
			name:      "adjacent tokens need whitespace",
			task:      "use @a.go@b.go",
			wantClean: "use",
			wantPaths: []string{"a.go@b.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, paths := ExtractFileRefs(tt.task)
			assert.Equal(t, tt.wantClean, clean)
			if diff := cmp.Diff(tt.wantPaths, paths); diff != "" {
				t.Errorf("ExtractFileRefs() paths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractFileRefsIndependentOfTokenContent(t *testing.T) {
	a, _ := ExtractFileRefs("fix @one/two.go now")
	b, _ := ExtractFileRefs("fix @something/else/entirely.rs now")
	assert.Equal(t, a, b)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"main.go", false},
		{"src/pkg/file.go", false},
		{"./relative/file.go", false},
		{"/abs/path/file.go", false},
		{"file..go", false},
		{"..hidden", false},
		{"..", true},
		{"../secret", true},
		{"src/../../etc/passwd", true},
		{"a/b/..", true},
		{"/does/not/exist/../x", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := SanitizePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrPathTraversal)
				assert.Contains(t, err.Error(), tt.path)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0644))
	missing := filepath.Join(dir, "missing.txt")

	t.Run("all present", func(t *testing.T) {
		assert.NoError(t, ValidatePaths([]string{existing, dir}))
	})

	t.Run("empty list", func(t *testing.T) {
		assert.NoError(t, ValidatePaths(nil))
	})

	t.Run("missing path named", func(t *testing.T) {
		err := ValidatePaths([]string{existing, missing})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), missing)
	})

	t.Run("stops at first missing", func(t *testing.T) {
		other := filepath.Join(dir, "other.txt")
		err := ValidatePaths([]string{missing, other})
		require.Error(t, err)
		assert.Contains(t, err.Error(), missing)
		assert.NotContains(t, err.Error(), other)
	})
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.go":            "package a\n",
		"sub/b.go":        "package b\n",
		"sub/deeper/c.md": "# C\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	t.Run("single file", func(t *testing.T) {
		path := filepath.Join(dir, "a.go")
		got, err := ReadInputs([]string{path})
		require.NoError(t, err)
		assert.Equal(t, "\n\n----- File: "+path+" -----\npackage a\n\n", got)
	})

	t.Run("directory is walked recursively", func(t *testing.T) {
		got, err := ReadInputs([]string{dir})
		require.NoError(t, err)
		for name, content := range files {
			path := filepath.Join(dir, name)
			assert.Contains(t, got, "----- File: "+path+" -----\n"+content)
		}
		assert.Equal(t, len(files), strings.Count(got, "----- File: "))
	})

	t.Run("no paths", func(t *testing.T) {
		got, err := ReadInputs(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid utf-8 is fatal", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bin.dat")
		require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe, 0x00}, 0644))
		_, err := ReadInputs([]string{filepath.Join(dir, "a.go"), bad})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileRead)
	})
}

func TestReadInputsSymlinkedDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.MkdirAll(filepath.Join(target, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "a.go"), []byte("package a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "sub", "b.go"), []byte("package b\n"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := LoadPaths([]string{link})
	if err != nil {
		t.Fatalf("LoadPaths() error = %v", err)
	}

	for name, content := range map[string]string{"a.go": "package a\n", filepath.Join("sub", "b.go"): "package b\n"} {
		want := "----- File: " + filepath.Join(link, name) + " -----\n" + content
		if !strings.Contains(got, want) {
			t.Errorf("LoadPaths() missing %q in:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "----- File: "); n != 2 {
		t.Errorf("got %d file headers, want 2", n)
	}
}

func TestLoadPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	t.Run("traversal checked before existence", func(t *testing.T) {
		_, err := LoadPaths([]string{path, "nope/../../missing"})
		assert.ErrorIs(t, err, ErrPathTraversal)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadPaths([]string{filepath.Join(dir, "gone.txt")})
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("reads", func(t *testing.T) {
		got, err := LoadPaths([]string{path})
		require.NoError(t, err)
		assert.Contains(t, got, "hello")
	})
}

func TestResolveTask(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("the notes"), 0644))

	t.Run("with reference", func(t *testing.T) {
		input, err := ResolveTask("Implement @" + path)
		require.NoError(t, err)
		assert.Equal(t, "Implement", input.Task)
		assert.Equal(t, []string{path}, input.Paths)
		assert.True(t, strings.HasPrefix(input.Prompt(), "Implement\n\n\n\n----- File: "+path))
		assert.Contains(t, input.Prompt(), "the notes")
	})

	t.Run("without reference", func(t *testing.T) {
		input, err := ResolveTask("  just text ")
		require.NoError(t, err)
		assert.Equal(t, "just text", input.Prompt())
	})

	t.Run("traversal", func(t *testing.T) {
		_, err := ResolveTask("read @../etc/passwd")
		assert.True(t, errors.Is(err, ErrPathTraversal))
	})
}

func TestWriteFileContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")

	require.NoError(t, WriteFileContents(path, "first"))
	require.NoError(t, WriteFileContents(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	err = WriteFileContents(filepath.Join(dir, "no", "such", "dir", "f"), "x")
	assert.ErrorIs(t, err, ErrFileWrite)
}
