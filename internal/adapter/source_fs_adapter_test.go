package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/halint/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.cc"), "int main() {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.cc"), "int x;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.cc")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.cc")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files but not vcs dirs", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.cc")
		writeTestFile(t, child, "int x;\n")

		gitDir := filepath.Join(root, ".git")
		mustMkdir(t, gitDir)
		writeTestFile(t, filepath.Join(gitDir, "hook.c"), "int y;\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
		assert.False(t, containsPath(visited, filepath.Join(gitDir, "hook.c")))
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.cc")
	content := "int main() {\n}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.cc")
	content := []byte("int main() {}\n")
	writeTestBytes(t, path, content)

	got, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, hashBytes(content), got)

	_, err = adapter.HashFile(m.Path(filepath.Join(root, "missing.cc")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	info, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = adapter.FileInfo(m.Path(filepath.Join(root, "nope")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	t.Run("no roots", func(t *testing.T) {
		files, err := NewLocalSourceFSAdapter().Get(nil, FileFilter{})
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("directory picks C and C++ files only", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.cc"), "int a;\n")
		writeTestFile(t, filepath.Join(root, "b.H"), "int b;\n")
		writeTestFile(t, filepath.Join(root, "notes.txt"), "text\n")
		mustMkdir(t, filepath.Join(root, "sub"))
		writeTestFile(t, filepath.Join(root, "sub", "c.cpp"), "int c;\n")

		files, err := NewLocalSourceFSAdapter().Get([]m.Path{m.Path(root)}, FileFilter{})
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			filepath.Join(root, "a.cc"),
			filepath.Join(root, "b.H"),
		}, filePaths(files))
	})

	t.Run("recursive suffix", func(t *testing.T) {
		root := t.TempDir()
		mustMkdir(t, filepath.Join(root, "sub"))
		writeTestFile(t, filepath.Join(root, "sub", "c.cpp"), "int c;\n")

		files, err := NewLocalSourceFSAdapter().Get([]m.Path{m.Path(root + "/...")}, FileFilter{})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, m.Path(filepath.Join(root, "sub", "c.cpp")), files[0].Path)
		assert.Equal(t, hashBytes([]byte("int c;\n")), files[0].Hash)
	})

	t.Run("explicit file is taken whatever the extension", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "odd.inl")
		writeTestFile(t, path, "int x;\n")

		files, err := NewLocalSourceFSAdapter().Get([]m.Path{m.Path(path)}, FileFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{path}, filePaths(files))
	})

	t.Run("duplicates and excludes", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "keep.cc"), "int a;\n")
		writeTestFile(t, filepath.Join(root, "gen.pb.cc"), "int b;\n")

		files, err := NewLocalSourceFSAdapter().Get(
			[]m.Path{m.Path(root), m.Path(filepath.Join(root, "keep.cc"))},
			FileFilter{Exclude: []string{`\.pb\.cc$`}},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "keep.cc")}, filePaths(files))
	})

	t.Run("custom extensions", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "a.cc"), "int a;\n")
		writeTestFile(t, filepath.Join(root, "b.ino"), "int b;\n")

		files, err := NewLocalSourceFSAdapter(".ino").Get([]m.Path{m.Path(root)}, FileFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "b.ino")}, filePaths(files))
	})

	t.Run("invalid exclude", func(t *testing.T) {
		_, err := NewLocalSourceFSAdapter().Get([]m.Path{"."}, FileFilter{Exclude: []string{"("}})
		assert.ErrorContains(t, err, "invalid exclude pattern")
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := NewLocalSourceFSAdapter().Get([]m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))}, FileFilter{})
		assert.ErrorContains(t, err, "root path error")
	})

	t.Run("examples tree", func(t *testing.T) {
		files, err := NewLocalSourceFSAdapter().Get([]m.Path{m.Path(examplePath(t) + "/...")}, FileFilter{})
		require.NoError(t, err)

		paths := filePaths(files)
		assert.Contains(t, paths, examplePath(t, "nested", "inner", "test4.cc"))
		assert.Contains(t, paths, examplePath(t, "basic", "widget.h"))
		assert.NotContains(t, paths, examplePath(t, "basic", "README.txt"))
	})
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"src/...", "src", true},
		{"src", "src", false},
		{"", "", false},
	}

	for _, tt := range tests {
		path, recursive := parseRootPath(tt.in)
		assert.Equal(t, tt.path, path, tt.in)
		assert.Equal(t, tt.recursive, recursive, tt.in)
	}
}

func filePaths(files []m.File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, string(f.Path))
	}

	return paths
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func hashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func examplePath(t *testing.T, elem ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := filepath.Clean(filepath.Join(wd, "..", ".."))
	parts := append([]string{repoRoot, "examples"}, elem...)

	return filepath.Join(parts...)
}
