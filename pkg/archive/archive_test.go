package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSuiteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
}

func TestArchiveManager_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := map[string]string{
		"MethodIndent.py":               "class Foo:\n    pass\n",
		"MethodIndent.after.py":         "class Foo:\n    def bar(self):\n        pass\n",
		"MethodIndent.case.yaml":        "tags: [indent]\n",
		"nested/DeepCall.py":            "x = f(1)\n",
		"nested/DeepCall.after.py":      "x = g(1)\n",
		".goldfix/hooks/pre-case.tengo": "// hook travels with the bundle\n",
		"manifest.json":                 `{"format_version":"1"}`,
	}

	sourceDir := filepath.Join(tempDir, "suite")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatalf("Failed to create source directory: %v", err)
	}
	writeSuiteTree(t, sourceDir, testFiles)

	manager := NewManager()
	bundlePath := filepath.Join(tempDir, "suite.tar.gz")
	if err := manager.Create(context.Background(), sourceDir, bundlePath); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	info, err := os.Stat(bundlePath)
	if err != nil {
		t.Fatalf("Bundle was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("Bundle is empty")
	}

	destDir := filepath.Join(tempDir, "extracted")
	if err := manager.ExtractAll(context.Background(), bundlePath, destDir); err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}

	for path, want := range testFiles {
		got, err := os.ReadFile(filepath.Join(destDir, filepath.FromSlash(path)))
		if err != nil {
			t.Errorf("Missing extracted file %s: %v", path, err)
			continue
		}
		if string(got) != want {
			t.Errorf("Content mismatch for %s: got %q, want %q", path, got, want)
		}
	}
}

func TestArchiveManager_ExtractFile(t *testing.T) {
	tempDir := t.TempDir()

	sourceDir := filepath.Join(tempDir, "suite")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatalf("Failed to create source directory: %v", err)
	}
	writeSuiteTree(t, sourceDir, map[string]string{
		"manifest.json": `{"format_version":"1","suite":"extractmethod"}`,
		"Case.py":       "x = 1\n",
	})

	manager := NewManager()
	bundlePath := filepath.Join(tempDir, "suite.tar.gz")
	if err := manager.Create(context.Background(), sourceDir, bundlePath); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	destPath := filepath.Join(tempDir, "peeked", "manifest.json")
	if err := manager.ExtractFile(context.Background(), bundlePath, "manifest.json", destPath); err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}

	got, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("Failed to read extracted file: %v", err)
	}
	if string(got) != `{"format_version":"1","suite":"extractmethod"}` {
		t.Errorf("Unexpected manifest content: %q", got)
	}
}

func TestArchiveManager_ExtractAllMissingArchive(t *testing.T) {
	manager := NewManager()
	err := manager.ExtractAll(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir())
	if err == nil {
		t.Fatal("Expected an error for a missing archive")
	}
}

func TestArchiveManager_CreateMissingSource(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManager()
	err := manager.Create(context.Background(), filepath.Join(tempDir, "missing"), filepath.Join(tempDir, "out.tar.gz"))
	if err == nil {
		t.Fatal("Expected an error for a missing source directory")
	}
}

func TestSecurePath(t *testing.T) {
	destDir := t.TempDir()

	tests := []struct {
		name    string
		entry   string
		wantErr bool
	}{
		{name: "plain file", entry: "Case.py"},
		{name: "nested file", entry: "nested/Deep.py"},
		{name: "hidden dir", entry: ".goldfix/hooks/pre-case.tengo"},
		{name: "parent escape", entry: "../evil.txt", wantErr: true},
		{name: "nested escape", entry: "nested/../../evil.txt", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := securePath(destDir, tc.entry)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected an error for entry %q, got path %q", tc.entry, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for entry %q: %v", tc.entry, err)
			}
			if !within(destDir, got) {
				t.Errorf("Path %q is outside the destination", got)
			}
		})
	}
}
