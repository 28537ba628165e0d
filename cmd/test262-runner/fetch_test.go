package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeSuiteZip(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	path := filepath.Join(dir, "suite.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	return path
}

func TestExtractArchiveStripsPrefix(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeSuiteZip(t, dir, map[string]string{
		"test262-main/harness/assert.js": "// assert helpers",
		"test262-main/test/example.js":   "// one test",
	})

	dest := filepath.Join(dir, "out")
	if err := extractArchive(zipPath, dest); err != nil {
		t.Fatalf("extractArchive failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dest, "harness", "assert.js"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(got) != "// assert helpers" {
		t.Errorf("unexpected content: %q", got)
	}
	if _, err := os.Stat(filepath.Join(dest, "test262-main")); !os.IsNotExist(err) {
		t.Error("archive prefix should have been stripped")
	}
}

func TestExtractArchiveRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := writeSuiteZip(t, dir, map[string]string{
		"test262-main/../escape.js": "// outside",
	})

	dest := filepath.Join(dir, "out")
	if err := extractArchive(zipPath, dest); err != nil {
		t.Fatalf("extractArchive failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.js")); !os.IsNotExist(err) {
		t.Error("traversal entry should have been skipped")
	}
}

func TestFetchSuiteSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "harness"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// An existing suite short-circuits before any network access.
	if err := fetchSuite(dir, "main"); err != nil {
		t.Fatalf("fetchSuite failed: %v", err)
	}
}
