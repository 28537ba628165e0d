package main

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the test262 suite",
	Long: `Download a snapshot of the tc39/test262 repository and extract it
locally, so harness includes and test files are available without a git
checkout.`,
	Run: runFetch,
}

var (
	fetchDir string
	fetchRef string
)

func init() {
	fetchCmd.Flags().StringVar(&fetchDir, "dir", "test262", "Directory to extract the suite into")
	fetchCmd.Flags().StringVar(&fetchRef, "ref", "main", "Branch, tag, or commit to download")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	if err := fetchSuite(fetchDir, fetchRef); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done.")
}

func fetchSuite(dir, ref string) error {
	if _, err := os.Stat(filepath.Join(dir, "harness")); err == nil {
		fmt.Printf("%s already contains a suite, skipping download\n", dir)
		return nil
	}

	url := fmt.Sprintf("https://github.com/tc39/test262/archive/%s.zip", ref)
	fmt.Printf("Downloading %s...\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("ref %q not found", ref)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	tmp, err := os.CreateTemp("", "test262-*.zip")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("download: %w", err)
	}
	tmp.Close()

	fmt.Println("Extracting...")
	return extractArchive(tmpPath, dir)
}

// extractArchive unpacks a GitHub source zip into destDir, dropping the
// "<repo>-<ref>/" prefix every entry of such an archive carries.
func extractArchive(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.Name
		if i := strings.IndexByte(name, '/'); i != -1 {
			name = name[i+1:]
		}
		if name == "" || strings.Contains(name, "..") {
			continue
		}

		destPath := filepath.Join(destDir, name)

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}

		out, err := os.Create(destPath)
		if err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			out.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
