package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// getVersionFromFile looks for a VERSION file near the working
// directory or the running executable, falling back to "dev". Grounded
// on the teacher's cmd/goclean/main.go getVersionFromFile.
func getVersionFromFile() string {
	const defaultVersion = "dev"

	versionPaths := []string{"VERSION", "../VERSION", "../../VERSION"}
	for _, p := range versionPaths {
		if v, ok := readVersionFile(p); ok {
			return v
		}
	}

	if execPath, err := os.Executable(); err == nil {
		if v, ok := readVersionFile(filepath.Join(filepath.Dir(execPath), "VERSION")); ok {
			return v
		}
	}

	return defaultVersion
}

func readVersionFile(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", false
	}
	version := strings.TrimSpace(string(content))
	return version, version != ""
}
