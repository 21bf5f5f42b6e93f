package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".jsonl", ".ndjson":
		return FormatJSONL, true
	case ".toml":
		return FormatTOML, true
	}
	return "", false
}

// Discover resolves path into the profile files it names. A regular file is
// returned as-is; a directory is scanned one level deep.
func Discover(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return ScanDir(path)
	}
	f, ok := FormatFor(path)
	if !ok {
		f = FormatJSON
	}
	return []DiscoveredFile{{Path: path, Format: f, SessionID: sessionFromName(path)}}, nil
}

// ScanDir lists profile files directly inside dir, sorted by name. Hidden
// files and unknown extensions are skipped.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		f, ok := FormatFor(name)
		if !ok {
			continue
		}
		path := filepath.Join(dir, name)
		files = append(files, DiscoveredFile{Path: path, Format: f, SessionID: sessionFromName(path)})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// sessionFromName derives a session id from a file name:
//
//	"clients/Morgan Diaz.json" -> "morgan-diaz"
func sessionFromName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ToLower(strings.TrimSpace(stem))
	return strings.Join(strings.Fields(stem), "-")
}
