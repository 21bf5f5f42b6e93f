package source

import "github.com/goccy/go-json"

// Format is the encoding of a profile file.
type Format string

const (
	// FormatJSON is a single profile document, as exported by the web form.
	FormatJSON Format = "json"
	// FormatJSONL is an intake log: one envelope per line, latest profile wins.
	FormatJSONL Format = "jsonl"
	// FormatTOML is a hand-written profile using the JSON key names.
	FormatTOML Format = "toml"
)

// RawEntry is one line of an intake log.
type RawEntry struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Profile   json.RawMessage `json:"profile,omitempty"`
}

// DiscoveredFile is a profile file found while scanning a directory.
type DiscoveredFile struct {
	Path      string
	Format    Format
	SessionID string // file stem, or the sessionId recorded in an intake log
}
