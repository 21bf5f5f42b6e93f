// Package source reads client profiles from files for non-interactive import.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"

	"github.com/guardianshield/shieldplan/internal/model"
)

// ErrNoProfile is returned when an intake log holds no profile entry.
var ErrNoProfile = errors.New("no profile entry")

// entryProfile is the envelope type carrying a profile in an intake log.
const entryProfile = "profile"

// ParseResult holds the output of parsing a single profile file.
type ParseResult struct {
	Profile     model.Profile
	SessionID   string
	Snapshots   int // profile entries seen; 1 for single documents
	ParseErrors int
	Err         error
}

// ReadFile parses the profile file at path, inferring its format.
func ReadFile(path string) (model.Profile, error) {
	files, err := Discover(path)
	if err != nil {
		return model.Profile{}, err
	}
	if len(files) != 1 {
		return model.Profile{}, fmt.Errorf("%s: expected one profile file, found %d", path, len(files))
	}
	res := ParseFile(files[0])
	return res.Profile, res.Err
}

// ParseFile decodes a discovered file. Fields absent from the file keep the
// collector's defaults. The result is not validated; imports run it through
// the wizard gates.
func ParseFile(df DiscoveredFile) ParseResult {
	res := ParseResult{SessionID: df.SessionID}
	switch df.Format {
	case FormatJSONL:
		parseLog(df, &res)
	case FormatTOML:
		data, err := os.ReadFile(df.Path)
		if err != nil {
			res.Err = err
			return res
		}
		res.Profile, res.Err = decodeTOML(data)
		res.Snapshots = 1
	default:
		data, err := os.ReadFile(df.Path)
		if err != nil {
			res.Err = err
			return res
		}
		res.Profile, res.Err = decodeJSON(data)
		res.Snapshots = 1
	}
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", df.Path, res.Err)
	}
	return res
}

// parseLog scans an intake log and keeps the latest profile entry. Entries
// are ordered by timestamp when present, otherwise by position. Lines of any
// other type are skipped without a full decode.
func parseLog(df DiscoveredFile, res *ParseResult) {
	f, err := os.Open(df.Path)
	if err != nil {
		res.Err = err
		return
	}
	defer func() { _ = f.Close() }()

	var (
		latest   json.RawMessage
		latestAt time.Time
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if extractTopLevelType(line) != entryProfile {
			continue
		}

		var entry RawEntry
		if err := json.Unmarshal(line, &entry); err != nil || len(entry.Profile) == 0 {
			res.ParseErrors++
			continue
		}
		res.Snapshots++

		ts, _ := time.Parse(time.RFC3339Nano, entry.Timestamp)
		if latest != nil && !ts.IsZero() && ts.Before(latestAt) {
			continue
		}
		latest = append(json.RawMessage(nil), entry.Profile...)
		if !ts.IsZero() {
			latestAt = ts
		}
		if entry.SessionID != "" {
			res.SessionID = entry.SessionID
		}
	}
	if err := scanner.Err(); err != nil {
		res.Err = err
		return
	}
	if latest == nil {
		res.Err = ErrNoProfile
		return
	}
	res.Profile, res.Err = decodeJSON(latest)
}

func decodeJSON(data []byte) (model.Profile, error) {
	p := model.NewProfile()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	if p.Assets == nil {
		p.Assets = []model.Asset{}
	}
	if p.Liabilities == nil {
		p.Liabilities = []model.Liability{}
	}
	return p, nil
}

// decodeTOML maps a TOML document onto the JSON field names so both formats
// share one set of keys. TOML dates become YYYY-MM-DD strings.
func decodeTOML(data []byte) (model.Profile, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return model.Profile{}, fmt.Errorf("decoding profile: %w", err)
	}
	buf, err := json.Marshal(normalizeTOML(doc))
	if err != nil {
		return model.Profile{}, fmt.Errorf("re-encoding profile: %w", err)
	}
	return decodeJSON(buf)
}

func normalizeTOML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, val := range v {
			v[k] = normalizeTOML(val)
		}
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = normalizeTOML(m)
		}
		return out
	case []any:
		for i, val := range v {
			v[i] = normalizeTOML(val)
		}
		return v
	case time.Time:
		return v.Format(model.DateLayout)
	}
	return v
}

var typeKey = []byte(`"type"`)

// extractTopLevelType finds the top-level "type" field in a log line.
// Tracks brace depth and string boundaries so nested "type" keys (asset and
// liability rows) are ignored.
func extractTopLevelType(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], typeKey) {
				if val, isKey := classifyType(line, i+len(typeKey)); isKey {
					return val
				}
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// classifyType reports whether pos follows a JSON key and returns its
// string value.
func classifyType(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 32 {
		return "", true
	}
	return string(line[i : i+end]), true
}

func skipJSONString(line []byte, i int) int {
	i++
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}
