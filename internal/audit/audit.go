package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileName is the audit log file name inside the working directory.
const FileName = ".sealedconf-audit.jsonl"

// TimeFormat is RFC3339 with microseconds.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp   string   `json:"ts"`
	Operation   string   `json:"op"`
	Files       []string `json:"files,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Host        string   `json:"host,omitempty"`
}

// Path returns the audit log path for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Log appends entry to the audit log in dir. Timestamp and Host are filled
// in when empty.
func Log(dir string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimeFormat)
	}
	if entry.Host == "" {
		entry.Host, _ = os.Hostname()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// #nosec G302 -- the log holds no secret values.
	f, err := os.OpenFile(Path(dir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// Read returns the entries logged in dir, oldest first. A missing log
// yields no entries.
func Read(dir string) ([]Entry, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data), nil
}

// Parse decodes JSON Lines data. Malformed lines are skipped.
func Parse(data []byte) []Entry {
	var entries []Entry
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
