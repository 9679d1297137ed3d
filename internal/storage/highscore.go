package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// HighScoreFileName is the name of the save file placed next to the executable.
const HighScoreFileName = "save.json"

// highScoreKey is the only field read from or written to the save file.
const highScoreKey = "high_score"

// HighScoreFile persists a single best score as a small JSON document:
//
//	{
//	  "high_score": 42
//	}
//
// All access is serialized, so one file may be shared by concurrent sessions.
type HighScoreFile struct {
	path string
	mu   sync.Mutex
}

// NewHighScoreFile returns a store backed by the file at path.
// The file does not need to exist yet.
func NewHighScoreFile(path string) *HighScoreFile {
	return &HighScoreFile{path: expandHome(path)}
}

// DefaultHighScorePath returns save.json in the directory of the running executable,
// or in the working directory when the executable cannot be located.
func DefaultHighScorePath() string {
	exe, err := os.Executable()
	if err != nil {
		return HighScoreFileName
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), HighScoreFileName)
}

// Path returns the location of the save file.
func (f *HighScoreFile) Path() string {
	return f.path
}

// Read returns the stored high score.
// A missing file or a file without the high_score field reads as 0 with no error.
func (f *HighScoreFile) Read() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Load returns the stored high score, or 0 if it cannot be read for any reason.
func (f *HighScoreFile) Load() int {
	score, err := f.Read()
	if err != nil {
		return 0
	}
	return score
}

// Save overwrites the stored high score with score.
func (f *HighScoreFile) Save(score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(score)
}

// Raise stores score only if it beats the stored value and returns the
// resulting high score. An unreadable file counts as 0 and is replaced.
func (f *HighScoreFile) Raise(score int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		current = 0
	}
	if score <= current {
		return current, nil
	}
	if err := f.write(score); err != nil {
		return current, err
	}
	return score, nil
}

func (f *HighScoreFile) read() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("storage: cannot parse %s: %w", f.path, err)
	}

	raw, ok := doc[highScoreKey]
	if !ok {
		return 0, nil
	}
	score, err := scoreValue(raw)
	if err != nil {
		return 0, fmt.Errorf("storage: bad %s in %s: %w", highScoreKey, f.path, err)
	}
	return score, nil
}

// scoreValue converts a decoded JSON value to a score.
// Numbers are truncated, numeric strings are accepted and booleans count as 0 or 1.
func scoreValue(raw any) (int, error) {
	var score int
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, fmt.Errorf("out of range: %v", v)
		}
		score = int(v)
	case bool:
		if v {
			score = 1
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, err
		}
		score = n
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
	if score < 0 {
		return 0, fmt.Errorf("negative score %d", score)
	}
	return score, nil
}

// write replaces the file through a temporary file in the same directory.
func (f *HighScoreFile) write(score int) error {
	data, err := json.MarshalIndent(map[string]int{highScoreKey: score}, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode high score: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*.json")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// MonotonicHighScore wraps a HighScoreFile so that Save never lowers the stored
// value. Used when several games share one file.
type MonotonicHighScore struct {
	File *HighScoreFile
}

// Load returns the stored high score, or 0 if it cannot be read.
func (m MonotonicHighScore) Load() int {
	return m.File.Load()
}

// Save stores score if it beats the stored value.
func (m MonotonicHighScore) Save(score int) error {
	_, err := m.File.Raise(score)
	return err
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
