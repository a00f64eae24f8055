package cache

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// DefaultMaxAge is how recent the log must be for its last sample to count.
const DefaultMaxAge = 120 * time.Second

var (
	ErrNotFound  = errors.New("temperature log not found")
	ErrStale     = errors.New("temperature log is stale")
	ErrMalformed = errors.New("temperature log is malformed")
)

// Sample is the most recent temperature recorded by the external logger.
type Sample struct {
	Temperature float64
	ModTime     time.Time
}

// Reader reads the tab-separated temperature log written by another process.
type Reader struct {
	fs     afero.Fs
	path   string
	maxAge time.Duration
}

// NewReader returns a Reader. maxAge <= 0 means DefaultMaxAge.
func NewReader(fsys afero.Fs, path string, maxAge time.Duration) *Reader {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Reader{fs: fsys, path: path, maxAge: maxAge}
}

// Path is the log file location.
func (r *Reader) Path() string { return r.path }

// Latest returns the last sample when the file was modified less than maxAge
// before now.
func (r *Reader) Latest(now time.Time) (Sample, error) {
	info, err := r.fs.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Sample{}, fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}
		return Sample{}, fmt.Errorf("stat %s: %w", r.path, err)
	}

	age := now.Sub(info.ModTime())
	if age >= r.maxAge {
		return Sample{}, fmt.Errorf("%w: modified %s ago", ErrStale, age.Truncate(time.Second))
	}

	line, err := r.lastLine()
	if err != nil {
		return Sample{}, err
	}

	temp, err := parseTemperature(line)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Temperature: temp, ModTime: info.ModTime()}, nil
}

func (r *Reader) lastLine() (string, error) {
	f, err := r.fs.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, r.path)
		}
		return "", fmt.Errorf("open %s: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	var last string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			last = line
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", r.path, err)
	}
	if last == "" {
		return "", fmt.Errorf("%w: no entries", ErrMalformed)
	}
	return last, nil
}

func parseTemperature(line string) (float64, error) {
	fields := strings.Split(line, "\t")
	raw := strings.TrimSpace(fields[len(fields)-1])
	temp, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a temperature", ErrMalformed, raw)
	}
	return temp, nil
}
