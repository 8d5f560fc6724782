package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedpress/pkg/domain"
)

const timeLayout = "2006-01-02 15:04:05"

var lineRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) \[([A-Z]+)\] (.*)$`)

// Params defines journal settings
type Params struct {
	Path       string
	MinLevel   domain.Level
	MaxAge     time.Duration // 0 keeps entries of any age
	MaxEntries int           // 0 keeps any number of entries
	Echo       bool          // mirror records to lgr
}

// Journal is an append-only flat-line log file of import events.
// Each line is "2006-01-02 15:04:05 [LEVEL] message", timestamps are in UTC.
type Journal struct {
	mu         sync.Mutex
	path       string
	minLevel   domain.Level
	maxAge     time.Duration
	maxEntries int
	echo       bool
	now        func() time.Time
}

// New makes a journal writing to the given file, the file and its directory are created if missing
func New(p Params) (*Journal, error) {
	if p.Path == "" {
		return nil, errors.New("journal path is empty")
	}
	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}
	fh, err := os.OpenFile(p.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := fh.Close(); err != nil {
		return nil, fmt.Errorf("close journal: %w", err)
	}
	return &Journal{path: p.Path, minLevel: p.MinLevel, maxAge: p.MaxAge, maxEntries: p.MaxEntries, echo: p.Echo, now: time.Now}, nil
}

// Log appends a record if level passes the minimal level. Write failures are reported to lgr only.
func (j *Journal) Log(level domain.Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if j.echo {
		lgr.Printf("[%s] %s", lgrLevel(level), msg)
	}
	if level < j.minLevel {
		return
	}
	// one record per line
	msg = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(msg)
	line := fmt.Sprintf("%s [%s] %s\n", j.now().UTC().Format(timeLayout), level, msg)

	j.mu.Lock()
	defer j.mu.Unlock()
	fh, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		lgr.Printf("[WARN] can't open journal %s: %v", j.path, err)
		return
	}
	defer fh.Close()
	if _, err := fh.WriteString(line); err != nil {
		lgr.Printf("[WARN] can't write journal %s: %v", j.path, err)
	}
}

// Entries returns up to limit newest records with level >= minLevel, newest first.
// limit <= 0 returns all matching records. Malformed lines are skipped.
func (j *Journal) Entries(minLevel domain.Level, limit int) ([]domain.LogEntry, error) {
	j.mu.Lock()
	all, err := j.readAll()
	j.mu.Unlock()
	if err != nil {
		return nil, err
	}

	res := []domain.LogEntry{}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Level < minLevel {
			continue
		}
		res = append(res, all[i])
		if limit > 0 && len(res) >= limit {
			break
		}
	}
	return res, nil
}

// Export copies the raw journal file to w
func (j *Journal) Export(w io.Writer) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	fh, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer fh.Close()
	if _, err := io.Copy(w, fh); err != nil {
		return fmt.Errorf("export journal: %w", err)
	}
	return nil
}

// Clear removes all records
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.Truncate(j.path, 0); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear journal: %w", err)
	}
	return nil
}

// Size returns journal file size in bytes
func (j *Journal) Size() (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	fi, err := os.Stat(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stat journal: %w", err)
	}
	return fi.Size(), nil
}

// Trim drops records older than max age and all but the newest max entries.
// Malformed lines are dropped too. Returns the number of removed lines.
func (j *Journal) Trim() (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	lines, err := j.readLines()
	if err != nil {
		return 0, err
	}

	kept := make([]string, 0, len(lines))
	cutoff := time.Time{}
	if j.maxAge > 0 {
		cutoff = j.now().UTC().Add(-j.maxAge)
	}
	for _, l := range lines {
		entry, ok := parseLine(l)
		if !ok {
			continue
		}
		if !cutoff.IsZero() && entry.Time.Before(cutoff) {
			continue
		}
		kept = append(kept, l)
	}
	if j.maxEntries > 0 && len(kept) > j.maxEntries {
		kept = kept[len(kept)-j.maxEntries:]
	}

	removed := len(lines) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	// replace via temp file and rename
	tmp := j.path + ".tmp"
	data := ""
	if len(kept) > 0 {
		data = strings.Join(kept, "\n") + "\n"
	}
	if err := os.WriteFile(tmp, []byte(data), 0o600); err != nil {
		return 0, fmt.Errorf("write trimmed journal: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return 0, fmt.Errorf("replace journal: %w", err)
	}
	return removed, nil
}

func (j *Journal) readAll() ([]domain.LogEntry, error) {
	lines, err := j.readLines()
	if err != nil {
		return nil, err
	}
	res := make([]domain.LogEntry, 0, len(lines))
	for _, l := range lines {
		if entry, ok := parseLine(l); ok {
			res = append(res, entry)
		}
	}
	return res, nil
}

func (j *Journal) readLines() ([]string, error) {
	fh, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer fh.Close()

	var lines []string
	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if l := scanner.Text(); l != "" {
			lines = append(lines, l)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return lines, nil
}

func parseLine(line string) (domain.LogEntry, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return domain.LogEntry{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, m[1], time.UTC)
	if err != nil {
		return domain.LogEntry{}, false
	}
	level, ok := domain.ParseLevel(m[2])
	if !ok {
		return domain.LogEntry{}, false
	}
	return domain.LogEntry{Time: ts, Level: level, Message: m[3]}, true
}

// lgrLevel maps journal level to lgr prefix
func lgrLevel(l domain.Level) string {
	if l == domain.LevelWarning {
		return "WARN"
	}
	return l.String()
}
