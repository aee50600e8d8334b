package importstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/ports"
)

const defaultImportsDir = "imports"
const indexFile = "index.jsonl"

type JSONStore struct {
	rootDir        string
	importsDirName string
	writeIndex     bool
	now            func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a JSONL index: imports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.ImportsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultImportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		importsDirName: dir,
		writeIndex:     true,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ImportStore = (*JSONStore)(nil)

// IndexEntry is one line of imports/index.jsonl.
type IndexEntry struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Source    string    `json:"source"`
	Cards     int       `json:"cards"`
	Failures  int       `json:"failures"`
	StartedAt time.Time `json:"started_at"`
}

// SaveImport writes the result as imports/<timestamp>_<source>.json and returns
// the artifact id (the file name without extension).
func (s *JSONStore) SaveImport(res domain.ImportResult) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "importstore.mkdir",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	ts := res.StartedAt
	if ts.IsZero() {
		ts = s.now()
		res.StartedAt = ts
	}
	ts = ts.UTC()

	slug := slugify(strings.TrimSuffix(filepath.Base(res.Source), filepath.Ext(res.Source)))
	if slug == "" {
		slug = "import"
	}
	if short := shortID(res.ID); short != "" {
		slug += "_" + short
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	id := strings.TrimSuffix(filename, ".json")
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "importstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "importstore.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "importstore.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		// The artifact is already on disk; a broken index does not fail the import.
		_ = s.appendIndex(dir, IndexEntry{
			ID:        id,
			File:      filename,
			Source:    res.Source,
			Cards:     len(res.Cards),
			Failures:  len(res.Failures),
			StartedAt: ts,
		})
	}

	return id, nil
}

// Load reads a previously saved import by id.
func (s *JSONStore) Load(id string) (domain.ImportResult, error) {
	path := filepath.Join(s.dir(), filepath.Base(id)+".json")

	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindIO
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return domain.ImportResult{}, &domain.OpError{Op: "importstore.load", Kind: kind, Path: path, Err: err}
	}

	var res domain.ImportResult
	if err := json.Unmarshal(b, &res); err != nil {
		return domain.ImportResult{}, &domain.OpError{Op: "importstore.load", Kind: domain.KindIO, Path: path, Err: err}
	}
	return res, nil
}

// List returns the entries of imports/index.jsonl, oldest first. A missing index
// means nothing was saved yet; lines that do not decode are skipped.
func (s *JSONStore) List() ([]IndexEntry, error) {
	path := filepath.Join(s.dir(), indexFile)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []IndexEntry{}, nil
		}
		return nil, &domain.OpError{Op: "importstore.list", Kind: domain.KindIO, Path: path, Err: err}
	}
	defer f.Close()

	out := []IndexEntry{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e IndexEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil || e.ID == "" {
			continue
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return out, &domain.OpError{Op: "importstore.list", Kind: domain.KindIO, Path: path, Err: err}
	}
	return out, nil
}

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.importsDirName)
}

func (s *JSONStore) appendIndex(dir string, entry IndexEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

func shortID(id string) string {
	id = strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return slugify(id)
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}
