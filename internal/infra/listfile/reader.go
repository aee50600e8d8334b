package listfile

import (
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/ports"
)

var ErrInvalidUTF8 = errors.New("list file is not valid UTF-8")

// Reader reads card lists from disk. Relative paths that do not exist as given
// are also tried under Dir (the workspace lists directory).
type Reader struct {
	Dir string
}

func NewReader(dir string) *Reader {
	return &Reader{Dir: dir}
}

var _ ports.ListSource = (*Reader)(nil)

func (r *Reader) ReadList(path string) (string, error) {
	resolved := r.resolve(path)

	b, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = errors.Join(domain.ErrNotFound, err)
		}
		return "", &domain.OpError{Op: "listfile.read", Kind: domain.KindIO, Path: resolved, Err: err}
	}

	if !utf8.Valid(b) {
		return "", &domain.OpError{Op: "listfile.read", Kind: domain.KindIO, Path: resolved, Err: ErrInvalidUTF8}
	}

	// A leading byte order mark is not part of the first card name.
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		b = b[3:]
	}
	return string(b), nil
}

func (r *Reader) resolve(path string) string {
	if r.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	candidate := filepath.Join(r.Dir, path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}
