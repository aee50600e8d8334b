package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/cardlist/internal/app/template"
	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/logger"
	"github.com/aalvaropc/cardlist/internal/ports"
)

type Initializer struct {
	cfg domain.Config
}

func NewInitializer() *Initializer {
	return &Initializer{cfg: domain.DefaultConfig()}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the workspace layout and writes the templates. Existing files are
// kept unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, i.cfg.Paths.ListsDir),
		filepath.Join(root, i.cfg.Paths.ImportsDir),
		filepath.Join(root, logger.Dir, "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindIO, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root, i.cfg.Paths.ImportsDir); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindIO, Path: root, Err: err}
	}

	vars := templateVars(root)

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, filepath.FromSlash(rel))

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindIO, Path: dst, Err: err}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		content, err := template.RenderString(string(b), vars)
		if err != nil {
			return &domain.OpError{Op: "fsworkspace.render", Kind: domain.KindInvalidConfig, Path: rel, Err: err}
		}

		if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
			return &domain.OpError{Op: "fsworkspace.write", Kind: domain.KindIO, Path: dst, Err: err}
		}
		return nil
	})
}

func templateVars(root string) map[string]string {
	name := filepath.Base(root)
	if abs, err := filepath.Abs(root); err == nil {
		name = filepath.Base(abs)
	}
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return '-'
	}, name)
	if strings.Trim(slug, "-.") == "" {
		slug = "cardlist"
	}

	return map[string]string{
		"name":       name,
		"user_agent": slug + "/dev",
	}
}

func ensureGitignore(root, importsDir string) error {
	const header = "# cardlist"
	entries := []string{
		strings.TrimSuffix(filepath.ToSlash(importsDir), "/") + "/",
		logger.Dir + "/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
