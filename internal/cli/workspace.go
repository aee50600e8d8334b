package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/catalog"
	"github.com/aalvaropc/cardlist/internal/infra/importstore"
	"github.com/aalvaropc/cardlist/internal/infra/listfile"
	"github.com/aalvaropc/cardlist/internal/infra/scryfall"
	"github.com/aalvaropc/cardlist/internal/infra/workspacefinder"
	"github.com/aalvaropc/cardlist/internal/ports"
	"github.com/aalvaropc/cardlist/internal/usecase/parse"
)

type workspaceCtx struct {
	root  string
	found bool
	cfg   domain.Config

	lists *listfile.Reader
	// store is nil outside a workspace: imports are only saved inside one.
	store *importstore.JSONStore
}

// loadWorkspace locates the workspace for the current command. Without an
// explicit -w, running outside a workspace falls back to the default config.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	start, explicit, err := workspaceStart(workspaceFlag)
	if err != nil {
		return nil, err
	}

	root, found, err := workspacefinder.NewFinder().Locate(start)
	if err != nil {
		return nil, err
	}
	if explicit && !found {
		return nil, fmt.Errorf("workspace not found from %q (tip: run `cardlist init`): %w", start, domain.ErrNotFound)
	}

	ws := &workspaceCtx{root: root, found: found, cfg: domain.DefaultConfig()}
	if found {
		ws.cfg, err = workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
		ws.store = importstore.NewJSONStore(root, ws.cfg, importstore.WithIndex(true))
		ws.lists = listfile.NewReader(filepath.Join(root, ws.cfg.Paths.ListsDir))
	} else {
		ws.lists = listfile.NewReader("")
	}
	return ws, nil
}

// requireWorkspace is loadWorkspace for commands that only make sense inside one.
func requireWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	ws, err := loadWorkspace(workspaceFlag)
	if err != nil {
		return nil, err
	}
	if !ws.found {
		return nil, fmt.Errorf("workspace not found from %q (tip: run `cardlist init`): %w", ws.root, domain.ErrNotFound)
	}
	return ws, nil
}

func workspaceStart(workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", true, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, true, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}
	return wd, false, nil
}

// newLookup picks the offline catalog when a bulk-data file is given, and the
// Scryfall API otherwise.
func newLookup(cfg domain.Config, catalogPath string, log *slog.Logger) (ports.CardLookup, error) {
	p := strings.TrimSpace(catalogPath)
	if p == "" {
		return scryfall.New(cfg.Lookup, scryfall.WithLogger(log)), nil
	}

	c, err := catalog.Load(p, cfg.Lookup.ColorsField)
	if err != nil {
		return nil, err
	}
	log.Info("catalog.loaded", "path", p, "cards", c.Len(), "skipped", c.Skipped())
	return c, nil
}

// listInput is a card list and where it came from. File lists carry only the
// path; they are read by whoever consumes them.
type listInput struct {
	source string
	text   string
	path   string
}

// entries counts the entries the list will produce.
func (in listInput) entries(ws *workspaceCtx) (int, error) {
	text := in.text
	if in.path != "" {
		body, err := ws.lists.ReadList(in.path)
		if err != nil {
			return 0, err
		}
		text = body
	}
	return len(parse.All(text)), nil
}

// readInput picks the list from --file, --text or piped stdin, in that order.
func readInput(file, text string, stdin io.Reader) (listInput, error) {
	if f := strings.TrimSpace(file); f != "" {
		return listInput{source: f, path: f}, nil
	}

	if text != "" {
		return listInput{source: "inline", text: text}, nil
	}

	if stdin == nil || isTerminal(stdin) {
		return listInput{}, &domain.OpError{
			Op:   "cli.input",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("no list given (use --file, --text or pipe a list on stdin): %w", domain.ErrInvalidConfig),
		}
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return listInput{}, &domain.OpError{Op: "cli.stdin", Kind: domain.KindIO, Err: err}
	}
	if !utf8.Valid(b) {
		return listInput{}, &domain.OpError{Op: "cli.stdin", Kind: domain.KindIO, Err: listfile.ErrInvalidUTF8}
	}
	return listInput{source: "stdin", text: strings.TrimPrefix(string(b), "\ufeff")}, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
