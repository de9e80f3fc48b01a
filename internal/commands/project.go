package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cleared-dev/equity/internal/accounts"
	"github.com/cleared-dev/equity/internal/config"
	"github.com/cleared-dev/equity/internal/equity"
	"github.com/cleared-dev/equity/internal/gitops"
	"github.com/cleared-dev/equity/internal/journal"
	"github.com/cleared-dev/equity/internal/overrides"
)

// project is an opened equity repository.
type project struct {
	root    string
	cfg     *config.Config
	chart   *accounts.Service
	catalog *equity.Catalog
}

func openProject(repoDir string) (*project, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(config.Path(root))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return nil, err
	}
	chart, err := accounts.Load(root)
	if err != nil {
		return nil, err
	}
	return &project{root: root, cfg: cfg, chart: chart, catalog: catalog}, nil
}

func (p *project) journal() *journal.Service {
	return journal.NewService(p.root, p.chart)
}

func (p *project) overrides() *overrides.Store {
	return overrides.NewStore(p.root, p.catalog)
}

func (p *project) engine() *equity.Engine {
	return equity.NewEngine(p.catalog,
		equity.WithFormatter(p.cfg.Formatter()),
		equity.WithLogger(slog.Default()),
	)
}

// commit records paths when git.auto_commit is on. It returns the short hash,
// or "" when nothing was committed.
func (p *project) commit(message string, paths ...string) (string, error) {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return "", nil
	}
	author := gitops.Author{Name: p.cfg.Git.AuthorName, Email: p.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(p.root, message, author, paths...)
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	slog.Debug("committed", "hash", hash, "message", message)
	return hash, nil
}

// relPath returns path relative to the project root, for git pathspecs.
func (p *project) relPath(path string) string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		return path
	}
	return rel
}
