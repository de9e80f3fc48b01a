package accounts

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/cleared-dev/equity/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
		byCode[a.Code] = a
	}
	return &Service{accounts: accounts, byID: byID, byCode: byCode}
}

// Path returns the chart-of-accounts file path under a repo root.
func Path(repoRoot string) string {
	return filepath.Join(repoRoot, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	f, err := os.Open(Path(repoRoot))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByCode returns the account with the given code.
func (s *Service) ByCode(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// ByID returns a copy of the id index.
func (s *Service) ByID() map[string]model.Account {
	return maps.Clone(s.byID)
}

// ByKind returns all accounts of the given kind.
func (s *Service) ByKind(kind model.AccountKind) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Kind == kind {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(Path(repoRoot))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
