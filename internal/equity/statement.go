package equity

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/equity/internal/model"
)

// Input is everything one statement is computed from.
type Input struct {
	Accounts              []model.Account
	Entries               []model.JournalEntry
	Period                model.Period
	Overrides             Overrides
	ExternalCurrentResult *decimal.Decimal // from the income statement
	ExternalEquityTotal   *decimal.Decimal // from the balance sheet, as of period end
}

// Result is the computed statement.
type Result struct {
	Columns                         []Column                 `json:"columns"`
	Rows                            []Row                    `json:"rows"`
	OpeningEquityTotal              decimal.Decimal          `json:"openingEquityTotal"`
	ClosingEquityTotal              decimal.Decimal          `json:"closingEquityTotal"`
	NetVariation                    decimal.Decimal          `json:"netVariation"`
	CurrentResultFromExternalSource *decimal.Decimal         `json:"currentResultFromExternalSource,omitempty"`
	ExternalEquityTotal             *decimal.Decimal         `json:"externalEquityTotal,omitempty"`
	Reconciliation                  Reconciliation           `json:"reconciliation"`
	Overrides                       Overrides                `json:"overrides"`
	Period                          model.Period             `json:"period"`
	Classified                      []ClassifiedMovement     `json:"classified"`
	LedgerClosing                   map[string]ColumnBalance `json:"ledgerClosing"`
}

// Row returns the result row with the given id.
func (r Result) Row(id string) (Row, bool) {
	return FindRow(r.Rows, id)
}

// Engine computes statements against a fixed catalog. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	catalog   *Catalog
	formatter Formatter
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFormatter sets the formatter used in reconciliation warnings.
func WithFormatter(f Formatter) Option {
	return func(e *Engine) { e.formatter = f }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine. A nil catalog selects DefaultCatalog.
func NewEngine(catalog *Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	e := &Engine{
		catalog:   catalog,
		formatter: NewCurrencyFormatter(DefaultCurrency),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's column catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Formatter returns the engine's amount formatter.
func (e *Engine) Formatter() Formatter {
	return e.formatter
}

// Compute builds the statement for in.Period from scratch.
func (e *Engine) Compute(in Input) Result {
	accounts := make(map[string]model.Account, len(in.Accounts))
	for _, a := range in.Accounts {
		accounts[a.ID] = a
	}

	var before, during, upToEnd []model.JournalEntry
	for _, entry := range in.Entries {
		if in.Period.Before(entry.Date) {
			before = append(before, entry)
		}
		if in.Period.Contains(entry.Date) {
			during = append(during, entry)
		}
		if in.Period.UpToEnd(entry.Date) {
			upToEnd = append(upToEnd, entry)
		}
	}

	opening := e.catalog.Accumulate(before, accounts)
	closing := e.catalog.Accumulate(upToEnd, accounts)
	movements := e.catalog.Classify(during, accounts)

	overrides := in.Overrides.Clone()
	rows := e.catalog.Build(BuildInput{
		Opening:               opening,
		LedgerClosing:         closing,
		Movements:             movements,
		Overrides:             overrides,
		ExternalCurrentResult: in.ExternalCurrentResult,
	})

	res := Result{
		Columns:                         e.catalog.Columns(),
		Rows:                            rows,
		OpeningEquityTotal:              decimal.Zero,
		ClosingEquityTotal:              decimal.Zero,
		CurrentResultFromExternalSource: in.ExternalCurrentResult,
		ExternalEquityTotal:             in.ExternalEquityTotal,
		Overrides:                       overrides,
		Period:                          in.Period,
		Classified:                      movements,
		LedgerClosing:                   closing,
	}
	if r, ok := res.Row(RowOpening); ok {
		res.OpeningEquityTotal = r.Total
	}
	if r, ok := res.Row(RowClosing); ok {
		res.ClosingEquityTotal = r.Total
	}
	res.NetVariation = res.ClosingEquityTotal.Sub(res.OpeningEquityTotal)

	var currentResult *decimal.Decimal
	if r, ok := res.Row(RowCurrentResult); ok {
		v := r.Cell(e.catalog.CurrentResultColumn()).Amount
		currentResult = &v
	}
	res.Reconciliation = Reconcile(ReconcileInput{
		ClosingTotal:         res.ClosingEquityTotal,
		ExternalEquityTotal:  in.ExternalEquityTotal,
		CurrentResult:        currentResult,
		ExternalIncomeResult: in.ExternalCurrentResult,
	}, e.formatter)

	e.logger.Debug("equity statement computed",
		slog.String("period", in.Period.Label),
		slog.Int("entries_before", len(before)),
		slog.Int("entries_in_period", len(during)),
		slog.Int("movements", len(movements)),
		slog.Int("overrides", overrides.Len()),
		slog.Int("warnings", len(res.Reconciliation.Warnings)))
	return res
}
