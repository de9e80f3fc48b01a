package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/equity/internal/model"
)

const (
	numFields = 9
	colID     = 0
	colCode   = 1
	colName   = 2
	colKind   = 3
	colSide   = 4
	colContra = 5
	colHeader = 6
	colParent = 7
	colLevel  = 8
)

var csvHeader = []string{"account_id", "code", "name", "kind", "normal_side", "is_contra", "is_header", "parent_id", "level"}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colKind] = string(acct.Kind)
	row[colSide] = string(acct.NormalSide)
	row[colContra] = strconv.FormatBool(acct.IsContra)
	row[colHeader] = strconv.FormatBool(acct.IsHeader)
	row[colParent] = acct.ParentID
	row[colLevel] = strconv.Itoa(acct.Level)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colID] == "" {
		return model.Account{}, fmt.Errorf("empty account_id")
	}

	kind := model.AccountKind(record[colKind])
	switch kind {
	case model.KindAsset, model.KindLiability, model.KindEquity, model.KindIncome, model.KindExpense:
	default:
		return model.Account{}, fmt.Errorf("unknown kind %q", record[colKind])
	}

	side := model.Side(record[colSide])
	if side != model.SideDebit && side != model.SideCredit {
		return model.Account{}, fmt.Errorf("unknown normal_side %q", record[colSide])
	}

	contra, err := parseBool(record[colContra])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_contra: %w", err)
	}
	isHeader, err := parseBool(record[colHeader])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_header: %w", err)
	}

	var level int
	if record[colLevel] != "" {
		level, err = strconv.Atoi(record[colLevel])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing level %q: %w", record[colLevel], err)
		}
	}

	return model.Account{
		ID:         record[colID],
		Code:       record[colCode],
		Name:       record[colName],
		Kind:       kind,
		NormalSide: side,
		IsContra:   contra,
		IsHeader:   isHeader,
		ParentID:   record[colParent],
		Level:      level,
	}, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
