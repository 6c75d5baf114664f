package repository

import (
	"context"
	"errors"

	"github.com/foxsrv/companyeconomy/internal/database"
)

// LedgerRepository keeps each player's personal spendable balance as an
// account record keyed by the lowercased player identifier.
type LedgerRepository struct {
	db database.Database
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db database.Database) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Balance returns a player's personal balance. A player without an account
// record has balance 0.
func (r *LedgerRepository) Balance(ctx context.Context, playerID string) (float64, error) {
	query := `SELECT balance FROM type::thing('account', string::lowercase($player))`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"player": playerID})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	record, ok := asRecordMap(result)
	if !ok {
		return 0, nil
	}
	balance, _ := numberValue(record["balance"])
	return balance, nil
}

// Deposit credits a player's personal balance, creating the account record
// on first use.
func (r *LedgerRepository) Deposit(ctx context.Context, playerID string, amount float64) error {
	query := `
		UPSERT type::thing('account', string::lowercase($player)) SET
			player = string::lowercase($player),
			balance = (balance ?? 0) + $amount
	`
	vars := map[string]interface{}{
		"player": playerID,
		"amount": amount,
	}
	return r.db.Execute(ctx, query, vars)
}

// Withdraw debits a player's personal balance. It returns false without
// mutating when the balance is short; the funds check and the debit are one
// conditional statement.
func (r *LedgerRepository) Withdraw(ctx context.Context, playerID string, amount float64) (bool, error) {
	query := `
		UPDATE type::thing('account', string::lowercase($player))
			SET balance -= $amount
			WHERE balance >= $amount
			RETURN AFTER
	`
	vars := map[string]interface{}{
		"player": playerID,
		"amount": amount,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, err
	}

	// The WHERE clause filtered out the record when funds were short, so an
	// empty update set means the debit did not happen.
	rows, ok := extractQueryResults(result)
	return ok && len(rows) > 0, nil
}
