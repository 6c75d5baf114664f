package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// RunPayrollCycle pays every online employee of every company once.
// Companies are walked ascending by name and employees ascending by
// identifier, so a cycle is deterministic. Offline employees are skipped
// outright: the salary is forfeited for the cycle, nothing accrues.
// A company that cannot cover a salary pays nothing for that employee,
// only a failure notice goes out. There are no retries within a cycle.
//
// The whole cycle holds the store lock, so commands never interleave
// with a half-finished payout run.
func (s *CompanyService) RunPayrollCycle(ctx context.Context) error {
	s.store.Lock()
	defer s.store.Unlock()

	var errs []error
	paid, skipped := 0, 0

	for _, company := range s.store.Companies() {
		employees := company.Employees()
		players := make([]string, 0, len(employees))
		for player := range employees {
			players = append(players, player)
		}
		sort.Strings(players)

		for _, player := range players {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if s.presence.Resolve(player) == nil {
				skipped++
				continue
			}
			salary := company.SalaryFor(employees[player])
			if salary <= 0 {
				continue
			}
			if company.Balance() < salary {
				s.notify(player, fmt.Sprintf("%s could not pay your salary this cycle.", company.DisplayName()))
				slog.Warn("payroll skipped, company balance too low",
					"company", company.Name(),
					"player", player,
					"salary", salary,
					"balance", company.Balance())
				continue
			}

			// Credit the player first. If the ledger fails the company
			// balance has not moved yet.
			if err := s.ledger.Deposit(ctx, player, salary); err != nil {
				errs = append(errs, fmt.Errorf("credit %s from %s: %w", player, company.Name(), err))
				slog.Error("payroll credit failed",
					"company", company.Name(),
					"player", player,
					"error", err)
				continue
			}
			_ = company.Withdraw(ctx, salary)
			s.notify(player, fmt.Sprintf("You received your salary of %.2f from %s.", salary, company.DisplayName()))
			paid++
		}
	}

	slog.Info("payroll cycle complete", "paid", paid, "offline_skipped", skipped, "errors", len(errs))
	return errors.Join(errs...)
}
