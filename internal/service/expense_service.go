package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avasquez/tally/internal/calculator"
	"github.com/avasquez/tally/internal/models"
	"github.com/avasquez/tally/internal/notify"
	"github.com/avasquez/tally/internal/storage"
)

// ExpenseService is the expense ledger: it records shared expenses, settles
// them, and derives balances.
//
// An expense starts Active and makes a single, irreversible transition to
// Settled via SettleExpense. Nothing un-settles an expense.
type ExpenseService struct {
	repos    *Repositories
	notifier notify.Notifier
}

// NewExpenseService creates a new ExpenseService over the shared repositories.
func NewExpenseService(repos *Repositories, notifier notify.Notifier) *ExpenseService {
	return &ExpenseService{repos: repos, notifier: notifier}
}

// AddExpenseParams carries the caller-supplied fields of a new expense.
// Splits come from the caller (typically an equal division across current
// members); the ledger does not recompute them or validate that they sum to
// Amount.
type AddExpenseParams struct {
	GroupID     string
	Amount      float64
	Description string
	Date        string
	PaidBy      string
	Splits      []models.ExpenseSplit
}

// AddExpense persists a new unsettled expense with a fresh ID.
func (s *ExpenseService) AddExpense(ctx context.Context, params AddExpenseParams) (*models.SharedExpense, error) {
	slog.Info("AddExpense request",
		"group_id", params.GroupID,
		"amount", params.Amount,
		"paid_by", params.PaidBy,
	)

	now := time.Now().UTC()
	expense := models.SharedExpense{
		ID:          uuid.New().String(),
		GroupID:     params.GroupID,
		Amount:      params.Amount,
		Description: params.Description,
		Date:        params.Date,
		PaidBy:      params.PaidBy,
		CreatedAt:   now,
		UpdatedAt:   now,
		Splits:      params.Splits,
		Settled:     false,
	}

	_, err := s.repos.Expenses.Update(ctx, func(expenses []models.SharedExpense) ([]models.SharedExpense, error) {
		return append(expenses, expense), nil
	})
	if err != nil {
		slog.Error("AddExpense failed", "group_id", params.GroupID, "error", err)
		s.notifier.Notify(notify.Notification{
			Title:       "Failed to add expense",
			Description: "There was an error adding your shared expense",
			Severity:    notify.SeverityError,
		})
		return nil, err
	}

	slog.Info("Expense added", "expense_id", expense.ID, "group_id", expense.GroupID)
	s.notifier.Notify(notify.Notification{
		Title:       "Expense added",
		Description: "Your shared expense has been added successfully",
		Severity:    notify.SeverityInfo,
	})

	return &expense, nil
}

// GroupExpenses returns every expense tagged with the group, unfiltered by
// settlement state, in storage order.
func (s *ExpenseService) GroupExpenses(ctx context.Context, groupID string) ([]models.SharedExpense, error) {
	expenses, err := s.repos.Expenses.Load(ctx)
	if err != nil {
		slog.Error("GroupExpenses failed", "group_id", groupID, "error", err)
		return nil, err
	}

	matched := []models.SharedExpense{}
	for _, e := range expenses {
		if e.GroupID == groupID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// SettleExpense marks the expense settled and, atomically with the parent
// flag, settles every one of its splits. Settling an already settled expense
// is a harmless no-op. Returns (nil, nil) if the expense does not exist.
func (s *ExpenseService) SettleExpense(ctx context.Context, expenseID string) (*models.SharedExpense, error) {
	slog.Info("SettleExpense request", "expense_id", expenseID)

	var result *models.SharedExpense

	_, err := s.repos.Expenses.Update(ctx, func(expenses []models.SharedExpense) ([]models.SharedExpense, error) {
		for i := range expenses {
			if expenses[i].ID != expenseID {
				continue
			}

			expenses[i].Settled = true
			expenses[i].UpdatedAt = time.Now().UTC()
			for j := range expenses[i].Splits {
				expenses[i].Splits[j].Settled = true
			}

			e := expenses[i]
			result = &e
			return expenses, nil
		}
		return nil, storage.ErrNoChange
	})
	if err != nil {
		slog.Error("SettleExpense failed", "expense_id", expenseID, "error", err)
		s.notifier.Notify(notify.Notification{
			Title:       "Failed to settle expense",
			Description: "There was an error settling the expense",
			Severity:    notify.SeverityError,
		})
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	slog.Info("Expense settled", "expense_id", expenseID)
	s.notifier.Notify(notify.Notification{
		Title:       "Expense settled",
		Description: "The expense has been marked as settled",
		Severity:    notify.SeverityInfo,
	})

	return result, nil
}

// CalculateBalances derives the outstanding pairwise debts for a group from
// the live ledger. An absent group yields an empty list, not an error.
func (s *ExpenseService) CalculateBalances(ctx context.Context, groupID string) ([]models.Balance, error) {
	groups, err := s.repos.Groups.Load(ctx)
	if err != nil {
		slog.Error("CalculateBalances failed", "group_id", groupID, "error", err)
		return nil, err
	}

	var group *models.Group
	for i := range groups {
		if groups[i].ID == groupID {
			group = &groups[i]
			break
		}
	}
	if group == nil {
		return []models.Balance{}, nil
	}

	expenses, err := s.GroupExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := calculator.CalculateBalances(group, expenses)
	slog.Debug("Balances calculated",
		"group_id", groupID,
		"expenses", len(expenses),
		"balances", len(balances),
	)
	return balances, nil
}
