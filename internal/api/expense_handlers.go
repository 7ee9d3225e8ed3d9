package api

import (
	"net/http"

	"github.com/avasquez/tally/internal/calculator"
	"github.com/avasquez/tally/internal/models"
	"github.com/avasquez/tally/internal/service"
)

type addExpenseRequest struct {
	Amount      float64               `json:"amount"`
	Description string                `json:"description"`
	Date        string                `json:"date"`
	PaidBy      string                `json:"paidBy"`
	Splits      []models.ExpenseSplit `json:"splits,omitempty"`
}

func (s *Server) handleGroupExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.GroupExpenses(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.SharedExpense{"expenses": expenses})
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if req.PaidBy == "" {
		writeError(w, http.StatusBadRequest, "paidBy is required")
		return
	}

	groupID := r.PathValue("id")

	// Default policy: equal division across the group's current members
	// when the caller supplies no splits. The ledger itself stores
	// whatever splits it is handed.
	splits := req.Splits
	if len(splits) == 0 {
		group, err := s.groups.GetGroup(r.Context(), groupID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to add expense")
			return
		}
		if group == nil {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		splits = calculator.EqualSplit(req.Amount, group.MemberIDs())
	}

	expense, err := s.expenses.AddExpense(r.Context(), service.AddExpenseParams{
		GroupID:     groupID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		PaidBy:      req.PaidBy,
		Splits:      splits,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add expense")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*models.SharedExpense{"expense": expense})
}

func (s *Server) handleSettleExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.SettleExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to settle expense")
		return
	}
	if expense == nil {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.SharedExpense{"expense": expense})
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.expenses.CalculateBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to calculate balances")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]models.Balance{"balances": balances})
}
