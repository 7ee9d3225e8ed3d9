// Package calculator derives balances from a group's expense ledger.
//
// Everything in this package is pure: inputs are the group and its expenses,
// outputs are freshly computed values. Balances are never persisted.
package calculator

import "github.com/avasquez/tally/internal/models"

// NetBalances computes each current member's net position: total paid minus
// total owed across all unsettled expenses. Positive means the member is
// owed money, negative means the member owes.
//
// Settled expenses are excluded entirely; settlement fully closes an
// expense's contribution to debt. Contributions referencing a user who is
// not a current member are dropped: only current members have accumulator
// entries.
func NetBalances(group *models.Group, expenses []models.SharedExpense) map[string]float64 {
	net := make(map[string]float64, len(group.Members))
	for _, m := range group.Members {
		net[m.UserID] = 0
	}

	for _, e := range expenses {
		if e.Settled {
			continue
		}

		// Credit the payer with the full amount.
		if _, ok := net[e.PaidBy]; ok {
			net[e.PaidBy] += e.Amount
		}

		// Debit each split owner with their share.
		for _, s := range e.Splits {
			if _, ok := net[s.UserID]; ok {
				net[s.UserID] -= s.Amount
			}
		}
	}

	return net
}

// CalculateBalances reduces a group's net positions to pairwise debts.
//
// Every unordered pair of current members (taken in member-list order) is
// compared: for delta = net[A] - net[B], a positive delta means B owes A
// delta/2 and a negative delta means A owes B -delta/2. The division by two
// corrects for each net balance having counted the full pairwise
// contribution independently. Pairs with zero delta produce no entry.
//
// A nil group yields an empty list. No aggregation happens across more than
// two members; debts are not chained through third parties.
func CalculateBalances(group *models.Group, expenses []models.SharedExpense) []models.Balance {
	if group == nil {
		return []models.Balance{}
	}

	net := NetBalances(group, expenses)
	members := group.MemberIDs()

	balances := []models.Balance{}
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			delta := net[members[i]] - net[members[j]]
			switch {
			case delta > 0:
				balances = append(balances, models.Balance{
					UserID:      members[j],
					OtherUserID: members[i],
					Amount:      delta / 2,
				})
			case delta < 0:
				balances = append(balances, models.Balance{
					UserID:      members[i],
					OtherUserID: members[j],
					Amount:      -delta / 2,
				})
			}
		}
	}

	return balances
}

// EqualSplit divides an amount evenly across the given user IDs. This is the
// default split policy used by callers when recording an expense; the ledger
// itself accepts whatever splits it is handed.
func EqualSplit(amount float64, userIDs []string) []models.ExpenseSplit {
	if len(userIDs) == 0 {
		return nil
	}

	share := amount / float64(len(userIDs))
	splits := make([]models.ExpenseSplit, len(userIDs))
	for i, id := range userIDs {
		splits[i] = models.ExpenseSplit{UserID: id, Amount: share}
	}
	return splits
}
