package models

// Balance is a derived pairwise debt between two group members: UserID owes
// OtherUserID the given amount.
//
// Balances are recomputed on demand from the live ledger and are never
// persisted or mutated directly.
type Balance struct {
	// UserID is the member who owes.
	UserID string `json:"userId"`

	// OtherUserID is the member who is owed.
	OtherUserID string `json:"otherUserId"`

	// Amount is the positive amount owed.
	Amount float64 `json:"amount"`
}
