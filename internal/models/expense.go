package models

import "time"

// SharedExpense represents a multi-party expense paid by one member and
// split among participants.
//
// Amount, Description, Date and the split list are immutable after creation.
// Only the settled flags mutate: settling an expense force-sets every
// split's Settled to true atomically with the parent. Settlement is one-way;
// nothing transitions an expense out of the settled state.
type SharedExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to. The group owns the
	// expense's lifecycle: deleting the group deletes the expense.
	GroupID string `json:"groupId"`

	// Amount is the full expense amount paid by PaidBy.
	Amount float64 `json:"amount"`

	// Description is the human-readable description of the expense.
	Description string `json:"description"`

	// Date is the date the expense was incurred, as supplied by the caller.
	Date string `json:"date"`

	// PaidBy is the user ID of the member who paid. It may reference a
	// former member if membership changed after creation.
	PaidBy string `json:"paidBy"`

	// CreatedAt is when the expense was recorded.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped when the expense is settled.
	UpdatedAt time.Time `json:"updatedAt"`

	// Splits is the ordered per-member breakdown of the amount. The splits
	// are supplied by the caller and are not validated to sum to Amount.
	Splits []ExpenseSplit `json:"splits"`

	// Settled reports whether the expense has been fully settled. Settled
	// expenses no longer contribute to outstanding balances.
	Settled bool `json:"settled"`
}

// ExpenseSplit is one member's assigned share of a shared expense.
// It is owned by exactly one SharedExpense.
type ExpenseSplit struct {
	// UserID identifies the member who owes this share. It may reference a
	// former member if membership changed after creation.
	UserID string `json:"userId"`

	// Amount is this member's share.
	Amount float64 `json:"amount"`

	// Settled reports whether this share has been settled. Settling the
	// parent expense settles every split.
	Settled bool `json:"settled"`
}
