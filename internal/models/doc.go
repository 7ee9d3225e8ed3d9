// Package models defines the core domain models for Tally.
//
// # Models
//
//   - Group: a named set of participants who share expenses together
//   - GroupMember: one participant's membership record within a group
//   - SharedExpense: a multi-party expense paid by one member and split
//     among participants
//   - ExpenseSplit: one member's assigned share of a shared expense
//   - Balance: a derived pairwise debt between two members (never persisted)
//   - User: a registered account
//
// # Design Principles
//
// 1. **Records over rows**: Group and SharedExpense are persisted whole as
// JSON documents in named collections, so the structs carry JSON tags and
// aggregate their children (members, splits) directly.
//
// 2. **Avoid circular references**: relationships use ID strings instead of
// pointers. SharedExpense carries a GroupID back-reference; the group owns
// the expense's lifecycle (deleting a group cascades to its expenses).
//
// 3. **Membership is per-group**: a user appearing in two groups has two
// independent GroupMember entries with possibly different display data.
//
// 4. **Balances are derived**: Balance records are recomputed on demand from
// the live ledger by the calculator package and are never stored or mutated.
package models
