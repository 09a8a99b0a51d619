// Package models defines the core domain models for MrSplit.
//
// # Models
//
//   - Group: a set of members sharing expenses together
//   - Member: a person participating in one or more groups
//   - Expense: a single recorded cost, paid by one member, with its splits
//   - Split: one member's share of an expense
//   - Transfer: a proposed payment produced by settlement, never stored
//
// # Design Principles
//
// 1. **Integer money**: every amount is an int64 in minor units (cents for USD).
// Conversion to and from display strings happens only in the presentation layer.
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships.
// 3. **Derived values are not stored**: net positions and transfers are always
// recomputed from the splits.
package models
