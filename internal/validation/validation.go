// Package validation checks user entry input before it reaches the ledger.
// The limits are conventions of the entry surface, not domain invariants,
// so they are injected from configuration rather than hardwired.
package validation

import (
	"strings"

	"fjacquet/finanza/internal/ledgererror"
	"fjacquet/finanza/internal/models"

	"github.com/shopspring/decimal"
)

// Limits carries the configurable entry validation limits.
type Limits struct {
	AmountCeiling decimal.Decimal
	NoteMaxLength int
}

// DefaultLimits returns the stock limits: ceiling 1,000,000 units and
// notes up to 30 characters.
func DefaultLimits() Limits {
	return Limits{
		AmountCeiling: decimal.NewFromInt(1000000),
		NoteMaxLength: 30,
	}
}

// ValidateEntry checks a raw entry form submission and returns the parsed
// amount on success. Rejections carry a specific user-facing message and
// cause no mutation.
func ValidateEntry(amountStr, note string, txType models.TransactionType, limits Limits) (decimal.Decimal, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return decimal.Zero, &ledgererror.ValidationError{Field: "amount", Reason: "amount is required"}
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, &ledgererror.ValidationError{Field: "amount", Reason: "amount must be a number"}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &ledgererror.ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
	}
	if amount.GreaterThan(limits.AmountCeiling) {
		return decimal.Zero, &ledgererror.ValidationError{
			Field:  "amount",
			Reason: "amount exceeds the maximum of " + limits.AmountCeiling.String(),
		}
	}

	if strings.TrimSpace(note) == "" {
		return decimal.Zero, &ledgererror.ValidationError{Field: "note", Reason: "note cannot be blank"}
	}
	if len([]rune(note)) > limits.NoteMaxLength {
		return decimal.Zero, &ledgererror.ValidationError{
			Field:  "note",
			Reason: "note is too long",
		}
	}

	if !txType.Valid() {
		return decimal.Zero, &ledgererror.ValidationError{Field: "type", Reason: "type must be INCOME or EXPENSE"}
	}

	return amount, nil
}
