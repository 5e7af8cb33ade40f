// Package backup serializes the full transaction set to and from the
// portable JSON exchange format used for backup and restore.
package backup

import (
	"encoding/json"

	"fjacquet/finanza/internal/ledgererror"
	"fjacquet/finanza/internal/models"
)

// Export serializes the full transaction set, all fields included. Running
// balances are never exported: they are re-derivable from the set itself.
func Export(txs []models.Transaction) ([]byte, error) {
	if txs == nil {
		txs = []models.Transaction{}
	}
	return json.MarshalIndent(txs, "", "  ")
}

// probe mirrors the exchange record shape with a nullable category, so the
// structural check can distinguish a missing category from an empty one.
type probe struct {
	Category *string `json:"category"`
}

// Import parses exchange text into a transaction set ready for an atomic
// replace. The data is accepted only if it is structurally a sequence AND
// it is either empty or its first element carries a category field. This is
// a weak sanity check, not schema validation: entries beyond the first are
// not individually validated. Returned transactions have their ids reset to
// unassigned so the store reassigns identity on insert.
//
// On any failure no transactions are returned and the caller must leave the
// store untouched.
func Import(data []byte) ([]models.Transaction, error) {
	var probes []probe
	if err := json.Unmarshal(data, &probes); err != nil {
		return nil, &ledgererror.ImportParseError{Err: err}
	}
	// JSON null decodes into a nil slice without error; it is not a
	// sequence and must not pass as an empty import.
	if probes == nil {
		return nil, &ledgererror.ImportRejectedError{Reason: "input is not a sequence"}
	}

	if len(probes) > 0 && probes[0].Category == nil {
		return nil, &ledgererror.ImportRejectedError{Reason: "first record has no category field"}
	}

	var txs []models.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, &ledgererror.ImportParseError{Err: err}
	}

	for i := range txs {
		txs[i] = txs[i].WithoutID()
	}
	return txs, nil
}
