package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fjacquet/finanza/internal/backup"
	"fjacquet/finanza/internal/ledger"
	"fjacquet/finanza/internal/ledgererror"
	"fjacquet/finanza/internal/logging"
	"fjacquet/finanza/internal/models"
	"fjacquet/finanza/internal/profile"
	"fjacquet/finanza/internal/reportagg"
	"fjacquet/finanza/internal/validation"
)

// transactionRequest is the entry/edit form payload. Amount arrives as a
// string so validation owns the parse.
type transactionRequest struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Note     string `json:"note"`
	Date     int64  `json:"date"`
	Type     string `json:"type"`
}

func (s *Server) limits() validation.Limits {
	return validation.Limits{
		AmountCeiling: decimal.NewFromFloat(s.cfg.Validation.AmountCeiling),
		NoteMaxLength: s.cfg.Validation.NoteMaxLength,
	}
}

// parseTransaction validates the request body and builds the transaction.
func (s *Server) parseTransaction(r *http.Request) (models.Transaction, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return models.Transaction{}, &ledgererror.ValidationError{Field: "body", Reason: "malformed JSON"}
	}

	txType := models.TransactionType(req.Type)
	amount, err := validation.ValidateEntry(req.Amount, req.Note, txType, s.limits())
	if err != nil {
		return models.Transaction{}, err
	}

	date := req.Date
	if date == 0 {
		date = s.now().UnixMilli()
	}
	return models.Transaction{
		Amount:   amount,
		Category: req.Category,
		Note:     req.Note,
		Date:     date,
		Type:     txType,
	}, nil
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Current())
}

type dayGroupResponse struct {
	Label   string                    `json:"label"`
	Entries []ledger.EntryWithBalance `json:"entries"`
}

func (s *Server) handleDayGroups(w http.ResponseWriter, r *http.Request) {
	groups := reportagg.GroupByDay(s.ledger.Current().Entries, s.now())
	out := make([]dayGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dayGroupResponse{Label: g.Label, Entries: g.Entries})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	income, expense, err := s.ledger.StoredTotals(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{
		"total_income":  income,
		"total_expense": expense,
		"net":           income.Sub(expense),
	})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.parseTransaction(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := s.ledger.SaveTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.metrics.Mutation("save")
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}
	tx, err := s.ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}
	tx, err := s.parseTransaction(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	tx.ID = id

	if err := s.ledger.UpdateTransaction(r.Context(), tx); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.metrics.Mutation("update")
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid transaction id"))
		return
	}
	if err := s.ledger.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.metrics.Mutation("delete")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.ClearAll(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.metrics.Mutation("clear")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	buckets := reportagg.CategoryBreakdown(s.ledger.Current().Expenses())
	type bucketResponse struct {
		Key     string          `json:"key"`
		Display string          `json:"display"`
		Color   string          `json:"color"`
		Amount  decimal.Decimal `json:"amount"`
	}
	out := make([]bucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, bucketResponse{
			Key:     b.Key,
			Display: b.Meta.Display,
			Color:   b.Meta.Color,
			Amount:  b.Amount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDrillDown(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "category")
	groups := reportagg.DrillDown(s.ledger.Current().Transactions(), key)
	type noteResponse struct {
		Note   string          `json:"note"`
		Amount decimal.Decimal `json:"amount"`
		Count  int             `json:"count"`
	}
	out := make([]noteResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, noteResponse{Note: g.Note, Amount: g.Amount, Count: g.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	months := reportagg.Months(s.ledger.Current().Entries)
	if months == nil {
		months = []string{}
	}
	writeJSON(w, http.StatusOK, months)
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, errors.New("month query parameter is required"))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	doc := reportagg.MonthlyReport(s.ledger.Current().Entries, month, s.cfg.Report.Title, s.now())
	out, err := s.reports.Generate(doc, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch format {
	case "xml":
		w.Header().Set("Content-Type", "application/xml")
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	out, err := backup.Export(s.ledger.Current().Transactions())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="finanza-backup.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	txs, err := backup.Import(data)
	if err != nil {
		// Rejection and parse failure alike leave the store untouched.
		s.metrics.Import("rejected")
		s.logger.Warn("Backup import rejected",
			logging.Field{Key: logging.FieldReason, Value: err.Error()})
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	if err := s.ledger.ImportReplace(r.Context(), txs); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.metrics.Import("accepted")
	s.metrics.Mutation("import")
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(txs)})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("malformed JSON"))
		return
	}
	if err := s.profiles.Save(p); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
