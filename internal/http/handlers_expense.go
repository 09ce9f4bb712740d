package http

import (
	"errors"
	"net/http"
	"strconv"

	"tracker/internal/core"
)

var errTemplatesNotLoaded = errors.New("templates not loaded")

// handleCreateExpense validates and adds one expense. Invalid input changes
// nothing and shows no message: htmx callers get an empty 422 so the form
// keeps its values, plain form posts get the page back with the values filled
// in.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.logger.WarnContext(ctx, "Parse request body failed", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	form := formValues{Name: p.Get("name"), Amount: p.Get("amount")}

	amount, err := core.ParseAmount(form.Amount)
	if err == nil {
		_, err = s.ledger.Add(ctx, form.Name, amount)
	}
	switch {
	case errors.Is(err, core.ErrEmptyName), errors.Is(err, core.ErrInvalidAmount):
		s.logger.DebugContext(ctx, "Expense rejected", "error", err)
		if isHTMX(r) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		s.renderPage(w, r, http.StatusUnprocessableEntity, form)
		return
	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to save expense", "error", err)
		InternalServerError("Could not save expenses").Write(w)
		return
	}

	s.afterMutation(w, r, NewHTMXResponse().TriggerFormReset())
}

// handleDeleteExpense deletes by id, or by position when no id is sent.
// Unknown ids and out-of-range positions delete nothing.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.logger.WarnContext(ctx, "Parse request body failed", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	var err error
	if id := p.Get("id"); id != "" {
		_, _, err = s.ledger.Delete(ctx, id)
	} else if index, convErr := strconv.Atoi(p.Get("index")); convErr == nil {
		_, _, err = s.ledger.DeleteAt(ctx, index)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save expenses after delete", "error", err)
		InternalServerError("Could not save expenses").Write(w)
		return
	}

	s.afterMutation(w, r, NewHTMXResponse())
}

// handleClear shows a confirmation page on GET and clears on POST when the
// confirm field is "yes".
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		snap := s.ledger.Snapshot()
		s.render(w, r, http.StatusOK, "confirm_clear.html", confirmData{
			Count: snap.Len(),
			Total: s.formatter.Amount(snap.Total()),
		})
		return
	case http.MethodPost:
	default:
		MethodNotAllowedError("GET, POST").Write(w)
		return
	}
	ctx := r.Context()

	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		s.logger.WarnContext(ctx, "Parse request body failed", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	confirmed := p.Get("confirm") == "yes"

	if _, err := s.ledger.ClearAll(ctx, func() bool { return confirmed }); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear stored expenses", "error", err)
		InternalServerError("Could not clear expenses").Write(w)
		return
	}

	s.afterMutation(w, r, NewHTMXResponse())
}

// afterMutation re-renders the ledger for htmx and redirects plain form posts
// back to the page.
func (s *Server) afterMutation(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder) {
	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.writeLedger(w, r, b)
}
