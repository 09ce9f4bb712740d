package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"tracker/internal/chrome"
	"tracker/internal/view"
)

type formValues struct {
	Name   string
	Amount string
}

type pageData struct {
	Lang   string
	Date   string
	Form   formValues
	Ledger view.Ledger
}

type loginData struct {
	Message string
}

type confirmData struct {
	Count int
	Total string
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports not_ready when templates failed to load or the backend
// does not answer.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	code := http.StatusOK
	checks := map[string]string{"templates": "ok", "storage": "ok"}

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	if s.opts.Ready != nil {
		if err := s.opts.Ready(r.Context()); err != nil {
			checks["storage"] = "failed: " + err.Error()
			status, code = "not_ready", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleIndex builds the page from the stored ledger, as a fresh page load
// does. The date is computed here and nowhere else.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Write(w)
		return
	}
	s.ledger.Reload(r.Context())
	s.renderPage(w, r, http.StatusOK, formValues{})
}

func (s *Server) handleLedgerPartial(w http.ResponseWriter, r *http.Request) {
	s.writeLedger(w, r, NewHTMXResponse())
}

// handleLogout acknowledges the logout and sends the browser to the login
// page. There is no session to invalidate.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.logger.InfoContext(r.Context(), "Logout requested")
	http.Redirect(w, r, withQuery(s.opts.LoginPath, "logged_out=1"), http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	data := loginData{}
	if r.URL.Query().Get("logged_out") == "1" {
		data.Message = chrome.LogoutMessage
	}
	s.render(w, r, http.StatusOK, "login.html", data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, form formValues) {
	tag := chrome.ResolveTag(r.Header.Get("Accept-Language"), s.opts.Locale)
	data := pageData{
		Lang:   tag.String(),
		Date:   chrome.LongDate(s.opts.Now(), tag),
		Form:   form,
		Ledger: view.Build(s.ledger.Snapshot(), s.formatter),
	}
	s.render(w, r, status, "index.html", data)
}

// render executes a template into a buffer first so a failing template never
// leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	body, err := s.execute(name, data)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	NewHTMXResponse().Status(status).BodyHTML(body).Write(w)
}

// writeLedger renders the list and total partial through b.
func (s *Server) writeLedger(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder) {
	v := view.Build(s.ledger.Snapshot(), s.formatter)
	body, err := s.execute("ledger", v)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", "ledger")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	b.TriggerLedgerChanged(v.Count, v.Total).BodyHTML(body).Write(w)
}

func (s *Server) execute(name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, errTemplatesNotLoaded
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
