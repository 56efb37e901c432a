package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"familywallet/internal/core"
	"familywallet/internal/currency"
	"familywallet/internal/log"
	"familywallet/internal/services"
)

const dateParamLayout = "2006-01-02"

// resolveCurrency picks the display currency for a request: the ?currency=
// query parameter when present, otherwise the server default.
func (s *Server) resolveCurrency(r *http.Request) (string, error) {
	code := strings.TrimSpace(r.URL.Query().Get("currency"))
	if code == "" {
		return s.displayCur, nil
	}
	if _, err := currency.Rate(code); err != nil {
		return "", err
	}
	return code, nil
}

// formatIn renders a base-currency amount in the display currency, falling
// back to the raw value if the code somehow fails after validation.
func formatIn(amount decimal.Decimal, code string) string {
	out, err := currency.Format(amount, code)
	if err != nil {
		return amount.StringFixed(2)
	}
	return out
}

type dashboardResponse struct {
	Currency string                `json:"currency"`
	Summary  core.DashboardSummary `json:"summary"`
	Display  dashboardDisplay      `json:"display"`
}

// dashboardDisplay carries the headline figures pre-formatted in the display
// currency. Raw decimals in the summary stay in the base currency.
type dashboardDisplay struct {
	Income         string `json:"income"`
	Expenses       string `json:"expenses"`
	Net            string `json:"net"`
	PortfolioValue string `json:"portfolioValue"`
	PortfolioGain  string `json:"portfolioGain"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	code, err := s.resolveCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary := services.Dashboard(s.store.Transactions(), s.store.Bills(), s.store.Investments(), s.now())
	respondJSON(w, http.StatusOK, dashboardResponse{
		Currency: code,
		Summary:  summary,
		Display: dashboardDisplay{
			Income:         formatIn(summary.Flow.Income, code),
			Expenses:       formatIn(summary.Flow.Expenses, code),
			Net:            formatIn(summary.Flow.Income.Sub(summary.Flow.Expenses), code),
			PortfolioValue: formatIn(summary.Portfolio.TotalValue, code),
			PortfolioGain:  formatIn(summary.Portfolio.TotalGain, code),
		},
	})
}

type rangeReportResponse struct {
	Currency string             `json:"currency"`
	Start    string             `json:"start"`
	End      string             `json:"end"`
	Member   string             `json:"member"`
	Report   core.RangeReport   `json:"report"`
	Display  rangeReportDisplay `json:"display"`
}

type rangeReportDisplay struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	NetFlow       string `json:"netFlow"`
}

// handleRangeReport builds the date-scoped report. Both bounds default to
// the current day when omitted, matching a single-day report.
func (s *Server) handleRangeReport(w http.ResponseWriter, r *http.Request) {
	code, err := s.resolveCurrency(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	start, end := now, now
	if v := strings.TrimSpace(r.URL.Query().Get("start")); v != "" {
		start, err = time.ParseInLocation(dateParamLayout, v, now.Location())
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid start date %q: want YYYY-MM-DD", v))
			return
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
		end, err = time.ParseInLocation(dateParamLayout, v, now.Location())
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid end date %q: want YYYY-MM-DD", v))
			return
		}
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end date is before start date")
		return
	}

	member := strings.TrimSpace(r.URL.Query().Get("member"))
	if member == "" {
		member = services.MemberFilterAll
	}

	scoped := services.FilterByRange(s.store.Transactions(), start, end, member)
	report := services.BuildRangeReport(scoped)

	s.logger.DebugContext(r.Context(), "range report built",
		log.FieldOperation, log.OpList,
		"transactions", len(scoped),
		log.FieldCurrency, code)

	respondJSON(w, http.StatusOK, rangeReportResponse{
		Currency: code,
		Start:    start.Format(dateParamLayout),
		End:      end.Format(dateParamLayout),
		Member:   member,
		Report:   report,
		Display: rangeReportDisplay{
			TotalIncome:   formatIn(report.TotalIncome, code),
			TotalExpenses: formatIn(report.TotalExpenses, code),
			NetFlow:       formatIn(report.NetFlow, code),
		},
	})
}

// chatRequest optionally carries the report scope the question is being
// asked about. With no scope fields, the assistant sees the full history.
type chatRequest struct {
	Question string `json:"question"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Member   string `json:"member,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// handleChat forwards the question and a data snapshot to the assistant.
// When the request names a date range or member, the snapshot is the same
// filtered set the range report would show.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		respondError(w, http.StatusBadRequest, "question cannot be empty")
		return
	}

	member := strings.TrimSpace(req.Member)
	if member == "" {
		member = services.MemberFilterAll
	}

	txs := s.store.Transactions()
	scoped := false
	if req.Start != "" || req.End != "" || member != services.MemberFilterAll {
		start := time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
		var err error
		if v := strings.TrimSpace(req.Start); v != "" {
			start, err = time.ParseInLocation(dateParamLayout, v, s.now().Location())
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid start date %q: want YYYY-MM-DD", v))
				return
			}
		}
		if v := strings.TrimSpace(req.End); v != "" {
			end, err = time.ParseInLocation(dateParamLayout, v, s.now().Location())
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid end date %q: want YYYY-MM-DD", v))
				return
			}
		}
		if end.Before(start) {
			respondError(w, http.StatusBadRequest, "end date is before start date")
			return
		}
		txs = services.FilterByRange(txs, start, end, member)
		scoped = true
	}

	answer := s.adviser.Advise(r.Context(), s.store.Members(), txs, req.Question)
	s.logger.InfoContext(r.Context(), "assistant answered",
		log.FieldOperation, log.OpAdvise,
		"question_len", len(req.Question),
		"scoped", scoped,
		"transactions", len(txs))
	respondJSON(w, http.StatusOK, chatResponse{Answer: answer})
}
