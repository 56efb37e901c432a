package http

import (
	"net/http"

	"familywallet/internal/core"
	"familywallet/internal/log"
	"familywallet/internal/services"
)

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	bills := s.store.Bills()
	// Listings render dueness, not the raw bill.
	views := make([]core.BillStatus, 0, len(bills))
	for _, b := range bills {
		views = append(views, services.BillStatus(b, now))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var b core.Bill
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	b.ID = ""
	created, err := s.store.PutBill(b)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "bill created",
		log.FieldOperation, log.OpCreate,
		log.FieldEntityKind, "bill",
		log.FieldEntityID, created.ID,
		log.FieldBillName, created.Name)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	var b core.Bill
	if err := decodeJSON(r, &b); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	b.ID = r.PathValue("id")
	updated, err := s.store.PutBill(b)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "bill updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldEntityKind, "bill",
		log.FieldEntityID, updated.ID)
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.store.DeleteBill(id)
	s.logger.InfoContext(r.Context(), "bill deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntityKind, "bill",
		log.FieldEntityID, id)
	respondJSON(w, http.StatusNoContent, nil)
}

// handlePayBill resets the bill's recurrence clock and returns the bill with
// its recomputed dueness.
func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	paid, err := s.store.MarkBillPaid(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "bill paid",
		log.FieldOperation, log.OpPay,
		log.FieldEntityKind, "bill",
		log.FieldEntityID, id,
		log.FieldBillName, paid.Name)
	respondJSON(w, http.StatusOK, services.BillStatus(paid, s.now()))
}
