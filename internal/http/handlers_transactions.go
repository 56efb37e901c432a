package http

import (
	"net/http"

	"familywallet/internal/core"
	"familywallet/internal/log"
	"familywallet/internal/services"
)

// transactionView is a transaction with its member reference resolved to a
// display name, which is what listings render.
type transactionView struct {
	core.Transaction
	MemberName string `json:"memberName"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	members := s.store.Members()
	txs := s.store.Transactions()
	views := make([]transactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, transactionView{
			Transaction: t,
			MemberName:  services.MemberName(members, t.MemberID),
		})
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t.ID = ""
	created, err := s.store.PutTransaction(t)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldEntityKind, "transaction",
		log.FieldEntityID, created.ID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t.ID = r.PathValue("id")
	updated, err := s.store.PutTransaction(t)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldEntityKind, "transaction",
		log.FieldEntityID, updated.ID)
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.store.DeleteTransaction(id)
	s.logger.InfoContext(r.Context(), "transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntityKind, "transaction",
		log.FieldEntityID, id)
	respondJSON(w, http.StatusNoContent, nil)
}
