package http

import (
	"math/rand"
	"net/http"

	"familywallet/internal/core"
	"familywallet/internal/log"
	"familywallet/internal/services"
)

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Investments())
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var inv core.Investment
	if err := decodeJSON(r, &inv); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv.ID = ""
	created, err := s.store.PutInvestment(inv)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "investment created",
		log.FieldOperation, log.OpCreate,
		log.FieldEntityKind, "investment",
		log.FieldEntityID, created.ID)
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	var inv core.Investment
	if err := decodeJSON(r, &inv); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv.ID = r.PathValue("id")
	updated, err := s.store.PutInvestment(inv)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "investment updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldEntityKind, "investment",
		log.FieldEntityID, updated.ID)
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.store.DeleteInvestment(id)
	s.logger.InfoContext(r.Context(), "investment deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntityKind, "investment",
		log.FieldEntityID, id)
	respondJSON(w, http.StatusNoContent, nil)
}

// handleSimulateMarket perturbs every holding's unit value and stores the
// result, returning the updated portfolio.
func (s *Server) handleSimulateMarket(w http.ResponseWriter, r *http.Request) {
	updated := services.SimulateMarket(s.store.Investments(), rand.New(rand.NewSource(s.now().UnixNano())))
	s.store.ReplaceInvestments(updated)
	s.logger.InfoContext(r.Context(), "market simulated",
		log.FieldOperation, log.OpSimulate,
		log.FieldEntityKind, "investment",
		"holdings", len(updated))
	respondJSON(w, http.StatusOK, updated)
}
