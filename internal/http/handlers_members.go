package http

import (
	"net/http"

	"familywallet/internal/core"
	"familywallet/internal/log"
)

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.Members())
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var m core.FamilyMember
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.ID = ""
	created, err := s.store.PutMember(m)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "member created",
		log.FieldOperation, log.OpCreate,
		log.FieldEntityKind, "member",
		log.FieldEntityID, created.ID,
		log.FieldMemberRole, string(created.Role))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var m core.FamilyMember
	if err := decodeJSON(r, &m); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	m.ID = r.PathValue("id")
	updated, err := s.store.PutMember(m)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "member updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldEntityKind, "member",
		log.FieldEntityID, updated.ID,
		log.FieldMemberRole, string(updated.Role))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteMember(id); err != nil {
		respondStoreError(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "member deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldEntityKind, "member",
		log.FieldEntityID, id)
	respondJSON(w, http.StatusNoContent, nil)
}
