package api

import (
	"net/http"

	"github.com/splitledger/splitledger/internal/middleware"
)

type createGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

type addMembersRequest struct {
	MemberIDs []string `json:"member_ids"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "group name is required"})
		return
	}

	group, err := s.groups.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleAddGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err)
		return
	}
	if len(req.MemberIDs) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "member_ids is required"})
		return
	}

	group, err := s.groups.AddMembers(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}
