package api

import (
	"net/http"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
)

func (s *Server) handleCreateSettlement(w http.ResponseWriter, r *http.Request) {
	var in service.RecordSettlementInput
	if err := decodeJSON(r, &in); err != nil {
		writeValidationError(w, err)
		return
	}

	settlement, err := s.settlements.Record(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, settlement)
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	groupID := r.URL.Query().Get("group_id")

	records, err := s.settlements.List(r.Context(), userID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"settlements": records})
}
