package api

import (
	"net/http"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
)

// balanceQuery parses the optional group_id, from and to query parameters.
func balanceQuery(r *http.Request) (service.BalanceQuery, error) {
	q := service.BalanceQuery{GroupID: r.URL.Query().Get("group_id")}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		return q, err
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		return q, err
	}
	q.From, q.To = from, to
	return q, nil
}

func (s *Server) handleUserBalances(w http.ResponseWriter, r *http.Request) {
	q, err := balanceQuery(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := s.balances.UserBalances(r.Context(), middleware.GetUserID(r.Context()), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSimplifiedUserDebts(w http.ResponseWriter, r *http.Request) {
	transfers, err := s.balances.SimplifiedUserDebts(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transfers": transfers})
}

func (s *Server) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	groupID := r.PathValue("id")

	// membership gate
	if _, err := s.groups.Get(r.Context(), userID, groupID); err != nil {
		writeError(w, err)
		return
	}

	q, err := balanceQuery(r)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	q.GroupID = groupID

	set, err := s.balances.GroupBalances(r.Context(), groupID, q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleSimplifiedGroupDebts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	groupID := r.PathValue("id")

	if _, err := s.groups.Get(r.Context(), userID, groupID); err != nil {
		writeError(w, err)
		return
	}

	transfers, err := s.balances.SimplifiedGroupDebts(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"group_id": groupID, "transfers": transfers})
}
