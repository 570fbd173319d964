package api

import (
	"log"
	"net/http"

	_ "serwer-dostepu/internal/models"
)

// @Summary      Get current member info
// @Description  Retrieves the member behind the access token. Guests are returned too.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Member
// @Failure      401  {string}  string "Unauthorized"
// @Failure      404  {string}  string "Member not found"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Could not retrieve member from token", http.StatusInternalServerError)
		return
	}

	member, err := s.store.GetMemberByID(r.Context(), claims.MemberID)
	if err != nil {
		log.Printf("ERROR: failed to load member %s: %v", claims.MemberID, err)
		http.Error(w, "Failed to retrieve member data", http.StatusInternalServerError)
		return
	}
	if member == nil {
		http.Error(w, "Member not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Items  int    `json:"items" example:"42"`
}

// @Summary      Health check
// @Description  Reports whether a snapshot of the hierarchy can be loaded.
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {string}  string "Storage unavailable"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.LoadSnapshot(r.Context())
	if err != nil {
		log.Printf("ERROR: health check failed: %v", err)
		http.Error(w, "Storage unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Items: len(snap.Items())})
}
