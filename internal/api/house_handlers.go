package api

import (
	"encoding/json"
	"net/http"

	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// ========== House handlers ==========

// HandleListHouses lists houses, most recently created first
func (s *RESTServer) HandleListHouses(w http.ResponseWriter, r *http.Request) {
	houses, err := s.store.ListHouses(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"houses": houses,
		"total":  len(houses),
	})
}

// HandleCreateHouse creates a house
func (s *RESTServer) HandleCreateHouse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	house := &models.House{
		Name:    req.Name,
		Address: req.Address,
	}

	if err := s.rental.CreateHouse(r.Context(), house); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, house)
}

// HandleGetHouse gets a house
func (s *RESTServer) HandleGetHouse(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	house, err := s.store.GetHouse(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, house)
}

// HandleUpdateHouse applies a partial house update
func (s *RESTServer) HandleUpdateHouse(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := storage.HouseUpdate{
		Name:    req.Name,
		Address: req.Address,
	}

	if err := s.rental.UpdateHouse(r.Context(), id, update); err != nil {
		s.respondServiceError(w, err)
		return
	}

	house, err := s.store.GetHouse(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, house)
}

// HandleDeleteHouse deletes a house
func (s *RESTServer) HandleDeleteHouse(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.rental.DeleteHouse(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleHouseStats lists houses composed with tenant aggregates
func (s *RESTServer) HandleHouseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.billing.HouseStats(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"houses": stats,
		"total":  len(stats),
	})
}

// HandleListHouseRooms lists the rooms of a house
func (s *RESTServer) HandleListHouseRooms(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	rooms, err := s.store.ListRoomsByHouse(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"rooms": rooms,
		"total": len(rooms),
	})
}

// HandleListHouseTenants lists the tenants of a house
func (s *RESTServer) HandleListHouseTenants(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tenants, err := s.store.ListTenantsByHouse(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"total":   len(tenants),
	})
}
