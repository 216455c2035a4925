package api

import (
	"encoding/json"
	"net/http"

	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// ========== Room handlers ==========

// HandleCreateRoom creates a room under an existing house
func (s *RESTServer) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HouseID int64  `json:"houseId" validate:"required"`
		Name    string `json:"name" validate:"required"`
		Type    string `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	room := &models.Room{
		HouseID: req.HouseID,
		Name:    req.Name,
		Type:    req.Type,
	}

	if err := s.rental.CreateRoom(r.Context(), room); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, room)
}

// HandleGetRoom gets a room
func (s *RESTServer) HandleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	room, err := s.store.GetRoom(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, room)
}

// HandleUpdateRoom applies a partial room update
func (s *RESTServer) HandleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Name *string `json:"name"`
		Type *string `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := storage.RoomUpdate{
		Name: req.Name,
		Type: req.Type,
	}

	if err := s.rental.UpdateRoom(r.Context(), id, update); err != nil {
		s.respondServiceError(w, err)
		return
	}

	room, err := s.store.GetRoom(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, room)
}

// HandleDeleteRoom deletes a room
func (s *RESTServer) HandleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.rental.DeleteRoom(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
