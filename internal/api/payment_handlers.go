package api

import (
	"encoding/json"
	"net/http"

	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// ========== Payment handlers ==========

// HandleListPayments lists payments, most recent first
func (s *RESTServer) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.store.ListPayments(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"total":    len(payments),
	})
}

// HandleCreatePayment records a rent payment for one tenant and month
func (s *RESTServer) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TenantID int64   `json:"tenantId" validate:"required"`
		Month    string  `json:"month" validate:"required,month"`
		Amount   float64 `json:"amount" validate:"gt=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payment := &models.Payment{
		TenantID: req.TenantID,
		Month:    req.Month,
		Amount:   req.Amount,
	}

	if err := s.rental.RecordPayment(r.Context(), payment); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, payment)
}

// HandleGetPayment gets a payment
func (s *RESTServer) HandleGetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	payment, err := s.store.GetPayment(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, payment)
}

// HandleUpdatePayment applies a partial payment update
func (s *RESTServer) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		TenantID *int64   `json:"tenantId"`
		Month    *string  `json:"month"`
		Amount   *float64 `json:"amount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := storage.PaymentUpdate{
		TenantID: req.TenantID,
		Month:    req.Month,
		Amount:   req.Amount,
	}

	if err := s.rental.UpdatePayment(r.Context(), id, update); err != nil {
		s.respondServiceError(w, err)
		return
	}

	payment, err := s.store.GetPayment(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, payment)
}

// HandleDeletePayment deletes a payment
func (s *RESTServer) HandleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.rental.DeletePayment(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
