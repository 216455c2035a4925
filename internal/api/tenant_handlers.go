package api

import (
	"encoding/json"
	"net/http"

	"github.com/rentbook/rentbook-server/internal/models"
	"github.com/rentbook/rentbook-server/internal/storage"
)

// ========== Tenant handlers ==========

type tenantRequest struct {
	HouseID          int64   `json:"houseId" validate:"required"`
	RoomID           int64   `json:"roomId" validate:"required"`
	FirstName        string  `json:"firstName" validate:"required"`
	LastName         string  `json:"lastName" validate:"required"`
	Phone            string  `json:"phone" validate:"required"`
	Email            string  `json:"email" validate:"email"`
	EntryDate        string  `json:"entryDate" validate:"required,date"`
	PaymentFrequency string  `json:"paymentFrequency" validate:"required"`
	RentAmount       float64 `json:"rentAmount" validate:"gt=0"`
}

func (req *tenantRequest) toModel() (*models.Tenant, bool) {
	frequency := models.PaymentFrequency(req.PaymentFrequency)
	if !frequency.Valid() {
		return nil, false
	}
	return &models.Tenant{
		HouseID:          req.HouseID,
		RoomID:           req.RoomID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Email:            req.Email,
		EntryDate:        req.EntryDate,
		PaymentFrequency: frequency,
		RentAmount:       req.RentAmount,
	}, true
}

// HandleListTenants lists tenants, most recent entry first
func (s *RESTServer) HandleListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := s.store.ListTenants(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": tenants,
		"total":   len(tenants),
	})
}

// HandleCreateTenant creates a tenant bound to an existing room
func (s *RESTServer) HandleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, ok := req.toModel()
	if !ok {
		s.respondError(w, http.StatusBadRequest, "invalid payment frequency")
		return
	}

	if err := s.rental.CreateTenant(r.Context(), tenant); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, tenant)
}

// HandleCreateTenantWithRoom creates a room and its tenant in one
// transaction
func (s *RESTServer) HandleCreateTenantWithRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HouseID          int64   `json:"houseId" validate:"required"`
		RoomName         string  `json:"roomName" validate:"required"`
		RoomType         string  `json:"roomType"`
		FirstName        string  `json:"firstName" validate:"required"`
		LastName         string  `json:"lastName" validate:"required"`
		Phone            string  `json:"phone" validate:"required"`
		Email            string  `json:"email" validate:"email"`
		EntryDate        string  `json:"entryDate" validate:"required,date"`
		PaymentFrequency string  `json:"paymentFrequency" validate:"required"`
		RentAmount       float64 `json:"rentAmount" validate:"gt=0"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.Validate(req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	frequency := models.PaymentFrequency(req.PaymentFrequency)
	if !frequency.Valid() {
		s.respondError(w, http.StatusBadRequest, "invalid payment frequency")
		return
	}

	room := &models.Room{
		HouseID: req.HouseID,
		Name:    req.RoomName,
		Type:    req.RoomType,
	}
	tenant := &models.Tenant{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Email:            req.Email,
		EntryDate:        req.EntryDate,
		PaymentFrequency: frequency,
		RentAmount:       req.RentAmount,
	}

	if err := s.rental.CreateTenantWithRoom(r.Context(), room, tenant); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"room":   room,
		"tenant": tenant,
	})
}

// HandleGetTenant gets a tenant
func (s *RESTServer) HandleGetTenant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tenant, err := s.store.GetTenant(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, tenant)
}

// HandleUpdateTenant applies a partial tenant update
func (s *RESTServer) HandleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		HouseID          *int64   `json:"houseId"`
		RoomID           *int64   `json:"roomId"`
		FirstName        *string  `json:"firstName"`
		LastName         *string  `json:"lastName"`
		Phone            *string  `json:"phone"`
		Email            *string  `json:"email"`
		EntryDate        *string  `json:"entryDate"`
		PaymentFrequency *string  `json:"paymentFrequency"`
		RentAmount       *float64 `json:"rentAmount"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := storage.TenantUpdate{
		HouseID:    req.HouseID,
		RoomID:     req.RoomID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		EntryDate:  req.EntryDate,
		RentAmount: req.RentAmount,
	}

	if req.PaymentFrequency != nil {
		frequency := models.PaymentFrequency(*req.PaymentFrequency)
		if !frequency.Valid() {
			s.respondError(w, http.StatusBadRequest, "invalid payment frequency")
			return
		}
		update.PaymentFrequency = &frequency
	}

	if err := s.rental.UpdateTenant(r.Context(), id, update); err != nil {
		s.respondServiceError(w, err)
		return
	}

	tenant, err := s.store.GetTenant(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, tenant)
}

// HandleDeleteTenant deletes a tenant
func (s *RESTServer) HandleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.rental.DeleteTenant(r.Context(), id); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetTenantDetails gets the tenant detail view: house and room
// summaries, payment status, last payment
func (s *RESTServer) HandleGetTenantDetails(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	details, err := s.billing.TenantDetails(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, details)
}

// HandleListTenantsWithStatus lists all tenants with computed payment
// statuses
func (s *RESTServer) HandleListTenantsWithStatus(w http.ResponseWriter, r *http.Request) {
	list, err := s.billing.ListTenantsWithStatus(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tenants": list,
		"total":   len(list),
	})
}

// HandleOverdueList lists the tenants overdue for the current month
func (s *RESTServer) HandleOverdueList(w http.ResponseWriter, r *http.Request) {
	overdue, err := s.billing.OverdueList(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"overdue": overdue,
		"total":   len(overdue),
	})
}

// HandleListTenantPayments lists the payments of a tenant
func (s *RESTServer) HandleListTenantPayments(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	payments, err := s.store.ListPaymentsByTenant(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"total":    len(payments),
	})
}

// HandleGetTenantTotalPaid sums the recorded payments of a tenant
func (s *RESTServer) HandleGetTenantTotalPaid(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	total, err := s.billing.TotalPaid(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"tenantId": id,
		"total":    total,
	})
}
