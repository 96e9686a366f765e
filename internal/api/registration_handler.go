package api

import (
	"log/slog"
	"net/http"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/store"
	"github.com/go-chi/chi/v5"
)

// RegistrationHandler handles camp registration requests.
type RegistrationHandler struct {
	registrations store.RegistrationStore
	logger        *slog.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(registrations store.RegistrationStore, logger *slog.Logger) *RegistrationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RegistrationHandler")
	}

	return &RegistrationHandler{
		registrations: registrations,
		logger:        logger.With(slog.String("component", "registration_handler")),
	}
}

// CreateRegistration handles POST /registered-participant
func (h *RegistrationHandler) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateRegistrationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reg, err := domain.NewRegistration(req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.registrations.Create(r.Context(), reg); err != nil {
		HandleAPIError(w, r, err, "Failed to register participant")
		return
	}

	log.Info("participant registered",
		slog.String("registration_id", reg.ID.Hex()),
		slog.String("camp_id", reg.CampID),
	)
	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{
		Acknowledged: true,
		InsertedID:   reg.ID.Hex(),
	})
}

// ListMyRegistrations handles GET /registered-participant
func (h *RegistrationHandler) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	email, err := getEmailFromContext(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	regs, err := h.registrations.ListByUser(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list registrations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nonNilRegistrations(regs))
}

// ListRegistrations handles GET /all-registered-participant
func (h *RegistrationHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.registrations.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list registrations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nonNilRegistrations(regs))
}

// MarkPaid handles PATCH /update-payment-status/{campId}
func (h *RegistrationHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	campID := chi.URLParam(r, "campId")
	if !domain.IsValidID(campID) {
		HandleAPIError(w, r, domain.NewValidationError("campId", "has invalid format", domain.ErrInvalidID), "")
		return
	}

	var req MarkPaidRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.registrations.MarkPaid(r.Context(), campID, req.ParticipantEmail, req.TransactionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update payment status")
		return
	}

	log.Info("registration marked paid", slog.String("camp_id", campID))
	shared.RespondWithJSON(w, r, http.StatusOK, updateResponse(res))
}

// ConfirmRegistration handles PATCH /confirm-participant/{id}. A registration
// is confirmed at most once; repeats answer 404.
func (h *RegistrationHandler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.registrations.Confirm(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to confirm participant")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Participant confirmed",
		Result:  updateResponse(res),
	})
}

// DeleteRegistration handles DELETE /delete-registration/{id}
func (h *RegistrationHandler) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	res, ok := h.delete(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deleteResponse(res))
}

// CancelRegistration handles DELETE /cancel-registration-user/{id}
func (h *RegistrationHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	res, ok := h.delete(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Registration cancelled successfully",
		Result:  deleteResponse(res),
	})
}

// delete removes the registration named by the id path parameter, writing
// an error response on failure.
func (h *RegistrationHandler) delete(w http.ResponseWriter, r *http.Request) (*store.DeleteResult, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	res, err := h.registrations.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete registration")
		return nil, false
	}

	log.Info("registration deleted", slog.String("registration_id", id.Hex()))
	return res, true
}

func nonNilRegistrations(regs []*domain.Registration) []*domain.Registration {
	if regs == nil {
		return []*domain.Registration{}
	}
	return regs
}
