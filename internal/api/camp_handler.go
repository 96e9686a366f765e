package api

import (
	"log/slog"
	"net/http"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/store"
)

// CampHandler handles camp catalogue requests.
type CampHandler struct {
	camps  store.CampStore
	logger *slog.Logger
}

// NewCampHandler creates a new CampHandler
func NewCampHandler(camps store.CampStore, logger *slog.Logger) *CampHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CampHandler")
	}

	return &CampHandler{
		camps:  camps,
		logger: logger.With(slog.String("component", "camp_handler")),
	}
}

// CreateCamp handles POST /camps
func (h *CampHandler) CreateCamp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCampRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	camp, err := domain.NewCamp(req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.camps.Create(r.Context(), camp); err != nil {
		HandleAPIError(w, r, err, "Failed to create camp")
		return
	}

	log.Info("camp created", slog.String("camp_id", camp.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{
		Acknowledged: true,
		InsertedID:   camp.ID.Hex(),
	})
}

// SearchCamps handles GET /camps?search=&sort=&page=&limit=
func (h *CampHandler) SearchCamps(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query, err := parseCampQuery(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.camps.Search(r.Context(), query)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search camps")
		return
	}
	if page.Result == nil {
		page.Result = []*domain.Camp{}
	}

	log.Debug("camps searched",
		slog.String("sort", string(query.Sort)),
		slog.Int("page", query.Page),
		slog.Int64("total", page.Total),
	)
	shared.RespondWithJSON(w, r, http.StatusOK, page)
}

// GetCamp handles GET /camps/{id}
func (h *CampHandler) GetCamp(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	camp, err := h.camps.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get camp")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, camp)
}

// PopularCamps handles GET /popular-camps
func (h *CampHandler) PopularCamps(w http.ResponseWriter, r *http.Request) {
	camps, err := h.camps.Popular(r.Context(), store.PopularCampLimit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get popular camps")
		return
	}
	if camps == nil {
		camps = []*domain.Camp{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, camps)
}

// UpdateCamp handles PATCH /camps/{id}
func (h *CampHandler) UpdateCamp(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateCampRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update := req.toDomain()
	if err := update.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.camps.Update(r.Context(), id, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update camp")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updateResponse(res))
}

// IncrementParticipants handles PATCH /camps/{id}/increment-participants
func (h *CampHandler) IncrementParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.camps.IncrementParticipants(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update participant count")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updateResponse(res))
}

// DeleteCamp handles DELETE /camps/{id}
func (h *CampHandler) DeleteCamp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.camps.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete camp")
		return
	}

	log.Info("camp deleted", slog.String("camp_id", id.Hex()))
	shared.RespondWithJSON(w, r, http.StatusOK, deleteResponse(res))
}
