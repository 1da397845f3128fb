package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

func pathID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	return id, err == nil
}

// ------------- Cities -------------

func (h *CatalogHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCity
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	result, err := h.service.CreateCity(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseCreated(w, "City created", result)
}

func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCities(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Cities retrieved", result)
}

func (h *CatalogHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid city ID", nil)
		return
	}

	if err := h.service.DeleteCity(r.Context(), id); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "City deleted", nil)
}

// ------------- Cinemas -------------

func (h *CatalogHandler) CreateCinema(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCinema
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	result, err := h.service.CreateCinema(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseCreated(w, "Cinema created", result)
}

func (h *CatalogHandler) ListCinemas(w http.ResponseWriter, r *http.Request) {
	cityID := uuid.Nil
	if raw := r.URL.Query().Get("city_uid"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid city_uid", nil)
			return
		}
		cityID = parsed
	}

	result, err := h.service.ListCinemas(r.Context(), cityID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Cinemas retrieved", result)
}

func (h *CatalogHandler) UpdateCinema(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid cinema ID", nil)
		return
	}

	var req request.UpdateCinema
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	if err := h.service.UpdateCinema(r.Context(), id, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Cinema updated", nil)
}

func (h *CatalogHandler) SetCinemaActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid cinema ID", nil)
		return
	}

	req, ok := decodeSetActive(w, r)
	if !ok {
		return
	}

	if err := h.service.SetCinemaActive(r.Context(), id, *req.Active); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Cinema updated", nil)
}

func (h *CatalogHandler) DeleteCinema(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid cinema ID", nil)
		return
	}

	if err := h.service.DeleteCinema(r.Context(), id); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Cinema deleted", nil)
}

// ------------- Halls -------------

func (h *CatalogHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHall
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	result, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseCreated(w, "Hall created", result)
}

func (h *CatalogHandler) ListHalls(w http.ResponseWriter, r *http.Request) {
	cinemaID, err := uuid.Parse(r.URL.Query().Get("cinema_uid"))
	if err != nil {
		utils.ResponseBadRequest(w, "cinema_uid query parameter is required", nil)
		return
	}

	result, err := h.service.ListHalls(r.Context(), cinemaID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Halls retrieved", result)
}

func (h *CatalogHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid hall ID", nil)
		return
	}

	var req request.UpdateHall
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	if err := h.service.UpdateHall(r.Context(), id, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Hall updated", nil)
}

func (h *CatalogHandler) SetHallActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid hall ID", nil)
		return
	}

	req, ok := decodeSetActive(w, r)
	if !ok {
		return
	}

	if err := h.service.SetHallActive(r.Context(), id, *req.Active); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Hall updated", nil)
}

func (h *CatalogHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid hall ID", nil)
		return
	}

	if err := h.service.DeleteHall(r.Context(), id); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Hall deleted", nil)
}

func (h *CatalogHandler) RecreateSeats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid hall ID", nil)
		return
	}

	count, err := h.service.RecreateSeats(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Seats recreated", map[string]int{"seat_count": count})
}

// ------------- Seats -------------

func (h *CatalogHandler) ListSeats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid hall ID", nil)
		return
	}

	result, err := h.service.ListSeats(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Seats retrieved", result)
}

func (h *CatalogHandler) SetSeatActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid seat ID", nil)
		return
	}

	req, ok := decodeSetActive(w, r)
	if !ok {
		return
	}

	if err := h.service.SetSeatActive(r.Context(), id, *req.Active); err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Seat updated", nil)
}

func decodeSetActive(w http.ResponseWriter, r *http.Request) (*request.SetActive, bool) {
	var req request.SetActive
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return nil, false
	}

	return &req, true
}
