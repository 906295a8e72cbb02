package handler

import (
	"net/http"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
	"github.com/aymentigui/bus-pointage/internal/report"
)

func (h *Handler) CreatePointageEmploye(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nom       string `json:"nom" validate:"required"`
		Telephone string `json:"telephone" validate:"required"`
		Hotel     string `json:"hotel" validate:"required"`
		Type      string `json:"type" validate:"required,oneof=debut fin"`
		Location  *struct {
			Latitude  *float64 `json:"latitude" validate:"required"`
			Longitude *float64 `json:"longitude" validate:"required"`
		} `json:"location" validate:"required"`
		Timestamp time.Time `json:"timestamp" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	pe := &domain.PointageEmploye{
		Nom:       req.Nom,
		Telephone: req.Telephone,
		Hotel:     req.Hotel,
		Type:      domain.TypePointage(req.Type),
		Latitude:  *req.Location.Latitude,
		Longitude: *req.Location.Longitude,
		Timestamp: req.Timestamp,
	}

	if err := h.repository.InsertPointageEmploye(pe); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Pointage "+req.Type+" enregistré avec succès", pe)
}

func (h *Handler) GetAllPointagesEmployes(w http.ResponseWriter, r *http.Request) {
	pointages, err := h.repository.GetAllPointagesEmployes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Pointages récupérés avec succès", pointages)
}

// eventFilterFromQuery traduit les paramètres d'URL en prédicats typés.
// Un paramètre absent ou vide reste « toujours vrai ».
func (h *Handler) eventFilterFromQuery(r *http.Request) (report.EventFilter, error) {
	filter := report.EventFilter{
		Search: r.URL.Query().Get("search"),
		Type:   domain.TypePointage(r.URL.Query().Get("type")),
	}

	if date := r.URL.Query().Get("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, h.location)
		if err != nil {
			return report.EventFilter{}, err
		}
		filter.Day = &day
	}

	return filter, nil
}

func (h *Handler) GetPointagesEmployesGroupes(w http.ResponseWriter, r *http.Request) {
	filter, err := h.eventFilterFromQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	events, err := h.repository.GetAllPointagesEmployes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	filtered := report.FilterEvents(events, filter, h.location)
	h.successResponse(w, r, "Pointages regroupés par personne", report.GroupEventsByPerson(filtered, h.location))
}
