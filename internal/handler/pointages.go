package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aymentigui/bus-pointage/internal/domain"
	"github.com/aymentigui/bus-pointage/internal/report"
	"github.com/aymentigui/bus-pointage/internal/repository"
)

func (h *Handler) CreatePointage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nom       string `json:"nom" validate:"required"`
		Telephone string `json:"telephone" validate:"required"`
		Hotel     string `json:"hotel" validate:"required"`
		Pointages []struct {
			Date  string `json:"date" validate:"required,datetime=2006-01-02"`
			Buses []struct {
				Matricule string `json:"matricule" validate:"required"`
				Rotations int32  `json:"rotations" validate:"required,gte=1"`
			} `json:"buses" validate:"required,min=1,dive"`
		} `json:"pointages" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := &domain.User{
		Nom:       req.Nom,
		Telephone: req.Telephone,
		Hotel:     req.Hotel,
		Pointages: make([]domain.Pointage, 0, len(req.Pointages)),
	}

	for _, p := range req.Pointages {
		pointage := domain.Pointage{
			Date:  p.Date,
			Buses: make([]domain.Bus, 0, len(p.Buses)),
		}
		for _, bus := range p.Buses {
			pointage.Buses = append(pointage.Buses, domain.Bus{
				Matricule: bus.Matricule,
				Rotations: bus.Rotations,
			})
		}
		user.Pointages = append(user.Pointages, pointage)
	}

	// Deux entrées pour la même date sont fusionnées, comme dans le formulaire
	user.Pointages = domain.MergePointagesByDate(user.Pointages)

	if err := h.repository.CreateUserWithPointages(user); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "buses_rotations_check":
				h.errorResponse(w, r, "Le nombre de rotations doit être d'au moins 1")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Pointage enregistré avec succès", user)
}

func (h *Handler) GetAllUsersWithPointages(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsersWithPointages()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Pointages récupérés avec succès", users)
}

// pointageFilterFromQuery traduit les paramètres d'URL en filtre typé.
// Un paramètre absent ou vide n'ajoute aucun critère.
func pointageFilterFromQuery(r *http.Request) repository.PointageFilter {
	filter := repository.PointageFilter{}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	return filter
}

func (h *Handler) GetPointages(w http.ResponseWriter, r *http.Request) {
	pointages, err := h.repository.GetPointages(pointageFilterFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Pointages récupérés avec succès", struct {
		Pointages []*domain.Pointage `json:"pointages"`
		Totals    report.Totals      `json:"totals"`
	}{
		Pointages: pointages,
		Totals:    report.ComputeTotals(pointages),
	})
}

func (h *Handler) GetPointagesParHotel(w http.ResponseWriter, r *http.Request) {
	pointages, err := h.repository.GetPointages(pointageFilterFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Pointages regroupés par hôtel", report.GroupPointagesByHotel(pointages))
}
