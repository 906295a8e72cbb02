package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/aymentigui/bus-pointage/internal/domain"
	"github.com/aymentigui/bus-pointage/internal/export"
	"github.com/aymentigui/bus-pointage/internal/report"
	"github.com/aymentigui/bus-pointage/internal/repository"
)

func (h *Handler) writeCSV(w http.ResponseWriter, filename string, csv []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csv)
}

func (h *Handler) ExportPointages(w http.ResponseWriter, r *http.Request) {
	pointages, err := h.repository.GetPointages(pointageFilterFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeCSV(w, export.Filename("pointages", time.Now(), h.location), export.PointagesCSV(pointages))
}

func (h *Handler) ExportPointagesEmployes(w http.ResponseWriter, r *http.Request) {
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

	// L'export reprend la liste filtrée, pas la liste regroupée
	filtered := report.FilterEvents(events, filter, h.location)
	h.writeCSV(w, export.Filename("pointages", time.Now(), h.location), export.EmployesCSV(filtered, h.location))
}

// SendExportByMail construit l'export demandé puis le confie à la file
// d'attente ; le worker mail l'enverra en pièce jointe.
func (h *Handler) SendExportByMail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To     string `json:"to" validate:"required,email"`
		Kind   string `json:"kind" validate:"required,oneof=pointages employes"`
		Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Search string `json:"search"`
		Type   string `json:"type" validate:"omitempty,oneof=debut fin"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var csv []byte
	switch req.Kind {
	case "pointages":
		filter := repository.PointageFilter{}
		if req.Date != "" {
			filter.Date = &req.Date
		}
		if req.Search != "" {
			filter.Search = &req.Search
		}
		pointages, err := h.repository.GetPointages(filter)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		csv = export.PointagesCSV(pointages)
	case "employes":
		filter := report.EventFilter{
			Search: req.Search,
			Type:   domain.TypePointage(req.Type),
		}
		if req.Date != "" {
			day, err := time.ParseInLocation("2006-01-02", req.Date, h.location)
			if err != nil {
				h.badRequest(w, r, err)
				return
			}
			filter.Day = &day
		}
		events, err := h.repository.GetAllPointagesEmployes()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		csv = export.EmployesCSV(report.FilterEvents(events, filter, h.location), h.location)
	}

	mailMessage := domain.MailMessage{
		Type: "export",
		To:   req.To,
		Data: domain.ExportMailData{
			Filename: export.Filename("pointages", time.Now(), h.location),
			CSV:      string(csv),
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"export_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "L'export sera envoyé par email", nil)
}
