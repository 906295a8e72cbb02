package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

// Le navigateur conservait nom et téléphone dans son stockage local ; ici
// chaque appareil les confie au serveur sous une clé qu'il génère lui-même.

func (h *Handler) profileKey(deviceID string) string {
	return fmt.Sprintf("profile_%s", deviceID)
}

func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "deviceID")

	var req struct {
		Nom       string `json:"nom" validate:"required"`
		Telephone string `json:"telephone" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	profile := domain.Profile{Nom: req.Nom, Telephone: req.Telephone}
	data, err := json.Marshal(profile)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, h.profileKey(deviceID), data, time.Duration(h.config.Profile.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Profil enregistré avec succès", profile)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	deviceID := chi.URLParam(r, "deviceID")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, h.profileKey(deviceID)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "Profil introuvable")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Profil récupéré avec succès", profile)
}
