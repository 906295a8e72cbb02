package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/aymentigui/bus-pointage/internal/config"
	"github.com/aymentigui/bus-pointage/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	location    *time.Location

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	fr := fr.New()
	uni := ut.New(fr, fr)
	trans, _ := uni.GetTranslator("fr")
	if err := fr_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		location:    loc,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api", func(r chi.Router) {
		// Formulaires publics
		r.Route("/pointage", func(r chi.Router) {
			r.Post("/", h.CreatePointage)
			r.Get("/", h.GetAllUsersWithPointages)
		})
		r.Route("/employe", func(r chi.Router) {
			r.Post("/", h.CreatePointageEmploye)
			r.Get("/", h.GetAllPointagesEmployes)
		})

		// Profil mémorisé par appareil
		r.Route("/profile/{deviceID}", func(r chi.Router) {
			r.Put("/", h.SaveProfile)
			r.Get("/", h.GetProfile)
		})

		// Vues d'administration
		r.Route("/admin", func(r chi.Router) {
			r.Route("/pointages", func(r chi.Router) {
				r.Get("/", h.GetPointages)
				r.Get("/hotels", h.GetPointagesParHotel)
				r.Get("/export", h.ExportPointages)
			})
			r.Route("/employes", func(r chi.Router) {
				r.Get("/groupes", h.GetPointagesEmployesGroupes)
				r.Get("/export", h.ExportPointagesEmployes)
			})
			r.Post("/exports/mail", h.SendExportByMail)
		})
	})
}
