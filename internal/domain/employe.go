package domain

import (
	"time"

	"github.com/google/uuid"
)

type TypePointage string

const (
	TypeDebut TypePointage = "debut"
	TypeFin   TypePointage = "fin"
)

// PointageEmploye est un événement ponctuel de prise ou de fin de service,
// horodaté et géolocalisé. Contrairement aux pointages de rotations, il n'a
// pas d'enregistrements enfants : le regroupement par personne et par jour
// est dérivé à la lecture, jamais persisté.
type PointageEmploye struct {
	ID        uuid.UUID    `json:"id"`
	Nom       string       `json:"nom"`
	Telephone string       `json:"telephone"`
	Hotel     string       `json:"hotel"`
	Type      TypePointage `json:"type"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Timestamp time.Time    `json:"timestamp"`
	CreatedAt time.Time    `json:"createdAt"`
}
