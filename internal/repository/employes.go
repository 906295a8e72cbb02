package repository

import (
	"context"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
	"github.com/google/uuid"
)

func (r *Repository) InsertPointageEmploye(pe *domain.PointageEmploye) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	pe.ID = uuid.New()

	query := `
		INSERT INTO pointages_employes (id, nom, telephone, hotel, type, latitude, longitude, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	return r.dbpool.QueryRowContext(ctx, query,
		pe.ID, pe.Nom, pe.Telephone, pe.Hotel, pe.Type, pe.Latitude, pe.Longitude, pe.Timestamp,
	).Scan(&pe.CreatedAt)
}

// GetAllPointagesEmployes renvoie tous les événements, du plus récent au plus
// ancien. Le filtrage et le regroupement se font côté lecture, en mémoire.
func (r *Repository) GetAllPointagesEmployes() ([]domain.PointageEmploye, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, nom, telephone, hotel, type, latitude, longitude, timestamp, created_at
		FROM pointages_employes
		ORDER BY timestamp DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pointages := make([]domain.PointageEmploye, 0)

	for rows.Next() {
		var pe domain.PointageEmploye
		dst := []any{
			&pe.ID,
			&pe.Nom,
			&pe.Telephone,
			&pe.Hotel,
			&pe.Type,
			&pe.Latitude,
			&pe.Longitude,
			&pe.Timestamp,
			&pe.CreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		pointages = append(pointages, pe)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pointages, nil
}
