package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
	"github.com/google/uuid"
)

// PointageFilter décrit les critères optionnels de la vue d'administration.
// Un champ nil signifie « pas de filtre », jamais « correspondre au vide ».
type PointageFilter struct {
	Date   *string // jour calendaire exact, au format "2006-01-02"
	Search *string // sous-chaîne insensible à la casse sur nom, hôtel ou téléphone
}

// CreateUserWithPointages insère l'utilisateur, ses pointages et leurs bus
// dans une même transaction : soit tout est écrit, soit rien ne l'est.
// Les identifiants et les dates de création sont renseignés sur place.
func (r *Repository) CreateUserWithPointages(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	user.ID = uuid.New()

	query := `
		INSERT INTO users (id, nom, telephone, hotel)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := tx.QueryRowContext(ctx, query, user.ID, user.Nom, user.Telephone, user.Hotel).Scan(&user.CreatedAt); err != nil {
		return err
	}

	for i := range user.Pointages {
		pointage := &user.Pointages[i]
		pointage.ID = uuid.New()

		query := `
			INSERT INTO pointages (id, user_id, date)
			VALUES ($1, $2, $3)
			RETURNING created_at
		`
		if err := tx.QueryRowContext(ctx, query, pointage.ID, user.ID, pointage.Date).Scan(&pointage.CreatedAt); err != nil {
			return err
		}

		for j := range pointage.Buses {
			bus := &pointage.Buses[j]
			bus.ID = uuid.New()

			query := `
				INSERT INTO buses (id, pointage_id, matricule, rotations)
				VALUES ($1, $2, $3, $4)
			`
			if _, err := tx.ExecContext(ctx, query, bus.ID, pointage.ID, bus.Matricule, bus.Rotations); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetAllUsersWithPointages renvoie tous les utilisateurs avec leurs pointages
// et bus imbriqués, du plus récent au plus ancien.
func (r *Repository) GetAllUsersWithPointages() ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			u.id, u.nom, u.telephone, u.hotel, u.created_at,
			p.id, p.date, p.created_at,
			b.id, b.matricule, b.rotations
		FROM users u
		LEFT JOIN pointages p ON p.user_id = u.id
		LEFT JOIN buses b ON b.pointage_id = p.id
		ORDER BY u.created_at DESC, p.created_at DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usersMap := make(map[uuid.UUID]*domain.User)
	pointagesMap := make(map[uuid.UUID]*domain.Pointage)
	userOrder := make([]uuid.UUID, 0)
	pointageOrder := make(map[uuid.UUID][]uuid.UUID) // userID -> pointageIDs

	for rows.Next() {
		var row struct {
			userID        uuid.UUID
			nom           string
			telephone     string
			hotel         string
			userCreatedAt time.Time
			pointageID    uuid.NullUUID
			date          *time.Time
			createdAt     *time.Time
			busID         uuid.NullUUID
			matricule     *string
			rotations     *int32
		}

		dst := []any{
			&row.userID,
			&row.nom,
			&row.telephone,
			&row.hotel,
			&row.userCreatedAt,
			&row.pointageID,
			&row.date,
			&row.createdAt,
			&row.busID,
			&row.matricule,
			&row.rotations,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := usersMap[row.userID]; !exists {
			usersMap[row.userID] = &domain.User{
				ID:        row.userID,
				Nom:       row.nom,
				Telephone: row.telephone,
				Hotel:     row.hotel,
				CreatedAt: row.userCreatedAt,
			}
			userOrder = append(userOrder, row.userID)
		}

		if !row.pointageID.Valid {
			// Utilisateur sans aucun pointage : ne devrait pas arriver via
			// l'ingestion, mais la lecture doit rester robuste.
			continue
		}

		if _, exists := pointagesMap[row.pointageID.UUID]; !exists {
			pointagesMap[row.pointageID.UUID] = &domain.Pointage{
				ID:        row.pointageID.UUID,
				Date:      row.date.Format("2006-01-02"),
				Buses:     make([]domain.Bus, 0),
				CreatedAt: *row.createdAt,
			}
			pointageOrder[row.userID] = append(pointageOrder[row.userID], row.pointageID.UUID)
		}

		if !row.busID.Valid {
			continue
		}

		pointagesMap[row.pointageID.UUID].Buses = append(pointagesMap[row.pointageID.UUID].Buses, domain.Bus{
			ID:        row.busID.UUID,
			Matricule: *row.matricule,
			Rotations: *row.rotations,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(userOrder))
	for _, userID := range userOrder {
		user := usersMap[userID]
		user.Pointages = make([]domain.Pointage, 0, len(pointageOrder[userID]))
		for _, pointageID := range pointageOrder[userID] {
			user.Pointages = append(user.Pointages, *pointagesMap[pointageID])
		}
		users = append(users, user)
	}

	return users, nil
}

// GetPointages renvoie les pointages à plat (avec utilisateur et bus
// rattachés) correspondant au filtre, du plus récent au plus ancien.
// Les critères du filtre sont combinés par ET ; aucune correspondance
// renvoie une liste vide.
func (r *Repository) GetPointages(filter PointageFilter) ([]*domain.Pointage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			p.id, p.date, p.created_at,
			u.id, u.nom, u.telephone, u.hotel, u.created_at,
			b.id, b.matricule, b.rotations
		FROM pointages p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN buses b ON b.pointage_id = p.id
	`

	conds := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.Date != nil {
		args = append(args, *filter.Date)
		conds = append(conds, fmt.Sprintf("p.date = $%d", len(args)))
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(u.nom ILIKE $%d OR u.hotel ILIKE $%d OR u.telephone ILIKE $%d)", n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pointagesMap := make(map[uuid.UUID]*domain.Pointage)
	order := make([]uuid.UUID, 0)

	for rows.Next() {
		var row struct {
			pointageID    uuid.UUID
			date          time.Time
			createdAt     time.Time
			userID        uuid.UUID
			nom           string
			telephone     string
			hotel         string
			userCreatedAt time.Time
			busID         uuid.NullUUID
			matricule     *string
			rotations     *int32
		}

		dst := []any{
			&row.pointageID,
			&row.date,
			&row.createdAt,
			&row.userID,
			&row.nom,
			&row.telephone,
			&row.hotel,
			&row.userCreatedAt,
			&row.busID,
			&row.matricule,
			&row.rotations,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := pointagesMap[row.pointageID]; !exists {
			pointagesMap[row.pointageID] = &domain.Pointage{
				ID:   row.pointageID,
				Date: row.date.Format("2006-01-02"),
				User: &domain.User{
					ID:        row.userID,
					Nom:       row.nom,
					Telephone: row.telephone,
					Hotel:     row.hotel,
					CreatedAt: row.userCreatedAt,
				},
				Buses:     make([]domain.Bus, 0),
				CreatedAt: row.createdAt,
			}
			order = append(order, row.pointageID)
		}

		if !row.busID.Valid {
			continue
		}

		pointagesMap[row.pointageID].Buses = append(pointagesMap[row.pointageID].Buses, domain.Bus{
			ID:        row.busID.UUID,
			Matricule: *row.matricule,
			Rotations: *row.rotations,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	pointages := make([]*domain.Pointage, 0, len(order))
	for _, pointageID := range order {
		pointages = append(pointages, pointagesMap[pointageID])
	}

	return pointages, nil
}
