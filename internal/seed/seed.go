// Package seed remplit la base de données de jeu pour le développement local.
package seed

import (
	"log/slog"

	"github.com/aymentigui/bus-pointage/internal/repository"
	"github.com/aymentigui/bus-pointage/internal/utils"
)

func SeedUsers(r *repository.Repository, n int) {
	cnt := n
	for i := 0; i < n; i++ {
		user := utils.GenerateRandomUserWithPointages()
		if err := r.CreateUserWithPointages(user); err != nil {
			slog.Error("impossible d'insérer l'utilisateur", slog.String("error", err.Error()))
			continue
		}
		cnt--
	}
	slog.Info("utilisateurs insérés", slog.Int("count", n-cnt))
}

func SeedEmployes(r *repository.Repository, n int) {
	cnt := 0
	for i := 0; i < n; i++ {
		for _, pe := range utils.GenerateRandomEmployeJournee() {
			if err := r.InsertPointageEmploye(pe); err != nil {
				slog.Error("impossible d'insérer le pointage employé", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
	}
	slog.Info("pointages employés insérés", slog.Int("count", cnt))
}
