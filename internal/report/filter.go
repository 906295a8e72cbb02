package report

import (
	"strings"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

// EventFilter combine trois prédicats indépendants par un ET logique. Un
// champ à sa valeur zéro est absent et équivaut à « toujours vrai » ; effacer
// un filtre ne doit jamais se confondre avec « correspondre au vide ».
type EventFilter struct {
	Search string              // sous-chaîne, insensible à la casse, sur nom, téléphone ou hôtel
	Day    *time.Time          // jour calendaire, comparé dans le fuseau d'affichage
	Type   domain.TypePointage // correspondance exacte ; "" = tous les types
}

// Match indique si l'événement satisfait tous les prédicats actifs. Les deux
// horodatages sont ramenés dans loc avant la comparaison de jour : comparer
// des représentations brutes issues de fuseaux différents serait incorrect.
func (f EventFilter) Match(e domain.PointageEmploye, loc *time.Location) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Nom), term) &&
			!strings.Contains(strings.ToLower(e.Telephone), term) &&
			!strings.Contains(strings.ToLower(e.Hotel), term) {
			return false
		}
	}

	if f.Day != nil {
		if e.Timestamp.In(loc).Format("2006-01-02") != f.Day.In(loc).Format("2006-01-02") {
			return false
		}
	}

	if f.Type != "" && e.Type != f.Type {
		return false
	}

	return true
}

// FilterEvents renvoie les événements satisfaisant le filtre, dans leur ordre
// d'origine. Une liste sans correspondance est vide, jamais nil.
func FilterEvents(events []domain.PointageEmploye, f EventFilter, loc *time.Location) []domain.PointageEmploye {
	filtered := make([]domain.PointageEmploye, 0, len(events))
	for _, e := range events {
		if f.Match(e, loc) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
