package domain

import (
	"time"

	"github.com/google/uuid"
)

type Bus struct {
	ID        uuid.UUID `json:"id"`
	Matricule string    `json:"matricule"`
	Rotations int32     `json:"rotations"`
}

type Pointage struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"` // jour calendaire "2006-01-02", sans heure
	User      *User     `json:"user,omitempty"`
	Buses     []Bus     `json:"buses"`
	CreatedAt time.Time `json:"createdAt"`
}

type User struct {
	ID        uuid.UUID  `json:"id"`
	Nom       string     `json:"nom"`
	Telephone string     `json:"telephone"`
	Hotel     string     `json:"hotel"`
	Pointages []Pointage `json:"pointages,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TotalRotations additionne les rotations de tous les bus du pointage.
func (p *Pointage) TotalRotations() int32 {
	var total int32
	for _, bus := range p.Buses {
		total += bus.Rotations
	}
	return total
}

// MergePointagesByDate fusionne les pointages qui partagent la même date en
// concaténant leurs listes de bus. L'ordre de première apparition des dates
// est conservé, ainsi que l'ordre des bus au sein d'une date.
func MergePointagesByDate(pointages []Pointage) []Pointage {
	merged := make([]Pointage, 0, len(pointages))
	indexByDate := make(map[string]int)

	for _, p := range pointages {
		if i, exists := indexByDate[p.Date]; exists {
			merged[i].Buses = append(merged[i].Buses, p.Buses...)
			continue
		}
		indexByDate[p.Date] = len(merged)
		merged = append(merged, Pointage{Date: p.Date, Buses: p.Buses})
	}

	return merged
}
