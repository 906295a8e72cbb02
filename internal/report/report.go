// Package report regroupe et agrège des listes de pointages déjà chargées en
// mémoire. Toutes les fonctions sont pures et déterministes : même entrée,
// même sortie, aucune E/S.
package report

import (
	"sort"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

// EventRecord est un événement tel qu'il apparaît dans un groupe : type,
// heure rendue dans le fuseau d'affichage et position.
type EventRecord struct {
	Type      domain.TypePointage `json:"type"`
	Heure     string              `json:"heure"`
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	CreatedAt time.Time           `json:"createdAt"`
}

// PersonDayGroup rassemble les événements d'une même personne, d'un même
// hôtel et d'un même jour calendaire.
type PersonDayGroup struct {
	Nom       string        `json:"nom"`
	Telephone string        `json:"telephone"`
	Hotel     string        `json:"hotel"`
	Date      string        `json:"date"`
	Pointages []EventRecord `json:"pointages"`
}

type personDayKey struct {
	nom       string
	telephone string
	hotel     string
	date      string
}

// GroupEventsByPerson regroupe les événements par (nom, téléphone, hôtel,
// jour calendaire dans loc). Deux événements partageant cette clé finissent
// toujours dans le même groupe, quel que soit leur ordre d'arrivée ; au sein
// d'un groupe l'ordre d'arrivée est conservé. Les groupes sont renvoyés dans
// l'ordre de première apparition.
func GroupEventsByPerson(events []domain.PointageEmploye, loc *time.Location) []PersonDayGroup {
	groups := make([]PersonDayGroup, 0)
	indexByKey := make(map[personDayKey]int)

	for _, e := range events {
		date := e.Timestamp.In(loc).Format("2006-01-02")
		key := personDayKey{nom: e.Nom, telephone: e.Telephone, hotel: e.Hotel, date: date}

		i, exists := indexByKey[key]
		if !exists {
			i = len(groups)
			indexByKey[key] = i
			groups = append(groups, PersonDayGroup{
				Nom:       e.Nom,
				Telephone: e.Telephone,
				Hotel:     e.Hotel,
				Date:      date,
				Pointages: make([]EventRecord, 0),
			})
		}

		groups[i].Pointages = append(groups[i].Pointages, EventRecord{
			Type:      e.Type,
			Heure:     e.Timestamp.In(loc).Format("15:04:05"),
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
			CreatedAt: e.CreatedAt,
		})
	}

	return groups
}

// HotelGroup rassemble les pointages d'un même hôtel avec ses agrégats.
type HotelGroup struct {
	Hotel          string             `json:"hotel"`
	Pointages      []*domain.Pointage `json:"pointages"`
	TotalRotations int32              `json:"totalRotations"`
	NbPersonnes    int                `json:"nbPersonnes"`
}

// GroupPointagesByHotel regroupe les pointages par hôtel (correspondance
// exacte, sensible à la casse). Chaque groupe cumule la somme des rotations
// de tous les bus de ses membres et le nombre de personnes distinctes
// (identité = nom + téléphone, pas l'entrée). Un pointage sans bus compte
// pour zéro rotation mais reste membre du groupe. Les groupes sont triés par
// nom d'hôtel croissant.
func GroupPointagesByHotel(pointages []*domain.Pointage) []HotelGroup {
	groupsMap := make(map[string]*HotelGroup)
	persons := make(map[string]map[string]struct{}) // hôtel -> identités vues

	for _, p := range pointages {
		hotel := p.User.Hotel

		group, exists := groupsMap[hotel]
		if !exists {
			group = &HotelGroup{
				Hotel:     hotel,
				Pointages: make([]*domain.Pointage, 0),
			}
			groupsMap[hotel] = group
			persons[hotel] = make(map[string]struct{})
		}

		group.Pointages = append(group.Pointages, p)
		group.TotalRotations += p.TotalRotations()
		persons[hotel][p.User.Nom+"\x00"+p.User.Telephone] = struct{}{}
	}

	groups := make([]HotelGroup, 0, len(groupsMap))
	for hotel, group := range groupsMap {
		group.NbPersonnes = len(persons[hotel])
		groups = append(groups, *group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Hotel < groups[j].Hotel
	})

	return groups
}

// Totals sont les compteurs globaux affichés en tête de la vue
// d'administration.
type Totals struct {
	NbPointages    int   `json:"nbPointages"`
	TotalRotations int32 `json:"totalRotations"`
	NbHotels       int   `json:"nbHotels"`
}

func ComputeTotals(pointages []*domain.Pointage) Totals {
	totals := Totals{NbPointages: len(pointages)}
	hotels := make(map[string]struct{})

	for _, p := range pointages {
		totals.TotalRotations += p.TotalRotations()
		hotels[p.User.Hotel] = struct{}{}
	}

	totals.NbHotels = len(hotels)
	return totals
}
