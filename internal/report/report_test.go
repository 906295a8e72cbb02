package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

func mkPointage(nom, telephone, hotel string, rotations ...int32) *domain.Pointage {
	p := &domain.Pointage{
		Date: "2024-03-10",
		User: &domain.User{Nom: nom, Telephone: telephone, Hotel: hotel},
	}
	for i, r := range rotations {
		p.Buses = append(p.Buses, domain.Bus{Matricule: string(rune('A' + i)), Rotations: r})
	}
	return p
}

func TestGroupPointagesByHotel(t *testing.T) {
	pointages := []*domain.Pointage{
		mkPointage("Amine Benali", "0551000001", "Ibis", 1, 2), // 3 rotations
		mkPointage("Karim Haddad", "0551000002", "Ibis", 2, 3), // 5 rotations
		mkPointage("Amine Benali", "0551000001", "Ibis", 4),    // même personne, 2e entrée
		mkPointage("Lina Cherif", "0551000003", "Sofitel", 7),
		mkPointage("Nour Saidi", "0551000004", "Aurassi"), // aucun bus
	}

	groups := GroupPointagesByHotel(pointages)
	require.Len(t, groups, 3)

	// triés par hôtel croissant
	assert.Equal(t, "Aurassi", groups[0].Hotel)
	assert.Equal(t, "Ibis", groups[1].Hotel)
	assert.Equal(t, "Sofitel", groups[2].Hotel)

	ibis := groups[1]
	assert.Len(t, ibis.Pointages, 3)
	assert.Equal(t, int32(12), ibis.TotalRotations)
	// deux personnes distinctes malgré trois entrées
	assert.Equal(t, 2, ibis.NbPersonnes)

	// un pointage sans bus compte pour zéro rotation mais reste membre
	aurassi := groups[0]
	assert.Len(t, aurassi.Pointages, 1)
	assert.Equal(t, int32(0), aurassi.TotalRotations)
	assert.Equal(t, 1, aurassi.NbPersonnes)
}

func TestGroupPointagesByHotelSumExample(t *testing.T) {
	pointages := []*domain.Pointage{
		mkPointage("Amine Benali", "0551000001", "Ibis", 3),
		mkPointage("Karim Haddad", "0551000002", "Ibis", 5),
	}

	groups := GroupPointagesByHotel(pointages)
	require.Len(t, groups, 1)
	assert.Equal(t, int32(8), groups[0].TotalRotations)
}

func TestGroupPointagesByHotelOrderIndependent(t *testing.T) {
	pointages := []*domain.Pointage{
		mkPointage("Amine Benali", "0551000001", "Ibis", 1, 2),
		mkPointage("Karim Haddad", "0551000002", "Sofitel", 3),
		mkPointage("Lina Cherif", "0551000003", "Ibis", 4),
	}
	permuted := []*domain.Pointage{pointages[2], pointages[0], pointages[1]}

	groups := GroupPointagesByHotel(pointages)
	groupsPermuted := GroupPointagesByHotel(permuted)

	require.Len(t, groupsPermuted, len(groups))
	for i := range groups {
		assert.Equal(t, groups[i].Hotel, groupsPermuted[i].Hotel)
		assert.Equal(t, groups[i].TotalRotations, groupsPermuted[i].TotalRotations)
		assert.Equal(t, groups[i].NbPersonnes, groupsPermuted[i].NbPersonnes)
		assert.ElementsMatch(t, groups[i].Pointages, groupsPermuted[i].Pointages)
	}
}

func TestGroupEventsByPerson(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Algiers")
	require.NoError(t, err)

	debut := domain.PointageEmploye{
		Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis",
		Type:      domain.TypeDebut,
		Timestamp: time.Date(2024, 3, 10, 8, 0, 0, 0, loc),
	}
	fin := domain.PointageEmploye{
		Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis",
		Type:      domain.TypeFin,
		Timestamp: time.Date(2024, 3, 10, 17, 30, 0, 0, loc),
	}
	autre := domain.PointageEmploye{
		Nom: "Karim Haddad", Telephone: "0551000002", Hotel: "Ibis",
		Type:      domain.TypeDebut,
		Timestamp: time.Date(2024, 3, 10, 8, 15, 0, 0, loc),
	}

	groups := GroupEventsByPerson([]domain.PointageEmploye{debut, autre, fin}, loc)
	require.Len(t, groups, 2)

	// même clé => même groupe, quel que soit l'ordre d'arrivée
	assert.Equal(t, "Amine Benali", groups[0].Nom)
	assert.Equal(t, "2024-03-10", groups[0].Date)
	require.Len(t, groups[0].Pointages, 2)
	assert.Equal(t, domain.TypeDebut, groups[0].Pointages[0].Type)
	assert.Equal(t, "08:00:00", groups[0].Pointages[0].Heure)
	assert.Equal(t, domain.TypeFin, groups[0].Pointages[1].Type)
	assert.Equal(t, "17:30:00", groups[0].Pointages[1].Heure)

	require.Len(t, groups[1].Pointages, 1)
}

func TestGroupEventsByPersonDayInDisplayTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Algiers") // UTC+1, pas d'heure d'été
	require.NoError(t, err)

	// 23h30 UTC le 10 mars, soit 00h30 le 11 mars à Alger
	late := domain.PointageEmploye{
		Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis",
		Type:      domain.TypeFin,
		Timestamp: time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC),
	}
	early := domain.PointageEmploye{
		Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis",
		Type:      domain.TypeDebut,
		Timestamp: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC),
	}

	groups := GroupEventsByPerson([]domain.PointageEmploye{early, late}, loc)
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03-10", groups[0].Date)
	assert.Equal(t, "2024-03-11", groups[1].Date)
	assert.Equal(t, "00:30:00", groups[1].Pointages[0].Heure)
}

func TestComputeTotals(t *testing.T) {
	pointages := []*domain.Pointage{
		mkPointage("Amine Benali", "0551000001", "Ibis", 1, 2),
		mkPointage("Karim Haddad", "0551000002", "Sofitel", 3),
		mkPointage("Lina Cherif", "0551000003", "Ibis"),
	}

	totals := ComputeTotals(pointages)
	assert.Equal(t, 3, totals.NbPointages)
	assert.Equal(t, int32(6), totals.TotalRotations)
	assert.Equal(t, 2, totals.NbHotels)
}
