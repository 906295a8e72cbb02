package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

func algiers(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Algiers")
	require.NoError(t, err)
	return loc
}

func TestEmployesCSVEmpty(t *testing.T) {
	out := string(EmployesCSV(nil, algiers(t)))

	require.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "Nom,Téléphone,Hôtel,Date,Heure,Type,Position", lines[0])
}

func TestEmployesCSVRows(t *testing.T) {
	loc := algiers(t)
	events := []domain.PointageEmploye{
		{
			Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis",
			Type: domain.TypeDebut, Latitude: 36.7525, Longitude: 3.042,
			Timestamp: time.Date(2024, 3, 10, 8, 5, 30, 0, loc),
		},
		{
			Nom: "Karim Haddad", Telephone: "0551000002", Hotel: `Hôtel "Le Phare"`,
			Type: domain.TypeFin, Latitude: 36.76, Longitude: 3.05,
			Timestamp: time.Date(2024, 3, 10, 17, 45, 0, 0, loc),
		},
	}

	out := string(EmployesCSV(events, loc))
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")

	// en-tête + une ligne par événement
	require.Len(t, lines, 3)
	assert.Equal(t, `"Amine Benali","0551000001","Ibis","2024-03-10","08:05:30","debut","36.7525, 3.042"`, lines[1])
	// guillemets internes doublés
	assert.Equal(t, `"Karim Haddad","0551000002","Hôtel ""Le Phare""","2024-03-10","17:45:00","fin","36.76, 3.05"`, lines[2])

	// chaque champ des lignes de données est entre guillemets
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, `"`))
		assert.True(t, strings.HasSuffix(line, `"`))
		assert.Equal(t, 6, strings.Count(line, `","`))
	}
}

func TestEmployesCSVStable(t *testing.T) {
	loc := algiers(t)
	events := []domain.PointageEmploye{
		{
			Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis",
			Type: domain.TypeDebut, Latitude: 36.75, Longitude: 3.04,
			Timestamp: time.Date(2024, 3, 10, 8, 0, 0, 0, loc),
		},
	}

	assert.Equal(t, EmployesCSV(events, loc), EmployesCSV(events, loc))
}

func TestPointagesCSV(t *testing.T) {
	pointages := []*domain.Pointage{
		{
			Date: "2024-03-10",
			User: &domain.User{Nom: "Amine Benali", Telephone: "0551000001", Hotel: "Ibis"},
			Buses: []domain.Bus{
				{Matricule: "00123-118-16", Rotations: 3},
				{Matricule: "00456-119-16", Rotations: 1},
			},
		},
		{
			// un pointage sans bus produit quand même une ligne
			Date: "2024-03-11",
			User: &domain.User{Nom: "Karim Haddad", Telephone: "0551000002", Hotel: "Sofitel"},
		},
	}

	out := string(PointagesCSV(pointages))
	require.True(t, strings.HasPrefix(out, "\ufeff"))
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")

	require.Len(t, lines, 4) // en-tête + deux bus + un pointage sans bus
	assert.Equal(t, "Nom,Téléphone,Hôtel,Date,Matricule,Rotations", lines[0])
	assert.Equal(t, `"Amine Benali","0551000001","Ibis","2024-03-10","00123-118-16","3"`, lines[1])
	assert.Equal(t, `"Amine Benali","0551000001","Ibis","2024-03-10","00456-119-16","1"`, lines[2])
	assert.Equal(t, `"Karim Haddad","0551000002","Sofitel","2024-03-11","",""`, lines[3])
}

func TestFilename(t *testing.T) {
	loc := algiers(t)
	// 23h30 UTC le 10 mars est déjà le 11 mars à Alger
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "pointages_2024-03-11.csv", Filename("pointages", now, loc))
}
