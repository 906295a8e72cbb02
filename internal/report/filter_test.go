package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

func mkEvent(nom, telephone, hotel string, typ domain.TypePointage, ts time.Time) domain.PointageEmploye {
	return domain.PointageEmploye{
		Nom:       nom,
		Telephone: telephone,
		Hotel:     hotel,
		Type:      typ,
		Timestamp: ts,
	}
}

func algiers(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Algiers")
	require.NoError(t, err)
	return loc
}

func TestEventFilterSearch(t *testing.T) {
	loc := algiers(t)
	e := mkEvent("Amine Benali", "0551000001", "Ibis Alger", domain.TypeDebut, time.Now())

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"nom, insensible à la casse", "benali", true},
		{"hôtel", "ibis", true},
		{"téléphone", "0551", true},
		{"sous-chaîne sans correspondance", "sheraton", false},
		{"filtre absent = toujours vrai", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EventFilter{Search: tt.search}.Match(e, loc))
		})
	}
}

func TestEventFilterDayNormalizesTimezones(t *testing.T) {
	loc := algiers(t)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	filter := EventFilter{Day: &day}

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"veille 23h59 à Alger", time.Date(2024, 3, 9, 23, 59, 0, 0, loc), false},
		{"lendemain 00h01 à Alger", time.Date(2024, 3, 11, 0, 1, 0, 0, loc), false},
		{"même jour à Alger", time.Date(2024, 3, 10, 12, 0, 0, 0, loc), true},
		// 23h59 UTC la veille tombe le 10 mars une fois ramené à Alger (UTC+1)
		{"veille 23h59 UTC", time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC), true},
		// 23h30 UTC le jour même tombe le 11 mars à Alger
		{"même jour 23h30 UTC", time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mkEvent("Amine Benali", "0551000001", "Ibis", domain.TypeDebut, tt.ts)
			assert.Equal(t, tt.want, filter.Match(e, loc))
		})
	}
}

func TestEventFilterType(t *testing.T) {
	loc := algiers(t)
	debut := mkEvent("Amine Benali", "0551000001", "Ibis", domain.TypeDebut, time.Now())
	fin := mkEvent("Amine Benali", "0551000001", "Ibis", domain.TypeFin, time.Now())

	assert.True(t, EventFilter{Type: domain.TypeDebut}.Match(debut, loc))
	assert.False(t, EventFilter{Type: domain.TypeDebut}.Match(fin, loc))
	// type absent = tous les types
	assert.True(t, EventFilter{}.Match(fin, loc))
}

func TestFilterEventsConjunctionAndClearing(t *testing.T) {
	loc := algiers(t)
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)

	events := []domain.PointageEmploye{
		mkEvent("Amine Benali", "0551000001", "Ibis", domain.TypeDebut, time.Date(2024, 3, 10, 8, 0, 0, 0, loc)),
		mkEvent("Amine Benali", "0551000001", "Ibis", domain.TypeFin, time.Date(2024, 3, 10, 17, 0, 0, 0, loc)),
		mkEvent("Karim Haddad", "0551000002", "Sofitel", domain.TypeDebut, time.Date(2024, 3, 10, 8, 0, 0, 0, loc)),
		mkEvent("Amine Benali", "0551000001", "Ibis", domain.TypeDebut, time.Date(2024, 3, 11, 8, 0, 0, 0, loc)),
	}

	// critères combinés par ET
	filtered := FilterEvents(events, EventFilter{Search: "Ibis", Day: &day, Type: domain.TypeDebut}, loc)
	require.Len(t, filtered, 1)
	assert.Equal(t, domain.TypeDebut, filtered[0].Type)
	assert.Equal(t, "Ibis", filtered[0].Hotel)

	// effacer tous les filtres restaure la liste complète
	cleared := FilterEvents(events, EventFilter{}, loc)
	assert.Equal(t, events, cleared)

	// aucune correspondance renvoie une liste vide, pas une erreur
	none := FilterEvents(events, EventFilter{Search: "Mercure"}, loc)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
