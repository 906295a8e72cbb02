// Package export aplatit des listes de pointages déjà filtrées en texte
// délimité. La sortie est stable : la même liste produit toujours les mêmes
// octets.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

// Préfixe UTF-8 exigé par les tableurs qui ne détectent pas l'encodage.
const bom = "\ufeff"

var employeHeaders = []string{"Nom", "Téléphone", "Hôtel", "Date", "Heure", "Type", "Position"}
var pointageHeaders = []string{"Nom", "Téléphone", "Hôtel", "Date", "Matricule", "Rotations"}

// EmployesCSV sérialise une ligne par événement, dates et heures rendues dans
// le fuseau d'affichage. Une liste vide produit l'en-tête seul.
func EmployesCSV(events []domain.PointageEmploye, loc *time.Location) []byte {
	lines := make([]string, 0, len(events)+1)
	lines = append(lines, strings.Join(employeHeaders, ","))

	for _, e := range events {
		ts := e.Timestamp.In(loc)
		lines = append(lines, writeRow([]string{
			e.Nom,
			e.Telephone,
			e.Hotel,
			ts.Format("2006-01-02"),
			ts.Format("15:04:05"),
			string(e.Type),
			fmt.Sprintf("%v, %v", e.Latitude, e.Longitude),
		}))
	}

	return []byte(bom + strings.Join(lines, "\n"))
}

// PointagesCSV sérialise une ligne par bus, les champs du pointage parent
// répétés sur chacune. Un pointage sans bus produit quand même une ligne,
// avec matricule et rotations vides.
func PointagesCSV(pointages []*domain.Pointage) []byte {
	lines := make([]string, 0, len(pointages)+1)
	lines = append(lines, strings.Join(pointageHeaders, ","))

	for _, p := range pointages {
		if len(p.Buses) == 0 {
			lines = append(lines, writeRow([]string{p.User.Nom, p.User.Telephone, p.User.Hotel, p.Date, "", ""}))
			continue
		}
		for _, bus := range p.Buses {
			lines = append(lines, writeRow([]string{
				p.User.Nom,
				p.User.Telephone,
				p.User.Hotel,
				p.Date,
				bus.Matricule,
				fmt.Sprintf("%d", bus.Rotations),
			}))
		}
	}

	return []byte(bom + strings.Join(lines, "\n"))
}

// Filename renvoie le nom de fichier de téléchargement, daté du jour courant
// dans le fuseau d'affichage. La date n'apparaît que dans le nom, jamais dans
// le contenu des lignes.
func Filename(prefix string, now time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.In(loc).Format("2006-01-02"))
}

// writeRow met chaque champ entre guillemets, guillemets internes doublés,
// champs séparés par des virgules.
func writeRow(fields []string) string {
	quoted := make([]string, 0, len(fields))
	for _, field := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(field, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, ",")
}
