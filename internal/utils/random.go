package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/aymentigui/bus-pointage/internal/domain"
)

var prenoms = []string{
	"Amine", "Karim", "Yacine", "Sofiane", "Mehdi", "Rachid", "Nadir", "Walid",
	"Samir", "Farid", "Lina", "Amel", "Sarah", "Meriem", "Yasmine", "Nour",
}
var noms = []string{
	"Benali", "Haddad", "Cherif", "Bouzid", "Meziane", "Saidi", "Brahimi",
	"Ziani", "Khelifi", "Belkacem", "Mansouri", "Hamidi",
}
var hotels = []string{
	"Hôtel El Aurassi", "Sofitel Alger", "Hôtel Saint George", "Ibis Alger",
	"Sheraton Club des Pins", "Mercure Alger", "AZ Hôtel Kouba",
}

func GenerateRandomNom() string {
	return prenoms[rand.Intn(len(prenoms))] + " " + noms[rand.Intn(len(noms))]
}

func GenerateRandomTelephone() string {
	prefixes := []string{"05", "06", "07"}
	tel := prefixes[rand.Intn(len(prefixes))]
	for i := 0; i < 8; i++ {
		tel += fmt.Sprintf("%d", rand.Intn(10))
	}
	return tel
}

func GenerateRandomHotel() string {
	return hotels[rand.Intn(len(hotels))]
}

// GenerateRandomMatricule imite un matricule d'immatriculation algérien.
func GenerateRandomMatricule() string {
	return fmt.Sprintf("%05d-1%d%d-16", rand.Intn(100000), rand.Intn(10), rand.Intn(10))
}

// GenerateRandomUserWithPointages produit un utilisateur avec des pointages
// sur les derniers jours, chacun avec un à trois bus.
func GenerateRandomUserWithPointages() *domain.User {
	user := &domain.User{
		Nom:       GenerateRandomNom(),
		Telephone: GenerateRandomTelephone(),
		Hotel:     GenerateRandomHotel(),
	}

	nbDates := rand.Intn(3) + 1
	for i := 0; i < nbDates; i++ {
		pointage := domain.Pointage{
			Date: time.Now().AddDate(0, 0, -i).Format("2006-01-02"),
		}
		nbBuses := rand.Intn(3) + 1
		for j := 0; j < nbBuses; j++ {
			pointage.Buses = append(pointage.Buses, domain.Bus{
				Matricule: GenerateRandomMatricule(),
				Rotations: int32(rand.Intn(5) + 1),
			})
		}
		user.Pointages = append(user.Pointages, pointage)
	}

	return user
}

// GenerateRandomEmployeJournee produit la paire d'événements d'une journée de
// travail : un début le matin, une fin le soir, autour du centre d'Alger.
func GenerateRandomEmployeJournee() []*domain.PointageEmploye {
	nom := GenerateRandomNom()
	telephone := GenerateRandomTelephone()
	hotel := GenerateRandomHotel()
	day := time.Now().AddDate(0, 0, -rand.Intn(7))

	debut := &domain.PointageEmploye{
		Nom:       nom,
		Telephone: telephone,
		Hotel:     hotel,
		Type:      domain.TypeDebut,
		Latitude:  36.75 + rand.Float64()*0.05,
		Longitude: 3.04 + rand.Float64()*0.05,
		Timestamp: time.Date(day.Year(), day.Month(), day.Day(), 7+rand.Intn(2), rand.Intn(60), rand.Intn(60), 0, day.Location()),
	}
	fin := &domain.PointageEmploye{
		Nom:       nom,
		Telephone: telephone,
		Hotel:     hotel,
		Type:      domain.TypeFin,
		Latitude:  36.75 + rand.Float64()*0.05,
		Longitude: 3.04 + rand.Float64()*0.05,
		Timestamp: time.Date(day.Year(), day.Month(), day.Day(), 17+rand.Intn(3), rand.Intn(60), rand.Intn(60), 0, day.Location()),
	}

	return []*domain.PointageEmploye{debut, fin}
}
