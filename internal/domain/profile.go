package domain

// Profile contient les identifiants qu'un appareil mémorise entre deux
// pointages pour préremplir le formulaire.
type Profile struct {
	Nom       string `json:"nom"`
	Telephone string `json:"telephone"`
}
