package desk

import "strings"

// Labels holds every user-visible string the Controller produces.
type Labels struct {
	Tab map[Tab]string
	Of  string

	SelectRow      string
	TitleAuthor    string
	EmptyField     string
	InvalidDate    string
	NothingChanged string

	Created      string
	CreateFailed string
	Updated      string
	UpdateFailed string
	Deleted      string
	DeleteFailed string
	Restored     string
	RestoreFail  string
	Purged       string
	PurgeFailed  string
	LoadFailed   string

	ConfirmDelete string // %s is the book title
	ConfirmPurge  string // %s is the book title

	HealthOK   string // %s is the reported status
	HealthDown string
}

var german = Labels{
	Tab: map[Tab]string{TabActive: "Bücher", TabTrash: "Papierkorb"},
	Of:  "von",

	SelectRow:      "Bitte eine Zeile auswählen.",
	TitleAuthor:    "Bitte Titel und Autor ausfüllen.",
	EmptyField:     "Felder dürfen nicht leer sein.",
	InvalidDate:    "Ungültiges Datum (erwartet JJJJ-MM-TT).",
	NothingChanged: "Keine Änderungen.",

	Created:      "Buch angelegt.",
	CreateFailed: "Buch konnte nicht angelegt werden.",
	Updated:      "Buch aktualisiert.",
	UpdateFailed: "Buch konnte nicht aktualisiert werden.",
	Deleted:      "Buch in den Papierkorb verschoben.",
	DeleteFailed: "Buch konnte nicht gelöscht werden.",
	Restored:     "Buch wiederhergestellt.",
	RestoreFail:  "Buch konnte nicht wiederhergestellt werden.",
	Purged:       "Buch endgültig gelöscht.",
	PurgeFailed:  "Buch konnte nicht endgültig gelöscht werden.",
	LoadFailed:   "Bücher konnten nicht geladen werden.",

	ConfirmDelete: "%q in den Papierkorb verschieben?",
	ConfirmPurge:  "%q endgültig löschen? Das kann nicht rückgängig gemacht werden.",

	HealthOK:   "Backend: %s",
	HealthDown: "Backend: nicht erreichbar",
}

var english = Labels{
	Tab: map[Tab]string{TabActive: "Books", TabTrash: "Trash"},
	Of:  "of",

	SelectRow:      "Please select a row.",
	TitleAuthor:    "Please fill in title and author.",
	EmptyField:     "Fields must not be empty.",
	InvalidDate:    "Invalid date (expected YYYY-MM-DD).",
	NothingChanged: "Nothing changed.",

	Created:      "Book created.",
	CreateFailed: "Failed to create book.",
	Updated:      "Book updated.",
	UpdateFailed: "Failed to update book.",
	Deleted:      "Book moved to trash.",
	DeleteFailed: "Failed to delete book.",
	Restored:     "Book restored.",
	RestoreFail:  "Failed to restore book.",
	Purged:       "Book permanently deleted.",
	PurgeFailed:  "Failed to permanently delete book.",
	LoadFailed:   "Failed to load books.",

	ConfirmDelete: "Move %q to the trash?",
	ConfirmPurge:  "Permanently delete %q? This cannot be undone.",

	HealthOK:   "Backend: %s",
	HealthDown: "Backend: unreachable",
}

// LabelsFor returns the strings for locale ("de" or "en"); German otherwise.
func LabelsFor(locale string) Labels {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return english
	}
	return german
}
