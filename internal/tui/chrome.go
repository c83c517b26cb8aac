package tui

import "strings"

// chrome holds the screen's own captions; notices come from desk.Labels.
type chrome struct {
	ID        string
	Title     string
	Author    string
	CreatedBy string
	CreatedAt string
	DeletedBy string
	DeletedAt string

	Search      string
	From        string
	To          string
	DateHint    string
	PerPage     string
	All         string
	Empty       string
	NewBook     string
	EditBook    string
	ConfirmKeys string
	Loading     string

	FooterFilter  string
	FooterDates   string
	FooterForm    string
	FooterCancel  string
	FooterBrowse  string
	FooterConfirm string
}

var germanChrome = chrome{
	ID:        "ID",
	Title:     "Titel",
	Author:    "Autor",
	CreatedBy: "Erstellt von",
	CreatedAt: "Erstellt am",
	DeletedBy: "Gelöscht von",
	DeletedAt: "Gelöscht am",

	Search:      "Suche",
	From:        "Von",
	To:          "Bis",
	DateHint:    "JJJJ-MM-TT",
	PerPage:     "pro Seite",
	All:         "alle",
	Empty:       "Keine Einträge.",
	NewBook:     "Neues Buch",
	EditBook:    "Buch bearbeiten",
	ConfirmKeys: "j/N",
	Loading:     "Lade …",

	FooterFilter:  "enter suchen",
	FooterDates:   "ctrl+x Datum leeren",
	FooterForm:    "tab/↑↓ Feld",
	FooterCancel:  "esc abbrechen",
	FooterBrowse:  "? Hilfe",
	FooterConfirm: "enter speichern",
}

var englishChrome = chrome{
	ID:        "ID",
	Title:     "Title",
	Author:    "Author",
	CreatedBy: "Created by",
	CreatedAt: "Created at",
	DeletedBy: "Deleted by",
	DeletedAt: "Deleted at",

	Search:      "Search",
	From:        "From",
	To:          "To",
	DateHint:    "YYYY-MM-DD",
	PerPage:     "per page",
	All:         "all",
	Empty:       "No entries.",
	NewBook:     "New book",
	EditBook:    "Edit book",
	ConfirmKeys: "y/N",
	Loading:     "Loading …",

	FooterFilter:  "enter search",
	FooterDates:   "ctrl+x clear dates",
	FooterForm:    "tab/↑↓ field",
	FooterCancel:  "esc cancel",
	FooterBrowse:  "? help",
	FooterConfirm: "enter save",
}

func chromeFor(locale string) chrome {
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		return englishChrome
	}
	return germanChrome
}
