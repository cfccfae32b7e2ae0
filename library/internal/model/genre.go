package model

import "github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"

type Genre string

const (
	GenreFiction        Genre = "Fiction"
	GenreNonFiction     Genre = "NonFiction"
	GenreMystery        Genre = "Mystery"
	GenreFantasy        Genre = "Fantasy"
	GenreScienceFiction Genre = "ScienceFiction"
	GenreRomance        Genre = "Romance"
	GenreThriller       Genre = "Thriller"
	GenreHorror         Genre = "Horror"
	GenreBiography      Genre = "Biography"
	GenreHistory        Genre = "History"
	GenrePoetry         Genre = "Poetry"
	GenreDrama          Genre = "Drama"
	GenreChildren       Genre = "Children"
)

var genres = []Genre{
	GenreFiction, GenreNonFiction, GenreMystery, GenreFantasy, GenreScienceFiction, GenreRomance,
	GenreThriller, GenreHorror, GenreBiography, GenreHistory, GenrePoetry, GenreDrama, GenreChildren,
}

const msgInvalidGenre = "Invalid genre specified."

// ParseGenre is case sensitive.
func ParseGenre(s string) (Genre, error) {
	for _, g := range genres {
		if string(g) == s {
			return g, nil
		}
	}
	return "", errs.Validation(msgInvalidGenre)
}

func GenreNames() []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, string(g))
	}
	return names
}
