package model

import (
	"testing"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/stretchr/testify/require"
)

func TestParseGenre(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Genre
		wantErr bool
	}{
		{in: "Drama", want: GenreDrama},
		{in: "ScienceFiction", want: GenreScienceFiction},
		{in: "drama", wantErr: true},
		{in: "", wantErr: true},
		{in: "Cooking", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseGenre(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValidation)
				require.EqualError(t, err, "Invalid genre specified.")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGenreNames(t *testing.T) {
	t.Parallel()
	names := GenreNames()
	require.Len(t, names, 13)
	for _, n := range names {
		_, err := ParseGenre(n)
		require.NoError(t, err)
	}
}

func TestNewBookResponse(t *testing.T) {
	t.Parallel()
	b := Book{Title: "Hamlet", Authors: []Author{{Name: "William", LastName: "Shakespeare"}}}
	got := NewBookResponse(b)
	require.Equal(t, "Hamlet", got.Title)
	require.Equal(t, []BookAuthor{{Name: "William", LastName: "Shakespeare"}}, got.Authors)

	require.NotNil(t, NewBookResponse(Book{}).Authors)
}
