package errs_test

import (
	"testing"

	"github.com/helcv/Valcon-Internship-Library-Project/library/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		kind        error
		wantPayload any
	}{
		{
			name:        "not found",
			err:         errs.NotFound("Book does not exist."),
			kind:        errs.ErrNotFound,
			wantPayload: "Book does not exist.",
		},
		{
			name:        "validation list",
			err:         errs.Validation("Passwords must have at least one digit ('0'-'9').", "Passwords must be at least 6 characters."),
			kind:        errs.ErrValidation,
			wantPayload: []string{"Passwords must have at least one digit ('0'-'9').", "Passwords must be at least 6 characters."},
		},
		{
			name:        "wrapped business rule",
			err:         errors.WithMessage(errs.BusinessRule("Book is not available."), "rent"),
			kind:        errs.ErrBusinessRule,
			wantPayload: "Book is not available.",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, tt.err, tt.kind)
			de, ok := errs.AsError(tt.err)
			require.True(t, ok)
			require.Equal(t, tt.wantPayload, de.Payload())
		})
	}

	_, ok := errs.AsError(errors.New("db is down"))
	require.False(t, ok)
}
