package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsExclusionConflict(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, true},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"wrapped", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "23505"}), true},
		{"foreign key", &pgconn.PgError{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsExclusionConflict(tc.err))
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("book: %w", ErrBusiness("slot_unavailable"))

	assert.True(t, IsBusiness(err, "slot_unavailable"))
	assert.False(t, IsBusiness(err, "slot_conflict"))
	assert.True(t, errors.Is(err, ErrBusiness("slot_unavailable")))
}
