package source

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func undefinedTable() error {
	return &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
}

func TestRunFallsBackOnSchemaMiss(t *testing.T) {
	c := New(nil)
	ran := []string{}
	err := c.Run(context.Background(), "test",
		Strategy{Name: "primary", Run: func(context.Context) (int, error) {
			ran = append(ran, "primary")
			return 0, undefinedTable()
		}},
		Strategy{Name: "fallback", Run: func(context.Context) (int, error) {
			ran = append(ran, "fallback")
			return 5, nil
		}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"primary", "fallback"}, ran)
}

func TestRunStopsOnOtherErrors(t *testing.T) {
	c := New(nil)
	boom := errors.New("connection reset")
	fallbackRan := false
	err := c.Run(context.Background(), "test",
		Strategy{Name: "primary", Run: func(context.Context) (int, error) {
			return 0, boom
		}},
		Strategy{Name: "fallback", Run: func(context.Context) (int, error) {
			fallbackRan = true
			return 1, nil
		}},
	)
	require.ErrorIs(t, err, boom)
	assert.False(t, fallbackRan)
}

func TestRunExhausted(t *testing.T) {
	c := New(nil)
	err := c.Run(context.Background(), "test",
		Strategy{Name: "a", Run: func(context.Context) (int, error) { return 0, undefinedTable() }},
		Strategy{Name: "b", Run: func(context.Context) (int, error) { return 0, undefinedTable() }},
	)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestRunMinRowsTriesNextButKeepsThinResult(t *testing.T) {
	c := New(nil)
	ran := []string{}
	err := c.Run(context.Background(), "test",
		Strategy{Name: "primary", MinRows: 3, Run: func(context.Context) (int, error) {
			ran = append(ran, "primary")
			return 2, nil
		}},
		Strategy{Name: "fallback", Run: func(context.Context) (int, error) {
			ran = append(ran, "fallback")
			return 0, undefinedTable()
		}},
	)
	require.NoError(t, err, "a thin primary result still satisfies when the fallback is unavailable")
	assert.Equal(t, []string{"primary", "fallback"}, ran)
}

func TestSchemaMissing(t *testing.T) {
	assert.True(t, SchemaMissing(undefinedTable()))
	assert.True(t, SchemaMissing(&pgconn.PgError{Code: "42703"}))
	assert.False(t, SchemaMissing(errors.New("nope")))
	assert.False(t, SchemaMissing(&pgconn.PgError{Code: "23505"}))
}
