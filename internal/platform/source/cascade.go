// Package source runs ordered data-source strategies with a uniform
// success/failure contract: try the next strategy on a structural miss,
// stop and propagate on any other error.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrExhausted reports that every strategy was structurally unavailable.
var ErrExhausted = errors.New("source: all strategies unavailable")

// Strategy is one way to satisfy an aggregation. Run executes the query,
// scanning into captured destinations, and returns the row count. MinRows,
// when positive, marks a successful result as insufficient so the cascade
// keeps going; an insufficient result is still used when nothing later
// beats it.
type Strategy struct {
	Name    string
	MinRows int
	Run     func(ctx context.Context) (int, error)
}

// Cascade evaluates strategies in order.
type Cascade struct {
	logger *slog.Logger
}

// New constructs a Cascade.
func New(logger *slog.Logger) *Cascade {
	return &Cascade{logger: logger}
}

// Run executes the strategies for the named operation.
func (c *Cascade) Run(ctx context.Context, op string, strategies ...Strategy) error {
	satisfied := false
	for _, s := range strategies {
		rows, err := s.Run(ctx)
		if err != nil {
			if !SchemaMissing(err) {
				return err
			}
			c.log(op, s.Name, err)
			continue
		}
		if s.MinRows > 0 && rows < s.MinRows {
			satisfied = true
			if c.logger != nil {
				c.logger.Debug("source: insufficient rows, trying next",
					slog.String("op", op), slog.String("strategy", s.Name), slog.Int("rows", rows))
			}
			continue
		}
		return nil
	}
	if satisfied {
		return nil
	}
	return fmt.Errorf("%s: %w", op, ErrExhausted)
}

func (c *Cascade) log(op, strategy string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn("source: strategy unavailable",
		slog.String("op", op), slog.String("strategy", strategy), slog.Any("error", err))
}

// SchemaMissing reports whether the error is an undefined table or column,
// the structural misses the fallback contract recovers from.
func SchemaMissing(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "42P01" || pgErr.Code == "42703"
}
