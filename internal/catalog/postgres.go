package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadPostgres returns a catalog seeded with the built-in set and overlaid
// with rows from the cards table. Deployments use this to tune deck counts
// or add cards without a rebuild; entries share IDs with built-ins override
// them, new IDs extend the catalog.
func LoadPostgres(ctx context.Context, databaseURL string) (*Catalog, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to catalog database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping catalog database: %w", err)
	}

	rows, err := pool.Query(ctx,
		`SELECT id, title, usable, combo_size, resolves_immediately, expansion, count_in_deck
		 FROM cards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	c := New()
	loaded := 0
	for rows.Next() {
		var card Card
		if err := rows.Scan(&card.ID, &card.Title, &card.Usable, &card.ComboSize,
			&card.ResolvesImmediately, &card.Expansion, &card.Count); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		c.put(card)
		loaded++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read cards: %w", err)
	}
	if loaded == 0 {
		return nil, fmt.Errorf("cards table is empty; run scripts/import_cards.go first")
	}
	return c, nil
}
