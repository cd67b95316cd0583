package menuhistory

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	_ "mensa-backend/lib/menuhistory/db"
)

// Store keeps an append-only log of the menus served each day, one
// logical record per calendar date. Writing the same date twice
// replaces the earlier record, so a repeated refresh cycle within one
// day stays idempotent.
type Store struct {
	db *sql.DB
}

type Meal struct {
	Name  string
	Note  string
	Price string
	Tags  []string
}

type Line struct {
	Name  string
	Meals []Meal
}

// the per-meal attribute order recorded in metadata; consumers reading
// the raw table rely on it staying stable
var attrOrder = []string{"name", "note", "price", "tags"}

func NewStore(ctx context.Context, database *sql.DB, lineOrder []string) (Store, error) {
	s := Store{db: database}

	var count int
	err := database.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM metadata WHERE key IN ('line_order', 'attr_order')`,
	).Scan(&count)
	if err != nil {
		return Store{}, err
	}
	if count == 2 {
		return s, nil
	}

	lines, err := json.Marshal(lineOrder)
	if err != nil {
		return Store{}, err
	}
	attrs, err := json.Marshal(attrOrder)
	if err != nil {
		return Store{}, err
	}
	_, err = database.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO metadata (key, value) VALUES ('line_order', ?), ('attr_order', ?)`,
		string(lines), string(attrs),
	)
	if err != nil {
		return Store{}, err
	}
	return s, nil
}

func (s Store) LineOrder(ctx context.Context) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value FROM metadata WHERE key = 'line_order'`,
	).Scan(&raw)
	if err != nil {
		return nil, err
	}

	var order []string
	err = json.Unmarshal([]byte(raw), &order)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Append records the given lines under `date` (ISO calendar date).
// Lines absent from the map are logged and skipped, meal order within
// a line is preserved positionally.
func (s Store) Append(ctx context.Context, date string, lines map[string][]Meal) error {
	order, err := s.LineOrder(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM history WHERE date = ?`, date)
	if err != nil {
		return err
	}

	for lineIdx, lineName := range order {
		meals, ok := lines[lineName]
		if !ok {
			slog.WarnContext(ctx, "line missing from scraped menu", "line", lineName, "date", date)
			continue
		}
		for mealIdx, meal := range meals {
			tags, err := json.Marshal(meal.Tags)
			if err != nil {
				return err
			}
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO history (date, line_idx, meal_idx, name, note, price, tags)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				date, lineIdx, mealIdx, meal.Name, meal.Note, meal.Price, string(tags),
			)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Day reads the record for one calendar date back in the configured
// line order. Lines with no recorded meals are omitted.
func (s Store) Day(ctx context.Context, date string) ([]Line, error) {
	order, err := s.LineOrder(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT line_idx, name, note, price, tags FROM history
		 WHERE date = ? ORDER BY line_idx, meal_idx`,
		date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Line
	lastIdx := int64(-1)

	for rows.Next() {
		var lineIdx int64
		var meal Meal
		var tags string
		err := rows.Scan(&lineIdx, &meal.Name, &meal.Note, &meal.Price, &tags)
		if err != nil {
			return nil, err
		}
		err = json.Unmarshal([]byte(tags), &meal.Tags)
		if err != nil {
			return nil, err
		}

		if lineIdx != lastIdx {
			name := ""
			if lineIdx >= 0 && int(lineIdx) < len(order) {
				name = order[lineIdx]
			}
			result = append(result, Line{Name: name})
			lastIdx = lineIdx
		}
		last := &result[len(result)-1]
		last.Meals = append(last.Meals, meal)
	}
	return result, rows.Err()
}
