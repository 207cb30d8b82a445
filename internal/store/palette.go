package store

import (
	"database/sql"
	"errors"
	"time"
)

// Palette is a named brush color shown in the UI color picker.
type Palette struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // "#rrggbb"
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// PaletteRepository provides CRUD operations for palettes.
type PaletteRepository struct {
	db *sql.DB
}

// Palettes returns the palette repository for this store.
func (s *Store) Palettes() *PaletteRepository {
	return &PaletteRepository{db: s.db}
}

// Create inserts a new palette entry.
func (r *PaletteRepository) Create(p *Palette) error {
	p.CreatedAt = time.Now()
	_, err := r.db.Exec(
		`INSERT INTO palettes (id, name, color, position, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Color, p.Position, p.CreatedAt,
	)
	return err
}

// GetByID retrieves a palette entry by its ID.
func (r *PaletteRepository) GetByID(id string) (*Palette, error) {
	p := &Palette{}
	err := r.db.QueryRow(
		`SELECT id, name, color, position, created_at FROM palettes WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Color, &p.Position, &p.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all palette entries ordered by position.
func (r *PaletteRepository) List() ([]Palette, error) {
	rows, err := r.db.Query(
		`SELECT id, name, color, position, created_at FROM palettes ORDER BY position, created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var palettes []Palette
	for rows.Next() {
		var p Palette
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &p.Position, &p.CreatedAt); err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return palettes, rows.Err()
}

// Update modifies a palette entry's name, color and position.
func (r *PaletteRepository) Update(p *Palette) error {
	res, err := r.db.Exec(
		`UPDATE palettes SET name = ?, color = ?, position = ? WHERE id = ?`,
		p.Name, p.Color, p.Position, p.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a palette entry by ID.
func (r *PaletteRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM palettes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
