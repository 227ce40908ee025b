package repos

import (
	"emporium/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, color, icon)
	  VALUES(?, ?, ?, ?)
	`, c.ID, c.Name, c.Color, c.Icon)
	return err
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, color, icon, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, color, icon, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  WHERE id = ?
	`, id)
	return c, err
}

func (r *CategoryRepo) Exists(id string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories WHERE id = ?`, id)
	return n > 0, err
}

// ExistsByNameColor reports whether the (name, color) pair is already taken,
// case-insensitively. excludeID skips one row so updates don't collide with
// themselves.
func (r *CategoryRepo) ExistsByNameColor(name, color, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM categories
	  WHERE LOWER(name) = LOWER(?) AND LOWER(color) = LOWER(?) AND id != ?
	`, name, color, excludeID)
	return n > 0, err
}

func (r *CategoryRepo) Update(c domain.Category) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE categories
	  SET name = ?, color = ?, icon = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, c.Name, c.Color, c.Icon, c.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *CategoryRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
