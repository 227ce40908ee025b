package repos

import (
	"emporium/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.db.Exec(`
	  INSERT INTO users(id, name, email, password_hash, role)
	  VALUES(?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Hash, u.Role)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT id,name,email,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT id,name,email,password_hash,role FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users. Password hashes stay in the struct's unexported
// JSON surface (the field never serializes), but we don't even read them here.
func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.db.Select(&out, `
	  SELECT id, name, email, '' AS password_hash, role
	  FROM users
	  ORDER BY email
	`)
	return out, err
}

func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email)
	return n > 0, err
}
