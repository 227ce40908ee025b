package repos

import (
	"emporium/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.name, p.description, p.rich_description, p.image_url, p.image_asset_id,
  p.images_json, p.brand, p.price, p.category_id, COALESCE(c.name,'') AS category_name,
  p.count_in_stock, p.rating, p.num_reviews, p.is_featured,
  p.created_at, COALESCE(p.updated_at,'') AS updated_at`

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(
	    id, name, description, rich_description, image_url, image_asset_id,
	    images_json, brand, price, category_id, count_in_stock, rating, num_reviews, is_featured
	  ) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.RichDescription, p.ImageURL, p.ImageAssetID,
		p.ImagesJSON, p.Brand, p.Price, p.CategoryID, p.CountInStock, p.Rating, p.NumReviews, p.IsFeatured)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  ORDER BY p.created_at DESC, p.id
	`)
	return out, err
}

// ListByCategories returns products whose category is in the given id set.
func (r *ProductRepo) ListByCategories(categoryIDs []string) ([]domain.Product, error) {
	query, args, err := sqlx.In(`
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.category_id IN (?)
	  ORDER BY p.created_at DESC, p.id
	`, categoryIDs)
	if err != nil {
		return nil, err
	}
	var out []domain.Product
	err = r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) Featured(limit int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE p.is_featured = 1
	  ORDER BY p.created_at DESC, p.id
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) ExistsByName(name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE LOWER(name) = LOWER(?) AND id != ?`, name, excludeID)
	return n > 0, err
}

func (r *ProductRepo) Update(p domain.Product) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, description = ?, rich_description = ?, brand = ?, price = ?,
	      category_id = ?, count_in_stock = ?, rating = ?, num_reviews = ?,
	      is_featured = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Name, p.Description, p.RichDescription, p.Brand, p.Price,
		p.CategoryID, p.CountInStock, p.Rating, p.NumReviews, p.IsFeatured, p.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// UpdateGallery replaces the secondary image list.
func (r *ProductRepo) UpdateGallery(id, imagesJSON string) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products SET images_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, imagesJSON, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProductRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
