package repos

import (
	"emporium/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Compose persists an order and its line items in one transaction. Items are
// written first (the schema defers the order reference), then the header; a
// failure anywhere rolls the whole order back so no orphaned items survive.
func (r *OrderRepo) Compose(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(id, order_id, product_id, quantity, position)
		  VALUES(?, ?, ?, ?, ?)
		`, it.ID, o.ID, it.ProductID, it.Quantity, it.Position); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders(
	    id, shipping_address1, shipping_address2, city, zip, country, phone,
	    status, total_price, user_id
	  ) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.ShippingAddress1, o.ShippingAddress2, o.City, o.Zip, o.Country, o.Phone,
		o.Status, o.TotalPrice, o.UserID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT o.id, o.shipping_address1, o.shipping_address2, o.city, o.zip, o.country,
	         o.phone, o.status, o.total_price, o.user_id, COALESCE(u.name,'') AS user_name,
	         o.created_at
	  FROM orders o
	  LEFT JOIN users u ON u.id = o.user_id
	  WHERE o.id = ?
	`, id)
	return o, err
}

// Items returns an order's lines in submitted order, with the referenced
// product's current name and price attached.
func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := r.db.Select(&out, `
	  SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.position,
	         COALESCE(p.name,'') AS product_name, COALESCE(p.price,0) AS product_price
	  FROM order_items oi
	  LEFT JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.position
	`, orderID)
	return out, err
}

func (r *OrderRepo) GetItem(id string) (domain.OrderItem, error) {
	var it domain.OrderItem
	err := r.db.Get(&it, `
	  SELECT id, order_id, product_id, quantity, position
	  FROM order_items WHERE id = ?
	`, id)
	return it, err
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT o.id, o.shipping_address1, o.shipping_address2, o.city, o.zip, o.country,
	         o.phone, o.status, o.total_price, o.user_id, COALESCE(u.name,'') AS user_name,
	         o.created_at
	  FROM orders o
	  LEFT JOIN users u ON u.id = o.user_id
	  WHERE o.user_id = ?
	  ORDER BY datetime(o.created_at) DESC, o.id
	`, userID)
	return out, err
}

func (r *OrderRepo) ListAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT o.id, o.shipping_address1, o.shipping_address2, o.city, o.zip, o.country,
	         o.phone, o.status, o.total_price, o.user_id, COALESCE(u.name,'') AS user_name,
	         o.created_at
	  FROM orders o
	  LEFT JOIN users u ON u.id = o.user_id
	  ORDER BY datetime(o.created_at) DESC, o.id
	`)
	return out, err
}

// MarkShipped advances a pending order to shipped. ownerID == "" skips the
// ownership filter (admin route). The guarded UPDATE makes the pending→shipped
// transition the only one possible.
func (r *OrderRepo) MarkShipped(id, ownerID string) (bool, error) {
	q := `UPDATE orders SET status = 'shipped' WHERE id = ? AND status = 'pending'`
	args := []any{id}
	if ownerID != "" {
		q += ` AND user_id = ?`
		args = append(args, ownerID)
	}
	res, err := r.db.Exec(q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DeleteCascade removes an order owned by ownerID together with every one of
// its line items. Returns false when the order does not exist or belongs to
// someone else.
func (r *OrderRepo) DeleteCascade(id, ownerID string) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM orders WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}
	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *OrderRepo) TotalSales() (float64, error) {
	var total float64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(total_price),0) FROM orders`)
	return total, err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}
