package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// A second pooled connection would see a different empty database.
		db.SetMaxOpenConns(1)
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog and accounts (idempotent; safe to run every start)
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('user','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  color TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_color ON categories(LOWER(name), LOWER(color));

-- Products. category_id is a plain reference; the validation layer checks it.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL,
  rich_description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  image_asset_id TEXT NOT NULL DEFAULT '',
  images_json TEXT NOT NULL DEFAULT '[]',
  brand TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  category_id TEXT NOT NULL,
  count_in_stock INTEGER NOT NULL CHECK (count_in_stock BETWEEN 0 AND 255),
  rating NUMERIC NOT NULL DEFAULT 0 CHECK (rating >= 0),
  num_reviews INTEGER NOT NULL DEFAULT 0 CHECK (num_reviews >= 0),
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  shipping_address1 TEXT NOT NULL,
  shipping_address2 TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL,
  zip TEXT NOT NULL,
  country TEXT NOT NULL,
  phone TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','shipped')),
  total_price NUMERIC NOT NULL CHECK (total_price >= 0),
  user_id TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Order items are written before their order inside the composition
-- transaction, so the reference is deferred.
CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE DEFERRABLE INITIALLY DEFERRED,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  position INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,color,icon) VALUES
	  ('cat-consoles','Consoles','#3b5998','icon-console'),
	  ('cat-audio','Audio','#8b9dc3','icon-audio'),
	  ('cat-accessories','Accessories','#dfe3ee','icon-plug')`)

	tx.MustExec(`INSERT INTO products(id,name,description,brand,price,category_id,count_in_stock,is_featured) VALUES
	  ('prod-handheld','Pocket Handheld','Refurbished handheld console','Nintendo',129.99,'cat-consoles',8,1),
	  ('prod-console','8-bit Console','Classic home console','Nintendo',199.00,'cat-consoles',3,1),
	  ('prod-radio','Tube Radio','Vacuum tube tabletop radio','Philco',349.50,'cat-audio',2,0)`)

	return tx.Commit()
}

// seedUsers ensures two users and one admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Name, Email, Role, Hash string
	}
	mk := func(id, name, email, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Name: name, Email: email, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "Alice", "alice@emporium.test", "user", "Passw0rd!"),
		mk("u-bob", "Bob", "bob@emporium.test", "user", "Passw0rd!"),
		mk("u-admin", "Admin", "admin@emporium.test", "admin", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,name,email,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Name, x.Email, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
