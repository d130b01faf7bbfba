package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn, adminUser, adminPass string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the menu categories if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure the admin account exists (idempotent; safe to run every start)
	if err := seedAdmin(db, adminUser, adminPass); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories: pricing_kind is fixed at creation and drives which product
-- attributes are accepted.
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  display_order INTEGER NOT NULL DEFAULT 0,
  image TEXT NOT NULL DEFAULT '',
  pricing_kind TEXT NOT NULL CHECK (pricing_kind IN ('flat','by_size','flat_volume','flat_weight')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_categories_order ON categories(display_order);

-- Products: NULL price columns mean "not set"
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  price NUMERIC CHECK (price IS NULL OR price >= 0),
  price_individual NUMERIC,
  price_chica NUMERIC,
  price_mediana NUMERIC,
  price_grande NUMERIC,
  price_h4 NUMERIC,
  ml INTEGER,
  grams INTEGER,
  ingredients TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Carts: one per visitor session
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

-- Cart lines are keyed by (product, size); adding the same pair again
-- increments qty instead of inserting a second row.
CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  size TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id, size)
);

-- Orders: immutable snapshots except for status/updated_at
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  table_number INTEGER NOT NULL CHECK (table_number BETWEEN 1 AND 13),
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pendiente'
    CHECK (status IN ('pendiente','en_preparacion','listo','completado')),
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_name TEXT NOT NULL,
  category_name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  subtotal NUMERIC NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Admin account & visitor sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  table_number INTEGER NULL CHECK (table_number IS NULL OR table_number BETWEEN 1 AND 13),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting menu categories")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,description,display_order,image,pricing_kind) VALUES
	  ('cat-bebidas','BEBIDAS','Refresca tu paladar.',1,'/static/uploads/bebidas.jpg','flat_volume'),
	  ('cat-pizzas','PIZZAS','Nuestras mejores pizzas.',2,'/static/uploads/pizzas.jpg','by_size'),
	  ('cat-complementos','COMPLEMENTOS','Papas, alitas y más.',3,'/static/uploads/complementos.jpg','flat_weight'),
	  ('cat-especialidades','ESPECIALIDADES','Creaciones únicas del chef.',4,'/static/uploads/especialidades.jpg','flat')`)

	return tx.Commit()
}

// seedAdmin ensures the single staff account exists (idempotent).
func seedAdmin(db *sqlx.DB, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,username,password_hash,role)
		VALUES('u-admin',?,?,'ADMIN')
		ON CONFLICT(username) DO NOTHING
	`, username, string(hash))
	return err
}
