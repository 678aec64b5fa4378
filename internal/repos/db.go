package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "phonelister/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection: pragmas are per connection and :memory: is per connection too
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed a few demo phones if the store is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Phones
CREATE TABLE IF NOT EXISTS phones(
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  model_name TEXT NOT NULL,
  condition TEXT NOT NULL CHECK (condition IN ('New','Excellent','Good','Fair','As New','Usable','Scrap')),
  storage TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT '',
  base_price REAL NOT NULL CHECK (base_price > 0),
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  discontinued INTEGER NOT NULL DEFAULT 0,
  tags TEXT NOT NULL DEFAULT '',
  manual_overrides TEXT,          -- JSON object keyed by platform
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_phones_brand     ON phones(LOWER(brand));
CREATE INDEX IF NOT EXISTS idx_phones_model     ON phones(LOWER(model_name));
CREATE INDEX IF NOT EXISTS idx_phones_condition ON phones(condition);

-- Listing attempts (insert-only audit trail)
CREATE TABLE IF NOT EXISTS listing_logs(
  id TEXT PRIMARY KEY,
  phone_id TEXT NOT NULL REFERENCES phones(id) ON DELETE CASCADE,
  platform TEXT NOT NULL CHECK (platform IN ('X','Y','Z')),
  success INTEGER NOT NULL,
  message TEXT NOT NULL DEFAULT '',
  attempted_price REAL,
  fee REAL,
  override INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_listing_logs_phone      ON listing_logs(phone_id);
CREATE INDEX IF NOT EXISTS idx_listing_logs_created_at ON listing_logs(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM phones`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Logger().Info("seed: inserting demo phones")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO phones(id,brand,model_name,condition,storage,color,base_price,stock_quantity,discontinued,tags) VALUES
	  ('ph-iphone12','Apple','iPhone 12','Excellent','128GB','Black',420.00,4,0,'refurb,unlocked'),
	  ('ph-pixel6','Google','Pixel 6','Good','128GB','Sorta Seafoam',260.00,2,0,'unlocked'),
	  ('ph-galaxys9','Samsung','Galaxy S9','Usable','64GB','Lilac Purple',18.50,1,0,''),
	  ('ph-nokia3310','Nokia','3310','Scrap','','Blue',12.00,0,1,'discontinued')`)

	return tx.Commit()
}
