package repos

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"phonelister/internal/domain"
)

const phoneColumns = `
    id, brand, model_name, condition, storage, color, base_price, stock_quantity,
    discontinued, tags, manual_overrides, COALESCE(created_at,'') AS created_at,
    COALESCE(updated_at,'') AS updated_at`

type PhoneRepo struct{ db *sqlx.DB }

func NewPhoneRepo(db *sqlx.DB) *PhoneRepo { return &PhoneRepo{db: db} }

// Search filters by a case-insensitive substring of brand or model and an
// exact condition; empty arguments do not filter.
func (r *PhoneRepo) Search(q, cond string) ([]domain.Phone, error) {
	where := `1 = 1`
	args := []any{}
	if q != "" {
		where += ` AND (LOWER(model_name) LIKE ? OR LOWER(brand) LIKE ?)`
		like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
		args = append(args, like, like)
	}
	if cond != "" {
		where += ` AND condition = ?`
		args = append(args, cond)
	}

	out := []domain.Phone{}
	err := r.db.Select(&out, `SELECT `+phoneColumns+` FROM phones WHERE `+where+` ORDER BY rowid`, args...)
	return out, err
}

// ListNewest returns every phone, most recently added first.
func (r *PhoneRepo) ListNewest() ([]domain.Phone, error) {
	out := []domain.Phone{}
	err := r.db.Select(&out, `SELECT `+phoneColumns+` FROM phones ORDER BY rowid DESC`)
	return out, err
}

func (r *PhoneRepo) Get(id string) (domain.Phone, error) {
	var p domain.Phone
	err := r.db.Get(&p, `SELECT `+phoneColumns+` FROM phones WHERE id = ?`, id)
	return p, err
}

// Create inserts p, assigning an id when it has none.
func (r *PhoneRepo) Create(p *domain.Phone) error {
	return insertPhone(r.db, p)
}

// CreateTx is Create inside a caller-owned transaction.
func (r *PhoneRepo) CreateTx(tx *sqlx.Tx, p *domain.Phone) error {
	return insertPhone(tx, p)
}

func (r *PhoneRepo) Begin() (*sqlx.Tx, error) { return r.db.Beginx() }

func insertPhone(ex sqlx.Execer, p *domain.Phone) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := ex.Exec(`
	  INSERT INTO phones
	    (id, brand, model_name, condition, storage, color, base_price, stock_quantity,
	     discontinued, tags, manual_overrides, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Brand, p.ModelName, p.Condition, p.Storage, p.Color, p.BasePrice, p.StockQuantity,
		p.Discontinued, p.Tags, p.Overrides)
	return err
}

// Update rewrites every editable column of p.
func (r *PhoneRepo) Update(p domain.Phone) error {
	res, err := r.db.Exec(`
	  UPDATE phones SET
	    brand = ?, model_name = ?, condition = ?, storage = ?, color = ?, base_price = ?,
	    stock_quantity = ?, discontinued = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Brand, p.ModelName, p.Condition, p.Storage, p.Color, p.BasePrice,
		p.StockQuantity, p.Discontinued, p.Tags, p.ID)
	return oneRow(res, err)
}

// SetOverride stores the manual price for one platform and leaves the others
// alone.
func (r *PhoneRepo) SetOverride(id string, p domain.Platform, price float64) error {
	res, err := r.db.Exec(`
	  UPDATE phones
	  SET manual_overrides = json_set(COALESCE(manual_overrides, '{}'), '$.' || ?, ?),
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.String(), price, id)
	return oneRow(res, err)
}

// Delete removes a phone and its listing logs together.
func (r *PhoneRepo) Delete(id string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// foreign_keys is per connection, so do not rely on the cascade alone
	if _, err := tx.Exec(`DELETE FROM listing_logs WHERE phone_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM phones WHERE id = ?`, id)
	if err := oneRow(res, err); err != nil {
		return err
	}
	return tx.Commit()
}

func oneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
