package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"phonelister/internal/domain"
)

const listingLogColumns = `
    id, phone_id, platform, success, message, attempted_price, fee, override,
    COALESCE(created_at,'') AS created_at`

type ListingLogRepo struct{ db *sqlx.DB }

func NewListingLogRepo(db *sqlx.DB) *ListingLogRepo { return &ListingLogRepo{db: db} }

// Insert records one listing attempt. Rows are never updated afterwards.
func (r *ListingLogRepo) Insert(l *domain.ListingLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.db.Exec(`
	  INSERT INTO listing_logs
	    (id, phone_id, platform, success, message, attempted_price, fee, override, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, l.ID, l.PhoneID, l.Platform, l.Success, l.Message, l.AttemptedPrice, l.Fee, l.Override)
	return err
}

// Latest returns the newest attempts first.
func (r *ListingLogRepo) Latest(limit int) ([]domain.ListingLog, error) {
	if limit <= 0 {
		limit = 200
	}
	out := []domain.ListingLog{}
	err := r.db.Select(&out, `
	  SELECT `+listingLogColumns+`
	  FROM listing_logs
	  ORDER BY datetime(created_at) DESC, rowid DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *ListingLogRepo) ByPhone(phoneID string) ([]domain.ListingLog, error) {
	out := []domain.ListingLog{}
	err := r.db.Select(&out, `
	  SELECT `+listingLogColumns+`
	  FROM listing_logs
	  WHERE phone_id = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC
	`, phoneID)
	return out, err
}
