package models

import "gorm.io/gorm"

// nextID returns the next sequential id for the user's rows in table:
// max(id) + 1, or 1 when the user owns none. Gaps left by deletions are
// never refilled. The caller must run this inside the same transaction as
// the insert that consumes the value, so no concurrent insert for the same
// user can observe the same id.
func nextID(tx *gorm.DB, table string, userID int64) (int64, error) {
	var id int64

	err := tx.Raw(
		"SELECT COALESCE(MAX(id), 0) + 1 FROM "+table+" WHERE user_id = ?",
		userID,
	).Scan(&id).Error

	if err != nil {
		return 0, err
	}

	return id, nil
}
