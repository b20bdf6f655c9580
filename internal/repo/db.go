// Package repo provisions the relational schema (vendors, users,
// organizations) with GORM over the pure-Go SQLite driver.
//
// The schema is dormant by design: the active request path serves vendors
// from the in-process store, and nothing in the HTTP layer ever queries this
// database. Provisioning exists so the documented future persistence backend
// can be created and seeded ahead of time (cmd/server runs it only when
// PROVISION_DB is set).
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/vendstack/vendor-api/internal/domain"
)

// Open opens (or creates) the SQLite database at path and applies PRAGMAs
// and pool settings.
func Open(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist (instead of a cryptic
	// sqlite "out of memory (14)" on some platforms).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// Migrate creates or updates the vendors, users and organizations tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Vendor{},
		&domain.User{},
		&domain.Organization{},
	)
}

// Seed inserts the sample vendors unless rows with the same name already
// exist, so repeated provisioning runs are idempotent.
func Seed(db *gorm.DB) error {
	samples := []domain.Vendor{
		{
			Name:         "ABC Supplies",
			Category:     "Office Supplies",
			ContactEmail: strp("info@abcsupplies.com"),
			PhoneNumber:  strp("123-456-7890"),
			Address:      strp("123 Main St, City, Country"),
		},
		{
			Name:         "XYZ Technologies",
			Category:     "IT Services",
			ContactEmail: strp("contact@xyztech.com"),
			PhoneNumber:  strp("987-654-3210"),
			Address:      strp("456 Tech Ave, City, Country"),
		},
		{
			Name:         "Global Logistics",
			Category:     "Shipping",
			ContactEmail: strp("support@globallogistics.com"),
			PhoneNumber:  strp("555-789-1234"),
			Address:      strp("789 Shipping Lane, Port City, Country"),
		},
	}

	for _, v := range samples {
		v := v
		if err := db.Where("name = ?", v.Name).FirstOrCreate(&v).Error; err != nil {
			return err
		}
	}
	return nil
}

func strp(s string) *string { return &s }
