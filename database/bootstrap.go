// database/bootstrap.go
package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"yearplan/config"
	"yearplan/entities"
)

// ErrStoreOffline reports that no database connection was established
// at startup. Data operations are rejected with it; the process keeps
// serving.
var ErrStoreOffline = errors.New("store offline: no database connection")

// Store is the two-state connection handle handed to repositories:
// online (pool established, table ensured) or offline. The transition
// happens once at startup and is never retried.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func Offline() *Store { return &Store{} }

func (s *Store) Online() bool { return s != nil && s.db != nil }

func (s *Store) DB() (*gorm.DB, error) {
	if !s.Online() {
		return nil, ErrStoreOffline
	}
	return s.db, nil
}

// Connect opens the MySQL pool described by cfg and makes sure the
// annual_plans table exists. Every failure degrades to an offline
// store instead of aborting boot.
func Connect(cfg *config.DBConfig) *Store {
	if cfg == nil {
		log.Printf("[db] no database configured, starting offline")
		return Offline()
	}
	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{})
	if err != nil {
		log.Printf("[db] open mysql: %v (continuing offline)", err)
		return Offline()
	}
	if err := EnsureTable(db); err != nil {
		log.Printf("[db] ensure table: %v (continuing offline)", err)
		return Offline()
	}
	log.Printf("[db] connected to %s:%s/%s", cfg.Host, cfg.Port, cfg.Name)
	return NewStore(db)
}

// DSN renders the go-sql-driver DSN with 4-byte UTF-8 forced at the
// connection level.
func DSN(cfg *config.DBConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
}

// EnsureTable creates annual_plans when missing. An existing table is
// left untouched, never altered.
func EnsureTable(db *gorm.DB) error {
	m := db.Migrator()
	if m.HasTable(&entities.AnnualPlan{}) {
		return nil
	}
	return m.CreateTable(&entities.AnnualPlan{})
}
