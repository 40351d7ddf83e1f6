package postgres

import (
	"database/sql"

	"studiofin-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:              db,
		AuditRepository: NewAuditRepository(db),
	}
}
