package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kichoapp/kicho_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql-backed repositories into a provider
// ready for the service container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo: NewPgxLedgerRepository(pool),
		EntryRepo:  NewPgxEntryRepository(pool),
	}
}
