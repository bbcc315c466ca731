package services

import (
	portsrepo "github.com/kichoapp/kicho_backend/internal/core/ports/repositories"
	portssvc "github.com/kichoapp/kicho_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	dispatcher := NewLoggingEventDispatcher()

	return &portssvc.ServiceContainer{
		Ledger:    NewLedgerService(repos.LedgerRepo, dispatcher),
		Journal:   NewJournalService(repos.EntryRepo, repos.LedgerRepo, dispatcher),
		Reporting: NewReportingService(repos.LedgerRepo),
		Events:    dispatcher,
	}
}
