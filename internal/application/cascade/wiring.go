package cascade

import (
	domevent "github.com/jhoicas/billing-core/internal/domain/event"
)

// Wire registra todos los handlers de borrado en bus, sobre los repositorios de stores.
// El orden de registro es el orden de ejecución.
func Wire(bus Bus, stores Stores, cfg Config) {
	cfg = cfg.withDefaults()

	contacts := NewContactsHandler(stores.Contacts, stores.Users, bus)
	services := NewServicesHandler(stores.Services, stores.Logs, stores.ServiceChanges, bus, cfg.PageSize)
	transactions := NewTransactionsHandler(stores.Transactions, stores.Logs, bus, cfg.PageSize)

	// Clients.delete
	bus.Subscribe(NewClientSettingsHandler(stores.ClientSettings), domevent.KindClientDeleted)
	bus.Subscribe(NewClientValuesHandler(stores.ClientValues), domevent.KindClientDeleted)
	bus.Subscribe(NewLogClientSettingsHandler(stores.Logs, cfg.Now), domevent.KindClientDeleted)
	bus.Subscribe(contacts, domevent.KindClientDeleted)
	bus.Subscribe(NewInvoicesHandler(stores.Invoices), domevent.KindClientDeleted)
	bus.Subscribe(services, domevent.KindClientDeleted)
	bus.Subscribe(transactions, domevent.KindClientDeleted)
	bus.Subscribe(NewClientsHandler(stores.Users, bus), domevent.KindClientDeleted)

	// Contacts.delete
	bus.Subscribe(NewAccountsAchHandler(stores.AccountsAch), domevent.KindContactDeleted)
	bus.Subscribe(NewAccountsCcHandler(stores.AccountsCc), domevent.KindContactDeleted)
	bus.Subscribe(contacts, domevent.KindContactDeleted)
	bus.Subscribe(NewLogContactsHandler(stores.Logs), domevent.KindContactDeleted)

	bus.Subscribe(services, domevent.KindServiceDeleted)
	bus.Subscribe(transactions, domevent.KindTransactionDeleted)
	bus.Subscribe(NewLogUsersHandler(stores.Logs), domevent.KindUserDeleted)
}
