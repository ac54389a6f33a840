package cascade_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/billing-core/internal/application/cascade"
	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/domain/repository"
	infraevent "github.com/jhoicas/billing-core/internal/infrastructure/event"
	"github.com/jhoicas/billing-core/pkg/logger"
)

// memDB base de datos en memoria compartida por todos los repositorios fake.
type memDB struct {
	clients      map[string]*entity.Client
	contacts     map[string]*entity.Contact
	users        map[string]*entity.User
	cc           map[string]*entity.AccountCc
	ach          map[string]*entity.AccountAch
	settings     map[string]map[string]string // clientID -> key -> value
	values       map[string]int               // clientID -> cantidad de valores
	invoices     map[string]*entity.Invoice
	services     map[string]*entity.Service
	changes      map[string]*entity.ServiceChange
	transactions map[string]*entity.Transaction
	userLogs     map[string]int // userID -> cantidad
	contactLogs  map[string]int
	serviceLogs  map[string]int
	txLogs       map[string]int
	settingLogs  map[string]int

	fail         map[string]error // operación -> error a devolver
	stuckListing bool             // GetSimpleList de servicios ignora los borrados
	calls        []string
}

func newMemDB() *memDB {
	return &memDB{
		clients:      map[string]*entity.Client{},
		contacts:     map[string]*entity.Contact{},
		users:        map[string]*entity.User{},
		cc:           map[string]*entity.AccountCc{},
		ach:          map[string]*entity.AccountAch{},
		settings:     map[string]map[string]string{},
		values:       map[string]int{},
		invoices:     map[string]*entity.Invoice{},
		services:     map[string]*entity.Service{},
		changes:      map[string]*entity.ServiceChange{},
		transactions: map[string]*entity.Transaction{},
		userLogs:     map[string]int{},
		contactLogs:  map[string]int{},
		serviceLogs:  map[string]int{},
		txLogs:       map[string]int{},
		settingLogs:  map[string]int{},
		fail:         map[string]error{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// snapshot copia el estado (no los punteros a entidades, que nunca se modifican).
func (db *memDB) snapshot() *memDB {
	cp := *db
	cp.clients = cloneMap(db.clients)
	cp.contacts = cloneMap(db.contacts)
	cp.users = cloneMap(db.users)
	cp.cc = cloneMap(db.cc)
	cp.ach = cloneMap(db.ach)
	cp.settings = cloneMap(db.settings)
	cp.values = cloneMap(db.values)
	cp.invoices = cloneMap(db.invoices)
	cp.services = cloneMap(db.services)
	cp.changes = cloneMap(db.changes)
	cp.transactions = cloneMap(db.transactions)
	cp.userLogs = cloneMap(db.userLogs)
	cp.contactLogs = cloneMap(db.contactLogs)
	cp.serviceLogs = cloneMap(db.serviceLogs)
	cp.txLogs = cloneMap(db.txLogs)
	cp.settingLogs = cloneMap(db.settingLogs)
	return &cp
}

func (db *memDB) restore(s *memDB) {
	calls := db.calls
	*db = *s
	db.calls = calls
}

func (db *memDB) op(name string) error {
	db.calls = append(db.calls, name)
	return db.fail[name]
}

func (db *memDB) stores() cascade.Stores {
	return cascade.Stores{
		Clients:        memClients{db},
		ClientSettings: memSettings{db},
		ClientValues:   memValues{db},
		Contacts:       memContacts{db},
		Users:          memUsers{db},
		AccountsCc:     memCc{db},
		AccountsAch:    memAch{db},
		Invoices:       memInvoices{db},
		Services:       memServices{db},
		ServiceChanges: memChanges{db},
		Transactions:   memTransactions{db},
		Logs:           memLogs{db},
	}
}

// memTxRunner revierte el estado de memDB si fn falla.
type memTxRunner struct {
	db        *memDB
	rollbacks int
}

func (r *memTxRunner) RunCascade(_ context.Context, fn func(stores cascade.Stores) error) error {
	before := r.db.snapshot()
	if err := fn(r.db.stores()); err != nil {
		r.db.restore(before)
		r.rollbacks++
		return err
	}
	return nil
}

func newBus() cascade.Bus {
	return infraevent.NewInMemoryEventBus(logger.Nop())
}

func newUseCase(db *memDB, pageSize int) (*cascade.DeleteUseCase, *memTxRunner) {
	tx := &memTxRunner{db: db}
	uc := cascade.NewDeleteUseCase(tx, newBus, cascade.Config{
		PageSize: pageSize,
		Now:      func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
	}, logger.Nop())
	return uc, tx
}

// ── repositorios ─────────────────────────────────────────────────────────────

type memClients struct{ db *memDB }

func (r memClients) Create(_ context.Context, c *entity.Client) error {
	r.db.clients[c.ID] = c
	return nil
}

func (r memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	if err := r.db.op("clients.GetByID"); err != nil {
		return nil, err
	}
	return r.db.clients[id], nil
}

func (r memClients) Delete(_ context.Context, id string) error {
	if err := r.db.op("clients.Delete"); err != nil {
		return err
	}
	delete(r.db.clients, id)
	return nil
}

type memSettings struct{ db *memDB }

func (r memSettings) GetSettings(_ context.Context, clientID string) (map[string]string, error) {
	return cloneMap(r.db.settings[clientID]), nil
}

func (r memSettings) SetSetting(_ context.Context, s *entity.ClientSetting) error {
	if r.db.settings[s.ClientID] == nil {
		r.db.settings[s.ClientID] = map[string]string{}
	}
	r.db.settings[s.ClientID][s.Key] = s.Value
	return nil
}

func (r memSettings) UnsetSettings(_ context.Context, clientID string) error {
	if err := r.db.op("UnsetSettings"); err != nil {
		return err
	}
	delete(r.db.settings, clientID)
	return nil
}

type memValues struct{ db *memDB }

func (r memValues) SetValue(_ context.Context, v *entity.ClientValue) error {
	r.db.values[v.ClientID]++
	return nil
}

func (r memValues) DeleteCustomFieldValues(_ context.Context, clientID string) error {
	if err := r.db.op("DeleteCustomFieldValues"); err != nil {
		return err
	}
	delete(r.db.values, clientID)
	return nil
}

type memContacts struct{ db *memDB }

func (r memContacts) Create(_ context.Context, c *entity.Contact) error {
	r.db.contacts[c.ID] = c
	return nil
}

func (r memContacts) GetByID(_ context.Context, id string) (*entity.Contact, error) {
	return r.db.contacts[id], nil
}

func (r memContacts) GetAll(_ context.Context, clientID string) ([]*entity.Contact, error) {
	if err := r.db.op("contacts.GetAll"); err != nil {
		return nil, err
	}
	var out []*entity.Contact
	for _, c := range r.db.contacts {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memContacts) Delete(_ context.Context, id string) error {
	if err := r.db.op("contacts.Delete"); err != nil {
		return err
	}
	delete(r.db.contacts, id)
	return nil
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.db.users[u.ID] = u
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.db.users[id], nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	if err := r.db.op("users.Delete"); err != nil {
		return err
	}
	delete(r.db.users, id)
	return nil
}

type memCc struct{ db *memDB }

func (r memCc) CreateCc(_ context.Context, a *entity.AccountCc) error {
	r.db.cc[a.ID] = a
	return nil
}

func (r memCc) GetAllCc(_ context.Context, contactID string) ([]*entity.AccountCc, error) {
	var out []*entity.AccountCc
	for _, a := range r.db.cc {
		if a.ContactID == contactID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memCc) DeleteCc(_ context.Context, id string) error {
	if err := r.db.op("DeleteCc"); err != nil {
		return err
	}
	delete(r.db.cc, id)
	return nil
}

type memAch struct{ db *memDB }

func (r memAch) CreateAch(_ context.Context, a *entity.AccountAch) error {
	r.db.ach[a.ID] = a
	return nil
}

func (r memAch) GetAllAch(_ context.Context, contactID string) ([]*entity.AccountAch, error) {
	var out []*entity.AccountAch
	for _, a := range r.db.ach {
		if a.ContactID == contactID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAch) DeleteAch(_ context.Context, id string) error {
	if err := r.db.op("DeleteAch"); err != nil {
		return err
	}
	delete(r.db.ach, id)
	return nil
}

type memInvoices struct{ db *memDB }

func (r memInvoices) Create(_ context.Context, inv *entity.Invoice, _ []*entity.InvoiceLine) error {
	r.db.invoices[inv.ID] = inv
	return nil
}

func (r memInvoices) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	return r.db.invoices[id], nil
}

func (r memInvoices) GetLines(context.Context, string) ([]*entity.InvoiceLine, error) {
	return nil, nil
}

func (r memInvoices) DeleteByClient(_ context.Context, clientID string) error {
	if err := r.db.op("invoices.DeleteByClient"); err != nil {
		return err
	}
	for id, inv := range r.db.invoices {
		if inv.ClientID == clientID {
			delete(r.db.invoices, id)
		}
	}
	return nil
}

type memServices struct{ db *memDB }

func (r memServices) Create(_ context.Context, s *entity.Service) error {
	r.db.services[s.ID] = s
	return nil
}

func (r memServices) GetByID(_ context.Context, id string) (*entity.Service, error) {
	return r.db.services[id], nil
}

func (r memServices) GetSimpleList(_ context.Context, clientID string, page, pageSize int) ([]*entity.Service, error) {
	r.db.calls = append(r.db.calls, "services.GetSimpleList")
	var all []*entity.Service
	for _, s := range r.db.services {
		if s.ClientID == clientID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, pageSize), nil
}

func (r memServices) Delete(_ context.Context, id string) error {
	if err := r.db.op("services.Delete"); err != nil {
		return err
	}
	if !r.db.stuckListing {
		delete(r.db.services, id)
	}
	return nil
}

type memChanges struct{ db *memDB }

func (r memChanges) Create(_ context.Context, c *entity.ServiceChange) error {
	r.db.changes[c.ID] = c
	return nil
}

func (r memChanges) DeleteByService(_ context.Context, serviceID string) error {
	if err := r.db.op("changes.DeleteByService"); err != nil {
		return err
	}
	for id, c := range r.db.changes {
		if c.ServiceID == serviceID {
			delete(r.db.changes, id)
		}
	}
	return nil
}

type memTransactions struct{ db *memDB }

func (r memTransactions) Create(_ context.Context, t *entity.Transaction) error {
	r.db.transactions[t.ID] = t
	return nil
}

func (r memTransactions) GetSimpleList(_ context.Context, clientID string, page, pageSize int) ([]*entity.Transaction, error) {
	var all []*entity.Transaction
	for _, t := range r.db.transactions {
		if t.ClientID == clientID {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page, pageSize), nil
}

func (r memTransactions) Delete(_ context.Context, id string) error {
	if err := r.db.op("transactions.Delete"); err != nil {
		return err
	}
	delete(r.db.transactions, id)
	return nil
}

type memLogs struct{ db *memDB }

func (r memLogs) AddUser(_ context.Context, l *entity.UserLog) error {
	r.db.userLogs[l.UserID]++
	return nil
}

func (r memLogs) AddContact(_ context.Context, l *entity.ContactLog) error {
	r.db.contactLogs[l.ContactID]++
	return nil
}

func (r memLogs) AddClientSetting(_ context.Context, l *entity.ClientSettingLog) error {
	r.db.settingLogs[l.ClientID]++
	return nil
}

func (r memLogs) DeleteUser(_ context.Context, userID string) error {
	if err := r.db.op("logs.DeleteUser"); err != nil {
		return err
	}
	delete(r.db.userLogs, userID)
	return nil
}

func (r memLogs) DeleteContact(_ context.Context, contactID string) error {
	if err := r.db.op("logs.DeleteContact"); err != nil {
		return err
	}
	delete(r.db.contactLogs, contactID)
	return nil
}

func (r memLogs) DeleteService(_ context.Context, serviceID string) error {
	if err := r.db.op("logs.DeleteService"); err != nil {
		return err
	}
	delete(r.db.serviceLogs, serviceID)
	return nil
}

func (r memLogs) DeleteTransaction(_ context.Context, transactionID string) error {
	if err := r.db.op("logs.DeleteTransaction"); err != nil {
		return err
	}
	delete(r.db.txLogs, transactionID)
	return nil
}

func (r memLogs) DeleteClientSettingLogs(_ context.Context, _ time.Time, filter repository.ClientSettingLogFilter) error {
	if err := r.db.op("logs.DeleteClientSettingLogs"); err != nil {
		return err
	}
	delete(r.db.settingLogs, filter.ClientID)
	return nil
}

func paginate[T any](all []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
