// seed crea una empresa de demostración con reglas de impuesto y un cliente completo
// (usuario, contactos, cuentas, servicios, transacciones, factura) y muestra un token de admin.
//
// Uso: go run ./cmd/seed [company_id]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/billing-core/internal/domain/entity"
	"github.com/jhoicas/billing-core/internal/infrastructure/postgres"
	"github.com/jhoicas/billing-core/pkg/config"
	"github.com/jhoicas/billing-core/pkg/jwt"
	"github.com/jhoicas/billing-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	companyID := uuid.NewString()
	if len(os.Args) > 1 {
		if _, err := uuid.Parse(os.Args[1]); err != nil {
			log.Fatal().Err(err).Msg("company_id inválido")
		}
		companyID = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	clientID, invoiceID, err := seed(ctx, tx, companyID)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("commit transaction")
	}

	log.Info().Str("company_id", companyID).Str("client_id", clientID).Str("invoice_id", invoiceID).Msg("datos de demostración creados")

	if cfg.JWT.Secret != "" {
		token, err := jwt.Generate(cfg.JWT.Secret, uuid.NewString(), companyID, "admin", cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Println(token)
	}
}

func seed(ctx context.Context, q postgres.Querier, companyID string) (string, string, error) {
	s := postgres.NewStores(q)
	taxes := postgres.NewTaxRuleRepository(q)
	now := time.Now().UTC()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	newUser := func(prefix string) (*entity.User, error) {
		u := &entity.User{Username: prefix + "-" + uuid.NewString()[:8], PasswordHash: string(hash), CreatedAt: now}
		return u, s.Users.Create(ctx, u)
	}

	state := &entity.TaxRule{CompanyID: companyID, Name: "State", Amount: decimal.NewFromInt(8), Type: entity.TaxTypeExclusive, Level: 1, Status: "active", CreatedAt: now}
	county := &entity.TaxRule{CompanyID: companyID, Name: "County", Amount: decimal.RequireFromString("1.5"), Type: entity.TaxTypeExclusive, Cascade: true, Level: 2, Status: "active", CreatedAt: now}
	for _, t := range []*entity.TaxRule{state, county} {
		if err := taxes.Create(ctx, t); err != nil {
			return "", "", err
		}
	}

	owner, err := newUser("cliente")
	if err != nil {
		return "", "", err
	}
	client := &entity.Client{CompanyID: companyID, UserID: owner.ID, Status: entity.ClientStatusActive, Currency: "USD", CreatedAt: now, UpdatedAt: now}
	if err := s.Clients.Create(ctx, client); err != nil {
		return "", "", err
	}
	if err := s.ClientSettings.SetSetting(ctx, &entity.ClientSetting{ClientID: client.ID, Key: entity.SettingCascadeTax, Value: "true"}); err != nil {
		return "", "", err
	}

	for n, kind := range []string{entity.ContactTypePrimary, entity.ContactTypeBilling} {
		contact := &entity.Contact{ClientID: client.ID, ContactType: kind, FirstName: "Demo", LastName: fmt.Sprint(n + 1), Email: fmt.Sprintf("demo%d@example.com", n+1), CreatedAt: now}
		if kind == entity.ContactTypePrimary {
			u, err := newUser("contacto")
			if err != nil {
				return "", "", err
			}
			contact.UserID = &u.ID
		}
		if err := s.Contacts.Create(ctx, contact); err != nil {
			return "", "", err
		}
		if err := s.AccountsCc.CreateCc(ctx, &entity.AccountCc{ContactID: contact.ID, LastFour: "4242", Type: "visa", Expiration: "203012", Status: entity.AccountStatusActive, CreatedAt: now}); err != nil {
			return "", "", err
		}
	}

	var lines []*entity.InvoiceLine
	for n := 1; n <= 3; n++ {
		svc := &entity.Service{ClientID: client.ID, PackageName: fmt.Sprintf("Hosting %d", n), Qty: decimal.NewFromInt(1), Price: decimal.NewFromInt(int64(10 * n)), Status: entity.ServiceStatusActive, CreatedAt: now}
		if err := s.Services.Create(ctx, svc); err != nil {
			return "", "", err
		}
		lines = append(lines, &entity.InvoiceLine{
			ServiceID: &svc.ID, Description: svc.PackageName, Qty: svc.Qty, Amount: svc.Price, Taxable: true,
			Taxes: []entity.InvoiceLineTax{{TaxRuleID: state.ID, Cascade: &state.Cascade}, {TaxRuleID: county.ID, Cascade: &county.Cascade}},
		})
	}
	if err := s.Transactions.Create(ctx, &entity.Transaction{ClientID: client.ID, Amount: decimal.NewFromInt(60), Currency: "USD", Type: "cc", Status: "approved", CreatedAt: now}); err != nil {
		return "", "", err
	}

	inv := &entity.Invoice{ClientID: client.ID, Number: "DEMO-1", Currency: "USD", Status: entity.InvoiceStatusActive, DateBilled: now, DateDue: now.AddDate(0, 0, 15), CreatedAt: now}
	if err := s.Invoices.Create(ctx, inv, lines); err != nil {
		return "", "", err
	}
	return client.ID, inv.ID, nil
}
