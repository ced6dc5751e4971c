package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Arhonist/nextjs-dashboard/internal/models"
)

// SeedUserEmail and SeedUserPassword are the credentials of the demo account.
const (
	SeedUserEmail    = "user@nextmail.com"
	SeedUserPassword = "123456"
)

// invoiceNamespace derives stable invoice ids so reseeding is a no-op.
var invoiceNamespace = uuid.MustParse("6f0c3a52-2d0e-4f7e-9a57-3b8e6a0c1d44")

var seedCustomers = []models.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

type seedInvoice struct {
	customer int
	amount   int64
	status   models.InvoiceStatus
	date     string
}

var seedInvoices = []seedInvoice{
	{0, 15795, models.InvoiceStatusPending, "2022-12-06"},
	{1, 20348, models.InvoiceStatusPending, "2022-11-14"},
	{4, 3040, models.InvoiceStatusPaid, "2022-10-29"},
	{3, 44800, models.InvoiceStatusPaid, "2023-09-10"},
	{5, 34577, models.InvoiceStatusPending, "2023-08-05"},
	{2, 54246, models.InvoiceStatusPending, "2023-07-16"},
	{0, 666, models.InvoiceStatusPending, "2023-06-27"},
	{3, 32545, models.InvoiceStatusPaid, "2023-06-09"},
	{4, 1250, models.InvoiceStatusPaid, "2023-06-17"},
	{5, 8546, models.InvoiceStatusPaid, "2023-06-07"},
	{1, 500, models.InvoiceStatusPaid, "2023-08-19"},
	{5, 8945, models.InvoiceStatusPaid, "2023-06-03"},
	{2, 1000, models.InvoiceStatusPaid, "2022-06-05"},
}

// SeedInvoices builds the placeholder invoices with their deterministic ids.
func SeedInvoices() []models.Invoice {
	out := make([]models.Invoice, len(seedInvoices))
	for i, s := range seedInvoices {
		out[i] = models.Invoice{
			ID:         uuid.NewSHA1(invoiceNamespace, fmt.Appendf(nil, "invoice-%d", i)).String(),
			CustomerID: seedCustomers[s.customer].ID,
			Amount:     s.amount,
			Status:     s.status,
			Date:       s.date,
		}
	}
	return out
}

// Seed inserts the demo user and placeholder customers and invoices.
// Existing rows are left untouched, so running it twice is harmless.
func Seed(ctx context.Context, conn *gorm.DB, log logrus.FieldLogger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	customers := make([]models.Customer, len(seedCustomers))
	copy(customers, seedCustomers)
	invoices := SeedInvoices()

	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skip := func() *gorm.DB { return tx.Clauses(clause.OnConflict{DoNothing: true}) }

		user := models.User{
			ID:       "410544b2-4001-4271-9855-fec4b6a6442a",
			Name:     "User",
			Email:    SeedUserEmail,
			Password: string(hash),
		}
		if err := skip().Create(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		if err := skip().Create(&customers).Error; err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
		if err := skip().Create(&invoices).Error; err != nil {
			return fmt.Errorf("seed invoices: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"customers": len(customers),
		"invoices":  len(invoices),
	}).Info("seed data ensured")
	return nil
}
