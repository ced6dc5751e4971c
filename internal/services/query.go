package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/internal/money"
)

const (
	// PageSize is the number of invoices per list page.
	PageSize = 6
	// LatestInvoicesLimit bounds the overview widget.
	LatestInvoicesLimit = 5
	// RevenueMonths bounds the revenue chart.
	RevenueMonths = 12

	maxPage = math.MaxInt/PageSize + 1
)

const invoiceViewColumns = "invoices.id, invoices.customer_id, customers.name, customers.email, " +
	"customers.image_url, invoices.date, invoices.amount, invoices.status"

const invoiceSearch = `LOWER(customers.name) LIKE @q ESCAPE '\' OR ` +
	`LOWER(customers.email) LIKE @q ESCAPE '\' OR ` +
	`LOWER(CAST(invoices.amount AS TEXT)) LIKE @q ESCAPE '\' OR ` +
	`LOWER(invoices.date) LIKE @q ESCAPE '\' OR ` +
	`LOWER(invoices.status) LIKE @q ESCAPE '\'`

const customerSearch = `LOWER(customers.name) LIKE @q ESCAPE '\' OR LOWER(customers.email) LIKE @q ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern. LIKE wildcards in
// the user's query match literally.
func likePattern(query string) sql.NamedArg {
	return sql.Named("q", "%"+likeEscaper.Replace(strings.ToLower(query))+"%")
}

// QueryService runs the dashboard's read queries.
type QueryService struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

func NewQueryService(db *gorm.DB, log logrus.FieldLogger) *QueryService {
	return &QueryService{db: db, log: log}
}

func (s *QueryService) fail(what string, err error) error {
	s.log.WithError(err).WithField("fetch", what).Error("database query failed")
	return &FetchError{What: what, Err: err}
}

func (s *QueryService) filteredInvoices(ctx context.Context, query string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where(invoiceSearch, likePattern(query))
}

// ListInvoices returns one page of invoices whose customer name, email,
// amount, date or status contains query, newest first.
func (s *QueryService) ListInvoices(ctx context.Context, query string, page int) ([]models.InvoiceView, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	if page > maxPage {
		// the offset would overflow; no table is that large
		return []models.InvoiceView{}, nil
	}
	var rows []models.InvoiceView
	err := s.filteredInvoices(ctx, query).
		Select(invoiceViewColumns).
		Order("invoices.date DESC, invoices.id DESC").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("invoices", err)
	}
	return nonNil(rows), nil
}

// CountInvoicePages returns how many pages ListInvoices has for query.
func (s *QueryService) CountInvoicePages(ctx context.Context, query string) (int, error) {
	var count int64
	if err := s.filteredInvoices(ctx, query).Count(&count).Error; err != nil {
		return 0, s.fail("total number of invoices", err)
	}
	return int((count + PageSize - 1) / PageSize), nil
}

// ListCustomers returns customers matching query by name or email, with
// their invoice count and per-status totals.
func (s *QueryService) ListCustomers(ctx context.Context, query string) ([]models.CustomerSummary, error) {
	var rows []models.CustomerSummary
	err := s.db.WithContext(ctx).
		Table("customers").
		Select(`customers.id, customers.name, customers.email, customers.image_url,
			COUNT(invoices.id) AS total_invoices,
			CAST(COALESCE(SUM(CASE WHEN invoices.status = 'pending' THEN invoices.amount ELSE 0 END), 0) AS BIGINT) AS total_pending,
			CAST(COALESCE(SUM(CASE WHEN invoices.status = 'paid' THEN invoices.amount ELSE 0 END), 0) AS BIGINT) AS total_paid`).
		Joins("LEFT JOIN invoices ON customers.id = invoices.customer_id").
		Where(customerSearch, likePattern(query)).
		Group("customers.id, customers.name, customers.email, customers.image_url").
		Order("customers.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("customer table", err)
	}
	return nonNil(rows), nil
}

// ListCustomerOptions returns every customer for invoice form selects.
func (s *QueryService) ListCustomerOptions(ctx context.Context) ([]models.CustomerOption, error) {
	var rows []models.CustomerOption
	err := s.db.WithContext(ctx).
		Model(&models.Customer{}).
		Select("id, name").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("all customers", err)
	}
	return nonNil(rows), nil
}

// FetchCardSummary computes the overview counters. The three queries run
// concurrently and any failure fails the whole call.
func (s *QueryService) FetchCardSummary(ctx context.Context) (models.CardSummary, error) {
	var (
		sum    models.CardSummary
		totals struct {
			Paid    int64
			Pending int64
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Invoice{}).Count(&sum.InvoiceCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Customer{}).Count(&sum.CustomerCount).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Invoice{}).
			Select(`CAST(COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0) AS BIGINT) AS paid,
				CAST(COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS BIGINT) AS pending`).
			Scan(&totals).Error
	})
	if err := g.Wait(); err != nil {
		return models.CardSummary{}, s.fail("card data", err)
	}

	sum.PaidTotal = totals.Paid
	sum.PendingTotal = totals.Pending
	return sum, nil
}

// FetchInvoiceByID loads an invoice for the edit form with its amount in dollars.
func (s *QueryService) FetchInvoiceByID(ctx context.Context, id string) (models.InvoiceForm, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.InvoiceForm{}, ErrInvoiceNotFound
	}

	var inv models.Invoice
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InvoiceForm{}, ErrInvoiceNotFound
	}
	if err != nil {
		return models.InvoiceForm{}, s.fail("invoice", err)
	}

	return models.InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     money.FromCents(inv.Amount),
		Status:     inv.Status,
	}, nil
}

// FetchLatestInvoices returns the most recent invoices for the overview.
func (s *QueryService) FetchLatestInvoices(ctx context.Context) ([]models.InvoiceView, error) {
	var rows []models.InvoiceView
	err := s.db.WithContext(ctx).
		Table("invoices").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Select(invoiceViewColumns).
		Order("invoices.date DESC, invoices.id DESC").
		Limit(LatestInvoicesLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("the latest invoices", err)
	}
	return nonNil(rows), nil
}

// FetchRevenue returns invoiced totals per month for the most recent
// months that have invoices, oldest first.
func (s *QueryService) FetchRevenue(ctx context.Context) ([]models.Revenue, error) {
	var rows []models.Revenue
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("SUBSTR(invoices.date, 1, 7) AS month, CAST(COALESCE(SUM(invoices.amount), 0) AS BIGINT) AS revenue").
		Group("SUBSTR(invoices.date, 1, 7)").
		Order("month DESC").
		Limit(RevenueMonths).
		Scan(&rows).Error
	if err != nil {
		return nil, s.fail("revenue data", err)
	}
	slices.Reverse(rows)
	return nonNil(rows), nil
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// Pagination lays out the page links for a list: every page when there are
// few, otherwise the first and last pages around the current one with "..."
// gaps.
func Pagination(current, total int) []string {
	if total <= 0 {
		return []string{}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	var pages []int
	switch {
	case total <= 7:
		for p := 1; p <= total; p++ {
			pages = append(pages, p)
		}
	case current <= 3:
		pages = []int{1, 2, 3, 0, total - 1, total}
	case current >= total-2:
		pages = []int{1, 2, 0, total - 2, total - 1, total}
	default:
		pages = []int{1, 0, current - 1, current, current + 1, 0, total}
	}

	out := make([]string, len(pages))
	for i, p := range pages {
		if p == 0 {
			out[i] = "..."
			continue
		}
		out[i] = strconv.Itoa(p)
	}
	return out
}
