package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/internal/metrics"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/internal/money"
	"github.com/Arhonist/nextjs-dashboard/validation"
)

// InvoicesPath is the invoice list route; writes invalidate it and
// successful submissions redirect to it.
const InvoicesPath = "/dashboard/invoices"

// Form messages shown to the user.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmount         = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."

	MsgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	MsgUpdateInvalid = "Missing Fields. Failed to Update Invoice."
	MsgCreateFailed  = "Database Error: Failed to Create Invoice."
	MsgUpdateFailed  = "Database Error: Failed to Update Invoice."
	MsgDeleteFailed  = "Database Error: Failed to Delete Invoice."
)

// Invalidator drops cached renders of a resource path.
type Invalidator interface {
	Invalidate(path string)
}

// InvoiceService validates and applies invoice form submissions.
type InvoiceService struct {
	db    *gorm.DB
	cache Invalidator
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewInvoiceService(db *gorm.DB, cache Invalidator, log logrus.FieldLogger) *InvoiceService {
	return &InvoiceService{db: db, cache: cache, log: log, now: time.Now}
}

type invoiceInput struct {
	CustomerID string
	Amount     int64 // cents
	Status     models.InvoiceStatus
}

// parseInvoiceForm checks every field and reports all failures at once.
func parseInvoiceForm(form url.Values) (invoiceInput, validation.Errors) {
	errs := validation.Errors{}
	in := invoiceInput{
		CustomerID: strings.TrimSpace(form.Get("customerId")),
		Status:     models.InvoiceStatus(form.Get("status")),
	}

	validation.Required("customerId", in.CustomerID, MsgSelectCustomer, errs)

	dollars, err := money.Parse(form.Get("amount"))
	if err == nil {
		in.Amount, err = money.ToCents(dollars)
	}
	if err != nil {
		errs.Add("amount", MsgAmount)
	} else {
		validation.Positive("amount", in.Amount, MsgAmount, errs)
	}

	validation.OneOf("status", string(in.Status), models.InvoiceStatuses, MsgSelectStatus, errs)
	return in, errs
}

// CreateInvoice validates form, inserts the invoice dated today and
// redirects to the invoice list.
func (s *InvoiceService) CreateInvoice(ctx context.Context, form url.Values) Result {
	in, errs := parseInvoiceForm(form)
	if !errs.Empty() {
		return s.record("create_invoice", Invalid(errs, MsgCreateInvalid))
	}

	inv := models.Invoice{
		ID:         uuid.NewString(),
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Status:     in.Status,
		Date:       s.now().UTC().Format(models.DateLayout),
	}
	if err := s.db.WithContext(ctx).Create(&inv).Error; err != nil {
		s.log.WithError(err).WithField("customer_id", in.CustomerID).Error("create invoice failed")
		return s.record("create_invoice", Failed(MsgCreateFailed))
	}

	s.invalidate()
	s.log.WithField("invoice_id", inv.ID).Info("invoice created")
	return s.record("create_invoice", OK(InvoicesPath))
}

// UpdateInvoice validates form and rewrites customer, amount and status of
// invoice id. The date is kept. A missing invoice is reported like any
// other store failure.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id string, form url.Values) Result {
	in, errs := parseInvoiceForm(form)
	if !errs.Empty() {
		return s.record("update_invoice", Invalid(errs, MsgUpdateInvalid))
	}

	logger := s.log.WithField("invoice_id", id)
	if _, err := uuid.Parse(id); err != nil {
		logger.Warn("update of malformed invoice id")
		return s.record("update_invoice", Failed(MsgUpdateFailed))
	}

	res := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"customer_id": in.CustomerID,
			"amount":      in.Amount,
			"status":      string(in.Status),
		})
	if res.Error != nil {
		logger.WithError(res.Error).Error("update invoice failed")
		return s.record("update_invoice", Failed(MsgUpdateFailed))
	}
	if res.RowsAffected == 0 {
		logger.Warn("update of unknown invoice")
		return s.record("update_invoice", Failed(MsgUpdateFailed))
	}

	s.invalidate()
	logger.Info("invoice updated")
	return s.record("update_invoice", OK(InvoicesPath))
}

// DeleteInvoice removes invoice id. Deleting an invoice that does not exist
// succeeds. Store failures wrap ErrPersistence.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id string) error {
	logger := s.log.WithField("invoice_id", id)
	if _, err := uuid.Parse(id); err != nil {
		logger.Debug("delete of malformed invoice id ignored")
		s.record("delete_invoice", OK(InvoicesPath))
		return nil
	}

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{})
	if res.Error != nil {
		logger.WithError(res.Error).Error("delete invoice failed")
		s.record("delete_invoice", Failed(MsgDeleteFailed))
		return fmt.Errorf("%w: %s", ErrPersistence, MsgDeleteFailed)
	}

	s.invalidate()
	logger.WithField("rows", res.RowsAffected).Info("invoice deleted")
	s.record("delete_invoice", OK(InvoicesPath))
	return nil
}

// invalidatedPaths lists the renders an invoice write makes stale. The
// customer list carries per-customer invoice totals.
var invalidatedPaths = []string{InvoicesPath, CustomersPath}

func (s *InvoiceService) invalidate() {
	if s.cache == nil {
		return
	}
	for _, p := range invalidatedPaths {
		s.cache.Invalidate(p)
	}
}

func (s *InvoiceService) record(op string, r Result) Result {
	metrics.RecordMutation(op, r.Kind.String())
	return r
}
