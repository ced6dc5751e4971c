package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Arhonist/nextjs-dashboard/internal/metrics"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/validation"
)

// CustomersPath is the customer list route.
const CustomersPath = "/dashboard/customers"

const (
	MsgCustomerName  = "Please enter a name."
	MsgCustomerEmail = "Please enter a valid email address."

	MsgCustomerInvalid = "Missing Fields. Failed to Create Customer."
	MsgCustomerFailed  = "Database Error: Failed to Create Customer."
)

// CustomerService applies customer form submissions.
type CustomerService struct {
	db    *gorm.DB
	cache Invalidator
	log   logrus.FieldLogger
}

func NewCustomerService(db *gorm.DB, cache Invalidator, log logrus.FieldLogger) *CustomerService {
	return &CustomerService{db: db, cache: cache, log: log}
}

// CreateCustomer validates name, email and the optional image_url, inserts
// the customer and redirects to the customer list.
func (s *CustomerService) CreateCustomer(ctx context.Context, form url.Values) Result {
	c := models.Customer{
		Name:     strings.TrimSpace(form.Get("name")),
		Email:    strings.TrimSpace(form.Get("email")),
		ImageURL: strings.TrimSpace(form.Get("image_url")),
	}

	errs := validation.Errors{}
	validation.Required("name", c.Name, MsgCustomerName, errs)
	validation.Email("email", c.Email, MsgCustomerEmail, errs)
	if !errs.Empty() {
		metrics.RecordMutation("create_customer", ResultInvalid.String())
		return Invalid(errs, MsgCustomerInvalid)
	}

	c.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		s.log.WithError(err).Error("create customer failed")
		metrics.RecordMutation("create_customer", ResultFailed.String())
		return Failed(MsgCustomerFailed)
	}

	if s.cache != nil {
		s.cache.Invalidate(CustomersPath)
	}
	s.log.WithField("customer_id", c.ID).Info("customer created")
	metrics.RecordMutation("create_customer", ResultOK.String())
	return OK(CustomersPath)
}
