package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Arhonist/nextjs-dashboard/httpx"
	"github.com/Arhonist/nextjs-dashboard/internal/cache"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/internal/services"
)

type CustomerHandler struct {
	queries   *services.QueryService
	customers *services.CustomerService
	renders   *cache.RenderCache
	log       logrus.FieldLogger
}

func NewCustomerHandler(queries *services.QueryService, customers *services.CustomerService, renders *cache.RenderCache, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{queries: queries, customers: customers, renders: renders, log: log}
}

type customerListPage struct {
	Items []models.CustomerSummary `json:"items"`
	Query string                   `json:"query"`
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	query, _ := readParams(r)
	body, err := h.renders.Fetch(services.CustomersPath, query, func() ([]byte, error) {
		items, err := h.queries.ListCustomers(r.Context(), query)
		if err != nil {
			return nil, err
		}
		return httpx.Marshal(customerListPage{Items: items, Query: query})
	})
	if err != nil {
		writeFetchError(w, err)
		return
	}
	httpx.Raw(w, http.StatusOK, body)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	writeResult(w, r, h.customers.CreateCustomer(r.Context(), r.Form))
}
