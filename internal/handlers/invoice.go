package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Arhonist/nextjs-dashboard/httpx"
	"github.com/Arhonist/nextjs-dashboard/internal/cache"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/internal/services"
)

type InvoiceHandler struct {
	queries  *services.QueryService
	invoices *services.InvoiceService
	renders  *cache.RenderCache
	log      logrus.FieldLogger
}

func NewInvoiceHandler(queries *services.QueryService, invoices *services.InvoiceService, renders *cache.RenderCache, log logrus.FieldLogger) *InvoiceHandler {
	return &InvoiceHandler{queries: queries, invoices: invoices, renders: renders, log: log}
}

type invoiceListPage struct {
	Items      []models.InvoiceView `json:"items"`
	Query      string               `json:"query"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
	Pagination []string             `json:"pagination"`
}

// List renders one page of the invoice table. Renders are cached per
// query and page until an invoice write invalidates them.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query, page := readParams(r)
	key := query + "\x00" + strconv.Itoa(page)

	body, err := h.renders.Fetch(services.InvoicesPath, key, func() ([]byte, error) {
		ctx := r.Context()
		items, err := h.queries.ListInvoices(ctx, query, page)
		if err != nil {
			return nil, err
		}
		total, err := h.queries.CountInvoicePages(ctx, query)
		if err != nil {
			return nil, err
		}
		return httpx.Marshal(invoiceListPage{
			Items:      items,
			Query:      query,
			Page:       page,
			TotalPages: total,
			Pagination: services.Pagination(page, total),
		})
	})
	if err != nil {
		writeFetchError(w, err)
		return
	}
	httpx.Raw(w, http.StatusOK, body)
}

// New returns what the create form needs.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	customers, err := h.queries.ListCustomerOptions(r.Context())
	if err != nil {
		writeFetchError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"customers": customers})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	writeResult(w, r, h.invoices.CreateInvoice(r.Context(), r.Form))
}

// Edit returns the invoice and the customer choices for the edit form.
func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		invoice   models.InvoiceForm
		customers []models.CustomerOption
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		invoice, err = h.queries.FetchInvoiceByID(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		customers, err = h.queries.ListCustomerOptions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeFetchError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"invoice":   invoice,
		"customers": customers,
	})
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	writeResult(w, r, h.invoices.UpdateInvoice(r.Context(), r.PathValue("id"), r.Form))
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoices.DeleteInvoice(r.Context(), r.PathValue("id")); err != nil {
		httpx.Form(w, http.StatusInternalServerError, nil, services.MsgDeleteFailed)
		return
	}
	http.Redirect(w, r, services.InvoicesPath, http.StatusSeeOther)
}
