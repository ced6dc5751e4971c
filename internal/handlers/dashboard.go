package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Arhonist/nextjs-dashboard/httpx"
	"github.com/Arhonist/nextjs-dashboard/internal/models"
	"github.com/Arhonist/nextjs-dashboard/internal/money"
	"github.com/Arhonist/nextjs-dashboard/internal/services"
)

type DashboardHandler struct {
	queries *services.QueryService
	log     logrus.FieldLogger
}

func NewDashboardHandler(queries *services.QueryService, log logrus.FieldLogger) *DashboardHandler {
	return &DashboardHandler{queries: queries, log: log}
}

type cardsView struct {
	models.CardSummary
	PaidDisplay    string `json:"paid_display"`
	PendingDisplay string `json:"pending_display"`
}

type overview struct {
	Cards          cardsView            `json:"cards"`
	LatestInvoices []models.InvoiceView `json:"latest_invoices"`
	Revenue        []models.Revenue     `json:"revenue"`
}

// Overview returns the cards, latest invoices and revenue chart data.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var out overview
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		sum, err := h.queries.FetchCardSummary(ctx)
		out.Cards = cardsView{
			CardSummary:    sum,
			PaidDisplay:    money.Format(sum.PaidTotal),
			PendingDisplay: money.Format(sum.PendingTotal),
		}
		return err
	})
	g.Go(func() (err error) {
		out.LatestInvoices, err = h.queries.FetchLatestInvoices(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = h.queries.FetchRevenue(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		writeFetchError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
