package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/wizeportal/internal/domain/model"
	"github.com/ericfisherdev/wizeportal/internal/domain/port/driven"
)

// RecentInvoiceCount is how many invoices the home page lists.
const RecentInvoiceCount = 5

// HomeView is everything the home page shows. Each part succeeds or fails on
// its own.
type HomeView struct {
	Stats          model.Result[model.DashboardStats]
	RecentInvoices model.Result[[]model.Invoice]
	CostCenters    model.Result[[]model.CostCenter]
}

// HomeService assembles the home page from three independent backend calls.
type HomeService struct {
	dashboard   driven.DashboardGateway
	invoices    driven.InvoiceGateway
	costCenters driven.CostCenterGateway
}

// NewHomeService creates a HomeService.
func NewHomeService(dashboard driven.DashboardGateway, invoices driven.InvoiceGateway, costCenters driven.CostCenterGateway) *HomeService {
	return &HomeService{dashboard: dashboard, invoices: invoices, costCenters: costCenters}
}

// Load issues the three calls concurrently and waits for all of them.
func (s *HomeService) Load(ctx context.Context, sess *model.Session) HomeView {
	var view HomeView
	var g errgroup.Group

	g.Go(func() error {
		view.Stats = s.dashboard.Dashboard(ctx, sess)
		return nil
	})
	g.Go(func() error {
		res := s.invoices.ListInvoices(ctx, sess)
		view.RecentInvoices = model.MapResult(res, func(all []model.Invoice) []model.Invoice {
			return model.RecentInvoices(all, RecentInvoiceCount)
		})
		return nil
	})
	g.Go(func() error {
		res := s.costCenters.ListCostCenters(ctx, sess, model.DefaultListQuery())
		view.CostCenters = model.MapResult(res, model.ActiveCostCenters)
		return nil
	})

	// The goroutines report through view; none returns an error.
	_ = g.Wait()
	return view
}
