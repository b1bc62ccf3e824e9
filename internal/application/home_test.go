package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ericfisherdev/wizeportal/internal/application"
	"github.com/ericfisherdev/wizeportal/internal/domain/model"
)

func invoiceOn(id string, day int) model.Invoice {
	return model.Invoice{
		ID:          model.ID(id),
		CreatedDate: model.Timestamp{Time: time.Date(2024, 6, day, 12, 0, 0, 0, time.UTC)},
	}
}

func TestHomeService_Load(t *testing.T) {
	defer goleak.VerifyNone(t)

	invoices := []model.Invoice{
		invoiceOn("1", 1), invoiceOn("2", 2), invoiceOn("3", 3),
		invoiceOn("4", 4), invoiceOn("5", 5), invoiceOn("6", 6), invoiceOn("7", 7),
	}
	costCenters := &mockCostCenters{list: model.Success([]model.CostCenter{
		{ID: "a", Name: "Ops"},
		{ID: "b", Name: "Legacy", IsDeleted: true},
	})}
	svc := application.NewHomeService(
		&mockDashboard{result: model.Success(model.DashboardStats{InvoiceStatistics: model.InvoiceStatistics{TotalTransactions: 7}})},
		&mockInvoices{list: model.Success(invoices)},
		costCenters,
	)

	view := svc.Load(context.Background(), &model.Session{UserKey: "u", ClientKey: "c"})

	require.True(t, view.Stats.OK())
	assert.Equal(t, 7, view.Stats.Data().InvoiceStatistics.TotalTransactions)

	require.True(t, view.RecentInvoices.OK())
	recent := view.RecentInvoices.Data()
	require.Len(t, recent, application.RecentInvoiceCount)
	assert.Equal(t, model.ID("7"), recent[0].ID)
	assert.Equal(t, model.ID("3"), recent[4].ID)

	require.True(t, view.CostCenters.OK())
	assert.Len(t, view.CostCenters.Data(), 1)
	assert.Equal(t, model.DefaultListQuery(), costCenters.lastQuery)
}

func TestHomeService_PartsFailIndependently(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := application.NewHomeService(
		&mockDashboard{result: model.Failure[model.DashboardStats]("Failed to load dashboard data.")},
		&mockInvoices{list: model.Success([]model.Invoice{invoiceOn("1", 1)})},
		&mockCostCenters{list: model.Failure[[]model.CostCenter]("Connection error.")},
	)

	view := svc.Load(context.Background(), &model.Session{UserKey: "u", ClientKey: "c"})

	assert.False(t, view.Stats.OK())
	assert.Equal(t, "Failed to load dashboard data.", view.Stats.Message())
	assert.True(t, view.RecentInvoices.OK())
	assert.Len(t, view.RecentInvoices.Data(), 1)
	assert.False(t, view.CostCenters.OK())
	assert.Equal(t, "Connection error.", view.CostCenters.Message())
}

func TestHomeService_CancelledRequestLeaksNothing(t *testing.T) {
	defer goleak.VerifyNone(t)

	block := make(chan struct{})
	defer close(block)
	svc := application.NewHomeService(
		&mockDashboard{wait: block},
		&mockInvoices{list: model.Success([]model.Invoice{})},
		&mockCostCenters{list: model.Success([]model.CostCenter{})},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	view := svc.Load(ctx, &model.Session{UserKey: "u", ClientKey: "c"})

	assert.False(t, view.Stats.OK())
	assert.True(t, view.RecentInvoices.OK())
}
