// Package report implements per-vendor analytics aggregation
package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/niorc/backend/internal/domain/billing"
	"github.com/niorc/backend/internal/domain/crm"
	"github.com/niorc/backend/internal/domain/ops"
	"github.com/niorc/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TopItem is one menu entry ranked by quantity sold inside the window
type TopItem struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Summary aggregates a vendor's business over [From, To). Growth fields
// compare against the immediately preceding window of equal length and
// are nil when that baseline is zero.
type Summary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Revenue      decimal.Decimal `json:"revenue"`
	BillCount    int64           `json:"bill_count"`
	NewCustomers int64           `json:"new_customers"`
	Expenses     decimal.Decimal `json:"expenses"`
	Net          decimal.Decimal `json:"net"`

	TopItems []TopItem `json:"top_items"`

	RevenueGrowth   *decimal.Decimal `json:"revenue_growth,omitempty"`
	BillCountGrowth *decimal.Decimal `json:"bill_count_growth,omitempty"`
}

// ReportService computes analytics summaries for one vendor at a time
type ReportService struct {
	billRepo     billing.BillRepository
	customerRepo crm.CustomerRepository
	expenseRepo  ops.ExpenseRepository
	logger       *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(billRepo billing.BillRepository, customerRepo crm.CustomerRepository, expenseRepo ops.ExpenseRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		billRepo:     billRepo,
		customerRepo: customerRepo,
		expenseRepo:  expenseRepo,
		logger:       logger,
	}
}

const topItemLimit = 5

// Summarize aggregates the vendor's activity inside [from, to). Cancelled
// bills never count; revenue covers settled bills only.
func (s *ReportService) Summarize(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*Summary, error) {
	if !to.After(from) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Window end must be after its start")
	}

	bills, err := s.billRepo.FindBetween(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	revenue, billCount, topItems := aggregateBills(bills)

	newCustomers, err := s.customerRepo.CountCreatedBetween(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumBetween(ctx, vendorID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:         from,
		To:           to,
		Revenue:      revenue,
		BillCount:    billCount,
		NewCustomers: newCustomers,
		Expenses:     expenses,
		Net:          revenue.Sub(expenses),
		TopItems:     topItems,
	}

	// Previous window of equal length, ending where this one starts.
	prevFrom := from.Add(-to.Sub(from))
	prevBills, err := s.billRepo.FindBetween(ctx, vendorID, prevFrom, from)
	if err != nil {
		return nil, err
	}
	prevRevenue, prevCount, _ := aggregateBills(prevBills)
	summary.RevenueGrowth = growth(revenue, prevRevenue)
	summary.BillCountGrowth = growth(decimal.NewFromInt(billCount), decimal.NewFromInt(prevCount))

	return summary, nil
}

// aggregateBills totals settled revenue, counts non-cancelled bills and
// ranks line items by quantity
func aggregateBills(bills []billing.Bill) (decimal.Decimal, int64, []TopItem) {
	revenue := decimal.Zero
	var count int64
	byItem := make(map[uuid.UUID]*TopItem)

	for i := range bills {
		bill := &bills[i]
		if bill.Status == billing.BillStatusCancelled {
			continue
		}
		count++
		if bill.Status != billing.BillStatusPaid {
			continue
		}
		revenue = revenue.Add(bill.FinalAmount)
		for _, line := range bill.Items {
			entry, ok := byItem[line.ItemID]
			if !ok {
				entry = &TopItem{ItemID: line.ItemID, Name: line.Name, Revenue: decimal.Zero}
				byItem[line.ItemID] = entry
			}
			entry.Quantity += line.Quantity
			entry.Revenue = entry.Revenue.Add(line.Total)
		}
	}

	top := make([]TopItem, 0, len(byItem))
	for _, entry := range byItem {
		top = append(top, *entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity != top[j].Quantity {
			return top[i].Quantity > top[j].Quantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topItemLimit {
		top = top[:topItemLimit]
	}
	return revenue, count, top
}

// growth returns the percentage change from previous to current, or nil
// when the baseline is zero
func growth(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	g := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	return &g
}
