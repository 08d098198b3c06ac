package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cwrk-planet/bizos/internal/domain"

	"github.com/samber/lo"
)

type DashboardService struct {
	txs      TransactionRepo
	contacts ContactRepo
	docs     DocumentRepo
	now      func() time.Time
}

func NewDashboardService(txs TransactionRepo, contacts ContactRepo, docs DocumentRepo) *DashboardService {
	return &DashboardService{txs: txs, contacts: contacts, docs: docs, now: time.Now}
}

func (s *DashboardService) Get(ctx context.Context, businessID string) (*domain.Dashboard, error) {
	txs, err := s.txs.ListByBusiness(ctx, businessID, "")
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	contacts, err := s.contacts.ListByBusiness(ctx, businessID, "")
	if err != nil {
		return nil, fmt.Errorf("contacts: %w", err)
	}
	docCount, err := s.docs.Count(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("documents: %w", err)
	}
	return BuildDashboard(txs, contacts, docCount, s.now()), nil
}

// BuildDashboard считает производные показатели панели.
func BuildDashboard(txs []domain.Transaction, contacts []domain.Contact, docCount int, now time.Time) *domain.Dashboard {
	isIncome := func(t domain.Transaction) bool { return t.Type == domain.TransactionIncome }
	isExpense := func(t domain.Transaction) bool { return t.Type == domain.TransactionExpense }
	amount := func(t domain.Transaction) float64 { return t.Amount }
	byStatus := func(st domain.ContactStatus) func(domain.Contact) bool {
		return func(c domain.Contact) bool { return c.Status == st }
	}

	d := &domain.Dashboard{
		TotalIncome:        lo.SumBy(lo.Filter(txs, func(t domain.Transaction, _ int) bool { return isIncome(t) }), amount),
		TotalExpenses:      lo.SumBy(lo.Filter(txs, func(t domain.Transaction, _ int) bool { return isExpense(t) }), amount),
		CustomerCount:      lo.CountBy(contacts, byStatus(domain.ContactCustomer)),
		LeadCount:          lo.CountBy(contacts, byStatus(domain.ContactLead)),
		ProspectCount:      lo.CountBy(contacts, byStatus(domain.ContactProspect)),
		TotalCustomerValue: lo.SumBy(contacts, func(c domain.Contact) float64 { return c.Value }),
		DocumentCount:      docCount,
	}
	d.NetProfit = d.TotalIncome - d.TotalExpenses
	d.MonthlyData = monthlyData(txs, now)
	d.CustomerSegments = segments(d)
	return d
}

// последние 6 календарных месяцев, от старого к новому; без транзакций пусто
func monthlyData(txs []domain.Transaction, now time.Time) []domain.MonthlyPoint {
	if len(txs) == 0 {
		return []domain.MonthlyPoint{}
	}

	type key struct {
		y int
		m time.Month
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]key, 0, 6)
	points := make([]domain.MonthlyPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		months = append(months, key{m.Year(), m.Month()})
		points = append(points, domain.MonthlyPoint{Month: m.Format("Jan")})
	}

	for _, t := range txs {
		idx := lo.IndexOf(months, key{t.Date.Year(), t.Date.Month()})
		if idx < 0 {
			continue
		}
		if t.Type == domain.TransactionIncome {
			points[idx].Revenue += t.Amount
		} else {
			points[idx].Expenses += t.Amount
		}
	}
	return points
}

func segments(d *domain.Dashboard) []domain.Segment {
	out := lo.Filter([]domain.Segment{
		{Name: "Customers", Value: d.CustomerCount, Color: "hsl(142, 76%, 36%)"},
		{Name: "Leads", Value: d.LeadCount, Color: "hsl(220, 91%, 52%)"},
		{Name: "Prospects", Value: d.ProspectCount, Color: "hsl(25, 95%, 53%)"},
	}, func(s domain.Segment, _ int) bool { return s.Value > 0 })

	if len(out) == 0 {
		out = append(out, domain.Segment{Name: "No Data", Value: 1, Color: "hsl(220, 14%, 96%)"})
	}
	return out
}
