package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Date: календарная дата без времени, в JSON как YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		*d = NewDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("date %q: expected YYYY-MM-DD", s)
	}
	*d = NewDate(t)
	return nil
}

type Transaction struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"businessId"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type TransactionPatch struct {
	Date        *Date
	Description *string
	Amount      *float64
	Type        *TransactionType
	Category    *string
}

type Document struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"businessId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type DocumentPatch struct {
	Title   *string
	Content *string
	Tags    []string // nil: не менять
}

type ContactStatus string

const (
	ContactLead     ContactStatus = "lead"
	ContactCustomer ContactStatus = "customer"
	ContactProspect ContactStatus = "prospect"
)

type Contact struct {
	ID         string        `json:"id"`
	BusinessID string        `json:"businessId"`
	Name       string        `json:"name"`
	Email      *string       `json:"email"`
	Phone      *string       `json:"phone"`
	Company    *string       `json:"company"`
	Status     ContactStatus `json:"status"`
	Value      float64       `json:"value"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type ContactPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Status  *ContactStatus
	Value   *float64
}

type MonthlyPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

type Segment struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type Dashboard struct {
	TotalIncome        float64        `json:"totalIncome"`
	TotalExpenses      float64        `json:"totalExpenses"`
	NetProfit          float64        `json:"netProfit"`
	CustomerCount      int            `json:"customerCount"`
	LeadCount          int            `json:"leadCount"`
	ProspectCount      int            `json:"prospectCount"`
	TotalCustomerValue float64        `json:"totalCustomerValue"`
	DocumentCount      int            `json:"documentCount"`
	MonthlyData        []MonthlyPoint `json:"monthlyData"`
	CustomerSegments   []Segment      `json:"customerSegments"`
}
