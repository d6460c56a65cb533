package core

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

type (
	InvoiceStatus string

	Money struct {
		Cents int64
	}

	Customer struct {
		ID       string
		Name     string
		Email    string
		ImageURL string
	}

	// CustomerOption is the minimal projection used to populate the customer select.
	CustomerOption struct {
		ID   string
		Name string
	}

	Invoice struct {
		ID         string
		CustomerID string
		Amount     Money
		Status     InvoiceStatus
		Date       time.Time
	}

	// InvoiceForm is the read-only snapshot used to pre-fill the edit form.
	InvoiceForm struct {
		ID         string
		CustomerID string
		Amount     Money
		Status     InvoiceStatus
	}

	// InvoiceUpdate carries the validated values of an edit submission.
	InvoiceUpdate struct {
		CustomerID string
		Amount     Money
		Status     InvoiceStatus
	}

	// InvoiceRow is an invoice joined with its customer, as shown in listings.
	InvoiceRow struct {
		Invoice
		CustomerName  string
		CustomerEmail string
	}
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrEmptyCustomer   = errors.New("empty customer")
	ErrUnknownCustomer = errors.New("unknown customer")
)

// ParseStatus returns the status for s or ErrInvalidStatus.
func ParseStatus(s string) (InvoiceStatus, error) {
	st := InvoiceStatus(strings.TrimSpace(s))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid:
		return true
	default:
		return false
	}
}

func (s InvoiceStatus) String() string {
	return string(s)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (u InvoiceUpdate) Validate() error {
	if strings.TrimSpace(u.CustomerID) == "" {
		return ErrEmptyCustomer
	}
	if err := u.Amount.Validate(); err != nil {
		return err
	}
	if !u.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Form returns the edit-form snapshot of the invoice.
func (i Invoice) Form() InvoiceForm {
	return InvoiceForm{
		ID:         i.ID,
		CustomerID: i.CustomerID,
		Amount:     i.Amount,
		Status:     i.Status,
	}
}

// Option returns the select projection of the customer.
func (c Customer) Option() CustomerOption {
	return CustomerOption{ID: c.ID, Name: c.Name}
}
