// Package seed loads the YAML fixture used by the memory backend and by
// dashboardctl seed.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"dashboard/internal/core"
)

//go:embed default.yaml
var defaultSeed []byte

// Data is the decoded fixture.
type Data struct {
	Customers []core.Customer
	Invoices  []core.Invoice
	Revenue   []core.RevenuePoint
}

type file struct {
	Customers []customerFile `yaml:"customers"`
	Invoices  []invoiceFile  `yaml:"invoices"`
	Revenue   []revenueFile  `yaml:"revenue"`
}

type customerFile struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	ImageURL string `yaml:"image_url"`
}

type invoiceFile struct {
	ID         string `yaml:"id"`
	CustomerID string `yaml:"customer_id"`
	Amount     string `yaml:"amount"`
	Status     string `yaml:"status"`
	Date       string `yaml:"date"`
}

type revenueFile struct {
	Month   string `yaml:"month"`
	Revenue string `yaml:"revenue"`
}

// Load reads the fixture at path, or the built-in sample when path is empty.
func Load(path string) (Data, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultSeed, "default.yaml")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(raw, path)
}

// Parse decodes and validates a fixture. source only appears in errors.
func Parse(raw []byte, source string) (Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Data{}, fmt.Errorf("seed: parse %s: %w", source, err)
	}

	var d Data
	customers := make(map[string]bool, len(f.Customers))
	for i, c := range f.Customers {
		if _, err := uuid.Parse(c.ID); err != nil {
			return Data{}, fmt.Errorf("seed: %s customers[%d]: invalid id %q", source, i, c.ID)
		}
		if strings.TrimSpace(c.Name) == "" {
			return Data{}, fmt.Errorf("seed: %s customers[%d]: empty name", source, i)
		}
		customers[c.ID] = true
		d.Customers = append(d.Customers, core.Customer{ID: c.ID, Name: c.Name, Email: c.Email, ImageURL: c.ImageURL})
	}

	for i, inv := range f.Invoices {
		id := inv.ID
		if id == "" {
			id = uuid.NewString()
		} else if _, err := uuid.Parse(id); err != nil {
			return Data{}, fmt.Errorf("seed: %s invoices[%d]: invalid id %q", source, i, id)
		}
		if !customers[inv.CustomerID] {
			return Data{}, fmt.Errorf("seed: %s invoices[%d]: %w %q", source, i, core.ErrUnknownCustomer, inv.CustomerID)
		}
		cents, err := core.ParseDecimalToCents(inv.Amount)
		if err != nil {
			return Data{}, fmt.Errorf("seed: %s invoices[%d]: amount %q: %w", source, i, inv.Amount, err)
		}
		status, err := core.ParseStatus(inv.Status)
		if err != nil {
			return Data{}, fmt.Errorf("seed: %s invoices[%d]: %w", source, i, err)
		}
		date, err := time.Parse(time.DateOnly, inv.Date)
		if err != nil {
			return Data{}, fmt.Errorf("seed: %s invoices[%d]: date %q: %w", source, i, inv.Date, err)
		}
		d.Invoices = append(d.Invoices, core.Invoice{
			ID:         id,
			CustomerID: inv.CustomerID,
			Amount:     core.Money{Cents: cents},
			Status:     status,
			Date:       date,
		})
	}

	for i, r := range f.Revenue {
		cents, err := core.ParseNonNegativeCents(r.Revenue)
		if err != nil {
			return Data{}, fmt.Errorf("seed: %s revenue[%d]: invalid revenue %q: %w", source, i, r.Revenue, err)
		}
		d.Revenue = append(d.Revenue, core.RevenuePoint{
			Period: r.Month,
			Amount: core.Money{Cents: cents},
		})
	}

	return d, nil
}
