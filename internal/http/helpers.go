package http

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"dashboard/internal/core"
	"dashboard/internal/invoices"
)

// templateFuncs are shared by every page and partial.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"dollars": func(m core.Money) string { return m.String() },
		// css values built by html/template must be typed to survive escaping
		"barHeight": func(h float64) template.CSS {
			return template.CSS("height: " + strconv.FormatFloat(h, 'f', 2, 64) + "px")
		},
		"chartHeight": func(px int) template.CSS {
			return template.CSS("height: " + strconv.Itoa(px) + "px")
		},
		"date": formatDate,
		"statusLabel": func(s core.InvoiceStatus) string {
			if s == core.StatusPaid {
				return "Paid"
			}
			return "Pending"
		},
		"editURL": invoices.EditURL,
	}
}

// formatDate renders an invoice date the way the listing shows it ("Dec 6, 2022").
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
