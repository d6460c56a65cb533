package invoices

import "dashboard/internal/core"

// View is what the edit_form template renders. When Loading is set only
// LoadingText is shown: no controls and no action.
type View struct {
	Loading     bool
	LoadingText string

	Action      string
	CancelURL   string
	SubmitLabel string

	Customer SelectField
	Amount   InputField
	Status   RadioField

	// Banner is the form-level message; empty renders nothing.
	Banner string
}

type SelectField struct {
	ID      string
	Name    string
	Label   string
	Prompt  string
	Options []SelectOption
	Errors  []string
}

type SelectOption struct {
	Value    string
	Label    string
	Selected bool
}

type InputField struct {
	ID          string
	Name        string
	Label       string
	Type        string
	Step        string
	Value       string
	Placeholder string
	Errors      []string
}

type RadioField struct {
	Name    string
	Legend  string
	Options []RadioOption
	Errors  []string
}

type RadioOption struct {
	ID      string
	Value   string
	Label   string
	Checked bool
}

// ErrorID returns the id of the element holding the field's error lines.
func (f SelectField) ErrorID() string { return f.ID + "-error" }
func (f InputField) ErrorID() string  { return f.ID + "-error" }
func (f RadioField) ErrorID() string  { return f.Name + "-error" }

// View builds the renderable form from the invoice snapshot and current state.
func (f *Form) View() View {
	if f.invoice == nil {
		return View{Loading: true, LoadingText: LoadingText}
	}
	inv := f.invoice

	options := make([]SelectOption, 0, len(f.customers))
	for _, c := range f.customers {
		options = append(options, SelectOption{
			Value:    c.ID,
			Label:    c.Name,
			Selected: c.ID == inv.CustomerID,
		})
	}

	return View{
		Action:      EditURL(inv.ID),
		CancelURL:   ListURL,
		SubmitLabel: SubmitLabel,
		Customer: SelectField{
			ID:      "customer",
			Name:    string(FieldCustomerID),
			Label:   "Choose customer",
			Prompt:  "Select a customer",
			Options: options,
			Errors:  f.state.FieldErrors(FieldCustomerID),
		},
		Amount: InputField{
			ID:          "amount",
			Name:        string(FieldAmount),
			Label:       "Invoice Amount",
			Type:        "number",
			Step:        "0.01",
			Value:       inv.Amount.Decimal(),
			Placeholder: "Enter USD amount",
			Errors:      f.state.FieldErrors(FieldAmount),
		},
		Status: RadioField{
			Name:   string(FieldStatus),
			Legend: "Invoice Status",
			Options: []RadioOption{
				{ID: "pending", Value: string(core.StatusPending), Label: "Pending", Checked: inv.Status == core.StatusPending},
				{ID: "paid", Value: string(core.StatusPaid), Label: "Paid", Checked: inv.Status == core.StatusPaid},
			},
			Errors: f.state.FieldErrors(FieldStatus),
		},
		Banner: f.state.Message,
	}
}
