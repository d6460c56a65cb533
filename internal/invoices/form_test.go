package invoices

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dashboard/internal/core"
)

var testCustomers = []core.CustomerOption{
	{ID: "c1", Name: "Delba de Oliveira"},
	{ID: "c2", Name: "Lee Robinson"},
}

func testInvoice() *core.InvoiceForm {
	return &core.InvoiceForm{
		ID:         "inv-1",
		CustomerID: "c2",
		Amount:     core.Money{Cents: 15795},
		Status:     core.StatusPending,
	}
}

func returning(s State) UpdateFunc {
	return func(context.Context, string, State, url.Values) State { return s }
}

func TestInitialState(t *testing.T) {
	want := State{Errors: map[Field][]string{
		FieldCustomerID: {},
		FieldAmount:     {},
		FieldStatus:     {},
	}}
	if diff := cmp.Diff(want, InitialState()); diff != "" {
		t.Fatalf("InitialState mismatch (-want +got):\n%s", diff)
	}
	if !InitialState().Clean() {
		t.Fatalf("initial state should be clean")
	}
}

func TestBindUpdateFixesID(t *testing.T) {
	var gotID string
	var gotForm url.Values
	action := BindUpdate("inv-42", func(_ context.Context, id string, _ State, form url.Values) State {
		gotID, gotForm = id, form
		return InitialState()
	})

	form := url.Values{"amount": {"12.00"}}
	action(context.Background(), InitialState(), form)

	if gotID != "inv-42" {
		t.Fatalf("id = %q, want inv-42", gotID)
	}
	if diff := cmp.Diff(form, gotForm); diff != "" {
		t.Fatalf("form mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadingView(t *testing.T) {
	called := false
	f := New(nil, testCustomers, func(context.Context, string, State, url.Values) State {
		called = true
		return InitialState()
	})

	// state exists even though nothing is bound
	if !f.State().Clean() || f.State().Errors == nil {
		t.Fatalf("state not initialized: %+v", f.State())
	}

	want := View{Loading: true, LoadingText: "Loading invoice..."}
	if diff := cmp.Diff(want, f.View()); diff != "" {
		t.Fatalf("loading view mismatch (-want +got):\n%s", diff)
	}

	if _, err := f.Submit(context.Background(), url.Values{}); !errors.Is(err, ErrNoInvoice) {
		t.Fatalf("Submit error = %v, want ErrNoInvoice", err)
	}
	if called {
		t.Fatalf("update must not be called without an invoice")
	}
}

func TestViewBindsInvoice(t *testing.T) {
	v := New(testInvoice(), testCustomers, returning(InitialState())).View()

	if v.Loading {
		t.Fatalf("unexpected loading view")
	}
	if v.Action != "/dashboard/invoices/inv-1/edit" || v.CancelURL != "/dashboard/invoices" {
		t.Fatalf("unexpected action/cancel: %q %q", v.Action, v.CancelURL)
	}

	wantOptions := []SelectOption{
		{Value: "c1", Label: "Delba de Oliveira"},
		{Value: "c2", Label: "Lee Robinson", Selected: true},
	}
	if diff := cmp.Diff(wantOptions, v.Customer.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if v.Customer.Prompt != "Select a customer" {
		t.Fatalf("prompt = %q", v.Customer.Prompt)
	}
	if v.Amount.Value != "157.95" || v.Amount.Step != "0.01" {
		t.Fatalf("amount binding = %q step %q", v.Amount.Value, v.Amount.Step)
	}
	if !v.Status.Options[0].Checked || v.Status.Options[1].Checked {
		t.Fatalf("pending should be checked: %+v", v.Status.Options)
	}
	if v.Banner != "" {
		t.Fatalf("no banner expected, got %q", v.Banner)
	}
	for _, errs := range [][]string{v.Customer.Errors, v.Amount.Errors, v.Status.Errors} {
		if len(errs) != 0 {
			t.Fatalf("no field errors expected, got %v", errs)
		}
	}
}

func TestSubmitRendersErrorLinesInOrder(t *testing.T) {
	result := InitialState()
	result.Message = "Missing Fields. Failed to Update Invoice."
	result.AddError(FieldAmount, "Please enter an amount greater than $0.")
	result.AddError(FieldAmount, "Amount is too large.")
	result.AddError(FieldStatus, "Please select an invoice status.")

	f := New(testInvoice(), testCustomers, returning(result))
	if _, err := f.Submit(context.Background(), url.Values{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	v := f.View()

	if len(v.Customer.Errors) != 0 {
		t.Fatalf("customer errors = %v, want none", v.Customer.Errors)
	}
	if diff := cmp.Diff([]string{"Please enter an amount greater than $0.", "Amount is too large."}, v.Amount.Errors); diff != "" {
		t.Fatalf("amount errors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Please select an invoice status."}, v.Status.Errors); diff != "" {
		t.Fatalf("status errors (-want +got):\n%s", diff)
	}
	if v.Banner != result.Message {
		t.Fatalf("banner = %q, want %q", v.Banner, result.Message)
	}
}

func TestSubmitInvoiceNotFound(t *testing.T) {
	result := InitialState()
	result.Message = "Invoice not found."

	f := New(testInvoice(), testCustomers, returning(result))
	if _, err := f.Submit(context.Background(), url.Values{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	v := f.View()

	if v.Banner != "Invoice not found." {
		t.Fatalf("banner = %q", v.Banner)
	}
	if len(v.Customer.Errors)+len(v.Amount.Errors)+len(v.Status.Errors) != 0 {
		t.Fatalf("no field errors expected")
	}
}

func TestSubmitReplacesState(t *testing.T) {
	first := InitialState()
	first.Message = "Missing Fields. Failed to Update Invoice."
	first.AddError(FieldCustomerID, "Please select a customer.")

	calls := 0
	var prevSeen []State
	f := New(testInvoice(), testCustomers, func(_ context.Context, _ string, prev State, _ url.Values) State {
		prevSeen = append(prevSeen, prev)
		calls++
		if calls == 1 {
			return first
		}
		// returned without an errors map; the form normalizes it
		return State{Message: "Database Error: Failed to Update Invoice."}
	})

	if _, err := f.Submit(context.Background(), url.Values{}); err != nil {
		t.Fatal(err)
	}
	got, err := f.Submit(context.Background(), url.Values{})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first, prevSeen[1]); diff != "" {
		t.Fatalf("second call should see first state as prev (-want +got):\n%s", diff)
	}
	if len(got.FieldErrors(FieldCustomerID)) != 0 {
		t.Fatalf("errors must not merge across submissions: %v", got.Errors)
	}
	if got.Message != "Database Error: Failed to Update Invoice." {
		t.Fatalf("message = %q", got.Message)
	}
	if got.Errors == nil {
		t.Fatalf("errors map should be populated")
	}
}

func TestStateClean(t *testing.T) {
	s := InitialState()
	s.AddError(FieldStatus, "x")
	if s.Clean() || !s.HasErrors() {
		t.Fatalf("state with errors is not clean")
	}

	var zero State
	zero.AddError(FieldAmount, "y")
	if got := zero.FieldErrors(FieldAmount); len(got) != 1 {
		t.Fatalf("AddError on zero state = %v", got)
	}
}
