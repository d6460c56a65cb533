// Package invoices implements the invoice edit form: its submission state,
// the bound update action and the field bindings rendered by the templates.
package invoices

import (
	"context"
	"net/url"
)

// Field names double as the form control names.
type Field string

const (
	FieldCustomerID Field = "customerId"
	FieldAmount     Field = "amount"
	FieldStatus     Field = "status"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldCustomerID, FieldAmount, FieldStatus}

// State is the result of the most recent submission. A fresh State has no
// message and an empty error list for every field.
type State struct {
	Message string
	Errors  map[Field][]string
}

// InitialState returns the state a form starts from.
func InitialState() State {
	errs := make(map[Field][]string, len(Fields))
	for _, f := range Fields {
		errs[f] = []string{}
	}
	return State{Errors: errs}
}

// AddError appends msg to the errors of field.
func (s *State) AddError(field Field, msg string) {
	if s.Errors == nil {
		*s = InitialState()
	}
	s.Errors[field] = append(s.Errors[field], msg)
}

// FieldErrors returns the error lines for field in order.
func (s State) FieldErrors(field Field) []string {
	return s.Errors[field]
}

// HasErrors reports whether any field carries an error.
func (s State) HasErrors() bool {
	for _, errs := range s.Errors {
		if len(errs) > 0 {
			return true
		}
	}
	return false
}

// Clean reports a submission that produced neither a message nor field errors.
func (s State) Clean() bool {
	return s.Message == "" && !s.HasErrors()
}

// UpdateFunc is the mutation collaborator: it applies the raw form values to
// the invoice identified by id and returns the complete next state.
type UpdateFunc func(ctx context.Context, id string, prev State, form url.Values) State

// Action is an UpdateFunc with the invoice id already applied.
type Action func(ctx context.Context, prev State, form url.Values) State

// BindUpdate fixes id as the first argument of update.
func BindUpdate(id string, update UpdateFunc) Action {
	return func(ctx context.Context, prev State, form url.Values) State {
		return update(ctx, id, prev, form)
	}
}
