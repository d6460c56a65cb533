package storage

type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

type Invoice struct {
	ID          string
	CustomerID  string
	AmountCents int64
	Status      string
	Date        string
}

type InvoiceWithCustomer struct {
	Invoice
	CustomerName  string
	CustomerEmail string
}

type Revenue struct {
	Month        string
	Position     int64
	RevenueCents int64
}
