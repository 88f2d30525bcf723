package entity

// Stats summarizes the stored invoices for the dashboard.
type Stats struct {
	TotalInvoices     int    `json:"total_invoices"`
	TotalGross        string `json:"total_gross"`
	TotalSuppliers    int    `json:"total_suppliers"`
	InvoicesThisMonth int    `json:"invoices_this_month"`
}

// SupplierSummary aggregates stored invoices per supplier.
type SupplierSummary struct {
	Name         string `json:"name"`
	InvoiceCount int    `json:"invoice_count"`
	TotalGross   string `json:"total_gross"`
	Address      string `json:"address"`
}
