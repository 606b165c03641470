package fieldbox

// Field maps an internal field name to the name used in emitted boxes
type Field struct {
	Name   string `yaml:"name" json:"name"`
	Output string `yaml:"output" json:"output"`
}

// Catalog is the ordered set of fields a Resolver looks for
type Catalog struct {
	Fields  []Field  // Resolution and output order
	Skip    []string // Fields with no meaningful single location
	Address []string // Fields resolved with the address clusterer
}

// DefaultCatalog returns the invoice catalog
func DefaultCatalog() Catalog {
	return Catalog{
		Fields: []Field{
			{Name: "invoice_number", Output: "invoiceNumber"},
			{Name: "invoice_date", Output: "invoiceDate"},
			{Name: "due_date", Output: "dueDate"},
			{Name: "vendor_name", Output: "vendor"},
			{Name: "vendor_address", Output: "vendorAddress"},
			{Name: "purchase_order", Output: "purchaseOrder"},
			{Name: "account_number", Output: "accountNumber"},
			{Name: "total_amount", Output: "total"},
			{Name: "currency", Output: "currency"},
		},
		Skip:    []string{"currency", "line_items", "email_from", "email_to", "additional_info"},
		Address: []string{"vendor_address", "customer_address", "billing_address", "shipping_address"},
	}
}

// IsSkipped reports whether the field never gets a box
func (c Catalog) IsSkipped(name string) bool {
	return contains(c.Skip, name)
}

// IsAddress reports whether the field is resolved by address clustering
func (c Catalog) IsAddress(name string) bool {
	return contains(c.Address, name)
}

// Output returns the output name for an internal field name.
// Unknown fields keep their internal name.
func (c Catalog) Output(name string) string {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Output
		}
	}
	return name
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
