package domain

// Patch is a partial update of an invoice. Nil fields are left untouched.
// A set pointer-to-nil on a date clears it. Identity, creation time and
// template are not patchable.
type Patch struct {
	InvoiceNumber  *string
	InvoiceDate    **string
	DueDate        **string
	PaidDate       **string
	TaxRate        *float64
	Currency       *string
	CompanyLogo    **string
	CompanyName    *string
	CompanyAddress *string
	CompanyCity    *string
	CompanyEmail   *string
	CompanyPhone   *string
	ClientName     *string
	ClientAddress  *string
	ClientCity     *string
	ClientEmail    *string
	ClientPhone    *string
	Items          *[]LineItem
	Notes          *string
	Terms          *string
	IsPaid         *bool
	PaidIndicator  *PaidIndicator
}

// Apply writes the set fields of p onto d. Currency symbol syncing is the
// caller's concern.
func (p Patch) Apply(d *Details) {
	if p.InvoiceNumber != nil {
		d.InvoiceNumber = *p.InvoiceNumber
	}
	if p.InvoiceDate != nil {
		d.InvoiceDate = cloneString(*p.InvoiceDate)
	}
	if p.DueDate != nil {
		d.DueDate = cloneString(*p.DueDate)
	}
	if p.PaidDate != nil {
		d.PaidDate = cloneString(*p.PaidDate)
	}
	if p.TaxRate != nil {
		d.TaxRate = *p.TaxRate
	}
	if p.Currency != nil {
		d.Currency = *p.Currency
	}
	if p.CompanyLogo != nil {
		d.CompanyLogo = cloneString(*p.CompanyLogo)
	}
	setString(&d.CompanyName, p.CompanyName)
	setString(&d.CompanyAddress, p.CompanyAddress)
	setString(&d.CompanyCity, p.CompanyCity)
	setString(&d.CompanyEmail, p.CompanyEmail)
	setString(&d.CompanyPhone, p.CompanyPhone)
	setString(&d.ClientName, p.ClientName)
	setString(&d.ClientAddress, p.ClientAddress)
	setString(&d.ClientCity, p.ClientCity)
	setString(&d.ClientEmail, p.ClientEmail)
	setString(&d.ClientPhone, p.ClientPhone)
	if p.Items != nil {
		items := make([]LineItem, len(*p.Items))
		copy(items, *p.Items)
		d.Items = items
	}
	setString(&d.Notes, p.Notes)
	setString(&d.Terms, p.Terms)
	if p.IsPaid != nil {
		d.IsPaid = *p.IsPaid
	}
	if p.PaidIndicator != nil {
		d.PaidIndicator = *p.PaidIndicator
	}
}

// Empty reports whether the patch sets nothing.
func (p Patch) Empty() bool {
	return p == (Patch{})
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
