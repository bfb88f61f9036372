// Package checkout implements the buyer-details form and the submission
// controller that hands the browser off to Mercado Pago.
package checkout

import "strings"

// Form holds the buyer identity fields, mutated per keystroke.
type Form struct {
	FirstName string
	LastName  string
	Document  string
	Email     string
}

// SetFirstName records the first-name field.
func (f *Form) SetFirstName(v string) { f.FirstName = v }

// SetLastName records the last-name field.
func (f *Form) SetLastName(v string) { f.LastName = v }

// SetEmail records the email field.
func (f *Form) SetEmail(v string) { f.Email = v }

// SetDocument records the DNI/CUIT field, stripping every character that
// is not a digit or a period as the buyer types. A formatting aid only;
// Valid still applies the length rule to the cleaned value.
func (f *Form) SetDocument(v string) { f.Document = CleanDocument(v) }

// CleanDocument removes everything but digits and periods.
func CleanDocument(v string) string {
	var b strings.Builder
	for _, r := range v {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether the form may be submitted: trimmed first and last
// names of at least 2 characters, a document of at least 7, and an email
// containing both '@' and '.'.
func (f *Form) Valid() bool {
	email := strings.TrimSpace(f.Email)
	return len(strings.TrimSpace(f.FirstName)) >= 2 &&
		len(strings.TrimSpace(f.LastName)) >= 2 &&
		len(strings.TrimSpace(f.Document)) >= 7 &&
		len(email) > 0 &&
		strings.Contains(email, "@") &&
		strings.Contains(email, ".")
}
