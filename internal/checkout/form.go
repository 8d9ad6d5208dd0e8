package checkout

import (
	"strings"

	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
)

// Form carries the customer details collected at checkout.
type Form struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Address   string `json:"address"`
}

// Validate checks that every field is filled in. Field-level problems are
// reported together in the error details.
func (f Form) Validate() error {
	missing := map[string]string{}
	for field, value := range map[string]string{
		"first_name": f.FirstName,
		"last_name":  f.LastName,
		"phone":      f.Phone,
		"city":       f.City,
		"address":    f.Address,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "is required"
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout form is incomplete").WithDetails(missing)
	}
	return nil
}

// FullName joins the customer's names for the order record.
func (f Form) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}
