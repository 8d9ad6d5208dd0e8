package checkout

import (
	"testing"

	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
)

func validForm() Form {
	return Form{
		FirstName: "Aziz",
		LastName:  "Karimov",
		Phone:     "+998901234567",
		City:      "Toshkent",
		Address:   "Chilonzor 12",
	}
}

func TestFormValidate(t *testing.T) {
	if err := validForm().Validate(); err != nil {
		t.Fatalf("expected a complete form to validate, got %v", err)
	}
}

func TestFormValidateReportsMissingFields(t *testing.T) {
	form := validForm()
	form.Phone = "   "
	form.City = ""

	err := form.Validate()
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	details, ok := coded.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", coded.Details())
	}
	if _, ok := details["phone"]; !ok {
		t.Fatal("expected phone to be reported missing")
	}
	if _, ok := details["city"]; !ok {
		t.Fatal("expected city to be reported missing")
	}
	if len(details) != 2 {
		t.Fatalf("expected exactly two missing fields, got %v", details)
	}
}

func TestFormFullName(t *testing.T) {
	form := Form{FirstName: " Aziz ", LastName: " Karimov "}
	if got := form.FullName(); got != "Aziz Karimov" {
		t.Fatalf("unexpected full name %q", got)
	}
}
