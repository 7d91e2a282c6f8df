package validation

import (
	"errors"
	"fmt"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront/internal/domain"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// card mode needs the card fields, UPI mode needs the UPI id
	v.RegisterStructValidation(paymentDetailsStructValidation, domain.PaymentDetails{})

	return v
}

func paymentDetailsStructValidation(sl validatorv10.StructLevel) {
	details := sl.Current().Interface().(domain.PaymentDetails)

	switch details.Mode {
	case domain.PaymentModeCreditCard:
		reportBlank(sl, details.CardNumber, "CardNumber", "cardNumber")
		reportBlank(sl, details.CardHolderName, "CardHolderName", "cardHolderName")
		reportBlank(sl, details.ExpiryDate, "ExpiryDate", "expiryDate")
		reportBlank(sl, details.CVV, "CVV", "cvv")
	case domain.PaymentModeUPI:
		reportBlank(sl, details.UPIID, "UPIID", "upiId")
	}
}

func reportBlank(sl validatorv10.StructLevel, value, fieldName, jsonName string) {
	if strings.TrimSpace(value) == "" {
		sl.ReportError(value, jsonName, fieldName, "required_for_mode", "")
	}
}

// Check runs v against s and maps failures onto domain.ErrValidation.
func Check(v *validatorv10.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("v.Struct: %w", err)
	}

	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fmt.Sprintf("%s[%s]", fe.StructField(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(fields, ", "))
}
