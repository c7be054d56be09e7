package service

import (
	"strings"

	"github.com/tm-acme-shop/acme-shop-storefront/internal/errors"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/models"
)

// ValidateNewProduct validates a product submitted through the admin form.
func ValidateNewProduct(p *models.NewProduct) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("name", "product name is required")
	}

	if strings.TrimSpace(p.Category) == "" {
		return errors.NewValidationError("category", "category is required")
	}

	if p.Price.IsNegative() {
		return errors.NewValidationError("price", "price cannot be negative")
	}

	if err := validateLabels(p.Sizes, "sizes"); err != nil {
		return err
	}
	return validateLabels(p.Colors, "colors")
}

// ValidateProductPatch validates only the fields the patch sets.
func ValidateProductPatch(p *models.ProductPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.NewValidationError("name", "product name cannot be empty")
	}

	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return errors.NewValidationError("category", "category cannot be empty")
	}

	if p.Price != nil && p.Price.IsNegative() {
		return errors.NewValidationError("price", "price cannot be negative")
	}

	if p.Sizes != nil {
		if err := validateLabels(*p.Sizes, "sizes"); err != nil {
			return err
		}
	}

	if p.Colors != nil {
		return validateLabels(*p.Colors, "colors")
	}

	return nil
}

func validateLabels(labels []string, field string) error {
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			return errors.NewValidationError(field, "labels cannot be empty")
		}
	}
	return nil
}

// ValidateCheckout validates the customer and payment details of a checkout.
func ValidateCheckout(customer *models.CustomerDetails, payment *models.PaymentDetails) error {
	if strings.TrimSpace(customer.Name) == "" {
		return errors.NewValidationError("name", "Please enter your name")
	}

	if strings.TrimSpace(customer.Phone) == "" {
		return errors.NewValidationError("phone", "Please enter your phone number")
	}

	if strings.TrimSpace(customer.Address) == "" {
		return errors.NewValidationError("address", "Please enter your delivery address")
	}

	if customer.Email != "" && !strings.Contains(customer.Email, "@") {
		return errors.NewValidationError("email", "Please enter a valid email address")
	}

	switch payment.Method {
	case models.PaymentMethodMomo:
		if strings.TrimSpace(payment.MomoNumber) == "" {
			return errors.NewValidationError("momoNumber", "Please enter your mobile money number")
		}
		if strings.TrimSpace(payment.Network) == "" {
			return errors.NewValidationError("network", "Please select your mobile money network")
		}
	case models.PaymentMethodCard, models.PaymentMethodDelivery:
	default:
		return errors.NewValidationError("paymentMethod", "Please select a payment method")
	}

	return nil
}
