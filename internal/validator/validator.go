// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains the ISO 4217 codes accepted for property listings.
var validCurrencies = map[string]bool{
	"AED": true, "AUD": true, "BDT": true, "CAD": true, "CHF": true,
	"CNY": true, "EUR": true, "GBP": true, "HKD": true, "IDR": true,
	"INR": true, "JPY": true, "LKR": true, "MYR": true, "NPR": true,
	"PKR": true, "QAR": true, "SAR": true, "SGD": true, "USD": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("property_type", validatePropertyType)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validatePropertyType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Residential", "Commercial", "Mixed-Use":
		return true
	}
	return false
}
