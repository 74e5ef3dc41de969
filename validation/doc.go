// Package validation validates settings structs.
//
// Struct tags cover single fields through go-playground/validator; the
// fluent Validator covers checks that span fields. Both report an
// errors.AppError listing every failing field.
//
//	type Settings struct {
//	    Level string `mapstructure:"level" validate:"required,oneof=debug info"`
//	}
//	err := validation.Validate(settings)
//
//	err := validation.New().
//	    RequiredIf(metricsOn, "observability.service_name", name).
//	    Validate()
package validation
