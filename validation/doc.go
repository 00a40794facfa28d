// Package validation validates structs through go-playground/validator tags
// and converts failures into a 400 AppError.
//
//	type form struct {
//	    UserPrompt string `form:"userPrompt" validate:"max=8000"`
//	}
//	if err := validation.Validate(f); err != nil { ... }
package validation
