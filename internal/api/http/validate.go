package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct runs the validator tags on a request DTO and flattens
// the failures into field -> message form for 400 responses.
func validateStruct(req interface{}) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed on rule: " + fe.Tag()
		}
	} else {
		fields["request"] = err.Error()
	}
	return fields
}
