package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vlgmic/warehouse-ingest/models"
)

// RegisterValidators hooks the domain identifier grammar into gin's binding
// layer, so a request with a hostile table name is rejected at bind time.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("sql_identifier", validateSqlIdentifier)
	}
}

func validateSqlIdentifier(fl validator.FieldLevel) bool {
	return models.ValidateIdentifier(fl.Field().String()) == nil
}
