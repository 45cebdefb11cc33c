package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate - один экземпляр на пакет: validator кэширует описание структур.
var validate = validator.New()

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// ValidateStruct проверяет теги `validate` у любой структуры.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func (e ReplayExport) Validate() error {
	return ValidateStruct(e)
}
