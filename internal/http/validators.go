package http

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Tocea2003/Practica-BookSystem/internal/entities"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator:
//
//	reservation_status  one of Reserved, Borrowed, Returned
//	date                blank, or a date library.ParseDate accepts
//
// Field names in validation errors follow the json tags.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("reservation_status", validReservationStatus)
		_ = v.RegisterValidation("date", validDate)
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func validReservationStatus(fl validator.FieldLevel) bool {
	return entities.ReservationStatus(fl.Field().String()).Valid()
}

func validDate(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if strings.TrimSpace(raw) == "" {
		return true
	}
	_, err := library.ParseDate(raw)
	return err == nil
}
