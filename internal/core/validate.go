package core

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the search parameters before any upstream call
func (p SearchParams) Validate() error {
	if err := paramsValidator().Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return perr.New(perr.ErrorCodeInvalidArgument, strings.Join(msgs, "; ")).WithOp("validate")
		}
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "validate")
	}

	if p.ReturnDate != "" {
		dep, _ := time.Parse(isoDate, p.DepartureDate)
		ret, _ := time.Parse(isoDate, p.ReturnDate)
		if ret.Before(dep) {
			return perr.New(perr.ErrorCodeInvalidArgument, "returnDate must not be before departureDate").WithOp("validate")
		}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s fails %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
