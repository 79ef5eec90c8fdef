// Package validate checks command parameters once, at construction.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("money", isMoney)
	})
	return v
}

// isMoney accepts a non-negative decimal string with at most two fractional
// digits, the precision amounts are rendered with.
func isMoney(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Truncate(2))
}

// Struct validates s and reports every failing field as a single validation
// failure tagged with module.
func Struct(module failure.Module, s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return failure.Validation(module, err.Error())
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		p := fe.Namespace()
		if i := strings.IndexByte(p, '.'); i >= 0 {
			p = p[i+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, p+": "+fe.Tag()+"="+fe.Param())
		} else {
			parts = append(parts, p+": "+fe.Tag())
		}
	}
	return failure.Validation(module, strings.Join(parts, "; "))
}
