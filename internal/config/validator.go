// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, so the binary never runs
// with malformed configuration.
//
// Custom rules
// ------------
//   • mediatype – a bare "type/subtype" with no parameters, lower-case,
//     as matched against the binary allowlist.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import (
	"mime"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		mt, params, err := mime.ParseMediaType(s)
		return err == nil && len(params) == 0 && mt == s && strings.Contains(mt, "/")
	})
	return val
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
