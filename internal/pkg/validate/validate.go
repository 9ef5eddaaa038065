// Package validate holds the request-payload validator shared by the HTTP
// handlers.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// v is the process-wide validator instance. Custom type registrations, if
// ever needed, must happen in an init() before the first Struct call.
var v = validator.New()

// Struct checks a request payload against its validate tags and returns a
// flat, client-presentable error listing every failed field.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}
