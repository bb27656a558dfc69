package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeAndValidate decodes a JSON body into dst and runs its struct tag
// validation. Transport-level shape checks only; domain rules live in the
// wizard's rule set.
func DecodeAndValidate(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("field %s failed %s validation", first.Field(), first.Tag())
		}
		return err
	}
	return nil
}
