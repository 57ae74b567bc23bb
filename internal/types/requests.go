package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxTextLength bounds pasted résumé text (10 MiB).
const MaxTextLength = 10 << 20

// ParseTextRequest is the JSON body accepted by the parse endpoint.
type ParseTextRequest struct {
	Text string `json:"text" validate:"required,max=10485760"`
}

// Validate validates the ParseTextRequest using the validator.
func (r *ParseTextRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
