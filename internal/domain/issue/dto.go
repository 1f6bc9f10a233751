package issue

import (
	"github.com/cmlabs-hris/hris-attendance-engine/internal/pkg/validator"
)

type UpdateStatusRequest struct {
	ID     string `json:"-" validate:"notblank"`
	Status Status `json:"status" validate:"oneof=pending confirmed resolved rejected"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r)
}
