package risk

import (
	"errors"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/data"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/model"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/pipeline"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/schema"
)

// ErrNotFound is returned when an assessment ID is unknown.
var ErrNotFound = errors.New("assessment not found")

// Error kinds separate bad input from an unavailable system.
const (
	KindInvalidInput   = "invalid_input"
	KindUnseenCategory = "unseen_category"
	KindUnavailable    = "unavailable"
	KindNotFound       = "not_found"
	KindInternal       = "internal"
)

// Kind classifies err into one of the Kind constants.
func Kind(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrUnseenCategory):
		return KindUnseenCategory
	case errors.Is(err, schema.ErrSchema):
		return KindInvalidInput
	case errors.Is(err, model.ErrModelArtifact), errors.Is(err, data.ErrDataAccess), errors.Is(err, pipeline.ErrNotFitted):
		return KindUnavailable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
