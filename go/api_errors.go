package portalserver

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Apurer/boochbooch-portal/internal/domains/orders/application"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/domain"
	"github.com/Apurer/boochbooch-portal/internal/domains/orders/ports"
	apierrors "github.com/Apurer/boochbooch-portal/internal/shared/errors"
)

var problems = apierrors.NewChainedResponder("", mapOrderError)

// mapOrderError translates application errors into problem responses.
func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return apierrors.NewValidationProblem(map[string]string{verr.Field: verr.Err.Error()}).
				WithDetail(err.Error()), true
		}
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrStoreUnavailable):
		return apierrors.ErrServiceUnavailable.WithDetail("orders could not be reached, try again shortly"), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

// respondBindError reports struct validation failures per field and any
// other decode failure as a bad request.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = describeTag(fe)
		}
		problems.ValidationFailed(c, fields)
		return
	}
	problems.BadRequest(c, err.Error())
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

var registerJSONNames sync.Once

// useJSONFieldNames makes validator report fields by their JSON names.
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	})
}
