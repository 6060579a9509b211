package http

import (
	"time"

	"takeout/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func orderIDParam(c echo.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", c.Param("orderId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}

// listParams holds the optional listing parameters; nil means absent.
type listParams struct {
	Status    *int
	Page      *int
	PageSize  *int
	Number    *string
	Phone     *string
	BeginTime *time.Time
	EndTime   *time.Time
}

func bindListParams(c echo.Context) (listParams, error) {
	var p listParams
	q := c.QueryParams()

	binds := []struct {
		name string
		dest any
	}{
		{"status", &p.Status},
		{"page", &p.Page},
		{"pageSize", &p.PageSize},
		{"number", &p.Number},
		{"phone", &p.Phone},
		{"beginTime", &p.BeginTime},
		{"endTime", &p.EndTime},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return listParams{}, err
		}
	}
	return p, nil
}

func (p listParams) status() int    { return deref(p.Status, 0) }
func (p listParams) page() int      { return deref(p.Page, 1) }
func (p listParams) pageSize() int  { return deref(p.PageSize, queries.DefaultPageSize) }
func (p listParams) number() string { return deref(p.Number, "") }
func (p listParams) phone() string  { return deref(p.Phone, "") }

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
