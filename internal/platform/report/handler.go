package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/doctor"
)

// Record is everything a customer sheet is built from. Profile is nil when
// the doctor profile was never saved.
type Record struct {
	Customer  *customer.Customer
	Therapies []*customer.Therapy
	Profile   *doctor.Profile
}

// DataFetcher loads the record of one customer.
type DataFetcher interface {
	FetchCustomerRecord(ctx context.Context, id uuid.UUID) (*Record, error)
}

// Handler serves customer sheets over HTTP.
type Handler struct {
	fetcher DataFetcher
}

func NewHandler(fetcher DataFetcher) *Handler {
	return &Handler{fetcher: fetcher}
}

// RegisterRoutes registers the report endpoint.
//
//	GET /api/v1/customers/:id/report?format=pdf|html|xlsx&fields=phone,address
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/customers/:id/report", h.GetReport)
}

func (h *Handler) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = FormatPDF
	}
	contentType, err := ContentType(format)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.fetcher.FetchCustomerRecord(c.Request().Context(), id)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	sheet, err := Build(rec.Customer, rec.Therapies, rec.Profile, ParseFields(c.QueryParam("fields")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var buf bytes.Buffer
	if err := Write(&buf, sheet, format); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if format != FormatHTML {
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", Filename(rec.Customer, format)))
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// Filename suggests a download name such as "lee_anna.pdf".
func Filename(c *customer.Customer, format string) string {
	base := strings.ToLower(strings.TrimSpace(c.LastName + "_" + c.FirstName))
	base = strings.Trim(strings.Map(func(r rune) rune {
		switch {
		case r == '_' || r == '-':
			return r
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, base), "_")
	if base == "" {
		base = "customer"
	}
	return base + "." + format
}
