package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	"fieldops/internal/domain/entity"
	"fieldops/internal/usecase"
)

// ActivityHandler holds dependencies for field activity handlers.
type ActivityHandler struct {
	uc     usecase.ActivityUsecase
	logger *slog.Logger
}

// NewActivityHandler is the constructor for ActivityHandler, injected by Fx.
func NewActivityHandler(uc usecase.ActivityUsecase, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		uc:     uc,
		logger: logger,
	}
}

type logMeetingRequest struct {
	Type     string                  `json:"type" validate:"required"`
	Date     time.Time               `json:"date"`
	Location *usecase.LocationInput  `json:"location"`
	Notes    string                  `json:"notes"`
	Photos   []string                `json:"photos"`
	OneOnOne *entity.OneOnOneDetails `json:"oneOnOne"`
	Group    *entity.GroupDetails    `json:"group"`
}

// LogMeeting records a one-on-one or group meeting.
func (h *ActivityHandler) LogMeeting(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req logMeetingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid meeting input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	meeting, err := h.uc.LogMeeting(c.Request().Context(), usecase.LogMeetingInput{
		UserID:   user.ID,
		Type:     entity.MeetingType(req.Type),
		Date:     req.Date,
		Location: req.Location,
		Notes:    req.Notes,
		Photos:   req.Photos,
		OneOnOne: req.OneOnOne,
		Group:    req.Group,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, meeting, "Meeting logged")
}

type recordSampleRequest struct {
	Date          time.Time              `json:"date"`
	ProductSKU    string                 `json:"productSku" validate:"required"`
	Quantity      float64                `json:"quantity" validate:"required"`
	RecipientName string                 `json:"recipientName" validate:"required"`
	RecipientType string                 `json:"recipientType" validate:"required"`
	Purpose       string                 `json:"purpose" validate:"required"`
	Location      *usecase.LocationInput `json:"location"`
	Notes         string                 `json:"notes"`
}

// RecordSample records a product sample handout.
func (h *ActivityHandler) RecordSample(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req recordSampleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sample input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sample, err := h.uc.RecordSample(c.Request().Context(), usecase.RecordSampleInput{
		UserID:        user.ID,
		Date:          req.Date,
		ProductSKU:    req.ProductSKU,
		Quantity:      req.Quantity,
		RecipientName: req.RecipientName,
		RecipientType: entity.RecipientType(req.RecipientType),
		Purpose:       entity.SamplePurpose(req.Purpose),
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sample, "Sample recorded")
}

type recordSaleRequest struct {
	Date            time.Time              `json:"date"`
	Type            string                 `json:"type" validate:"required"`
	ProductSKU      string                 `json:"productSku" validate:"required"`
	PackSize        string                 `json:"packSize"`
	Quantity        int                    `json:"quantity" validate:"required"`
	Mode            string                 `json:"mode" validate:"required"`
	IsRepeatOrder   bool                   `json:"isRepeatOrder"`
	CustomerName    string                 `json:"customerName"`
	CustomerContact string                 `json:"customerContact"`
	Location        *usecase.LocationInput `json:"location"`
	Amount          decimal.Decimal        `json:"amount"`
}

// RecordSale records a sale.
func (h *ActivityHandler) RecordSale(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req recordSaleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sale input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sale, err := h.uc.RecordSale(c.Request().Context(), usecase.RecordSaleInput{
		UserID:          user.ID,
		Date:            req.Date,
		Type:            entity.SaleType(req.Type),
		ProductSKU:      req.ProductSKU,
		PackSize:        req.PackSize,
		Quantity:        req.Quantity,
		Mode:            entity.SaleMode(req.Mode),
		IsRepeatOrder:   req.IsRepeatOrder,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Location:        req.Location,
		Amount:          req.Amount,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sale, "Sale recorded")
}

type startDayRequest struct {
	Location      *usecase.LocationInput `json:"location"`
	OdometerStart *int                   `json:"odometerStart"`
}

// StartDay opens the caller's work day.
func (h *ActivityHandler) StartDay(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req startDayRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid start day input")
	}

	log, err := h.uc.StartDay(c.Request().Context(), usecase.StartDayInput{
		UserID:        user.ID,
		Location:      req.Location,
		OdometerStart: req.OdometerStart,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, log, "Work day started")
}

type endDayRequest struct {
	Location    *usecase.LocationInput `json:"location"`
	OdometerEnd *int                   `json:"odometerEnd"`
}

// EndDay closes a work day.
func (h *ActivityHandler) EndDay(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req endDayRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid end day input")
	}

	log, err := h.uc.EndDay(c.Request().Context(), usecase.EndDayInput{
		UserID:      user.ID,
		LogID:       c.Param("id"),
		Location:    req.Location,
		OdometerEnd: req.OdometerEnd,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, log, "Work day ended")
}

type appendLocationRequest struct {
	Location usecase.LocationInput `json:"location" validate:"required"`
}

// AppendLocation adds a tracking point to the caller's open day.
func (h *ActivityHandler) AppendLocation(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req appendLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.AppendLocation(c.Request().Context(), usecase.AppendLocationInput{
		UserID:   user.ID,
		Location: req.Location,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Location recorded")
}

// CurrentDay returns the caller's open work day, or null.
func (h *ActivityHandler) CurrentDay(c echo.Context) error {
	user := middleware.CurrentUser(c)

	log, err := h.uc.CurrentDay(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, log, "")
}

// ListMeetings returns the caller's meetings, most recent first.
func (h *ActivityHandler) ListMeetings(c echo.Context) error {
	user := middleware.CurrentUser(c)

	meetings, err := h.uc.ListMeetings(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, meetings, "")
}

// ListSamples returns the caller's sample distributions, most recent first.
func (h *ActivityHandler) ListSamples(c echo.Context) error {
	user := middleware.CurrentUser(c)

	samples, err := h.uc.ListSamples(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, samples, "")
}

// ListSales returns the caller's sales, most recent first.
func (h *ActivityHandler) ListSales(c echo.Context) error {
	user := middleware.CurrentUser(c)

	sales, err := h.uc.ListSales(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sales, "")
}

// ListDailyLogs returns the caller's work days, most recent first.
func (h *ActivityHandler) ListDailyLogs(c echo.Context) error {
	user := middleware.CurrentUser(c)

	logs, err := h.uc.ListDailyLogs(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, logs, "")
}

// ListAllMeetings returns meetings across every user, for the admin views.
func (h *ActivityHandler) ListAllMeetings(c echo.Context) error {
	meetings, err := h.uc.ListAllMeetings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, meetings, "")
}

// ListAllSamples returns sample distributions across every user.
func (h *ActivityHandler) ListAllSamples(c echo.Context) error {
	samples, err := h.uc.ListAllSamples(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, samples, "")
}

// ListAllSales returns sales across every user.
func (h *ActivityHandler) ListAllSales(c echo.Context) error {
	sales, err := h.uc.ListAllSales(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sales, "")
}

// ListAllDailyLogs returns work days across every user.
func (h *ActivityHandler) ListAllDailyLogs(c echo.Context) error {
	logs, err := h.uc.ListAllDailyLogs(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, logs, "")
}
