package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"myStorefront/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CompareHandler struct {
		validate *validator.Validate
		service  CompareService
		timeout  time.Duration
	}

	CompareService interface {
		GetCompareList(ctx context.Context, userID uint) ([]domain.Product, error)
		AddToCompare(ctx context.Context, userID uint, productID uint64) error
		RemoveFromCompare(ctx context.Context, userID uint, productID uint64) error
		ClearCompare(ctx context.Context, userID uint) error
	}

	AddCompareRequest struct {
		ProductID uint64 `json:"product_id" validate:"required"`
	}
)

func NewCompareHandler(svc CompareService) *CompareHandler {
	return &CompareHandler{
		validate: validator.New(),
		service:  svc,
		timeout:  10 * time.Second,
	}
}

func compareErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyInCompareList), errors.Is(err, domain.ErrCompareListFull):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/v1/compare
func (h *CompareHandler) List(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.service.GetCompareList(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

// POST /api/v1/compare
func (h *CompareHandler) Add(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req AddCompareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.service.AddToCompare(ctx, userID, req.ProductID); err != nil {
		return c.JSON(compareErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("added to compare list"))
}

// DELETE /api/v1/compare/:id
func (h *CompareHandler) Remove(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	if err := h.service.RemoveFromCompare(c.Request().Context(), userID, productID); err != nil {
		return c.JSON(compareErrorStatus(err), ResponseError{Message: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

// DELETE /api/v1/compare
func (h *CompareHandler) Clear(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.service.ClearCompare(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
