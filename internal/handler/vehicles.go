package handler

import (
	"net/http"
	"strconv"

	"carhub/internal/apierror"
	"carhub/internal/dto"
	"carhub/internal/middleware"
	"carhub/internal/model"
	"carhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehiclesHandler struct {
	svc service.InventoryService
	// agedDays is the default threshold for the aged-inventory listing.
	agedDays int
}

func NewVehiclesHandler(svc service.InventoryService, agedDays int) *VehiclesHandler {
	return &VehiclesHandler{svc: svc, agedDays: agedDays}
}

func (h *VehiclesHandler) Create(c *gin.Context) {
	var req dto.SaveVehicleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v := &model.Vehicle{}
	applyVehicleRequest(v, req)
	if claims := middleware.GetClaims(c); claims != nil {
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			v.CreatedByID = &uid
		}
	}
	if err := h.svc.Save(c.Request.Context(), v); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.VehicleToResponse(v))
}

func (h *VehiclesHandler) List(c *gin.Context) {
	var filter dto.VehicleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}

	var (
		vehicles []model.Vehicle
		err      error
	)
	switch {
	case filter.Search != "":
		vehicles, err = h.svc.Search(c.Request.Context(), filter.Search)
	case filter.MinPrice != "" || filter.MaxPrice != "":
		min, max, perr := parsePriceRange(filter.MinPrice, filter.MaxPrice)
		if perr != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid price range"))
			return
		}
		vehicles, err = h.svc.PriceBetween(c.Request.Context(), min, max)
	case filter.Status != "":
		vehicles, err = h.svc.ListByStatus(c.Request.Context(), model.VehicleStatus(filter.Status))
	default:
		vehicles, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := make([]*dto.VehicleResponse, len(vehicles))
	for i := range vehicles {
		resp[i] = dto.VehicleToResponse(&vehicles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiclesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	v, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VehicleToResponse(v))
}

func (h *VehiclesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.SaveVehicleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	applyVehicleRequest(v, req)
	if err := h.svc.Save(c.Request.Context(), v); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VehicleToResponse(v))
}

func (h *VehiclesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Aged lists vehicles on the lot longer than ?days (default configured).
func (h *VehiclesHandler) Aged(c *gin.Context) {
	days := h.agedDays
	if q := c.Query("days"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid days"))
			return
		}
		days = parsed
	}
	vehicles, err := h.svc.AgedInventory(c.Request.Context(), days)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := make([]*dto.VehicleResponse, len(vehicles))
	for i := range vehicles {
		resp[i] = dto.VehicleToResponse(&vehicles[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiclesHandler) CountByBrand(c *gin.Context) {
	counts, err := h.svc.CountByBrand(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func applyVehicleRequest(v *model.Vehicle, req dto.SaveVehicleRequest) {
	v.Brand = req.Brand
	v.Model = req.Model
	v.Year = req.Year
	v.Price = req.Price
	v.CostPrice = req.CostPrice
	v.Mileage = req.Mileage
	if req.FuelType != "" {
		v.FuelType = model.FuelType(req.FuelType)
	}
	if req.Transmission != "" {
		v.Transmission = model.Transmission(req.Transmission)
	}
	v.EngineSize = req.EngineSize
	v.Color = req.Color
	v.VIN = req.VIN
	v.LicensePlate = req.LicensePlate
	if req.Status != "" {
		v.Status = model.VehicleStatus(req.Status)
	}
	if req.Condition != "" {
		v.Condition = model.VehicleCondition(req.Condition)
	}
	v.Description = req.Description
	v.Features = req.Features
	v.Location = req.Location
}

func parsePriceRange(minStr, maxStr string) (decimal.Decimal, decimal.Decimal, error) {
	min, max := decimal.Zero, decimal.New(1, 12)
	var err error
	if minStr != "" {
		if min, err = decimal.NewFromString(minStr); err != nil {
			return min, max, err
		}
	}
	if maxStr != "" {
		if max, err = decimal.NewFromString(maxStr); err != nil {
			return min, max, err
		}
	}
	return min, max, nil
}
