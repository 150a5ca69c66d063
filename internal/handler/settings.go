package handler

import (
	"net/http"

	"carhub/internal/dto"
	"carhub/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) List(c *gin.Context) {
	var (
		settings []dto.SettingResponse
		err      error
	)
	if c.Query("editable") == "true" {
		rows, e := h.svc.Editable(c.Request.Context())
		err = e
		for i := range rows {
			settings = append(settings, *dto.SettingToResponse(&rows[i]))
		}
	} else {
		rows, e := h.svc.All(c.Request.Context())
		err = e
		for i := range rows {
			settings = append(settings, *dto.SettingToResponse(&rows[i]))
		}
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Get returns one setting's effective value, falling back to empty on a
// missing key the same way the typed accessors do.
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value := h.svc.GetValue(c.Request.Context(), key, "")
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

func (h *SettingsHandler) Update(c *gin.Context) {
	key := c.Param("key")
	var req dto.UpdateSettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), key, req.Value); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
