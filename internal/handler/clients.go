package handler

import (
	"net/http"

	"carhub/internal/apierror"
	"carhub/internal/dto"
	"carhub/internal/model"
	"carhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientsHandler struct{ svc service.ClientService }

func NewClientsHandler(svc service.ClientService) *ClientsHandler {
	return &ClientsHandler{svc: svc}
}

func (h *ClientsHandler) Create(c *gin.Context) {
	var req dto.SaveClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	client := &model.Client{}
	applyClientRequest(client, req)
	if err := h.svc.Save(c.Request.Context(), client); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ClientToResponse(client))
}

func (h *ClientsHandler) List(c *gin.Context) {
	var (
		clients []model.Client
		err     error
	)
	if term := c.Query("search"); term != "" {
		clients, err = h.svc.Search(c.Request.Context(), term)
	} else {
		clients, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := make([]*dto.ClientResponse, len(clients))
	for i := range clients {
		resp[i] = dto.ClientToResponse(&clients[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	client, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClientToResponse(client))
}

func (h *ClientsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.SaveClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	client, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	applyClientRequest(client, req)
	if err := h.svc.Save(c.Request.Context(), client); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClientToResponse(client))
}

func (h *ClientsHandler) Delete(c *gin.Context) {
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

func applyClientRequest(client *model.Client, req dto.SaveClientRequest) {
	client.FirstName = req.FirstName
	client.LastName = req.LastName
	client.Email = req.Email
	client.PhoneNumber = req.PhoneNumber
	client.Address = req.Address
	client.City = req.City
	client.PostalCode = req.PostalCode
	if req.Country != "" {
		client.Country = req.Country
	}
	client.DateOfBirth = req.DateOfBirth
	if req.Gender != nil {
		g := model.Gender(*req.Gender)
		client.Gender = &g
	}
	if req.PreferredContact != "" {
		client.PreferredContact = model.ContactMethod(req.PreferredContact)
	}
	if req.CustomerType != "" {
		client.CustomerType = model.CustomerType(req.CustomerType)
	}
	client.CreditScore = req.CreditScore
	client.Notes = req.Notes
}
