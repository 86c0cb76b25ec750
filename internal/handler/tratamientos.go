package handler

import (
	"net/http"

	"github.com/manucavallera/Ganaderia-sub001/internal/apierror"
	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type TratamientosHandler struct{ svc service.TratamientoService }

func NewTratamientosHandler(svc service.TratamientoService) *TratamientosHandler {
	return &TratamientosHandler{svc: svc}
}

func (h *TratamientosHandler) Crear(c *gin.Context) {
	var req dto.CrearTratamientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	establecimientoID, ok := establecimientoParaAlta(c, req.EstablecimientoID)
	if !ok {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), establecimientoID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TratamientosHandler) Listar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	var filter dto.TratamientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), f, filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TratamientosHandler) ObtenerPorID(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), f, id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TratamientosHandler) Actualizar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarTratamientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), f, id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TratamientosHandler) Eliminar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), f, id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
