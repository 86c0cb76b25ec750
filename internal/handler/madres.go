package handler

import (
	"net/http"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type MadresHandler struct{ svc service.MadreService }

func NewMadresHandler(svc service.MadreService) *MadresHandler {
	return &MadresHandler{svc: svc}
}

func (h *MadresHandler) Crear(c *gin.Context) {
	var req dto.CrearMadreRequest
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

func (h *MadresHandler) Listar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MadresHandler) ObtenerPorID(c *gin.Context) {
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

func (h *MadresHandler) Actualizar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarMadreRequest
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

func (h *MadresHandler) Eliminar(c *gin.Context) {
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
