package handler

import (
	"net/http"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type RodeosHandler struct{ svc service.RodeoService }

func NewRodeosHandler(svc service.RodeoService) *RodeosHandler {
	return &RodeosHandler{svc: svc}
}

func (h *RodeosHandler) Crear(c *gin.Context) {
	var req dto.CrearRodeoRequest
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

func (h *RodeosHandler) Listar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), f, incluirInactivos)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RodeosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *RodeosHandler) Actualizar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarRodeoRequest
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

func (h *RodeosHandler) Desactivar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), f, id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RodeosHandler) Eliminar(c *gin.Context) {
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

// Estadisticas serves the per-rodeo health roll-up.
func (h *RodeosHandler) Estadisticas(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), f, id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
