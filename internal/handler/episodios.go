package handler

import (
	"net/http"

	"github.com/manucavallera/Ganaderia-sub001/internal/apierror"
	"github.com/manucavallera/Ganaderia-sub001/internal/dto"
	"github.com/manucavallera/Ganaderia-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// EpisodiosHandler exposes the diarrhea episode ledger. Episode creation goes
// through the tenancy filter rather than establecimientoParaAlta: the episode
// inherits its establecimiento from the ternero it belongs to.
type EpisodiosHandler struct{ svc service.EpisodioService }

func NewEpisodiosHandler(svc service.EpisodioService) *EpisodiosHandler {
	return &EpisodiosHandler{svc: svc}
}

func (h *EpisodiosHandler) Registrar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	var req dto.RegistrarEpisodioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), f, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EpisodiosHandler) Listar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	var filter dto.EpisodioFilter
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

func (h *EpisodiosHandler) ObtenerPorID(c *gin.Context) {
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

func (h *EpisodiosHandler) Actualizar(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarEpisodioRequest
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

func (h *EpisodiosHandler) Eliminar(c *gin.Context) {
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

// Estadisticas serves GET /terneros/:id/episodios/estadisticas.
func (h *EpisodiosHandler) Estadisticas(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.EstadisticasPorTernero(c.Request.Context(), f, id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
