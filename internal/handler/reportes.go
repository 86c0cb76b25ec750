package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/manucavallera/Ganaderia-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Sanitario serves the consolidated health report. An admin sees all
// establecimientos unless ?establecimiento_id= narrows the scope; everyone
// else sees only their own.
func (h *ReportesHandler) Sanitario(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	resp, err := h.svc.GenerarReporteSanitario(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SanitarioPDF streams the same report as a printable PDF.
func (h *ReportesHandler) SanitarioPDF(c *gin.Context) {
	f, ok := filtroDesdeRequest(c)
	if !ok {
		return
	}
	pdf, err := h.svc.GenerarReporteSanitarioPDF(c.Request.Context(), f)
	if err != nil {
		responderError(c, err)
		return
	}
	nombre := fmt.Sprintf("reporte_sanitario_%s.pdf", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
