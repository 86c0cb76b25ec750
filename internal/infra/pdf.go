package infra

// pdf.go — printable rendition of the consolidated herd health report using
// go-pdf/fpdf. A4 portrait: population summary, treatment breakdown, diarrhea
// severity breakdown and the four-way health partition.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/manucavallera/Ganaderia-sub001/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerarReporteSanitarioPDF renders the report and returns the PDF bytes;
// the caller decides whether to stream or store them.
func GenerarReporteSanitarioPDF(r *dto.ReporteSanitarioResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Reporte Sanitario", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	seccion := func(titulo string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, titulo, "", 1, "L", false, 0, "")
		pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
		pdf.Ln(1)
	}
	fila := func(etiqueta, valor string) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.6, 6, etiqueta, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.4, 6, valor, "", 1, "R", false, 0, "")
	}

	// ── Population ───────────────────────────────────────────────────────────
	seccion("Poblacion")
	fila("Total de animales", fmt.Sprintf("%d", r.TotalAnimals))
	fila("Vivos", fmt.Sprintf("%d", r.AliveAnimals))
	fila("Muertos", fmt.Sprintf("%d", r.DeadAnimals))
	fila("Mortalidad", r.MortalityPercent.StringFixed(2)+" %")
	fila("Morbilidad", r.MorbidityPercent.StringFixed(2)+" %")
	pdf.Ln(3)

	// ── Treatments ───────────────────────────────────────────────────────────
	seccion("Tratamientos")
	fila("Animales tratados", fmt.Sprintf("%d", r.TreatedAnimals))
	fila("Tratamientos registrados", fmt.Sprintf("%d", r.TreatmentsTotal))
	for _, t := range r.TreatmentBreakdown {
		fila("   "+t.TipoEnfermedad, fmt.Sprintf("%d", t.Cantidad))
	}
	pdf.Ln(3)

	// ── Diarrhea ─────────────────────────────────────────────────────────────
	seccion("Episodios de diarrea")
	fila("Animales con diarrea", fmt.Sprintf("%d", r.DiarrheaAnimals))
	fila("Episodios registrados", fmt.Sprintf("%d", r.DiarrheaEpisodesTotal))
	fila("   Leve", fmt.Sprintf("%d", r.DiarrheaBreakdown.Leve))
	fila("   Moderada", fmt.Sprintf("%d", r.DiarrheaBreakdown.Moderada))
	fila("   Severa", fmt.Sprintf("%d", r.DiarrheaBreakdown.Severa))
	fila("   Critica", fmt.Sprintf("%d", r.DiarrheaBreakdown.Critica))
	pdf.Ln(3)

	// ── Partition ────────────────────────────────────────────────────────────
	seccion("Estado del rodeo")
	fila("Con tratamiento y diarrea", fmt.Sprintf("%d", r.BothProblems))
	fila("Solo tratamiento", fmt.Sprintf("%d", r.OnlyTreatment))
	fila("Solo diarrea", fmt.Sprintf("%d", r.OnlyDiarrhea))
	fila("Sanos", fmt.Sprintf("%d", r.Healthy))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render reporte: %w", err)
	}
	return buf.Bytes(), nil
}
