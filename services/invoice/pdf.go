package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"shearbook/models"
)

// RenderPDF renders an invoice as a single-page A4 PDF.
func (svc *DefaultInvoiceService) RenderPDF(inv *models.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Invoice "+inv.Number)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Customer: "+inv.Customer)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Booking: "+inv.BookingID)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued: "+inv.IssuedAt.Format("2 January 2006"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 8, "Service", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Duration", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Price", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range inv.Items {
		pdf.CellFormat(110, 8, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d min", item.DurationMinutes), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.Price), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", inv.Amount), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
