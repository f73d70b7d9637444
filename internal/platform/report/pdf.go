package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

var (
	tableHeader = []string{"Date", "Tooth", "Description", "Payment", "Cost", "Discount", "Comment"}
	tableWidths = []float64{24, 14, 52, 22, 22, 22, 34}
	tableAlign  = []string{"L", "L", "L", "R", "R", "R", "L"}
)

// WritePDF renders s as a single A4 document. Text outside cp1252 is
// replaced by the font translator.
func WritePDF(w io.Writer, s *Sheet) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(s.Title, true)
	pdf.SetMargins(10, 12, 10)
	pdf.SetFooterFunc(func() {
		if s.Doctor == nil {
			return
		}
		pdf.SetY(-20)
		pdf.SetFont("Helvetica", "B", 9)
		line := s.Doctor.Name
		if s.Doctor.Speciality != "" {
			line += ", " + s.Doctor.Speciality
		}
		pdf.CellFormat(0, 5, tr(line), "T", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		contact := s.Doctor.Address
		if s.Doctor.Telephone != "" {
			contact += "  " + s.Doctor.Telephone
		}
		pdf.CellFormat(0, 5, tr(contact), "", 0, "L", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(s.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, f := range s.Fields {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(38, 6, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, tr(f.Value), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(225, 225, 225)
	for i, h := range tableHeader {
		pdf.CellFormat(tableWidths[i], 7, h, "1", 0, tableAlign[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range s.Lines {
		cells := []string{l.VisitDate, l.Tooth, l.Description, l.Payment, l.Cost, l.Discount, l.Comment}
		for i, v := range cells {
			pdf.CellFormat(tableWidths[i], 6, tr(v), "1", 0, tableAlign[i], false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	lead := tableWidths[0] + tableWidths[1] + tableWidths[2]
	pdf.CellFormat(lead, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(tableWidths[3], 7, s.Totals.Payments, "1", 0, "R", true, 0, "")
	pdf.CellFormat(tableWidths[4], 7, s.Totals.Costs, "1", 0, "R", true, 0, "")
	pdf.CellFormat(tableWidths[5], 7, s.Totals.Discounts, "1", 0, "R", true, 0, "")
	pdf.CellFormat(tableWidths[6], 7, "", "1", 1, "L", true, 0, "")
	pdf.CellFormat(lead, 7, "Owed", "1", 0, "R", true, 0, "")
	pdf.CellFormat(tableWidths[3]+tableWidths[4]+tableWidths[5], 7, s.Totals.Balance, "1", 0, "R", true, 0, "")
	pdf.CellFormat(tableWidths[6], 7, "", "1", 1, "L", true, 0, "")

	return pdf.Output(w)
}
