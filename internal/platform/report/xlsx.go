package report

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
)

// SheetName is the worksheet the customer sheet is written to.
const SheetName = "Customer"

var xlsxColumns = []string{"A", "B", "C", "D", "E", "F", "G"}

// WriteXLSX renders s as a one-sheet workbook.
func WriteXLSX(w io.Writer, s *Sheet) error {
	file := excelize.NewFile()
	file.NewSheet(SheetName)
	file.DeleteSheet("Sheet1")

	file.SetCellValue(SheetName, "A1", s.Title)
	row := 3
	for _, f := range s.Fields {
		file.SetCellValue(SheetName, fmt.Sprintf("A%d", row), f.Label)
		file.SetCellValue(SheetName, fmt.Sprintf("B%d", row), f.Value)
		row++
	}
	row++

	for i, h := range tableHeader {
		file.SetCellValue(SheetName, fmt.Sprintf("%s%d", xlsxColumns[i], row), h)
	}
	row++
	for _, l := range s.Lines {
		cells := []string{l.VisitDate, l.Tooth, l.Description, l.Payment, l.Cost, l.Discount, l.Comment}
		for i, v := range cells {
			file.SetCellValue(SheetName, fmt.Sprintf("%s%d", xlsxColumns[i], row), v)
		}
		row++
	}

	file.SetCellValue(SheetName, fmt.Sprintf("C%d", row), "Total")
	file.SetCellValue(SheetName, fmt.Sprintf("D%d", row), s.Totals.Payments)
	file.SetCellValue(SheetName, fmt.Sprintf("E%d", row), s.Totals.Costs)
	file.SetCellValue(SheetName, fmt.Sprintf("F%d", row), s.Totals.Discounts)
	row++
	file.SetCellValue(SheetName, fmt.Sprintf("C%d", row), "Owed")
	file.SetCellValue(SheetName, fmt.Sprintf("D%d", row), s.Totals.Balance)

	if d := s.Doctor; d != nil {
		row += 2
		file.SetCellValue(SheetName, fmt.Sprintf("A%d", row), d.Name)
		file.SetCellValue(SheetName, fmt.Sprintf("C%d", row), d.Speciality)
		row++
		file.SetCellValue(SheetName, fmt.Sprintf("A%d", row), d.Address)
		file.SetCellValue(SheetName, fmt.Sprintf("C%d", row), d.Telephone)
	}

	file.SetColWidth(SheetName, "A", "B", 16)
	file.SetColWidth(SheetName, "C", "C", 32)
	file.SetColWidth(SheetName, "G", "G", 28)

	return file.Write(w)
}
