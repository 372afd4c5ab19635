// Package invoice renders PDF invoices for ledger entries.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"proptoken/internal/models"
)

// Generate renders a PDF invoice for one investment. The layout is a
// single A4 page: platform header, invoice metadata, a breakdown table,
// and a disclaimer footer.
func Generate(inv *models.Investment, investorName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Investment Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "PropToken", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Fractional Real Estate Investment Platform", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Investment Invoice", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice ID: %s", inv.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", inv.InvestedAt.Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
	if investorName != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Investor: %s", investorName), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	rows := [][2]string{
		{"Property", fmt.Sprintf("%s (%s)", inv.PropertyName, inv.PropertyCode)},
		{"Gross Investment", fmt.Sprintf("PKR %d", inv.Amount)},
		{"Platform Fee", fmt.Sprintf("PKR %s", inv.PlatformFee.StringFixed(2))},
		{"Net Investment", fmt.Sprintf("PKR %s", inv.NetInvestment.StringFixed(2))},
		{"Tokens Received", inv.TokensReceived.StringFixed(4)},
		{"Ownership", fmt.Sprintf("%s %%", inv.OwnershipPercent.StringFixed(4))},
		{"Expected Annual Return", fmt.Sprintf("%.2f %%", inv.ReturnRate)},
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(70, 9, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(110, 9, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5,
		"This is a demonstration document. Token allocations recorded on this invoice represent "+
			"fractional interests in the listed property and are not transferable securities.",
		"", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
