package infra

// pdf.go — invoice and report generation using go-pdf/fpdf.
// Invoices are A4 documents with a company header, buyer and vehicle blocks,
// an amounts table and a bold total. Reports are simple A4 tables.
// Output files land under the configured storage path.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"carhub/internal/currency"
	"carhub/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateInvoicePDF renders the sale invoice. The sale must have its Vehicle
// and Client associations loaded. Returns the absolute path of the file,
// named invoice_{number}.pdf.
func GenerateInvoicePDF(sale *model.Sale, companyName string, fmtr *currency.Formatter, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("invoice_%s.pdf", sale.InvoiceNumber))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Vehicle Sale Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Invoice info ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Invoice "+sale.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Date: "+sale.SaleDate.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Buyer and vehicle ────────────────────────────────────────────────────
	half := contentW / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, 6, "Buyer", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, "Vehicle", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	buyer := []string{"-", "", ""}
	if sale.Client != nil {
		buyer[0] = sale.Client.FullName()
		buyer[1] = sale.Client.PhoneNumber
		if sale.Client.Email != nil {
			buyer[2] = *sale.Client.Email
		}
	}
	vehicle := []string{"-", "", ""}
	if sale.Vehicle != nil {
		vehicle[0] = sale.Vehicle.DisplayName()
		if sale.Vehicle.VIN != nil {
			vehicle[1] = "VIN: " + *sale.Vehicle.VIN
		}
		vehicle[2] = fmt.Sprintf("Mileage: %d km", sale.Vehicle.Mileage)
	}
	for i := 0; i < 3; i++ {
		pdf.CellFormat(half, 5, buyer[i], "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, vehicle[i], "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Amounts ──────────────────────────────────────────────────────────────
	labelW := contentW * 0.6
	amountW := contentW * 0.4

	row := func(label, amount string) {
		pdf.CellFormat(labelW, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(amountW, 6, amount, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	row("Sale price", fmtr.Format(sale.SalePrice))
	if !sale.DiscountAmount.IsZero() {
		row("Discount", "-"+fmtr.Format(sale.DiscountAmount))
	}
	if !sale.TaxAmount.IsZero() {
		row("Tax", fmtr.Format(sale.TaxAmount))
	}

	pdf.SetFont("Helvetica", "B", 12)
	row("TOTAL", fmtr.Format(sale.TotalAmount))

	// ── Payment ──────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 9)
	row("Payment method: "+string(sale.PaymentMethod), "")
	if sale.PaymentMethod == model.PaymentFinancing {
		row("Down payment", fmtr.Format(sale.DownPayment))
		row("Financed amount", fmtr.Format(sale.FinancingAmount))
		row(fmt.Sprintf("Monthly payment (%d months)", sale.LoanTermMonths), fmtr.Format(sale.MonthlyPayment))
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Warranty: %d months", sale.WarrantyMonths), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateInventoryReportPDF renders a table of the given vehicles, one row
// each, with a count footer.
func GenerateInventoryReportPDF(vehicles []model.Vehicle, companyName string, fmtr *currency.Formatter, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("inventory_%s.pdf", time.Now().Format("20060102_150405")))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, companyName+" — Inventory Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colVehicle := contentW * 0.38
	colStatus := contentW * 0.16
	colDays := contentW * 0.14
	colPrice := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colVehicle, 6, "Vehicle", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colStatus, 6, "Status", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colDays, 6, "Days", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colPrice, 6, "Price ("+fmtr.Symbol()+")", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i := range vehicles {
		v := &vehicles[i]
		name := v.DisplayName()
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		pdf.CellFormat(colVehicle, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colStatus, 6, string(v.Status), "", 0, "L", false, 0, "")
		pdf.CellFormat(colDays, 6, fmt.Sprintf("%d", v.DaysInStock), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 6, fmtr.Format(v.Price), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Total vehicles: %d", len(vehicles)), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateSalesReportPDF renders the sales closed inside the window with a
// revenue total at the bottom.
func GenerateSalesReportPDF(sales []model.Sale, from, to time.Time, companyName string, fmtr *currency.Formatter, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	filePath := filepath.Join(storagePath, fmt.Sprintf("sales_%s.pdf", time.Now().Format("20060102_150405")))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, companyName+" — Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5,
		from.Format("02/01/2006")+" to "+to.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colInvoice := contentW * 0.22
	colDate := contentW * 0.16
	colVehicle := contentW * 0.34
	colAmount := contentW * 0.28

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colInvoice, 6, "Invoice", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colDate, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colVehicle, 6, "Vehicle", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	revenue := decimal.Zero
	for i := range sales {
		s := &sales[i]
		name := "-"
		if s.Vehicle != nil {
			name = s.Vehicle.DisplayName()
		}
		if len(name) > 34 {
			name = name[:33] + "…"
		}
		pdf.CellFormat(colInvoice, 6, s.InvoiceNumber, "", 0, "L", false, 0, "")
		pdf.CellFormat(colDate, 6, s.SaleDate.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colVehicle, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, 6, fmtr.Format(s.TotalAmount), "", 1, "R", false, 0, "")
		revenue = revenue.Add(s.SalePrice)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colInvoice+colDate+colVehicle, 6, fmt.Sprintf("Sales: %d  Revenue:", len(sales)), "", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 6, fmtr.Format(revenue), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
