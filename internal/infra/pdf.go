package infra

// Purchase-order documents rendered with go-pdf/fpdf.
// An A4 page with:
//   - Header with order id, vendor and approval date
//   - Item table (name, volume, quantity, unit price, line total)
//   - Subtotal, tax and total of the final pricing stage
//
// The output file is saved to storagePath/order_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// EffectivePricing is the stage that prices the order: the salesman
// adjustment when present, else the admin pricing. Nil when unpriced.
func EffectivePricing(o *model.Order) *model.Pricing {
	if o.FinalPricing != nil {
		return o.FinalPricing
	}
	return o.AdminPricing
}

// GenerateOrderPDF renders the purchase order for an approved order.
// storagePath is created if needed. Returns the path of the generated file.
func GenerateOrderPDF(order *model.Order, vendor *model.Vendor, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("order_%s.pdf", order.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "WIMS Purchase Order", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Order: "+order.ID, "", 1, "L", false, 0, "")
	if order.ApprovedAt != nil {
		pdf.CellFormat(contentW, 5, "Approved: "+order.ApprovedAt.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	}
	if vendor != nil {
		pdf.CellFormat(contentW, 5, "Vendor: "+vendor.Name, "", 1, "L", false, 0, "")
		if vendor.Address != "" {
			pdf.CellFormat(contentW, 5, vendor.Address, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	// ── Items ────────────────────────────────────────────────────────────────
	col := []float64{contentW * 0.40, contentW * 0.14, contentW * 0.12, contentW * 0.16, contentW * 0.18}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range []string{"Item", "Volume", "Qty", "Unit price", "Line total"} {
		align := "R"
		if i < 2 {
			align = "L"
		}
		pdf.CellFormat(col[i], 6, h, "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pricing := EffectivePricing(order)
	pdf.SetFont("Helvetica", "", 9)
	for _, it := range order.Items {
		price := decimal.Zero
		if pricing != nil {
			price = pricing.ItemPrices.Get(it.ID)
		}
		line := price.Mul(decimal.NewFromInt(int64(it.RequestedQuantity)))

		name := it.Name
		if len(name) > 40 {
			name = name[:39] + "..."
		}
		pdf.CellFormat(col[0], 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col[1], 6, it.Volume, "", 0, "L", false, 0, "")
		pdf.CellFormat(col[2], 6, fmt.Sprintf("%d", it.RequestedQuantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(col[3], 6, price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col[4], 6, line.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	if pricing != nil {
		labelW := contentW - col[4]
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
		pdf.CellFormat(col[4], 6, pricing.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(labelW, 6, "Tax", "", 0, "R", false, 0, "")
		pdf.CellFormat(col[4], 6, pricing.Tax.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 7, "TOTAL", "", 0, "R", false, 0, "")
		pdf.CellFormat(col[4], 7, pricing.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}

	if order.SalesmanNotes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(contentW, 4, "Notes: "+order.SalesmanNotes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
