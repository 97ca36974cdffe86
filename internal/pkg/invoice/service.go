// internal/pkg/invoice/service.go
package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/skatious/storefront-backend/internal/config"
	"github.com/skatious/storefront-backend/internal/domain/order"
)

// Service renders order invoices as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new invoice service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

type invoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Items         []invoiceItem
	Subtotal      float64
	Discount      float64
	Total         float64
	StoreName     string
}

type invoiceItem struct {
	Name      string
	SKU       string
	Size      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// Generate renders a PDF invoice for an order
func (s *Service) Generate(ord *order.Order) (*bytes.Buffer, error) {
	items := make([]invoiceItem, 0, len(ord.Items))
	for _, item := range ord.Items {
		items = append(items, invoiceItem{
			Name:      item.Name,
			SKU:       item.SKU,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.Price) / 100,
			Total:     float64(item.TotalPrice) / 100,
		})
	}

	data := invoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", ord.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		Order:         ord,
		Items:         items,
		Subtotal:      float64(ord.SubtotalAmount) / 100,
		Discount:      float64(ord.DiscountAmount) / 100,
		Total:         ord.GetFormattedTotal(),
		StoreName:     s.config.App.Name,
	}

	var html bytes.Buffer
	if err := invoiceTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html.Bytes()))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

var invoiceTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; }
  h1 { font-size: 22px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { border-bottom: 1px solid #ddd; padding: 8px; text-align: left; }
  .totals td { border: none; }
  .totals .label { text-align: right; }
</style>
</head>
<body>
  <h1>{{.StoreName}}</h1>
  <p>
    Invoice {{.InvoiceNumber}}<br>
    Date: {{.InvoiceDate}}<br>
    Order: {{.Order.OrderNumber}}
  </p>
  <p>
    {{.Order.ShippingAddress.FirstName}} {{.Order.ShippingAddress.LastName}}<br>
    {{.Order.ShippingAddress.AddressLine1}}<br>
    {{if .Order.ShippingAddress.AddressLine2}}{{.Order.ShippingAddress.AddressLine2}}<br>{{end}}
    {{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.PostalCode}}
  </p>
  <table>
    <tr><th>Item</th><th>SKU</th><th>Size</th><th>Qty</th><th>Unit</th><th>Total</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}</td><td>{{.SKU}}</td><td>{{.Size}}</td>
      <td>{{.Quantity}}</td><td>&#8377;{{printf "%.2f" .UnitPrice}}</td><td>&#8377;{{printf "%.2f" .Total}}</td>
    </tr>
    {{end}}
  </table>
  <table class="totals">
    <tr><td class="label">Subtotal</td><td>&#8377;{{printf "%.2f" .Subtotal}}</td></tr>
    {{if .Order.DiscountCode}}
    <tr><td class="label">Discount {{.Order.DiscountCode}} ({{.Order.DiscountPercentage}}%)</td><td>-&#8377;{{printf "%.2f" .Discount}}</td></tr>
    {{end}}
    <tr><td class="label"><strong>Total</strong></td><td><strong>&#8377;{{printf "%.2f" .Total}}</strong></td></tr>
  </table>
</body>
</html>`))
