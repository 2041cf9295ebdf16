package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"sellora-backend/models"
	"sellora-backend/repository"
	"sellora-backend/utils"
)

// InvoiceService renders order invoices as HTML and prints them to PDF
type InvoiceService struct {
	orders repository.OrderStore
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(orders repository.OrderStore) *InvoiceService {
	return &InvoiceService{orders: orders}
}

// detectChromePath detects the path to a Chrome/Chromium executable.
// Checks CHROME_PATH first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

type invoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

type invoiceData struct {
	OrderID     int64
	CreatedAt   string
	Status      string
	IsPaid      bool
	Shipping    models.ShippingSnapshot
	Lines       []invoiceLine
	TotalAmount string
}

// RenderInvoiceHTML renders the invoice template for an order
func (s *InvoiceService) RenderInvoiceHTML(ctx context.Context, orderID int64) (string, error) {
	detail, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	data := invoiceData{
		OrderID:     detail.Order.ID,
		CreatedAt:   detail.Order.CreatedAt,
		Status:      detail.Order.Status.DisplayName,
		IsPaid:      detail.Order.Payment.IsPaid,
		Shipping:    detail.Order.Shipping,
		TotalAmount: utils.FormatBDT(detail.Order.TotalAmount),
	}
	for _, item := range detail.Items {
		data.Lines = append(data.Lines, invoiceLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: utils.FormatBDT(item.Price),
			Subtotal:  utils.FormatBDT(item.Subtotal),
		})
	}

	templatePath := filepath.Join("templates", "invoice.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GeneratePDF renders an order invoice and prints it to an A4 PDF using
// chromedp. The HTML is self-contained, so it is loaded through a data URL
// instead of a render endpoint.
func (s *InvoiceService) GeneratePDF(ctx context.Context, orderID int64) ([]byte, error) {
	htmlContent, err := s.RenderInvoiceHTML(ctx, orderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlContent))

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
