package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/npetit/facturescan/internal/repository"
)

// Service produces XLSX bytes for invoice exports.
type Service struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

func NewService(invoices repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{invoices: invoices, logger: logger}
}

// ExportInvoicesXLSX returns an XLSX workbook (as bytes) with one row per stored invoice.
func (s *Service) ExportInvoicesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	invs, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Factures"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet so the workbook opens on ours.
	if name := f.GetSheetName(0); name != sheet {
		_ = f.DeleteSheet(name)
	}

	headers := []string{
		"Date",
		"N° Facture",
		"Fournisseur",
		"Montant HT",
		"Montant TTC",
		"TVA",
		"Devise",
		"Adresse",
		"Fichier",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, inv := range invs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		tax := ""
		if inv.Tax != nil {
			if inv.Tax.IsPercentage() {
				tax = inv.Tax.Value + " %"
			} else {
				tax = inv.Tax.Value
			}
		}

		write(1, inv.Date)
		write(2, inv.InvoiceNumber)
		write(3, inv.Supplier)
		write(4, inv.NetAmount)
		write(5, inv.GrossAmount)
		write(6, tax)
		write(7, inv.Currency)
		write(8, truncate(inv.Address, 140))
		write(9, inv.SourceFile)

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 18)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "F", 14)
	_ = f.SetColWidth(sheet, "G", "G", 8)
	_ = f.SetColWidth(sheet, "H", "H", 48)
	_ = f.SetColWidth(sheet, "I", "I", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(invs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
