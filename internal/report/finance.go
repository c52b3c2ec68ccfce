// Package report builds spreadsheet exports for the finance screen.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	paymentsSheet = "Pagamentos"
	summarySheet  = "Resumo"
	dateLayout    = "02/01/2006"
)

var paymentHeaders = []string{
	"ID", "Descrição", "Valor", "Status", "Vencimento", "Pago em", "TXID", "Origem",
}

// WriteFinance renders payments plus their per-status summary as .xlsx.
func WriteFinance(w io.Writer, payments []models.Payment, loc *time.Location) error {
	f, err := buildFinance(payments, loc)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

func buildFinance(payments []models.Payment, loc *time.Location) (*excelize.File, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()

	// The default "Sheet1" becomes the payments sheet.
	if err := f.SetSheetName(f.GetSheetName(0), paymentsSheet); err != nil {
		return nil, err
	}

	for i, header := range paymentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(paymentsSheet, cell, header)
	}

	for i, p := range payments {
		row := i + 2
		f.SetCellValue(paymentsSheet, fmt.Sprintf("A%d", row), p.ID)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("B%d", row), p.Description)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("C%d", row), p.Amount)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("D%d", row), statusLabel(p.Status))
		f.SetCellValue(paymentsSheet, fmt.Sprintf("E%d", row), p.DueDate.In(loc).Format(dateLayout))
		if p.PaidAt != nil {
			f.SetCellValue(paymentsSheet, fmt.Sprintf("F%d", row), p.PaidAt.In(loc).Format(dateLayout))
		}
		f.SetCellValue(paymentsSheet, fmt.Sprintf("G%d", row), p.TxID)
		f.SetCellValue(paymentsSheet, fmt.Sprintf("H%d", row), origin(p))
	}

	if err := f.SetColWidth(paymentsSheet, "B", "B", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(paymentsSheet, "G", "G", 28); err != nil {
		return nil, err
	}

	if err := writeSummary(f, domain.Summarize(payments)); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSummary(f *excelize.File, s domain.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Status", "Quantidade", "Total"},
		{statusLabel(string(domain.StatusPaid)), s.Paid.Count, s.Paid.Amount},
		{statusLabel(string(domain.StatusPending)), s.Pending.Count, s.Pending.Amount},
		{statusLabel(string(domain.StatusOverdue)), s.Overdue.Count, s.Overdue.Amount},
		{"Total", s.Total.Count, s.Total.Amount},
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func statusLabel(s string) string {
	switch domain.Status(s) {
	case domain.StatusPaid:
		return "Pago"
	case domain.StatusPending:
		return "Pendente"
	case domain.StatusOverdue:
		return "Atrasado"
	}
	return s
}

func origin(p models.Payment) string {
	switch {
	case p.SubscriptionID != nil:
		return "Assinatura"
	case p.AppointmentID != nil:
		return "Atendimento"
	}
	return "Avulso"
}
