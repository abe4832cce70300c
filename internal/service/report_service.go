package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
	"github.com/noah-isme/tk-admin-api/pkg/export"
)

const displayDate = "02/01/2006"

type reportIncomes interface {
	ListAll(ctx context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, error)
}

type reportExpenses interface {
	ListAll(ctx context.Context, filter models.LedgerFilter) ([]models.ExpenseRecord, error)
}

type reportBills interface {
	ListAll(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, error)
}

type documentRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// ReportConfig carries the letterhead and signatories printed on reports.
type ReportConfig struct {
	SchoolName    string
	City          string
	TreasurerName string
	PrincipalName string
	Location      *time.Location
}

// FinanceReportRequest selects an inclusive date range.
type FinanceReportRequest struct {
	From   string
	To     string
	Format dto.ReportFormat
}

// BillReportRequest filters the bill roster.
type BillReportRequest struct {
	Status  string
	ClassID string
	Format  dto.ReportFormat
}

// ReportService renders finance and billing exports.
type ReportService struct {
	incomes  reportIncomes
	expenses reportExpenses
	bills    reportBills
	csv      documentRenderer
	pdf      documentRenderer
	logger   *zap.Logger
	cfg      ReportConfig
	now      func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(incomes reportIncomes, expenses reportExpenses, bills reportBills, csv documentRenderer, pdf documentRenderer, cfg ReportConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ReportService{incomes: incomes, expenses: expenses, bills: bills, csv: csv, pdf: pdf, logger: logger, cfg: cfg, now: time.Now}
}

// Finance renders income and expense records of the range with totals and the balance.
func (s *ReportService) Finance(ctx context.Context, req FinanceReportRequest) (*dto.ReportFile, error) {
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from and to are required")
	}
	from, err := parseDate(req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from must not be after to")
	}

	filter := models.LedgerFilter{From: &from, To: &to}
	incomes, err := s.incomes.ListAll(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load income records")
	}
	expenses, err := s.expenses.ListAll(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load expenses")
	}

	headers := []string{"No", "Tanggal", "Keterangan", "Kategori", "Jumlah"}
	incomeData := export.Dataset{Headers: headers}
	var incomeTotal int64
	for i, record := range incomes {
		description := record.Description
		if record.StudentName != nil {
			description = fmt.Sprintf("%s (%s)", description, *record.StudentName)
		}
		incomeData.Rows = append(incomeData.Rows, map[string]string{
			"No":         fmt.Sprintf("%d", i+1),
			"Tanggal":    record.Date.Format(displayDate),
			"Keterangan": description,
			"Kategori":   record.Category,
			"Jumlah":     export.FormatAmount(record.Amount),
		})
		incomeTotal += record.Amount
	}
	incomeData.Totals = map[string]string{"Keterangan": "Total Pemasukan", "Jumlah": export.FormatAmount(incomeTotal)}

	expenseData := export.Dataset{Headers: headers}
	var expenseTotal int64
	for i, record := range expenses {
		expenseData.Rows = append(expenseData.Rows, map[string]string{
			"No":         fmt.Sprintf("%d", i+1),
			"Tanggal":    record.Date.Format(displayDate),
			"Keterangan": record.Description,
			"Kategori":   record.Category,
			"Jumlah":     export.FormatAmount(record.Amount),
		})
		expenseTotal += record.Amount
	}
	expenseData.Totals = map[string]string{"Keterangan": "Total Pengeluaran", "Jumlah": export.FormatAmount(expenseTotal)}

	doc := export.Document{
		Title:    "Laporan Keuangan",
		Subtitle: s.cfg.SchoolName,
		Period:   fmt.Sprintf("%s - %s", from.Format(displayDate), to.Format(displayDate)),
		Sections: []export.Section{
			{Title: "Pemasukan", Data: incomeData},
			{Title: "Pengeluaran", Data: expenseData},
		},
		Summary: [][2]string{
			{"Total Pemasukan", export.FormatAmount(incomeTotal)},
			{"Total Pengeluaran", export.FormatAmount(expenseTotal)},
			{"Saldo", export.FormatAmount(incomeTotal - expenseTotal)},
		},
		Signature: s.signature(),
	}
	name := fmt.Sprintf("laporan-keuangan_%s_%s", from.Format("20060102"), to.Format("20060102"))
	return s.render(doc, format, name)
}

// Bills renders the bill roster with each bill's display status and a total row.
func (s *ReportService) Bills(ctx context.Context, req BillReportRequest) (*dto.ReportFile, error) {
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return nil, err
	}
	status := models.BillStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	switch status {
	case "", models.BillStatusPaid, models.BillStatusUnpaid, models.BillStatusOverdue:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be UNPAID, PAID or OVERDUE")
	}

	today := models.DateOnly(s.now().In(s.cfg.Location))
	bills, err := s.bills.ListAll(ctx, models.BillFilter{Status: status, ClassID: req.ClassID, Today: today})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load bills")
	}

	data := export.Dataset{Headers: []string{"No", "Siswa", "Kelas", "Keterangan", "Jatuh Tempo", "Status", "Jumlah"}}
	var total int64
	for i, bill := range bills {
		data.Rows = append(data.Rows, map[string]string{
			"No":          fmt.Sprintf("%d", i+1),
			"Siswa":       bill.StudentName,
			"Kelas":       bill.ClassName,
			"Keterangan":  bill.Description,
			"Jatuh Tempo": bill.DueDate.Format(displayDate),
			"Status":      string(bill.Bill.DisplayStatus(today)),
			"Jumlah":      export.FormatAmount(bill.Amount),
		})
		total += bill.Amount
	}
	data.Totals = map[string]string{"Status": "Total", "Jumlah": export.FormatAmount(total)}

	title := "Daftar Tagihan"
	if status != "" {
		title = fmt.Sprintf("%s %s", title, status)
	}
	doc := export.Document{
		Title:     title,
		Subtitle:  s.cfg.SchoolName,
		Period:    "Per " + today.Format(displayDate),
		Sections:  []export.Section{{Data: data}},
		Signature: s.signature(),
	}
	return s.render(doc, format, "daftar-tagihan_"+today.Format("20060102"))
}

func (s *ReportService) signature() *export.Signature {
	var signatories []export.Signatory
	if s.cfg.TreasurerName != "" {
		signatories = append(signatories, export.Signatory{Role: "Bendahara", Name: s.cfg.TreasurerName})
	}
	if s.cfg.PrincipalName != "" {
		signatories = append(signatories, export.Signatory{Role: "Kepala Sekolah", Name: s.cfg.PrincipalName})
	}
	if len(signatories) == 0 {
		return nil
	}
	today := s.now().In(s.cfg.Location)
	return &export.Signature{
		Place:       s.cfg.City,
		Date:        fmt.Sprintf("%d %s", today.Day(), MonthLabel(today)),
		Signatories: signatories,
	}
}

func (s *ReportService) render(doc export.Document, format dto.ReportFormat, name string) (*dto.ReportFile, error) {
	renderer, contentType := s.csv, "text/csv"
	if format == dto.ReportFormatPDF {
		renderer, contentType = s.pdf, "application/pdf"
	}
	body, err := renderer.Render(doc)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render report")
	}
	s.logger.Debug("report rendered", zap.String("name", name), zap.String("format", string(format)), zap.Int("bytes", len(body)))
	return &dto.ReportFile{
		Filename:    fmt.Sprintf("%s.%s", name, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func normalizeFormat(format dto.ReportFormat) (dto.ReportFormat, error) {
	switch dto.ReportFormat(strings.ToLower(string(format))) {
	case "", dto.ReportFormatCSV:
		return dto.ReportFormatCSV, nil
	case dto.ReportFormatPDF:
		return dto.ReportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
