package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/dto"
	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
	"github.com/noah-isme/tk-admin-api/pkg/export"
)

type reportIncomeStub struct {
	records []models.IncomeDetail
	filter  models.LedgerFilter
}

func (r *reportIncomeStub) ListAll(_ context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, error) {
	r.filter = filter
	return r.records, nil
}

type reportExpenseStub struct {
	records []models.ExpenseRecord
}

func (r *reportExpenseStub) ListAll(context.Context, models.LedgerFilter) ([]models.ExpenseRecord, error) {
	return r.records, nil
}

type reportBillStub struct {
	bills  []models.BillDetail
	filter models.BillFilter
}

func (r *reportBillStub) ListAll(_ context.Context, filter models.BillFilter) ([]models.BillDetail, error) {
	r.filter = filter
	return r.bills, nil
}

type capturingRenderer struct {
	doc export.Document
}

func (c *capturingRenderer) Render(doc export.Document) ([]byte, error) {
	c.doc = doc
	return []byte("rendered"), nil
}

func newReportFixture() (*ReportService, *reportIncomeStub, *reportBillStub) {
	student := "Ani"
	incomes := &reportIncomeStub{records: []models.IncomeDetail{
		{IncomeRecord: models.IncomeRecord{Date: date(2024, time.March, 2), Amount: 150000, Description: "SPP Maret", Category: "SPP"}, StudentName: &student},
		{IncomeRecord: models.IncomeRecord{Date: date(2024, time.March, 9), Amount: 100000, Description: "Uang Buku", Category: "Buku"}},
	}}
	expenses := &reportExpenseStub{records: []models.ExpenseRecord{
		{Date: date(2024, time.March, 4), Amount: 75000, Description: "Kertas gambar", Category: "ATK"},
	}}
	bills := &reportBillStub{bills: []models.BillDetail{
		{Bill: models.Bill{Description: "SPP Maret 2024", Amount: 150000, DueDate: date(2024, time.March, 10), Status: models.BillStatusUnpaid}, StudentName: "Budi", ClassName: "TK A"},
		{Bill: models.Bill{Description: "SPP Maret 2024", Amount: 150000, DueDate: date(2024, time.March, 10), Status: models.BillStatusPaid}, StudentName: "Ani", ClassName: "TK A"},
	}}
	svc := NewReportService(incomes, expenses, bills, nil, nil, ReportConfig{
		SchoolName:    "TK Harapan Bunda",
		City:          "Bandung",
		TreasurerName: "Bu Sari",
		PrincipalName: "Bu Ratna",
	}, zap.NewNop())
	svc.now = fixedClock(date(2024, time.March, 20))
	return svc, incomes, bills
}

func TestReportFinanceCSV(t *testing.T) {
	svc, incomes, _ := newReportFixture()

	file, err := svc.Finance(context.Background(), FinanceReportRequest{From: "2024-03-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "laporan-keuangan_20240301_20240331.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	body := string(file.Body)
	assert.Contains(t, body, "Laporan Keuangan")
	assert.Contains(t, body, "SPP Maret (Ani)")
	assert.Contains(t, body, "Rp 250.000")
	assert.Contains(t, body, "Rp 75.000")
	assert.Contains(t, body, "Rp 175.000")

	require.NotNil(t, incomes.filter.To)
	assert.Equal(t, date(2024, time.March, 31), *incomes.filter.To)
}

func TestReportFinancePDFUsesRenderer(t *testing.T) {
	svc, _, _ := newReportFixture()
	pdf := &capturingRenderer{}
	svc.pdf = pdf

	file, err := svc.Finance(context.Background(), FinanceReportRequest{From: "2024-03-01", To: "2024-03-31", Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "laporan-keuangan_20240301_20240331.pdf", file.Filename)

	require.Len(t, pdf.doc.Sections, 2)
	assert.Equal(t, "Pemasukan", pdf.doc.Sections[0].Title)
	assert.Equal(t, [2]string{"Saldo", "Rp 175.000"}, pdf.doc.Summary[2])
	require.NotNil(t, pdf.doc.Signature)
	assert.Equal(t, "20 Maret 2024", pdf.doc.Signature.Date)
	assert.Len(t, pdf.doc.Signature.Signatories, 2)
}

func TestReportFinanceValidatesRange(t *testing.T) {
	svc, _, _ := newReportFixture()

	_, err := svc.Finance(context.Background(), FinanceReportRequest{From: "2024-03-31", To: "2024-03-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Finance(context.Background(), FinanceReportRequest{From: "2024-03-01"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Finance(context.Background(), FinanceReportRequest{From: "2024-03-01", To: "2024-03-31", Format: "xlsx"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestReportBillsShowsDisplayStatus(t *testing.T) {
	svc, _, bills := newReportFixture()
	csv := &capturingRenderer{}
	svc.csv = csv

	file, err := svc.Bills(context.Background(), BillReportRequest{Status: "overdue", ClassID: "class-1"})
	require.NoError(t, err)
	assert.Equal(t, "daftar-tagihan_20240320.csv", file.Filename)
	assert.Equal(t, models.BillStatusOverdue, bills.filter.Status)
	assert.Equal(t, date(2024, time.March, 20), bills.filter.Today)

	rows := csv.doc.Sections[0].Data.Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "OVERDUE", rows[0]["Status"])
	assert.Equal(t, "PAID", rows[1]["Status"])
	assert.Equal(t, "Rp 300.000", csv.doc.Sections[0].Data.Totals["Jumlah"])

	_, err = svc.Bills(context.Background(), BillReportRequest{Status: "LATE"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestNormalizeFormatDefaultsToCSV(t *testing.T) {
	format, err := normalizeFormat("")
	require.NoError(t, err)
	assert.Equal(t, dto.ReportFormatCSV, format)
}
