package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tk-admin-api/internal/models"
	appErrors "github.com/noah-isme/tk-admin-api/pkg/errors"
)

func newStudentFixture(t *testing.T) (*StudentService, *memoryStore, models.Class) {
	t.Helper()
	store := newMemoryStore()
	class := store.addClass("TK A")
	svc := NewStudentService(memoryStudents{store}, memoryClasses{store}, store, nil, nil, validator.New(), zap.NewNop(), BillingOptions{})
	svc.now = fixedClock(date(2024, time.March, 5).Add(8 * time.Hour))
	return svc, store, class
}

func studentRequest(number, name, classID string, tuition int64) StudentRequest {
	return StudentRequest{
		RegistrationNumber: number,
		Name:               name,
		Gender:             models.GenderFemale,
		BirthDate:          "2019-06-01",
		GuardianName:       "Ibu " + name,
		TuitionAmount:      tuition,
		ClassID:            classID,
	}
}

func TestStudentCreateIssuesInitialBill(t *testing.T) {
	svc, store, class := newStudentFixture(t)

	student, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "TK A", student.ClassName)

	bills := store.billsOf(student.ID)
	require.Len(t, bills, 1)
	assert.Equal(t, "SPP Maret 2024", bills[0].Description)
	assert.Equal(t, int64(150000), bills[0].Amount)
	assert.Equal(t, date(2024, time.March, 10), bills[0].DueDate)
	assert.Equal(t, models.BillStatusUnpaid, bills[0].Status)
}

func TestStudentCreateRejectsDuplicateRegistration(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	_, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), studentRequest("TK-001", "Budi", class.ID, 150000))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Len(t, store.students, 1)
	assert.Len(t, store.bills, 1)
}

func TestStudentCreateUnknownClass(t *testing.T) {
	svc, store, _ := newStudentFixture(t)

	_, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", "missing", 150000))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Empty(t, store.students)
}

func TestStudentCreateRollsBackWhenBillFails(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	store.failOn = "CreateBill"

	_, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.Error(t, err)
	assert.Empty(t, store.students)
	assert.Empty(t, store.bills)
}

func TestStudentImportSkipsDuplicates(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	_, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)

	result, err := svc.Import(context.Background(), ImportStudentsRequest{Students: []StudentRequest{
		studentRequest("TK-001", "Ani", class.ID, 150000),
		studentRequest("TK-002", "Budi", class.ID, 150000),
		studentRequest("TK-003", "Citra", class.ID, 175000),
		studentRequest("TK-003", "Citra Lagi", class.ID, 175000),
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 2, result.SkippedCount)
	assert.ElementsMatch(t, []string{"TK-001", "TK-003"}, result.Skipped)
	assert.Len(t, store.students, 3)
	assert.Len(t, store.bills, 3)
}

func TestStudentImportRejectsInvalidRow(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	bad := studentRequest("TK-009", "Eko", class.ID, 150000)
	bad.Gender = "X"

	_, err := svc.Import(context.Background(), ImportStudentsRequest{Students: []StudentRequest{
		studentRequest("TK-008", "Dewi", class.ID, 150000),
		bad,
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, store.students)
}

func TestStudentUpdateKeepsExistingBills(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	created, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, studentRequest("TK-001", "Ani Lestari", class.ID, 200000))
	require.NoError(t, err)
	assert.Equal(t, "Ani Lestari", updated.Name)
	assert.Equal(t, int64(200000), store.students[created.ID].TuitionAmount)
	assert.Equal(t, int64(150000), store.billsOf(created.ID)[0].Amount)
}

func TestStudentDeleteCascades(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	payments := NewPaymentService(memoryIncomes{store}, store, nil, nil, validator.New(), zap.NewNop(), BillingOptions{})
	ani, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)
	budi, err := svc.Create(context.Background(), studentRequest("TK-002", "Budi", class.ID, 150000))
	require.NoError(t, err)
	extra := store.addBill(ani.ID, "Uang Buku", 80000, date(2024, time.March, 20))
	_, err = payments.Record(context.Background(), extra.ID, RecordPaymentRequest{Amount: 80000, Description: "Bayar buku"})
	require.NoError(t, err)
	_, err = payments.Record(context.Background(), store.billsOf(budi.ID)[0].ID, RecordPaymentRequest{Amount: 150000, Description: "Bayar SPP"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), ani.ID))
	assert.NotContains(t, store.students, ani.ID)
	assert.Empty(t, store.billsOf(ani.ID))
	require.Len(t, store.incomes, 1)
	for _, record := range store.incomes {
		assert.Equal(t, store.billsOf(budi.ID)[0].ID, record.BillID)
	}

	err = svc.Delete(context.Background(), ani.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestStudentDeleteRollsBackOnFailure(t *testing.T) {
	svc, store, class := newStudentFixture(t)
	ani, err := svc.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)
	store.failOn = "DeleteStudent"

	require.Error(t, svc.Delete(context.Background(), ani.ID))
	assert.Contains(t, store.students, ani.ID)
	assert.Len(t, store.billsOf(ani.ID), 1)
}
