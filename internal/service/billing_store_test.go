package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/tk-admin-api/internal/models"
	"github.com/noah-isme/tk-admin-api/internal/repository"
)

var errInjected = errors.New("injected failure")

// memoryStore is an in-memory stand-in for the billing tables. Do snapshots
// the maps and restores them when the closure fails, like a rollback.
type memoryStore struct {
	classes  map[string]models.Class
	students map[string]models.Student
	bills    map[string]models.Bill
	incomes  map[string]models.IncomeRecord

	seq       int
	failOn    string
	commits   int
	rollbacks int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		classes:  map[string]models.Class{},
		students: map[string]models.Student{},
		bills:    map[string]models.Bill{},
		incomes:  map[string]models.IncomeRecord{},
	}
}

func (m *memoryStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memoryStore) addClass(name string) models.Class {
	class := models.Class{ID: m.nextID("class"), Name: name, TeacherName: "Bu Guru"}
	m.classes[class.ID] = class
	return class
}

func (m *memoryStore) addStudent(classID, name string, tuition int64) models.Student {
	student := models.Student{ID: m.nextID("student"), RegistrationNumber: m.nextID("reg"), Name: name, Gender: models.GenderMale, TuitionAmount: tuition, ClassID: classID}
	m.students[student.ID] = student
	return student
}

func (m *memoryStore) addBill(studentID, description string, amount int64, due time.Time) models.Bill {
	bill := models.Bill{ID: m.nextID("bill"), StudentID: studentID, Description: description, Amount: amount, DueDate: due, Status: models.BillStatusUnpaid}
	m.bills[bill.ID] = bill
	return bill
}

func (m *memoryStore) incomeForBill(billID string) (models.IncomeRecord, bool) {
	for _, record := range m.incomes {
		if record.BillID == billID {
			return record, true
		}
	}
	return models.IncomeRecord{}, false
}

func (m *memoryStore) billsOf(studentID string) []models.Bill {
	var out []models.Bill
	for _, bill := range m.bills {
		if bill.StudentID == studentID {
			out = append(out, bill)
		}
	}
	return out
}

func (m *memoryStore) fail(op string) error {
	if m.failOn == op {
		return errInjected
	}
	return nil
}

func (m *memoryStore) Do(ctx context.Context, fn func(tx repository.BillingTx) error) error {
	snapshot := *m
	snapshot.classes = copyMap(m.classes)
	snapshot.students = copyMap(m.students)
	snapshot.bills = copyMap(m.bills)
	snapshot.incomes = copyMap(m.incomes)

	if err := fn(memoryTx{m}); err != nil {
		m.classes, m.students, m.bills, m.incomes = snapshot.classes, snapshot.students, snapshot.bills, snapshot.incomes
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

func copyMap[V any](in map[string]V) map[string]V {
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type memoryTx struct{ m *memoryStore }

func (t memoryTx) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := t.m.fail("CreateStudent"); err != nil {
		return err
	}
	if student.ID == "" {
		student.ID = t.m.nextID("student")
	}
	t.m.students[student.ID] = *student
	return nil
}

func (t memoryTx) DeleteStudent(ctx context.Context, id string) (int64, error) {
	if err := t.m.fail("DeleteStudent"); err != nil {
		return 0, err
	}
	if _, ok := t.m.students[id]; !ok {
		return 0, nil
	}
	delete(t.m.students, id)
	return 1, nil
}

func (t memoryTx) CreateBill(ctx context.Context, bill *models.Bill) error {
	if err := t.m.fail("CreateBill"); err != nil {
		return err
	}
	if bill.ID == "" {
		bill.ID = t.m.nextID("bill")
	}
	if bill.Status == "" {
		bill.Status = models.BillStatusUnpaid
	}
	t.m.bills[bill.ID] = *bill
	return nil
}

func (t memoryTx) LockBill(ctx context.Context, id string) (*models.Bill, error) {
	bill, ok := t.m.bills[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &bill, nil
}

func (t memoryTx) SetBillStatus(ctx context.Context, id string, status models.BillStatus) error {
	if err := t.m.fail("SetBillStatus"); err != nil {
		return err
	}
	bill := t.m.bills[id]
	bill.Status = status
	t.m.bills[id] = bill
	return nil
}

func (t memoryTx) ListBillIDsByStudent(ctx context.Context, studentID string) ([]string, error) {
	var ids []string
	for _, bill := range t.m.billsOf(studentID) {
		ids = append(ids, bill.ID)
	}
	return ids, nil
}

func (t memoryTx) DeleteBillsByIDs(ctx context.Context, ids []string) (int64, error) {
	if err := t.m.fail("DeleteBillsByIDs"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := t.m.bills[id]; ok {
			delete(t.m.bills, id)
			n++
		}
	}
	return n, nil
}

func (t memoryTx) FindIncomeByBillID(ctx context.Context, billID string) (*models.IncomeRecord, error) {
	record, ok := t.m.incomeForBill(billID)
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &record, nil
}

func (t memoryTx) LockIncome(ctx context.Context, id string) (*models.IncomeRecord, error) {
	record, ok := t.m.incomes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &record, nil
}

func (t memoryTx) CreateIncome(ctx context.Context, record *models.IncomeRecord) error {
	if err := t.m.fail("CreateIncome"); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = t.m.nextID("income")
	}
	t.m.incomes[record.ID] = *record
	return nil
}

func (t memoryTx) DeleteIncome(ctx context.Context, id string) error {
	if err := t.m.fail("DeleteIncome"); err != nil {
		return err
	}
	delete(t.m.incomes, id)
	return nil
}

func (t memoryTx) DeleteIncomesByBillIDs(ctx context.Context, billIDs []string) (int64, error) {
	if err := t.m.fail("DeleteIncomesByBillIDs"); err != nil {
		return 0, err
	}
	wanted := make(map[string]struct{}, len(billIDs))
	for _, id := range billIDs {
		wanted[id] = struct{}{}
	}
	var n int64
	for id, record := range t.m.incomes {
		if _, ok := wanted[record.BillID]; ok {
			delete(t.m.incomes, id)
			n++
		}
	}
	return n, nil
}

// memoryBills serves the read side of bills.
type memoryBills struct{ m *memoryStore }

func (r memoryBills) detail(bill models.Bill) models.BillDetail {
	student := r.m.students[bill.StudentID]
	detail := models.BillDetail{Bill: bill, StudentName: student.Name, ClassID: student.ClassID, ClassName: r.m.classes[student.ClassID].Name}
	if record, ok := r.m.incomeForBill(bill.ID); ok {
		id := record.ID
		detail.IncomeRecordID = &id
	}
	return detail
}

func (r memoryBills) List(ctx context.Context, filter models.BillFilter) ([]models.BillDetail, int, error) {
	var out []models.BillDetail
	for _, bill := range r.m.bills {
		if filter.StudentID != "" && bill.StudentID != filter.StudentID {
			continue
		}
		switch filter.Status {
		case models.BillStatusPaid, models.BillStatusUnpaid:
			if bill.Status != filter.Status {
				continue
			}
		case models.BillStatusOverdue:
			if bill.Status != models.BillStatusUnpaid || !bill.DueDate.Before(models.DateOnly(filter.Today)) {
				continue
			}
		}
		out = append(out, r.detail(bill))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r memoryBills) FindByID(ctx context.Context, id string) (*models.BillDetail, error) {
	bill, ok := r.m.bills[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	detail := r.detail(bill)
	return &detail, nil
}

func (r memoryBills) BilledStudentIDs(ctx context.Context, description string, from, to time.Time, studentIDs []string) (map[string]struct{}, error) {
	candidates := make(map[string]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		candidates[id] = struct{}{}
	}
	billed := map[string]struct{}{}
	for _, bill := range r.m.bills {
		if _, ok := candidates[bill.StudentID]; !ok {
			continue
		}
		if bill.Description == description && !bill.DueDate.Before(from) && bill.DueDate.Before(to) {
			billed[bill.StudentID] = struct{}{}
		}
	}
	return billed, nil
}

func (r memoryBills) Update(ctx context.Context, bill *models.Bill) (int64, error) {
	if _, ok := r.m.bills[bill.ID]; !ok {
		return 0, nil
	}
	if _, paid := r.m.incomeForBill(bill.ID); paid {
		return 0, nil
	}
	r.m.bills[bill.ID] = *bill
	return 1, nil
}

func (r memoryBills) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := r.m.bills[id]; !ok {
		return 0, nil
	}
	if _, paid := r.m.incomeForBill(id); paid {
		return 0, nil
	}
	delete(r.m.bills, id)
	return 1, nil
}

// memoryStudents serves student reads and updates.
type memoryStudents struct{ m *memoryStore }

func (r memoryStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	var out []models.StudentDetail
	for _, student := range r.m.students {
		if filter.ClassID != "" && student.ClassID != filter.ClassID {
			continue
		}
		out = append(out, models.StudentDetail{Student: student, ClassName: r.m.classes[student.ClassID].Name})
	}
	return out, len(out), nil
}

func (r memoryStudents) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, ok := r.m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.StudentDetail{Student: student, ClassName: r.m.classes[student.ClassID].Name}, nil
}

func (r memoryStudents) ListByClass(ctx context.Context, classID string) ([]models.Student, error) {
	var out []models.Student
	for _, student := range r.m.students {
		if classID == "" || student.ClassID == classID {
			out = append(out, student)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memoryStudents) ExistsByRegistrationNumber(ctx context.Context, number string, excludeID string) (bool, error) {
	for _, student := range r.m.students {
		if student.RegistrationNumber == number && student.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryStudents) ExistingRegistrationNumbers(ctx context.Context, numbers []string) (map[string]struct{}, error) {
	found := map[string]struct{}{}
	for _, number := range numbers {
		if exists, _ := r.ExistsByRegistrationNumber(ctx, number, ""); exists {
			found[number] = struct{}{}
		}
	}
	return found, nil
}

func (r memoryStudents) Update(ctx context.Context, student *models.Student) error {
	r.m.students[student.ID] = *student
	return nil
}

// memoryClasses implements the class repository over the same store.
type memoryClasses struct{ m *memoryStore }

func (r memoryClasses) count(id string) int {
	n := 0
	for _, student := range r.m.students {
		if student.ClassID == id {
			n++
		}
	}
	return n
}

func (r memoryClasses) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, int, error) {
	var out []models.ClassDetail
	for _, class := range r.m.classes {
		if filter.Search != "" && !strings.Contains(strings.ToLower(class.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, models.ClassDetail{Class: class, StudentCount: r.count(class.ID)})
	}
	return out, len(out), nil
}

func (r memoryClasses) FindByID(ctx context.Context, id string) (*models.Class, error) {
	class, ok := r.m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &class, nil
}

func (r memoryClasses) FindDetailByID(ctx context.Context, id string) (*models.ClassDetail, error) {
	class, ok := r.m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.ClassDetail{Class: class, StudentCount: r.count(id)}, nil
}

func (r memoryClasses) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	for _, class := range r.m.classes {
		if strings.EqualFold(class.Name, name) && class.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryClasses) Create(ctx context.Context, class *models.Class) error {
	class.ID = r.m.nextID("class")
	r.m.classes[class.ID] = *class
	return nil
}

func (r memoryClasses) Update(ctx context.Context, class *models.Class) error {
	r.m.classes[class.ID] = *class
	return nil
}

func (r memoryClasses) Delete(ctx context.Context, id string) error {
	delete(r.m.classes, id)
	return nil
}

func (r memoryClasses) CountStudents(ctx context.Context, classID string) (int, error) {
	return r.count(classID), nil
}

// memoryIncomes serves income reads.
type memoryIncomes struct{ m *memoryStore }

func (r memoryIncomes) List(ctx context.Context, filter models.LedgerFilter) ([]models.IncomeDetail, int, error) {
	var out []models.IncomeDetail
	for _, record := range r.m.incomes {
		out = append(out, models.IncomeDetail{IncomeRecord: record})
	}
	return out, len(out), nil
}

func (r memoryIncomes) FindByID(ctx context.Context, id string) (*models.IncomeDetail, error) {
	record, ok := r.m.incomes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.IncomeDetail{IncomeRecord: record}, nil
}

type recordingInvalidator struct {
	patterns []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, pattern string) {
	r.patterns = append(r.patterns, pattern)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
