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

func TestClassServiceCreateRejectsDuplicateName(t *testing.T) {
	store := newMemoryStore()
	svc := NewClassService(memoryClasses{store}, nil, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), ClassRequest{Name: "TK A", TeacherName: "Bu Sari"})
	require.NoError(t, err)
	assert.NotEmpty(t, class.ID)

	_, err = svc.Create(context.Background(), ClassRequest{Name: "tk a", TeacherName: "Bu Rina"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Update(context.Background(), class.ID, ClassRequest{Name: "TK A", TeacherName: "Bu Rina"})
	require.NoError(t, err)
}

func TestClassServiceDeleteGuardsEnrolledStudents(t *testing.T) {
	store := newMemoryStore()
	classes := NewClassService(memoryClasses{store}, nil, validator.New(), zap.NewNop())
	students := NewStudentService(memoryStudents{store}, memoryClasses{store}, store, nil, nil, validator.New(), zap.NewNop(), BillingOptions{})
	students.now = fixedClock(date(2024, time.March, 5))

	class, err := classes.Create(context.Background(), ClassRequest{Name: "TK B", TeacherName: "Bu Sari"})
	require.NoError(t, err)
	ani, err := students.Create(context.Background(), studentRequest("TK-001", "Ani", class.ID, 150000))
	require.NoError(t, err)
	budi, err := students.Create(context.Background(), studentRequest("TK-002", "Budi", class.ID, 150000))
	require.NoError(t, err)

	detail, err := classes.Get(context.Background(), class.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.StudentCount)

	err = classes.Delete(context.Background(), class.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrBusinessRule)
	assert.Contains(t, store.classes, class.ID)

	require.NoError(t, students.Delete(context.Background(), ani.ID))
	require.NoError(t, students.Delete(context.Background(), budi.ID))
	require.NoError(t, classes.Delete(context.Background(), class.ID))
	assert.NotContains(t, store.classes, class.ID)

	err = classes.Delete(context.Background(), class.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestClassServiceListReportsStudentCount(t *testing.T) {
	store := newMemoryStore()
	class := store.addClass("TK A")
	store.addStudent(class.ID, "Ani", 150000)
	svc := NewClassService(memoryClasses{store}, nil, validator.New(), zap.NewNop())

	classes, pagination, err := svc.List(context.Background(), models.ClassFilter{})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, 1, classes[0].StudentCount)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestClassServiceInvalidatesDashboardOnWrites(t *testing.T) {
	store := newMemoryStore()
	cache := &recordingInvalidator{}
	svc := NewClassService(memoryClasses{store}, cache, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), ClassRequest{Name: "TK A", TeacherName: "Bu Sari"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dash:*"}, cache.patterns)

	_, err = svc.Create(context.Background(), ClassRequest{Name: "TK A", TeacherName: "Bu Rina"})
	require.Error(t, err)
	assert.Len(t, cache.patterns, 1)

	_, err = svc.Update(context.Background(), class.ID, ClassRequest{Name: "TK A1", TeacherName: "Bu Sari"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), class.ID))
	assert.Equal(t, []string{"dash:*", "dash:*", "dash:*"}, cache.patterns)

	err = svc.Delete(context.Background(), class.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Len(t, cache.patterns, 3)
}
