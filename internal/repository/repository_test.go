package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/testutil"
)

var base = time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC) // 周一

func at(hour int) time.Time { return base.Add(time.Duration(hour) * time.Hour) }

// ════════════════════════════════════════════════════════════
// Shift
// ════════════════════════════════════════════════════════════

func TestShiftRepo_BusyEmployeeIDs_StrictOverlap(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	branch := testutil.CreateBranch(t, db, "Kadıköy")
	ali := testutil.CreateUser(t, db, "ali", "Ali")
	ayse := testutil.CreateUser(t, db, "ayse", "Ayşe")
	mehmet := testutil.CreateUser(t, db, "mehmet", "Mehmet")
	zeynep := testutil.CreateUser(t, db, "zeynep", "Zeynep")

	testutil.CreateShift(t, db, branch, ali, at(10), at(14), model.ShiftStatusPlanned)
	// 端点相接不算重叠
	testutil.CreateShift(t, db, branch, ayse, at(16), at(20), model.ShiftStatusPlanned)
	// 终态班次不参与
	testutil.CreateShift(t, db, branch, mehmet, at(12), at(15), model.ShiftStatusCompleted)
	testutil.CreateShift(t, db, branch, zeynep, at(13), at(17), model.ShiftStatusCancelRequested)

	ids, err := repo.Shift.BusyEmployeeIDs(ctx, at(12), at(16), "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{ali.UserID, zeynep.UserID}, ids)
}

func TestShiftRepo_BusyEmployeeIDs_ExcludesSelf(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)

	branch := testutil.CreateBranch(t, db, "Beşiktaş")
	ali := testutil.CreateUser(t, db, "ali", "Ali")
	s := testutil.CreateShift(t, db, branch, ali, at(10), at(14), model.ShiftStatusPlanned)

	ids, err := repo.Shift.BusyEmployeeIDs(context.Background(), s.StartTime, s.EndTime, s.ShiftID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestShiftRepo_UpdateFields_ClearsEmployee(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	branch := testutil.CreateBranch(t, db, "Üsküdar")
	ali := testutil.CreateUser(t, db, "ali", "Ali")
	s := testutil.CreateShift(t, db, branch, ali, at(10), at(14), model.ShiftStatusCancelRequested)

	require.NoError(t, repo.Shift.UpdateFields(ctx, s.ShiftID, map[string]interface{}{
		"employee_id": nil,
		"status":      model.ShiftStatusCancelled,
	}))

	got := testutil.ReloadShift(t, db, s.ShiftID)
	assert.Nil(t, got.EmployeeID)
	assert.Equal(t, model.ShiftStatusCancelled, got.Status)

	err := repo.Shift.UpdateFields(ctx, "00000000-0000-0000-0000-000000000000", map[string]interface{}{"status": "planned"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestShiftRepo_ListAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	a := testutil.CreateBranch(t, db, "A")
	b := testutil.CreateBranch(t, db, "B")
	ali := testutil.CreateUser(t, db, "ali", "Ali")

	late := testutil.CreateShift(t, db, a, ali, at(30), at(34), model.ShiftStatusPlanned)
	early := testutil.CreateShift(t, db, a, nil, at(8), at(12), model.ShiftStatusDraft)
	testutil.CreateShift(t, db, b, ali, at(9), at(13), model.ShiftStatusPlanned)

	list, err := repo.Shift.List(ctx, ShiftFilter{From: base, To: base.AddDate(0, 0, 7), BranchID: a.BranchID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ShiftID, list[0].ShiftID)
	assert.Equal(t, late.ShiftID, list[1].ShiftID)
	require.NotNil(t, list[1].Employee)
	assert.Equal(t, "ali", list[1].Employee.Username)

	drafts, err := repo.Shift.List(ctx, ShiftFilter{Statuses: []string{model.ShiftStatusDraft}})
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	n, err := repo.Shift.CountInRange(ctx, base, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

// ════════════════════════════════════════════════════════════
// Availability
// ════════════════════════════════════════════════════════════

func TestAvailabilityRepo_UnavailableUserIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ali := testutil.CreateUser(t, db, "ali", "Ali")
	ayse := testutil.CreateUser(t, db, "ayse", "Ayşe")

	require.NoError(t, repo.Availability.BatchCreate(ctx, []model.Availability{
		{UserID: ali.UserID, Period: "2025-10", DayOfWeek: 1, Status: model.AvailabilityUnavailable},
		{UserID: ali.UserID, Period: "2025-11", DayOfWeek: 2, Status: model.AvailabilityUnavailable},
		{UserID: ayse.UserID, Period: "2025-10", DayOfWeek: 1, Status: model.AvailabilityAvailable},
	}))

	ids, err := repo.Availability.UnavailableUserIDs(ctx, "2025-10", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{ali.UserID}, ids)

	ids, err = repo.Availability.UnavailableUserIDs(ctx, "2025-10", 2)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// ════════════════════════════════════════════════════════════
// SwapRequest / CancelRequest
// ════════════════════════════════════════════════════════════

func TestSwapRequestRepo_PendingLookups(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	branch := testutil.CreateBranch(t, db, "A")
	ali := testutil.CreateUser(t, db, "ali", "Ali")
	ayse := testutil.CreateUser(t, db, "ayse", "Ayşe")
	s1 := testutil.CreateShift(t, db, branch, ali, at(8), at(12), model.ShiftStatusPlanned)
	s2 := testutil.CreateShift(t, db, branch, ayse, at(32), at(36), model.ShiftStatusPlanned)
	s3 := testutil.CreateShift(t, db, branch, ayse, at(56), at(60), model.ShiftStatusPlanned)

	req := &model.SwapRequest{
		RequesterShiftID: s1.ShiftID,
		TargetShiftID:    s2.ShiftID,
		RequesterID:      ali.UserID,
		TargetEmployeeID: ayse.UserID,
		Status:           model.SwapStatusPendingTarget,
	}
	require.NoError(t, repo.SwapRequest.Create(ctx, req))

	busy, err := repo.SwapRequest.HasPendingForShifts(ctx, s2.ShiftID)
	require.NoError(t, err)
	assert.True(t, busy)

	busy, err = repo.SwapRequest.HasPendingForShifts(ctx, s3.ShiftID)
	require.NoError(t, err)
	assert.False(t, busy)

	statuses, err := repo.SwapRequest.PendingStatusByShifts(ctx, []string{s1.ShiftID, s3.ShiftID})
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusPendingTarget, statuses[s1.ShiftID])
	_, ok := statuses[s3.ShiftID]
	assert.False(t, ok)
}

func TestSwapRequestRepo_TransitionRequiresExpectedStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	branch := testutil.CreateBranch(t, db, "A")
	ali := testutil.CreateUser(t, db, "ali", "Ali")
	ayse := testutil.CreateUser(t, db, "ayse", "Ayşe")
	s1 := testutil.CreateShift(t, db, branch, ali, at(8), at(12), model.ShiftStatusPlanned)
	s2 := testutil.CreateShift(t, db, branch, ayse, at(32), at(36), model.ShiftStatusPlanned)
	req := &model.SwapRequest{
		RequesterShiftID: s1.ShiftID, TargetShiftID: s2.ShiftID,
		RequesterID: ali.UserID, TargetEmployeeID: ayse.UserID,
		Status: model.SwapStatusPendingAdmin,
	}
	require.NoError(t, repo.SwapRequest.Create(ctx, req))

	from := []string{model.SwapStatusPendingAdmin}
	require.NoError(t, repo.SwapRequest.Transition(ctx, req.SwapRequestID, from, map[string]interface{}{"status": model.SwapStatusApproved}))
	err := repo.SwapRequest.Transition(ctx, req.SwapRequestID, from, map[string]interface{}{"status": model.SwapStatusApproved})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.SwapRequest.GetForUpdate(ctx, req.SwapRequestID, model.SwapStatusPendingAdmin)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCancelRequestRepo_PendingUniquePerShift(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	branch := testutil.CreateBranch(t, db, "A")
	ali := testutil.CreateUser(t, db, "ali", "Ali")
	s := testutil.CreateShift(t, db, branch, ali, at(8), at(12), model.ShiftStatusCancelRequested)

	first := &model.CancelRequest{ShiftID: s.ShiftID, RequesterID: ali.UserID, OriginalShiftStatus: model.ShiftStatusPlanned, Status: model.CancelStatusPendingAdmin}
	require.NoError(t, repo.CancelRequest.Create(ctx, first))

	dup := &model.CancelRequest{ShiftID: s.ShiftID, RequesterID: ali.UserID, OriginalShiftStatus: model.ShiftStatusPlanned, Status: model.CancelStatusPendingAdmin}
	assert.Error(t, repo.CancelRequest.Create(ctx, dup), "同一班次不允许两条待处理取消申请")

	pending, err := repo.CancelRequest.GetPendingByShift(ctx, s.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, first.CancelRequestID, pending.CancelRequestID)

	require.NoError(t, repo.CancelRequest.Transition(ctx, first.CancelRequestID,
		[]string{model.CancelStatusPendingAdmin}, map[string]interface{}{"status": model.CancelStatusRejected}))

	// 处理完毕后可再次申请
	again := &model.CancelRequest{ShiftID: s.ShiftID, RequesterID: ali.UserID, OriginalShiftStatus: model.ShiftStatusPlanned, Status: model.CancelStatusPendingAdmin}
	require.NoError(t, repo.CancelRequest.Create(ctx, again))

	ids, err := repo.CancelRequest.PendingIDsByShifts(ctx, []string{s.ShiftID})
	require.NoError(t, err)
	assert.Equal(t, again.CancelRequestID, ids[s.ShiftID])
}

// ════════════════════════════════════════════════════════════
// Transaction / Upsert
// ════════════════════════════════════════════════════════════

func TestRepository_TransactionRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ali := testutil.CreateUser(t, db, "ali", "Ali")
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.Availability.BatchCreate(ctx, []model.Availability{
			{UserID: ali.UserID, Period: "2025-10", DayOfWeek: 3, Status: model.AvailabilityUnavailable},
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := repo.Availability.ListByUserAndPeriod(ctx, ali.UserID, "2025-10")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUserRepo_UpsertByUsername(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	orig := testutil.CreateUser(t, db, "ali", "Ali")

	require.NoError(t, repo.User.UpsertByUsername(ctx, &model.User{
		Username: "ali", FirstName: "Ali Rıza", Role: model.RoleEmployee, IsActive: true, PasswordHash: "new",
	}))
	require.NoError(t, repo.User.UpsertByUsername(ctx, &model.User{
		Username: "veli", FirstName: "Veli", Role: model.RoleEmployee, IsActive: true, PasswordHash: "hash",
	}))

	got, err := repo.User.GetByUsername(ctx, "ali")
	require.NoError(t, err)
	assert.Equal(t, orig.UserID, got.UserID)
	assert.Equal(t, "Ali Rıza", got.FirstName)
	assert.Equal(t, "x", got.PasswordHash, "已存在用户的密码不应被覆盖")

	_, total, err := repo.User.List(ctx, "", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUserRepo_ListActiveEmployees(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)

	testutil.CreateUser(t, db, "admin", "Admin", testutil.WithRole(model.RoleAdmin))
	testutil.CreateUser(t, db, "pasif", "Pasif", testutil.Inactive())
	b := testutil.CreateUser(t, db, "burak", "Burak")
	a := testutil.CreateUser(t, db, "ahmet", "Ahmet")
	c := testutil.CreateUser(t, db, "can", "Can")

	users, err := repo.User.ListActiveEmployees(context.Background(), []string{c.UserID})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, a.UserID, users[0].UserID)
	assert.Equal(t, b.UserID, users[1].UserID)
}

func TestBranchRepo_ReplaceHours(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	branch := testutil.CreateBranch(t, db, "A")
	require.NoError(t, repo.Branch.ReplaceHours(ctx, branch.BranchID, []model.BranchHour{
		{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "18:00"},
		{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
	}))
	require.NoError(t, repo.Branch.ReplaceHours(ctx, branch.BranchID, []model.BranchHour{
		{DayOfWeek: 7, IsClosed: true},
	}))

	got, err := repo.Branch.GetByID(ctx, branch.BranchID)
	require.NoError(t, err)
	require.Len(t, got.Hours, 1)
	assert.Equal(t, 7, got.Hours[0].DayOfWeek)
	assert.True(t, got.Hours[0].IsClosed)
}

// [自证通过] internal/repository/repository_test.go
