package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/testutil"
	pkgerrors "github.com/tahakubilay/deneme/pkg/errors"
)

func newTestShiftService(env *testEnv, now time.Time) *shiftService {
	gen := NewDraftPlanGenerator(env.repo, testLoc, env.log)
	svc := NewShiftService(env.repo, gen, testLoc, 15*time.Minute, env.log).(*shiftService)
	svc.now = fixedClock(now)
	return svc
}

// ── 签到 ──

func TestShiftService_CheckIn_Success(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(8*time.Hour), model.ShiftStatusPlanned)

	before := testutil.ReloadShift(t, env.db, shift.ShiftID)
	assert.Nil(t, before.ActualStartTime)
	assert.Nil(t, before.ActualEndTime)

	// 开始前 15 分钟整允许签到
	svc := newTestShiftService(env, start.Add(-15*time.Minute))
	resp, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusStarted, resp.Shift.Status)
	assert.Nil(t, resp.WorkedHours)

	after := testutil.ReloadShift(t, env.db, shift.ShiftID)
	require.NotNil(t, after.ActualStartTime)
	assert.True(t, after.ActualStartTime.Equal(start.Add(-15*time.Minute)))
	assert.Nil(t, after.ActualEndTime)
}

func TestShiftService_CheckIn_FromDraft(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), model.ShiftStatusDraft)

	svc := newTestShiftService(env, start)
	_, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusStarted, testutil.ReloadShift(t, env.db, shift.ShiftID).Status)
}

func TestShiftService_CheckIn_TooEarly(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), model.ShiftStatusPlanned)

	svc := newTestShiftService(env, start.Add(-16*time.Minute))
	_, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	assert.ErrorIs(t, err, ErrCheckInTooEarly)
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidState)

	after := testutil.ReloadShift(t, env.db, shift.ShiftID)
	assert.Equal(t, model.ShiftStatusPlanned, after.Status)
	assert.Nil(t, after.ActualStartTime)
}

func TestShiftService_CheckIn_CompletedShift(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), model.ShiftStatusCompleted)

	svc := newTestShiftService(env, start)
	_, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidState)
}

func TestShiftService_CheckIn_TokenMismatch(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	other := testutil.CreateBranch(t, env.db, "Besiktas")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), model.ShiftStatusPlanned)

	// 口令错误先于时间窗口与状态被拒绝
	for _, now := range []time.Time{start, start.Add(-24 * time.Hour)} {
		svc := newTestShiftService(env, now)
		_, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, other.QRToken())
		assert.ErrorIs(t, err, ErrQRTokenMismatch)
	}

	done := testutil.CreateShift(t, env.db, branch, x, start.Add(-48*time.Hour), start.Add(-44*time.Hour), model.ShiftStatusCompleted)
	svc := newTestShiftService(env, start)
	_, err := svc.CheckIn(context.Background(), done.ShiftID, x.UserID, "garbage")
	assert.ErrorIs(t, err, ErrQRTokenMismatch)
}

func TestShiftService_CheckIn_NotOwner(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	y := testutil.CreateUser(t, env.db, "y", "Veli")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), model.ShiftStatusPlanned)

	svc := newTestShiftService(env, start)
	_, err := svc.CheckIn(context.Background(), shift.ShiftID, y.UserID, branch.QRToken())
	assert.ErrorIs(t, err, ErrShiftNotFound)

	_, err = svc.CheckIn(context.Background(), "5b0c8a36-0000-4000-8000-000000000000", x.UserID, branch.QRToken())
	assert.ErrorIs(t, err, pkgerrors.ErrNotFound)
}

// ── 签退 ──

func TestShiftService_CheckOut_WorkedHours(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(8*time.Hour), model.ShiftStatusPlanned)

	svc := newTestShiftService(env, start.Add(-5*time.Minute))
	_, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	require.NoError(t, err)

	// 8 小时 10 分钟 → 8.17
	svc.now = fixedClock(start.Add(8*time.Hour + 5*time.Minute))
	resp, err := svc.CheckOut(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCompleted, resp.Shift.Status)
	require.NotNil(t, resp.WorkedHours)
	assert.Equal(t, "8.17", resp.WorkedHours.StringFixed(2))

	after := testutil.ReloadShift(t, env.db, shift.ShiftID)
	require.NotNil(t, after.ActualStartTime)
	require.NotNil(t, after.ActualEndTime)
	assert.False(t, after.ActualEndTime.Before(*after.ActualStartTime))
}

func TestShiftService_CheckOut_ClockBehindStart(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(8*time.Hour), model.ShiftStatusPlanned)

	svc := newTestShiftService(env, start)
	_, err := svc.CheckIn(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	require.NoError(t, err)

	svc.now = fixedClock(start.Add(-time.Minute))
	resp, err := svc.CheckOut(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	require.NoError(t, err)
	assert.True(t, resp.WorkedHours.IsZero())

	after := testutil.ReloadShift(t, env.db, shift.ShiftID)
	assert.True(t, after.ActualEndTime.Equal(*after.ActualStartTime))
}

func TestShiftService_CheckOut_NotStarted(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(8*time.Hour), model.ShiftStatusPlanned)

	svc := newTestShiftService(env, start.Add(time.Hour))
	_, err := svc.CheckOut(context.Background(), shift.ShiftID, x.UserID, branch.QRToken())
	assert.ErrorIs(t, err, ErrCheckOutNotAllowed)
	assert.Nil(t, testutil.ReloadShift(t, env.db, shift.ShiftID).ActualEndTime)
}

// ── 查询 ──

func TestShiftService_ListMyUpcoming(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	y := testutil.CreateUser(t, env.db, "y", "Veli")
	now := at(2025, 10, 6, 12, 0)

	later := testutil.CreateShift(t, env.db, branch, x, now.Add(48*time.Hour), now.Add(52*time.Hour), model.ShiftStatusPlanned)
	sooner := testutil.CreateShift(t, env.db, branch, x, now.Add(24*time.Hour), now.Add(28*time.Hour), model.ShiftStatusCancelRequested)
	testutil.CreateShift(t, env.db, branch, x, now.Add(-24*time.Hour), now.Add(-20*time.Hour), model.ShiftStatusPlanned)
	testutil.CreateShift(t, env.db, branch, x, now.Add(72*time.Hour), now.Add(76*time.Hour), model.ShiftStatusCancelled)
	testutil.CreateShift(t, env.db, branch, y, now.Add(24*time.Hour), now.Add(28*time.Hour), model.ShiftStatusPlanned)

	svc := newTestShiftService(env, now)
	list, err := svc.ListMyUpcoming(context.Background(), x.UserID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sooner.ShiftID, list[0].ID)
	assert.Equal(t, later.ShiftID, list[1].ID)
	assert.Equal(t, "Kadikoy", list[0].BranchName)
	require.NotNil(t, list[0].Employee)
	assert.Equal(t, "Ali Test", list[0].Employee.FullName)
}

func TestShiftService_Get_AnnotatesPendingCancellation(t *testing.T) {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	start := at(2025, 10, 6, 9, 0)
	shift := testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), model.ShiftStatusPlanned)

	cancelSvc := NewCancelService(env.repo, testLoc, env.log)
	req, err := cancelSvc.Request(context.Background(), shift.ShiftID, x.UserID)
	require.NoError(t, err)

	svc := newTestShiftService(env, start)
	view, err := svc.Get(context.Background(), shift.ShiftID)
	require.NoError(t, err)
	require.NotNil(t, view.CancelRequestID)
	assert.Equal(t, req.ID, *view.CancelRequestID)
	assert.Nil(t, view.ActiveSwapStatus)
	assert.Equal(t, start.Format(time.RFC3339), view.StartTime)
}

func TestShiftService_List_ByPeriodAndBranch(t *testing.T) {
	env := newTestEnv(t)
	a := testutil.CreateBranch(t, env.db, "A")
	b := testutil.CreateBranch(t, env.db, "B")
	// 10 月 1 日 00:30 (UTC+3) 在 UTC 下仍属 9 月 30 日，但按业务时区计入 10 月
	edge := at(2025, 10, 1, 0, 30)
	inA := testutil.CreateShift(t, env.db, a, nil, edge, edge.Add(time.Hour), model.ShiftStatusDraft)
	testutil.CreateShift(t, env.db, b, nil, edge, edge.Add(time.Hour), model.ShiftStatusDraft)
	testutil.CreateShift(t, env.db, a, nil, at(2025, 11, 1, 0, 30), at(2025, 11, 1, 1, 30), model.ShiftStatusDraft)

	svc := newTestShiftService(env, edge)
	list, err := svc.List(context.Background(), "2025-10", a.BranchID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inA.ShiftID, list[0].ID)

	_, err = svc.List(context.Background(), "2025-13", "")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

// ── 排班生成 ──

func TestShiftService_GeneratePlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	require.NoError(t, env.repo.Branch.ReplaceHours(ctx, branch.BranchID, []model.BranchHour{
		{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
		{DayOfWeek: 2, IsClosed: true},
	}))
	closed := testutil.CreateBranch(t, env.db, "Closed")
	require.NoError(t, env.repo.Branch.ReplaceHours(ctx, closed.BranchID, []model.BranchHour{
		{DayOfWeek: 1, OpenTime: "08:00", CloseTime: "12:00"},
	}))
	require.NoError(t, env.repo.Branch.Delete(ctx, closed.BranchID))

	svc := newTestShiftService(env, at(2025, 9, 20, 12, 0))
	resp, err := svc.GeneratePlan(ctx, "2025-10")
	require.NoError(t, err)
	// 2025 年 10 月共有 4 个周一
	assert.Equal(t, 4, resp.Created)

	drafts, err := svc.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 4)
	assert.Equal(t, at(2025, 10, 6, 9, 0).Format(time.RFC3339), drafts[0].StartTime)
	assert.Equal(t, at(2025, 10, 6, 17, 0).Format(time.RFC3339), drafts[0].EndTime)
	assert.Nil(t, drafts[0].Employee)

	_, err = svc.GeneratePlan(ctx, "2025-10")
	assert.ErrorIs(t, err, ErrPeriodAlreadyPlanned)
	assert.ErrorIs(t, err, pkgerrors.ErrConflict)
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) (int, error) {
	return 0, errors.New("solver crashed")
}

func TestShiftService_GeneratePlan_GeneratorFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShiftService(env.repo, failingGenerator{}, testLoc, 15*time.Minute, env.log)

	_, err := svc.GeneratePlan(context.Background(), "2025-10")
	require.Error(t, err)
	assert.Nil(t, pkgerrors.KindOf(err))

	_, err = svc.GeneratePlan(context.Background(), "oct")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

// [自证通过] internal/service/shift_service_test.go
