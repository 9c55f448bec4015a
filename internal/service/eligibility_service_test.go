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
)

func eligibleIDs(list []dto.EmployeeSummary) []string {
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestEligibilityService_ExcludesOverlapping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	busy := testutil.CreateUser(t, env.db, "busy", "Burak")
	free := testutil.CreateUser(t, env.db, "free", "Ceren")

	day := func(h int) time.Time { return at(2025, 10, 6, h, 0) }
	testutil.CreateShift(t, env.db, branch, busy, day(10), day(14), model.ShiftStatusPlanned)
	testutil.CreateShift(t, env.db, branch, busy, day(13), day(17), model.ShiftStatusPlanned)
	target := testutil.CreateShift(t, env.db, branch, nil, day(12), day(16), model.ShiftStatusDraft)

	svc := NewEligibilityService(env.repo, testLoc, env.log)
	list, err := svc.FindEligibleEmployees(ctx, target.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, []string{free.UserID}, eligibleIDs(list))
}

func TestEligibilityService_BoundaryAndTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	adjacent := testutil.CreateUser(t, env.db, "adjacent", "Ayse")
	cancelled := testutil.CreateUser(t, env.db, "cancelled", "Deniz")

	day := func(h int) time.Time { return at(2025, 10, 6, h, 0) }
	// 首尾相接不算重叠
	testutil.CreateShift(t, env.db, branch, adjacent, day(8), day(12), model.ShiftStatusPlanned)
	testutil.CreateShift(t, env.db, branch, adjacent, day(16), day(20), model.ShiftStatusPlanned)
	// 终态班次不参与冲突检测
	testutil.CreateShift(t, env.db, branch, cancelled, day(12), day(16), model.ShiftStatusCancelled)
	target := testutil.CreateShift(t, env.db, branch, nil, day(12), day(16), model.ShiftStatusDraft)

	svc := NewEligibilityService(env.repo, testLoc, env.log)
	list, err := svc.FindEligibleEmployees(ctx, target.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, []string{adjacent.UserID, cancelled.UserID}, eligibleIDs(list))
}

func TestEligibilityService_Filters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	assignee := testutil.CreateUser(t, env.db, "assignee", "Ahmet")
	off := testutil.CreateUser(t, env.db, "off", "Bora")
	otherDay := testutil.CreateUser(t, env.db, "otherday", "Cem")
	zeynep := testutil.CreateUser(t, env.db, "zeynep", "Zeynep")
	testutil.CreateUser(t, env.db, "boss", "Emre", testutil.WithRole(model.RoleAdmin))
	testutil.CreateUser(t, env.db, "left", "Fatma", testutil.Inactive())

	// 2025-10-06 为周一
	start := at(2025, 10, 6, 9, 0)
	target := testutil.CreateShift(t, env.db, branch, assignee, start, start.Add(4*time.Hour), model.ShiftStatusPlanned)

	avail := NewAvailabilityService(env.repo, env.log)
	_, err := avail.Replace(ctx, off.UserID, "2025-10", []dto.AvailabilityItem{
		{DayOfWeek: 1, Status: model.AvailabilityUnavailable},
	})
	require.NoError(t, err)
	_, err = avail.Replace(ctx, otherDay.UserID, "2025-10", []dto.AvailabilityItem{
		{DayOfWeek: 1, Status: model.AvailabilityAvailable},
		{DayOfWeek: 2, Status: model.AvailabilityUnavailable},
	})
	require.NoError(t, err)
	// 其他期间的不可用不影响
	_, err = avail.Replace(ctx, zeynep.UserID, "2025-11", []dto.AvailabilityItem{
		{DayOfWeek: 1, Status: model.AvailabilityUnavailable},
	})
	require.NoError(t, err)

	svc := NewEligibilityService(env.repo, testLoc, env.log)
	list, err := svc.FindEligibleEmployees(ctx, target.ShiftID)
	require.NoError(t, err)
	assert.Equal(t, []string{otherDay.UserID, zeynep.UserID}, eligibleIDs(list))
	assert.Equal(t, "Cem Test", list[0].FullName)
}

func TestEligibilityService_WeekdayInBusinessTimezone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := testutil.CreateBranch(t, env.db, "Kadikoy")
	mondayOff := testutil.CreateUser(t, env.db, "mondayoff", "Ali")

	// 周一 01:00 (UTC+3) 在 UTC 下仍是周日
	start := at(2025, 10, 6, 1, 0)
	target := testutil.CreateShift(t, env.db, branch, nil, start, start.Add(4*time.Hour), model.ShiftStatusDraft)

	_, err := NewAvailabilityService(env.repo, env.log).Replace(ctx, mondayOff.UserID, "2025-10", []dto.AvailabilityItem{
		{DayOfWeek: 1, Status: model.AvailabilityUnavailable},
	})
	require.NoError(t, err)

	list, err := NewEligibilityService(env.repo, testLoc, env.log).FindEligibleEmployees(ctx, target.ShiftID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEligibilityService_ShiftNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewEligibilityService(env.repo, testLoc, env.log).
		FindEligibleEmployees(context.Background(), "5b0c8a36-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrShiftNotFound)
}

// [自证通过] internal/service/eligibility_service_test.go
