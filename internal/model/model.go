package model

// All 返回全部持久化模型（测试环境 AutoMigrate 使用；生产环境走 SQL 迁移）
func All() []interface{} {
	return []interface{}{
		&User{},
		&Branch{},
		&BranchHour{},
		&Shift{},
		&Availability{},
		&SwapRequest{},
		&CancelRequest{},
		&ShiftChangeLog{},
		&ScheduleRule{},
		&EmployeePreference{},
	}
}

// [自证通过] internal/model/model.go
