package service

import (
	"errors"

	pkgerrors "github.com/tahakubilay/deneme/pkg/errors"
)

// ── 认证 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)

// ── 通用 / 主数据 ──

var (
	ErrUserNotFound     = pkgerrors.New(pkgerrors.ErrNotFound, "用户不存在")
	ErrUsernameTaken    = pkgerrors.New(pkgerrors.ErrConflict, "用户名已存在")
	ErrBranchNotFound   = pkgerrors.New(pkgerrors.ErrNotFound, "分店不存在")
	ErrBranchNameTaken  = pkgerrors.New(pkgerrors.ErrConflict, "分店名称已存在")
	ErrInvalidHours     = pkgerrors.New(pkgerrors.ErrValidation, "营业时间不合法")
	ErrInvalidPeriod    = pkgerrors.New(pkgerrors.ErrValidation, "期间格式应为 YYYY-MM")
	ErrInvalidDecision  = pkgerrors.New(pkgerrors.ErrValidation, "无效的处理决定")
	ErrInvalidAvailDay  = pkgerrors.New(pkgerrors.ErrValidation, "星期取值应为 1-7 且不可重复")
	ErrInvalidAvailFlag = pkgerrors.New(pkgerrors.ErrValidation, "可用性取值应为 available 或 unavailable")
	ErrInvalidGender    = pkgerrors.New(pkgerrors.ErrValidation, "性别取值应为 female 或 male")
)

// ── 班次 ──

var (
	ErrShiftNotFound        = pkgerrors.New(pkgerrors.ErrNotFound, "班次不存在")
	ErrShiftNotOwned        = pkgerrors.New(pkgerrors.ErrForbidden, "只能操作分配给自己的班次")
	ErrQRTokenMismatch      = pkgerrors.New(pkgerrors.ErrValidation, "签到二维码不匹配")
	ErrCheckInNotAllowed    = pkgerrors.New(pkgerrors.ErrInvalidState, "当前状态不能签到")
	ErrCheckInTooEarly      = pkgerrors.New(pkgerrors.ErrInvalidState, "距班次开始超过允许的提前签到时间")
	ErrCheckOutNotAllowed   = pkgerrors.New(pkgerrors.ErrInvalidState, "班次尚未开始，不能签退")
	ErrPeriodAlreadyPlanned = pkgerrors.New(pkgerrors.ErrConflict, "该期间已存在班次")
)

// ── 换班 ──

var (
	ErrSwapNotFound         = pkgerrors.New(pkgerrors.ErrNotFound, "换班申请不存在")
	ErrSwapNotPending       = pkgerrors.New(pkgerrors.ErrInvalidState, "换班申请已处理，不能撤回")
	ErrSwapSameShift        = pkgerrors.New(pkgerrors.ErrValidation, "不能与同一班次换班")
	ErrSwapTargetUnassigned = pkgerrors.New(pkgerrors.ErrValidation, "目标班次未分配员工")
	ErrSwapTargetMismatch   = pkgerrors.New(pkgerrors.ErrValidation, "目标员工与目标班次不符")
	ErrSwapWithSelf         = pkgerrors.New(pkgerrors.ErrValidation, "不能与自己换班")
	ErrSwapShiftNotOpen     = pkgerrors.New(pkgerrors.ErrInvalidState, "只有草稿或已排班的班次可以换班")
	ErrSwapShiftsChanged    = pkgerrors.New(pkgerrors.ErrInvalidState, "班次人员已变更，无法执行换班")
	ErrShiftHasPendingSwap  = pkgerrors.New(pkgerrors.ErrConflict, "班次已在待处理的换班申请中")
)

// ── 取消 ──

var (
	ErrCancelNotFound         = pkgerrors.New(pkgerrors.ErrNotFound, "取消申请不存在")
	ErrCancelNotPending       = pkgerrors.New(pkgerrors.ErrInvalidState, "取消申请已处理，不能撤回")
	ErrCancelAlreadyPending   = pkgerrors.New(pkgerrors.ErrConflict, "该班次已有待处理的取消申请")
	ErrCancelShiftNotOpen     = pkgerrors.New(pkgerrors.ErrInvalidState, "只有草稿或已排班的班次可以申请取消")
	ErrReplacementNotFound    = pkgerrors.New(pkgerrors.ErrNotFound, "替班员工不存在")
	ErrReplacementInactive    = pkgerrors.New(pkgerrors.ErrValidation, "替班员工已停用")
	ErrReplacementIsRequester = pkgerrors.New(pkgerrors.ErrValidation, "替班员工不能是原员工")
)

// ── 排班约束规则 / 员工偏好 ──

var (
	ErrScheduleRuleNotFound  = pkgerrors.New(pkgerrors.ErrNotFound, "排班规则不存在")
	ErrInvalidRuleCondition  = pkgerrors.New(pkgerrors.ErrValidation, "规则条件应为 gender_female 或 gender_male")
	ErrInvalidRuleTime       = pkgerrors.New(pkgerrors.ErrValidation, "开始时间格式应为 HH:MM")
	ErrPreferenceNotFound    = pkgerrors.New(pkgerrors.ErrNotFound, "员工偏好不存在")
	ErrPreferenceExists      = pkgerrors.New(pkgerrors.ErrConflict, "该员工在该分店已有此星期的偏好")
	ErrInvalidPreferenceDay  = pkgerrors.New(pkgerrors.ErrValidation, "星期取值应为 1-7")
	ErrPreferenceNotEmployee = pkgerrors.New(pkgerrors.ErrValidation, "偏好只能为在职员工设置")
)

// ── 导入 ──

var (
	ErrImportNoData      = pkgerrors.New(pkgerrors.ErrValidation, "Excel 文件无数据行（第一行为表头）")
	ErrImportBadHeader   = pkgerrors.New(pkgerrors.ErrValidation, "Excel 表头缺少必要列")
	ErrImportTooManyRows = pkgerrors.New(pkgerrors.ErrValidation, "数据行数超过上限")
	ErrImportBadFile     = pkgerrors.New(pkgerrors.ErrValidation, "无法解析 Excel 文件")
)

// [自证通过] internal/service/errors.go
