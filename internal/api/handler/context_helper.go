package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tahakubilay/deneme/internal/api/middleware"
	"github.com/tahakubilay/deneme/internal/service"
	pkgerrors "github.com/tahakubilay/deneme/pkg/errors"
	"github.com/tahakubilay/deneme/pkg/response"
)

// 通用错误码
const (
	codeValidation   = 10001
	codeUnauthorized = 10002
	codeForbidden    = 10003
	codeNotFound     = 10006
	codeInvalidState = 10007
	codeConflict     = 10008
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		response.Unauthorized(c, codeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, codeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// tokenInfo 当前 Access Token 的 jti 与过期时间
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString(middleware.CtxTokenID)
	exp := c.GetTime(middleware.CtxTokenExpiresAt)
	return jti, exp
}

// respondError 按业务错误类别映射 HTTP 状态码；其余错误记录后返回 500
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch pkgerrors.KindOf(err) {
	case pkgerrors.ErrNotFound:
		response.NotFound(c, codeNotFound, err.Error())
	case pkgerrors.ErrInvalidState:
		response.Conflict(c, codeInvalidState, err.Error())
	case pkgerrors.ErrConflict:
		response.Conflict(c, codeConflict, err.Error())
	case pkgerrors.ErrForbidden:
		response.Forbidden(c, codeForbidden, err.Error())
	case pkgerrors.ErrValidation:
		response.BadRequest(c, codeValidation, err.Error())
	default:
		_ = c.Error(err)
		logger.Error("请求处理出现未预期错误",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("route", c.FullPath()),
			zap.Error(err))
		response.InternalError(c)
	}
}

// bindError 请求参数绑定失败；请求体超限交由 BodyLimit 中间件响应 413
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		_ = c.Error(err)
		return
	}
	response.BadRequest(c, codeValidation, "参数校验失败")
}

// openUpload 读取 multipart 表单中的 file 字段
func openUpload(c *gin.Context) (multipart.File, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, codeValidation, "请上传 Excel 文件（字段名 file）")
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, codeValidation, "无法读取上传文件")
		return nil, false
	}
	return f, true
}

// periodResolver 缺省期间为业务时区下的当月
type periodResolver struct {
	loc *time.Location
	now func() time.Time
}

func (p *periodResolver) resolve(period string) string {
	if period != "" {
		return period
	}
	return service.CurrentPeriod(p.now(), p.loc)
}

// [自证通过] internal/api/handler/context_helper.go
