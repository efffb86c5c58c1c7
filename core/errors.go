package core

import (
	"errors"
	"fmt"
)

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX），通过 errors.As 穿透 %w 包装
//
// 所有错误对调用方都是可恢复的：进程继续运行，可换输入重试。
type DomainError struct {
	Code    string // 错误代码（如 "NO_MATCH", "INVALID_INPUT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "filter", "recall", "geocode"）

	// Criterion 触发 NO_MATCH 的过滤条件（location / cuisine / style / price / expr）
	Criterion string

	// Err 底层原因（可选）
	Err error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// IsDomainError 检查错误是否为 DomainError 类型
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取 DomainError，如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound           = "NOT_FOUND"           // 资源不存在
	ErrorCodeNotSupported       = "NOT_SUPPORTED"       // 操作不支持
	ErrorCodeUnavailable        = "UNAVAILABLE"         // 外部依赖不可用（地理编码超时等）
	ErrorCodeInvalidInput       = "INVALID_INPUT"       // 输入无效
	ErrorCodeInternalError      = "INTERNAL_ERROR"      // 内部错误
	ErrorCodeNoMatch            = "NO_MATCH"            // 过滤后候选集为空
	ErrorCodeNoPersonalization  = "NO_PERSONALIZATION"  // 没有可用的个性化结果
	ErrorCodeIntegrityViolation = "INTEGRITY_VIOLATION" // 数据一致性被破坏
)

// 模块名称常量
const (
	ModuleStore    = "store"
	ModuleValidate = "validate"
	ModuleFilter   = "filter"
	ModuleRecall   = "recall"
	ModuleGeocode  = "geocode"
	ModuleModel    = "model"
	ModuleEngine   = "engine"
)

// NewNoMatchError 创建 NO_MATCH 错误，criterion 为触发的过滤条件。
func NewNoMatchError(criterion, message string) *DomainError {
	return &DomainError{
		Module:    ModuleFilter,
		Code:      ErrorCodeNoMatch,
		Message:   message,
		Criterion: criterion,
	}
}

// NewGeocodeError 创建地理编码失败错误，消息中带上出错的地址。
func NewGeocodeError(code, address string, cause error) *DomainError {
	return &DomainError{
		Module:    ModuleGeocode,
		Code:      code,
		Message:   fmt.Sprintf("geocode failed to locate the address of interest %q", address),
		Criterion: "location",
		Err:       cause,
	}
}

// NewIntegrityError 创建数据一致性错误。
func NewIntegrityError(module, format string, args ...any) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    ErrorCodeIntegrityViolation,
		Message: fmt.Sprintf(format, args...),
	}
}

// 预定义错误
var (
	// ErrNoUserID 未提供用户 ID
	ErrNoUserID = NewDomainError(ModuleValidate, ErrorCodeInvalidInput, "no user_id is provided")

	// ErrInvalidUserID 用户 ID 长度不合法
	ErrInvalidUserID = NewDomainError(ModuleValidate, ErrorCodeInvalidInput, "invalid user id")

	// ErrNoPersonalData 用户没有任何餐厅评价历史
	ErrNoPersonalData = NewDomainError(ModuleRecall, ErrorCodeNoPersonalization, "no personal data available for this user_id yet")

	// ErrNoPersonalizedResult 尚未计算个性化推荐就请求个性化精炼
	ErrNoPersonalizedResult = NewDomainError(ModuleEngine, ErrorCodeNoPersonalization,
		"no personalized list of recommendations is generated yet; run the collaborative or content-based module first")
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsUnavailable 检查错误是否为 UNAVAILABLE
func IsUnavailable(err error) bool { return hasCode(err, ErrorCodeUnavailable) }

// IsInvalidInput 检查错误是否为校验失败
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsNoMatch 检查错误是否为过滤无匹配
func IsNoMatch(err error) bool { return hasCode(err, ErrorCodeNoMatch) }

// IsNoPersonalization 检查错误是否为没有可用的个性化结果
func IsNoPersonalization(err error) bool { return hasCode(err, ErrorCodeNoPersonalization) }

// IsIntegrityViolation 检查错误是否为数据一致性错误
func IsIntegrityViolation(err error) bool { return hasCode(err, ErrorCodeIntegrityViolation) }

// IsGeocodeFailure 检查错误是否来自地理编码（超时、不可用或地址无结果）
func IsGeocodeFailure(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleGeocode
}
