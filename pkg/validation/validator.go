// Package validation 基于 go-playground/validator/v10 提供单例校验器，
// 用于用户 ID、关键词过滤条件与应用配置的校验。
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rushteam/dinekit/core"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator 返回单例校验器（线程安全，缓存结构体信息）。
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// userRequest 个性化推荐的用户输入。
type userRequest struct {
	UserID string `validate:"required"`
}

type userIDLength struct {
	UserID string `validate:"len=22"`
}

// UserID 校验用户 ID：必须提供，且长度恰好为 22 个字符。
// 校验失败时不做任何计算，返回 INVALID_INPUT 领域错误。
func UserID(userID string) error {
	v := Validator()
	if err := v.Struct(userRequest{UserID: userID}); err != nil {
		return core.ErrNoUserID
	}
	if err := v.Struct(userIDLength{UserID: userID}); err != nil {
		return core.ErrInvalidUserID
	}
	return nil
}

// Struct 校验任意带 validate 标签的结构体，失败时返回 INVALID_INPUT 领域错误。
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &core.DomainError{
			Module:  core.ModuleValidate,
			Code:    core.ErrorCodeInvalidInput,
			Message: "validation failed",
			Err:     err,
		}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return &core.DomainError{
		Module:  core.ModuleValidate,
		Code:    core.ErrorCodeInvalidInput,
		Message: strings.Join(msgs, "; "),
	}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Namespace(), fe.Param())
	case "gte", "gt", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Namespace(), fe.Param())
	case "lte", "lt", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag())
	}
}
