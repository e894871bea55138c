// Package validation 单例校验器及自定义标签
//
// 自定义标签:
//   - period: YYYY-MM 格式的年月，如 "2025-03"
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	ginOnce      sync.Once
)

// IsPeriod 是否为 YYYY-MM 格式
func IsPeriod(s string) bool {
	return periodPattern.MatchString(s)
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		return IsPeriod(fl.Field().String())
	})
}

// GetValidator 获取单例校验器
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		registerCustom(validate)
	})
	return validate
}

// RegisterGinValidators 把自定义标签注册到 gin 的 binding 引擎
func RegisterGinValidators() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustom(v)
			v.RegisterTagNameFunc(requestFieldName)
		}
	})
}

// FieldError 校验失败的字段及标签
type FieldError struct {
	Field string
	Tag   string
}

func (e *FieldError) Error() string {
	return e.Field + " failed on " + e.Tag
}

// ValidateStruct 按字段声明顺序返回全部失败项
func ValidateStruct(s interface{}) []FieldError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// HasTag 失败项中是否包含任一标签
func HasTag(errs []FieldError, tags ...string) bool {
	for _, e := range errs {
		for _, t := range tags {
			if e.Tag == t {
				return true
			}
		}
	}
	return false
}

// requestFieldName 错误信息使用 json/form 字段名
func requestFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// BindingMessage 把 gin 绑定错误转换为返回给客户端的提示
func BindingMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has an invalid type", typeErr.Field)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "period":
		return "Invalid date format. Use YYYY-MM"
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s is out of range", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
