package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/task-management-services/internal/constants"
	apierrors "github.com/yukikurage/task-management-services/internal/errors"
)

// Violation is one failed rule on one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SelfValidator is implemented by commands with rules that span fields. It runs
// only after every tag rule has passed.
type SelfValidator interface {
	Validate() []Violation
}

var initOnce sync.Once

// Init configures gin's validator engine:
// - violations are reported under the wire name (json, uri or form tag),
// - the strongpwd tag enforces the password policy.
// It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(wireName)
		_ = v.RegisterValidation("strongpwd", strongPassword)
	})
}

// BindJSON decodes and validates the request body into obj.
func BindJSON(c *gin.Context, obj interface{}) error {
	Init()
	if err := c.ShouldBindJSON(obj); err != nil {
		return invalid(err)
	}
	return selfCheck(obj)
}

// BindURI decodes and validates the path parameters into obj.
func BindURI(c *gin.Context, obj interface{}) error {
	Init()
	if err := c.ShouldBindUri(obj); err != nil {
		return invalid(err)
	}
	return selfCheck(obj)
}

// Check validates an already decoded command. It returns the violations in
// field declaration order, or nil when the command is valid.
func Check(obj interface{}) []Violation {
	Init()
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return Violations(err)
	}
	if sv, ok := obj.(SelfValidator); ok {
		return sv.Validate()
	}
	return nil
}

// Violations converts binding and validation errors into an ordered list.
func Violations(err error) []Violation {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Violation, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, Violation{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		return out
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	var ne *strconv.NumError
	switch {
	case errors.Is(err, io.EOF):
		return []Violation{{Field: "body", Message: "is required"}}
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &se):
		return []Violation{{Field: "body", Message: "invalid json"}}
	case errors.As(err, &ute):
		field := ute.Field
		if field == "" {
			field = "body"
		}
		return []Violation{{Field: field, Message: "has an invalid type"}}
	case errors.As(err, &ne):
		return []Violation{{Field: "path", Message: "must be a number"}}
	}

	return []Violation{{Field: "body", Message: "invalid payload"}}
}

func invalid(err error) error {
	appErr := apierrors.Validation(apierrors.MsgInvalidInput, Violations(err))
	appErr.Err = err
	return appErr
}

func selfCheck(obj interface{}) error {
	sv, ok := obj.(SelfValidator)
	if !ok {
		return nil
	}
	if violations := sv.Validate(); len(violations) > 0 {
		return apierrors.Validation(apierrors.MsgInvalidInput, violations)
	}
	return nil
}

func wireName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// strongPassword requires an uppercase letter, a lowercase letter, a digit and
// a symbol, within the bcrypt length limits.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	n := utf8.RuneCountInString(s)
	if n < constants.MinPasswordLength || len(s) > constants.MaxPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "eqfield":
		return "must match " + lowerFirst(param)
	case "strongpwd":
		return "must be 8 to 72 characters with an uppercase letter, a lowercase letter, a digit and a symbol"
	default:
		if param != "" {
			return "failed the '" + fe.Tag() + "' rule with parameter '" + param + "'"
		}
		return "failed the '" + fe.Tag() + "' rule"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
