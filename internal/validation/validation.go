// Package validation is the single place where field formats are checked.
// One validator instance, reading `binding` tags, backs gin request binding
// and service-level checks, so a PAN or phone number is judged identically
// everywhere.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex  = regexp.MustCompile(`^\d{10}$`)
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	panRegex    = regexp.MustCompile(`^(?i)[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadharRegex = regexp.MustCompile(`^\d{12}$`)
	reraRegex   = regexp.MustCompile(`^P\d{11}$`)
	ifscRegex   = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	hhmmRegex   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Field-type tags understood by the validator.
const (
	TagPhone  = "phone"
	TagPAN    = "pan"
	TagAadhar = "aadhar"
	TagRERA   = "rera"
	TagIFSC   = "ifsc"
	TagHHMM   = "hhmm"
)

var fieldRules = map[string]*regexp.Regexp{
	TagPhone:  phoneRegex,
	TagPAN:    panRegex,
	TagAadhar: aadharRegex,
	TagRERA:   reraRegex,
	TagIFSC:   ifscRegex,
	TagHHMM:   hhmmRegex,
}

var fieldMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	TagPhone:   "must be a 10 digit mobile number",
	TagPAN:     "must be a valid PAN (e.g. ABCDE1234F)",
	TagAadhar:  "must be a 12 digit Aadhar number",
	TagRERA:    "must be a valid MahaRERA number (e.g. P52100012345)",
	TagIFSC:    "must be a valid IFSC code",
	TagHHMM:    "must be a time in HH:MM format",
}

// IsValidPhone reports whether s is a 10 digit mobile number.
func IsValidPhone(s string) bool { return phoneRegex.MatchString(s) }

// IsValidEmail reports whether s looks like an e-mail address.
func IsValidEmail(s string) bool { return emailRegex.MatchString(s) }

// IsValidPAN reports whether s is a PAN card number. Case is ignored; callers
// store the upper-cased form.
func IsValidPAN(s string) bool { return panRegex.MatchString(s) }

// IsValidAadhar reports whether s is an Aadhar number.
func IsValidAadhar(s string) bool { return aadharRegex.MatchString(s) }

// IsValidRERA reports whether s is a MahaRERA registration number.
func IsValidRERA(s string) bool { return reraRegex.MatchString(s) }

// Register adds the field-type tags to v and makes error field names follow json tags.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	for tag, re := range fieldRules {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			return fmt.Errorf("register %s validation: %w", tag, err)
		}
	}
	return nil
}

// TagName is the struct tag read by the validator.
const TagName = "binding"

var (
	defaultOnce      sync.Once
	defaultValidator *validator.Validate
)

// Default returns the process-wide validator with the field-type tags registered.
func Default() *validator.Validate {
	defaultOnce.Do(func() {
		defaultValidator = validator.New()
		defaultValidator.SetTagName(TagName)
		if err := Register(defaultValidator); err != nil {
			panic(err)
		}
	})
	return defaultValidator
}

// ginValidator adapts Default to gin's binding.StructValidator.
type ginValidator struct{}

var _ binding.StructValidator = ginValidator{}

// ValidateStruct accepts structs, pointers to structs and slices of them,
// like gin's own validator.
func (v ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	value := reflect.ValueOf(obj)
	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return v.ValidateStruct(value.Elem().Interface())
	case reflect.Struct:
		return Default().Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < value.Len(); i++ {
			if err := v.ValidateStruct(value.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ginValidator) Engine() any { return Default() }

// RegisterWithGin makes gin bind requests through Default.
func RegisterWithGin() {
	binding.Validator = ginValidator{}
}

// Struct validates s with `binding` tags and converts failures to ErrValidation.
func Struct(s any) error {
	if err := Default().Struct(s); err != nil {
		return Translate(err)
	}
	return nil
}

// Translate turns validator errors into a single ErrValidation with a readable message.
// Other errors are wrapped unchanged.
func Translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed %q check", fe.Tag())
			if fe.Param() != "" {
				msg = fmt.Sprintf("failed %s=%s check", fe.Tag(), fe.Param())
			}
		}
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), msg))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
}

// Field checks a single value against a tag expression such as "required,phone".
func Field(name string, value any, tag string) error {
	if err := Default().Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			if msg, ok := fieldMessages[verrs[0].Tag()]; ok {
				return fmt.Errorf("%w: %s %s", apperrors.ErrValidation, name, msg)
			}
		}
		return fmt.Errorf("%w: %s is invalid", apperrors.ErrValidation, name)
	}
	return nil
}
