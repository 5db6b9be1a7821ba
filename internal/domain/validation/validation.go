// Пакет validation — проверка входных данных каталога до записи в БД.
// Правила описаны тегами go-playground/validator на типах model.*Input,
// ошибки приводятся к списку FieldError с машинно-читаемыми причинами.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bigkaa/componentor/internal/domain/model"
)

// ErrInvalid — входные данные не прошли проверку.
// Errors удовлетворяет errors.Is(err, ErrInvalid).
var ErrInvalid = errors.New("ошибка валидации")

// Причины отклонения поля.
const (
	ReasonRequired  = "required"
	ReasonCharset   = "charset"
	ReasonMin       = "min"
	ReasonMax       = "max"
	ReasonNumber    = "number"
	ReasonNotFound  = "not_found"
	ReasonDuplicate = "duplicate"
	ReasonInvalid   = "invalid"
)

// MaxQuantity — наибольшее количество деталей в строке состава (part_count — int4).
const MaxQuantity = math.MaxInt32

var quantityRule = fmt.Sprintf("min=0,max=%d", MaxQuantity)

var (
	// Название: латиница, цифры, пробелы.
	nameRe = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	// Обозначение: цифры, точки, дефисы.
	designationRe = regexp.MustCompile(`^[0-9.\-]+$`)
)

// FieldError — отклонённое поле и причина.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Errors — набор ошибок полей одной операции.
type Errors []FieldError

// Error реализует интерфейс error.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(parts, "; "))
}

// Is позволяет проверять ошибку через errors.Is(err, ErrInvalid).
func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Add добавляет ошибку поля.
func (e *Errors) Add(field, reason string) {
	*e = append(*e, FieldError{Field: field, Reason: reason})
}

// Has сообщает, отклонено ли поле.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Reason возвращает причину отклонения поля или пустую строку.
func (e Errors) Reason(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Reason
		}
	}
	return ""
}

// Err возвращает nil для пустого набора.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validator проверяет входные структуры каталога.
type Validator struct {
	v *validator.Validate
}

// New создаёт Validator с зарегистрированными правилами каталога.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Имя поля в ошибках — из json-тега, как в API и формах.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Ошибки регистрации возможны только при пустом имени тега.
	_ = v.RegisterValidation("catalog_name", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("designation", func(fl validator.FieldLevel) bool {
		return designationRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	return &Validator{v: v}
}

// Material проверяет поля материала.
func (val *Validator) Material(in model.MaterialInput) Errors {
	return val.structErrors(in)
}

// Part проверяет поля детали. Существование материала проверяет сервис.
func (val *Validator) Part(in model.PartInput) Errors {
	return val.structErrors(in)
}

// Assembly проверяет собственные поля сборки.
func (val *Validator) Assembly(in model.AssemblyInput) Errors {
	return val.structErrors(in)
}

// Line проверяет форму одной директивы состава (без обращения к БД).
// i — позиция директивы, используется в имени поля: lines[i].part_id.
func (val *Validator) Line(i int, d model.LineDirective) Errors {
	var errs Errors
	field := func(name string) string {
		return fmt.Sprintf("lines[%d].%s", i, name)
	}

	switch d.Op {
	case model.LineUpsert:
		if d.PartID == "" {
			errs.Add(field("part_id"), ReasonRequired)
		} else if !IsID(d.PartID) {
			errs.Add(field("part_id"), ReasonNotFound)
		}
		if d.Quantity == nil {
			errs.Add(field("quantity"), ReasonRequired)
		} else if err := val.v.Var(*d.Quantity, quantityRule); err != nil {
			errs.Add(field("quantity"), varReason(err))
		}
		if d.LineID != nil && !IsID(*d.LineID) {
			errs.Add(field("line_id"), ReasonNotFound)
		}
	case model.LineDelete:
		if d.LineID == nil || *d.LineID == "" {
			errs.Add(field("line_id"), ReasonRequired)
		} else if !IsID(*d.LineID) {
			errs.Add(field("line_id"), ReasonNotFound)
		}
	default:
		errs.Add(field("op"), ReasonInvalid)
	}
	return errs
}

// IsID сообщает, является ли строка корректным идентификатором записи (UUID).
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// structErrors запускает validator и переводит его ошибки в Errors.
func (val *Validator) structErrors(s any) Errors {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return Errors{{Field: "", Reason: ReasonInvalid}}
	}

	errs := make(Errors, 0, len(ve))
	for _, fe := range ve {
		errs.Add(fe.Field(), reasonFor(fe.Tag()))
	}
	return errs
}

// varReason — причина отклонения одиночного значения, проверенного validator.Var.
func varReason(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return ReasonInvalid
	}
	return reasonFor(ve[0].Tag())
}

// reasonFor сопоставляет тег validator с причиной отклонения.
func reasonFor(tag string) string {
	switch tag {
	case "required":
		return ReasonRequired
	case "catalog_name", "designation":
		return ReasonCharset
	case "min":
		return ReasonMin
	case "max":
		return ReasonMax
	case "finite":
		return ReasonNumber
	case "uuid":
		return ReasonNotFound
	default:
		return ReasonInvalid
	}
}
