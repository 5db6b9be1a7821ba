// Пакет pages — HTML-страницы UI каталога.
// Компоненты описаны в *.templ; *_templ.go генерируются командой templ generate.
package pages

//go:generate templ generate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bigkaa/componentor/internal/ui/i18n"
)

// FieldErrors — причины отклонения полей формы: имя поля формы → reason.
type FieldErrors map[string]string

// fieldMessage возвращает переведённую причину ошибки поля.
func fieldMessage(ctx context.Context, errs FieldErrors, field string) (string, bool) {
	reason, ok := errs[field]
	if !ok {
		return "", false
	}
	return i18n.Reason(ctx, reason), true
}

// formText — заголовок, кнопка и адрес отправки формы создания или изменения записи.
type formText struct {
	titleKey  string
	buttonKey string
	action    string
}

// newFormText: id пуст — форма создания (POST base+"create"), иначе форма изменения.
func newFormText(entity, base, id string) formText {
	if id == "" {
		return formText{
			titleKey:  entity + ".create.title",
			buttonKey: "common.add",
			action:    base + "create",
		}
	}
	return formText{
		titleKey:  entity + ".update.title",
		buttonKey: "common.update",
		action:    base + id + "/update",
	}
}

// DeleteData — данные страницы подтверждения удаления.
type DeleteData struct {
	// TitleKey — ключ заголовка, QuestionKey — ключ вопроса с %s для имени записи
	TitleKey    string
	QuestionKey string
	Name        string
	Action      string
	Cancel      string
}

// LineRow — строка формы состава. LineID пуст у новых строк.
type LineRow struct {
	LineID   string
	PartID   string
	Quantity string
	Delete   bool
}

// LineFieldName — имя поля строки формы состава: lines-<row>-<field>.
func LineFieldName(row int, field string) string {
	return fmt.Sprintf("lines-%d-%s", row, field)
}

// FormatDensity форматирует плотность без лишних нулей.
func FormatDensity(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', -1, 64)
}

func densityText(ctx context.Context, d *float64) string {
	if d == nil {
		return i18n.T(ctx, "common.not_specified")
	}
	return FormatDensity(d)
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
