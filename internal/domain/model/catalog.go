// Пакет model — доменные типы каталога: материалы, детали, сборки
// и строки состава сборок.
package model

import "time"

// Material — материал, из которого изготавливаются детали.
// Хранится в таблице materials.
type Material struct {
	// ID — UUID записи
	ID string
	// Name — название (латиница, цифры, пробелы)
	Name string
	// Density — плотность; nil означает «не указана»
	Density *float64
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// Part — деталь, изготовленная ровно из одного материала.
// Хранится в таблице parts.
type Part struct {
	// ID — UUID записи
	ID string
	// Designation — обозначение (цифры, точки, дефисы)
	Designation string
	// Name — название (латиница, цифры, пробелы)
	Name string
	// MaterialID — ссылка на материал
	MaterialID string
	// MaterialName — название материала (заполняется при чтении с JOIN)
	MaterialName string
	// CreatedAt — время создания записи
	CreatedAt time.Time
	// UpdatedAt — время последнего обновления
	UpdatedAt time.Time
}

// Assembly — сборка из деталей.
// Хранится в таблице assemblies.
type Assembly struct {
	ID          string
	Designation string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AssemblyPart — строка состава сборки: сколько экземпляров детали входит в сборку.
// Хранится в таблице assembly_parts, удаляется каскадно вместе со сборкой.
type AssemblyPart struct {
	ID         string
	AssemblyID string
	PartID     string
	// PartCount — количество деталей в сборке
	PartCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssemblyLine — строка состава сборки вместе с данными детали и материала.
// Используется на странице сборки и в фильтре по материалу.
type AssemblyLine struct {
	AssemblyPart
	PartDesignation string
	PartName        string
	MaterialID      string
	MaterialName    string
	// AssemblyDesignation и AssemblyName заполняются в списке «где используется деталь»
	AssemblyDesignation string
	AssemblyName        string
}

// LineOp — вид директивы изменения состава сборки.
type LineOp string

const (
	// LineUpsert — добавить строку или изменить существующую.
	LineUpsert LineOp = "upsert"
	// LineDelete — удалить существующую строку.
	LineDelete LineOp = "delete"
)

// LineDirective — одна директива изменения состава сборки.
// Для LineUpsert обязательны PartID и Quantity, LineID указывает
// изменяемую строку. Для LineDelete обязателен только LineID.
type LineDirective struct {
	Op       LineOp
	PartID   string
	Quantity *int
	LineID   *string
}

// DeletionOutcome — результат защищённого удаления.
type DeletionOutcome int

const (
	// Deleted — запись удалена.
	Deleted DeletionOutcome = iota + 1
	// Blocked — удаление отклонено: на запись ссылаются другие записи.
	Blocked
)

// String возвращает имя исхода для логов и метрик.
func (o DeletionOutcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// MaterialInput — изменяемые поля материала.
type MaterialInput struct {
	Name    string   `json:"name" validate:"required,catalog_name"`
	Density *float64 `json:"density" validate:"omitempty,finite,min=0"`
}

// PartInput — изменяемые поля детали.
type PartInput struct {
	Designation string `json:"designation" validate:"required,designation"`
	Name        string `json:"name" validate:"required,catalog_name"`
	MaterialID  string `json:"material_id" validate:"required,uuid"`
}

// AssemblyInput — собственные поля сборки (без состава).
type AssemblyInput struct {
	Designation string `json:"designation" validate:"required,designation"`
	Name        string `json:"name" validate:"required,catalog_name"`
}
