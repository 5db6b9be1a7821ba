// Пакет search — поиск подстроки без учёта регистра по полям записей каталога.
// Matches и Filter работают со списками в памяти, LikePattern строит
// эквивалентный шаблон для ILIKE в PostgreSQL.
package search

import "strings"

// Matches сообщает, содержится ли query хотя бы в одном из полей без учёта регистра.
// Пустой query совпадает с любой записью.
func Matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Filter возвращает записи, у которых query содержится хотя бы в одном поле
// (логическое ИЛИ по полям). Порядок записей сохраняется.
// Пустой query возвращает исходный список.
func Filter[T any](items []T, query string, fields func(T) []string) []T {
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(query, fields(item)...) {
			out = append(out, item)
		}
	}
	return out
}

// likeEscaper экранирует спецсимволы LIKE (экранирующий символ по умолчанию — обратная косая черта).
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern возвращает шаблон «%query%» для ILIKE, в котором символы
// запроса сопоставляются буквально.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
