package search

import (
	"testing"
)

type named struct {
	designation string
	name        string
}

func fields(n named) []string {
	return []string{n.name, n.designation}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	items := []named{
		{designation: "10.01", name: "assembly_1"},
		{designation: "10.02", name: "assembly_2"},
		{designation: "10.03", name: "frame"},
	}

	for _, q := range []string{"bly_2", "BLY_2", "Bly_2"} {
		got := Filter(items, q, fields)
		if len(got) != 1 {
			t.Fatalf("Filter(%q): ожидали 1 запись, получили %d", q, len(got))
		}
		if got[0].name != "assembly_2" {
			t.Errorf("Filter(%q) = %q, ожидали assembly_2", q, got[0].name)
		}
	}
}

func TestFilter_OrAcrossFields(t *testing.T) {
	items := []named{
		{designation: "20.15", name: "bracket"},
		{designation: "30.01", name: "plate 20"},
		{designation: "40.00", name: "cover"},
	}

	got := Filter(items, "20", fields)
	if len(got) != 2 {
		t.Fatalf("ожидали 2 записи (совпадение по обозначению или имени), получили %d", len(got))
	}
	if got[0].name != "bracket" || got[1].name != "plate 20" {
		t.Errorf("нарушен порядок или состав результата: %v", got)
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	items := []named{{name: "a"}, {name: "b"}}
	if got := Filter(items, "", fields); len(got) != len(items) {
		t.Errorf("пустой запрос вернул %d записей, ожидали %d", len(got), len(items))
	}
}

func TestFilter_NoMatch(t *testing.T) {
	items := []named{{name: "steel"}}
	if got := Filter(items, "copper", fields); len(got) != 0 {
		t.Errorf("ожидали пустой результат, получили %v", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		query  string
		fields []string
		want   bool
	}{
		{"", []string{"anything"}, true},
		{"steel", []string{"Stainless STEEL"}, true},
		{"steel", []string{"copper", "steel 45"}, true},
		{"steel", []string{"copper"}, false},
		{"steel", nil, false},
	}

	for _, tt := range tests {
		if got := Matches(tt.query, tt.fields...); got != tt.want {
			t.Errorf("Matches(%q, %v) = %v, ожидали %v", tt.query, tt.fields, got, tt.want)
		}
	}
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"steel", "%steel%"},
		{"bly_2", `%bly\_2%`},
		{"50%", `%50\%%`},
		{`a\b`, `%a\\b%`},
	}

	for _, tt := range tests {
		if got := LikePattern(tt.query); got != tt.want {
			t.Errorf("LikePattern(%q) = %q, ожидали %q", tt.query, got, tt.want)
		}
	}
}
