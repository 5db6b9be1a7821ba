package openapi

import (
	"context"
	"testing"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	for _, path := range []string{
		"/materials", "/materials/{id}",
		"/parts", "/parts/{id}",
		"/assemblies", "/assemblies/{id}", "/assemblies/{id}/lines",
	} {
		if doc.Paths.Find(path) == nil {
			t.Errorf("путь %s отсутствует в документе", path)
		}
	}

	if len(Document()) == 0 {
		t.Error("Document() пуст")
	}
}
