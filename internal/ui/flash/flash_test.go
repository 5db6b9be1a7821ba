package flash

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

// roundTrip записывает сообщение одним менеджером и читает другим.
func roundTrip(t *testing.T, writer, reader *Manager) (*Message, error) {
	t.Helper()

	rec := httptest.NewRecorder()
	if err := writer.Set(rec, Success, "flash.material.created"); err != nil {
		t.Fatalf("Set() вернул ошибку: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/materials/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return reader.Pop(httptest.NewRecorder(), req)
}

func TestSetPop(t *testing.T) {
	m, err := NewManager("")
	if err != nil {
		t.Fatalf("NewManager() вернул ошибку: %v", err)
	}

	msg, err := roundTrip(t, m, m)
	if err != nil {
		t.Fatalf("Pop() вернул ошибку: %v", err)
	}
	if msg == nil || msg.Kind != Success || msg.Key != "flash.material.created" {
		t.Errorf("Pop() = %+v", msg)
	}
}

func TestPop_ClearsCookie(t *testing.T) {
	m, _ := NewManager("secret")

	rec := httptest.NewRecorder()
	_ = m.Set(rec, Error, "flash.part.in_use")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	out := httptest.NewRecorder()
	if _, err := m.Pop(out, req); err != nil {
		t.Fatalf("Pop() вернул ошибку: %v", err)
	}

	cookies := out.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].MaxAge >= 0 {
		t.Errorf("cookie не удалён: %+v", cookies)
	}
}

func TestPop_NoCookie(t *testing.T) {
	m, _ := NewManager("secret")
	msg, err := m.Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if msg != nil || err != nil {
		t.Errorf("Pop() без cookie = (%v, %v), ожидали (nil, nil)", msg, err)
	}
}

func TestPop_ForeignKeyRejected(t *testing.T) {
	writer, _ := NewManager("first secret")
	reader, _ := NewManager("second secret")

	if _, err := roundTrip(t, writer, reader); err == nil {
		t.Error("сообщение, зашифрованное другим ключом, принято")
	}
}

func TestNewManager_Base64Key(t *testing.T) {
	raw := make([]byte, 32)
	_, _ = rand.Read(raw)
	key := base64.StdEncoding.EncodeToString(raw)

	a, err := NewManager(key)
	if err != nil {
		t.Fatalf("NewManager() вернул ошибку: %v", err)
	}
	b, _ := NewManager(key)

	if _, err := roundTrip(t, a, b); err != nil {
		t.Errorf("один и тот же ключ не расшифровал сообщение: %v", err)
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != nil {
		t.Error("FromContext() пустого контекста не nil")
	}

	msg := &Message{Kind: Error, Key: "k"}
	if got := FromContext(WithMessage(ctx, msg)); got != msg {
		t.Errorf("FromContext() = %v, ожидали %v", got, msg)
	}
}
