// Пакет flash — одноразовые сообщения UI между POST и последующим GET.
// Сообщение хранится в cookie, зашифрованном AES-256-GCM, и удаляется при первом чтении.
package flash

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// CookieName — имя cookie flash-сообщения.
const CookieName = "componentor_flash"

// cookieMaxAge — сообщение, не прочитанное за 5 минут, отбрасывается браузером.
const cookieMaxAge = 5 * 60

// Kind — вид сообщения.
type Kind string

const (
	// Success — успешная операция.
	Success Kind = "success"
	// Error — отказ в операции.
	Error Kind = "error"
)

// Message — flash-сообщение. Key — ключ i18n-каталога,
// текст подставляется на языке страницы, где сообщение показывается.
type Message struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// Manager шифрует и читает flash-cookie.
type Manager struct {
	gcm cipher.AEAD
}

// NewManager создаёт менеджер flash-сообщений.
// key — base64 32-байтового ключа или произвольная строка (хешируется SHA-256).
// Если key пустой — генерируется случайный ключ (сообщения не переживают рестарт).
func NewManager(key string) (*Manager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа flash: %w", err)
		}
	} else {
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			h := sha256.Sum256([]byte(key))
			keyBytes = h[:]
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	return &Manager{gcm: gcm}, nil
}

// encrypt шифрует сообщение и возвращает base64-строку (nonce в начале).
func (m *Manager) encrypt(msg Message) (string, error) {
	plaintext, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации flash: %w", err)
	}

	nonce := make([]byte, m.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	return base64.URLEncoding.EncodeToString(m.gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

// decrypt расшифровывает base64-строку в сообщение.
func (m *Manager) decrypt(encrypted string) (*Message, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := m.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := m.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка дешифрования flash: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(plaintext, &msg); err != nil {
		return nil, fmt.Errorf("ошибка десериализации flash: %w", err)
	}
	return &msg, nil
}

// Set записывает сообщение в cookie ответа.
func (m *Manager) Set(w http.ResponseWriter, kind Kind, key string) error {
	encrypted, err := m.encrypt(Message{Kind: kind, Key: key})
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encrypted,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Pop читает сообщение из запроса и удаляет cookie в ответе.
// Возвращает nil, nil если сообщения нет. Повреждённый cookie тоже удаляется.
func (m *Manager) Pop(w http.ResponseWriter, r *http.Request) (*Message, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return m.decrypt(cookie.Value)
}

// --- Контекст запроса ---

type contextKey struct{}

// WithMessage помещает сообщение в контекст.
func WithMessage(ctx context.Context, msg *Message) context.Context {
	return context.WithValue(ctx, contextKey{}, msg)
}

// FromContext возвращает сообщение текущего запроса или nil.
func FromContext(ctx context.Context) *Message {
	msg, _ := ctx.Value(contextKey{}).(*Message)
	return msg
}
