package random

import (
	"math/rand"
	"sync"
	"time"
)

const charSet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	mu         sync.Mutex
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
)

// String случайная строка из латинских букв и цифр.
// Для отрицательной длины - пустая строка.
func String(length int) string {
	if length < 0 {
		return ""
	}
	mu.Lock()
	defer mu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = charSet[seededRand.Intn(len(charSet))]
	}
	return string(b)
}
