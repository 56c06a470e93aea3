package random_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zaz600/go-shortener-cli/internal/pkg/random"
)

func TestString(t *testing.T) {
	assert.Empty(t, random.String(-1))
	assert.Empty(t, random.String(0))
	assert.Len(t, random.String(1), 1)
	assert.Len(t, random.String(10), 10)

	assert.NotEqual(t, random.String(10), random.String(10))
}

func TestString_Charset(t *testing.T) {
	s := random.String(1000)
	assert.Empty(t, strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"))
}

func TestString_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = random.String(8)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		random.String(8)
	}
}

func ExampleString() {
	fmt.Println(len(random.String(8)))
	// Output: 8
}
