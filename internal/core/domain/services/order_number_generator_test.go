package services_test

import (
	"sync"
	"testing"
	"time"

	"takeout/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumberGenerator_Format(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 30, 45, 678*int(time.Millisecond), time.UTC)
	g := services.NewOrderNumberGenerator(func() time.Time { return fixed })

	assert.Equal(t, "20240301123045678001", g.Next())
	assert.Equal(t, "20240301123045678002", g.Next())
}

func TestOrderNumberGenerator_UniqueUnderConcurrency(t *testing.T) {
	fixed := time.Now()
	g := services.NewOrderNumberGenerator(func() time.Time { return fixed })

	const n = 500
	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num := g.Next()
			mu.Lock()
			seen[num] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestOrderNumberGenerator_DefaultClock(t *testing.T) {
	g := services.NewOrderNumberGenerator(nil)

	assert.Len(t, g.Next(), 20)
}
