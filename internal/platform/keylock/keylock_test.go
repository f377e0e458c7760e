package keylock_test

import (
	"sync"
	"testing"

	"github.com/SscSPs/trading_wallet_app/internal/platform/keylock"
	"github.com/stretchr/testify/assert"
)

func TestLockSerialisesSameKey(t *testing.T) {
	l := keylock.New()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("user\x00USD")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, l.Len(), "entries are released")
}

func TestDistinctKeysDoNotBlock(t *testing.T) {
	l := keylock.New()
	unlockA := l.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

func TestUnlockIsIdempotent(t *testing.T) {
	l := keylock.New()
	unlock := l.Lock("k")
	unlock()
	unlock()
	assert.Equal(t, 0, l.Len())
}

func TestKey(t *testing.T) {
	assert.NotEqual(t, keylock.Key("ab", "c"), keylock.Key("a", "bc"))
	assert.Equal(t, "u\x00USD", keylock.Key("u", "USD"))
}
