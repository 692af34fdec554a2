// Package concurrency 키 단위 상호 배제 등 동시성 보조 도구를 제공합니다.
package concurrency

import (
	"sync"
)

// KeyedMutex 키마다 독립적인 잠금을 제공합니다.
// 서로 다른 키에 대한 작업은 병렬로 진행되며, 더 이상 참조되지 않는 키의 잠금은 즉시 해제됩니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyedEntry
	pool  sync.Pool
}

type keyedEntry struct {
	mu       sync.Mutex
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{
		locks: make(map[K]*keyedEntry),
		pool: sync.Pool{
			New: func() any { return &keyedEntry{} },
		},
	}
}

// Len 잠금을 보유 중이거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

// Lock 키에 대한 잠금을 획득할 때까지 대기합니다.
func (km *KeyedMutex[K]) Lock(key K) {
	km.acquire(key).mu.Lock()
}

// TryLock 대기 없이 잠금을 시도합니다. 성공한 경우에만 Unlock을 호출해야 합니다.
func (km *KeyedMutex[K]) TryLock(key K) bool {
	e := km.acquire(key)
	if e.mu.TryLock() {
		return true
	}

	km.release(key, e)
	return false
}

// Unlock 키의 잠금을 해제합니다. 잠기지 않은 키를 해제하면 패닉이 발생합니다.
func (km *KeyedMutex[K]) Unlock(key K) {
	km.mu.Lock()
	e, ok := km.locks[key]
	km.mu.Unlock()

	if !ok {
		panic("concurrency: 잠기지 않은 키에 대한 Unlock 호출")
	}

	e.mu.Unlock()
	km.release(key, e)
}

// WithLock 키의 잠금을 보유한 상태로 fn을 실행하고 그 결과를 반환합니다.
func (km *KeyedMutex[K]) WithLock(key K, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)

	return fn()
}

func (km *KeyedMutex[K]) acquire(key K) *keyedEntry {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = km.pool.Get().(*keyedEntry)
		km.locks[key] = e
	}
	e.refCount++

	return e
}

func (km *KeyedMutex[K]) release(key K, e *keyedEntry) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e.refCount--
	if e.refCount <= 0 {
		e.refCount = 0
		delete(km.locks, key)
		km.pool.Put(e)
	}
}
