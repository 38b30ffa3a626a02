package cripta

import (
	"errors"
	"testing"
	"time"

	"github.com/go-test/deep"
)

// countingSchedule counts derivations.
type countingSchedule struct {
	DESKeySchedule
	calls int
}

func (c *countingSchedule) GenerateRoundKeys(key Bits) (RoundKeys, error) {
	c.calls++
	return c.DESKeySchedule.GenerateRoundKeys(key)
}

func TestKeyScheduleCache(t *testing.T) {
	schedule := &countingSchedule{}
	cache := NewKeyScheduleCache(schedule, 0)

	first, hit, err := cache.RoundKeys(testKey)
	if err != nil {
		t.Fatalf("RoundKeys: %v", err)
	}
	if hit {
		t.Errorf("first lookup reported a cache hit")
	}

	second, hit, err := cache.RoundKeys(testKey.Clone())
	if err != nil {
		t.Fatalf("RoundKeys: %v", err)
	}
	if !hit {
		t.Errorf("second lookup missed the cache")
	}
	if diff := deep.Equal(first, second); diff != nil {
		t.Fatal(diff)
	}
	if schedule.calls != 1 {
		t.Errorf("schedule derived %d times, want 1", schedule.calls)
	}

	want, err := DeriveRoundKeys(testKey)
	if err != nil {
		t.Fatalf("DeriveRoundKeys: %v", err)
	}
	if diff := deep.Equal(want, first); diff != nil {
		t.Fatal(diff)
	}
}

func TestKeyScheduleCache_ErrorsAreNotCached(t *testing.T) {
	cache := NewKeyScheduleCache(nil, time.Minute)

	if _, _, err := cache.RoundKeys(make(Bits, 10)); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("failed derivation was cached")
	}

	if _, err := cache.GenerateRoundKeys(testKey); err != nil {
		t.Fatalf("GenerateRoundKeys: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	cache.Flush()
	if cache.Len() != 0 {
		t.Errorf("Len() after Flush = %d", cache.Len())
	}
}

func TestKeyScheduleCache_ReturnedKeysAreCopies(t *testing.T) {
	cache := NewKeyScheduleCache(nil, 0)
	want, err := DeriveRoundKeys(testKey)
	if err != nil {
		t.Fatalf("DeriveRoundKeys: %v", err)
	}

	first, _, err := cache.RoundKeys(testKey)
	if err != nil {
		t.Fatalf("RoundKeys: %v", err)
	}
	first[0][0] ^= 1

	second, hit, err := cache.RoundKeys(testKey)
	if err != nil {
		t.Fatalf("RoundKeys: %v", err)
	}
	if !hit {
		t.Fatalf("second lookup missed the cache")
	}
	if diff := deep.Equal(want, second); diff != nil {
		t.Fatalf("editing a miss result changed the cached entry: %v", diff)
	}

	second[3][5] ^= 1
	third, _, err := cache.RoundKeys(testKey)
	if err != nil {
		t.Fatalf("RoundKeys: %v", err)
	}
	if diff := deep.Equal(want, third); diff != nil {
		t.Fatalf("editing a hit result changed the cached entry: %v", diff)
	}
}

func TestRoundKeysClone(t *testing.T) {
	keys, err := DeriveRoundKeys(testKey)
	if err != nil {
		t.Fatalf("DeriveRoundKeys: %v", err)
	}
	clone := keys.Clone()
	clone[15][47] ^= 1
	if keys[15].Equal(clone[15]) {
		t.Errorf("Clone shares memory with the original")
	}
	if empty := (RoundKeys{}).Clone(); empty[0] != nil {
		t.Errorf("Clone of an empty schedule = %v", empty[0])
	}
}
