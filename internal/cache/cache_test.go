package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetRespectsTTL(t *testing.T) {
	c := NewTTLCache(10)

	c.Set("fresh", "a", time.Minute)
	c.Set("vencida", "b", 10*time.Millisecond)

	if v, ok := c.Get("fresh"); !ok || v != "a" {
		t.Fatalf("Get(fresh) = (%v, %v), esperado (a, true)", v, ok)
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("vencida"); ok {
		t.Error("Get retornou entrada vencida")
	}
	// entrada vencida deve ter sido removida na leitura
	if _, ok := c.GetIgnoringExpiry("vencida"); ok {
		t.Error("entrada vencida não foi removida após Get")
	}

	if _, ok := c.Get("inexistente"); ok {
		t.Error("Get retornou chave nunca gravada")
	}

	c.Delete("fresh")
	if _, ok := c.Get("fresh"); ok {
		t.Error("Get retornou chave deletada")
	}
}

func TestGetIgnoringExpiry(t *testing.T) {
	c := NewTTLCache(10)

	c.Set("k", "stale", -time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatal("Get deveria recusar entrada vencida")
	}

	c.Set("k", "stale", -time.Minute)
	v, ok := c.GetIgnoringExpiry("k")
	if !ok || v != "stale" {
		t.Errorf("GetIgnoringExpiry = (%v, %v), esperado (stale, true)", v, ok)
	}
	// leitura stale não remove a entrada
	if _, ok := c.GetIgnoringExpiry("k"); !ok {
		t.Error("GetIgnoringExpiry removeu a entrada")
	}
}

func TestHasDoesNotCountHit(t *testing.T) {
	c := NewTTLCache(10)
	c.Set("k", 1, time.Minute)

	if !c.Has("k") {
		t.Fatal("Has(k) = false")
	}
	if c.Has("outra") {
		t.Error("Has retornou true para chave ausente")
	}
	if got := c.Stats().Hits; got != 0 {
		t.Errorf("Has incrementou hits: %d", got)
	}

	c.Get("k")
	c.Get("k")
	if got := c.Stats().Hits; got != 2 {
		t.Errorf("Stats().Hits = %d, esperado 2", got)
	}
}

func TestCapacityBound(t *testing.T) {
	const maxSize = 5
	c := NewTTLCache(maxSize)

	for i := 0; i < 3*maxSize; i++ {
		c.Set(fmt.Sprintf("k%d", i), i, time.Minute)
		if got := c.Stats().Total; got > maxSize {
			t.Fatalf("cache ultrapassou a capacidade: %d > %d", got, maxSize)
		}
	}
}

func TestEvictionPrefersExpired(t *testing.T) {
	c := NewTTLCache(3)

	c.Set("viva1", 1, time.Hour)
	c.Set("viva2", 2, time.Hour)
	c.Set("morta", 3, -time.Minute)

	// cache cheio; a vencida deve sair primeiro
	c.Set("nova", 4, time.Hour)

	if _, ok := c.GetIgnoringExpiry("morta"); ok {
		t.Error("eviction deveria ter removido a entrada vencida primeiro")
	}
	for _, k := range []string{"viva1", "viva2", "nova"} {
		if !c.Has(k) {
			t.Errorf("entrada %q foi removida indevidamente", k)
		}
	}
}

func TestEvictionOldestWhenNoneExpired(t *testing.T) {
	c := NewTTLCache(2)

	c.Set("curta", 1, time.Minute)
	c.Set("longa", 2, time.Hour)

	c.Set("nova", 3, time.Hour)

	// sem vencidas, sai a de expiração mais próxima
	if _, ok := c.GetIgnoringExpiry("curta"); ok {
		t.Error("eviction deveria ter removido a entrada mais antiga (menor expiresAt)")
	}
	if !c.Has("longa") || !c.Has("nova") {
		t.Error("entradas erradas removidas pela eviction")
	}
}

func TestCleanupRemovesOnlyExpired(t *testing.T) {
	c := NewTTLCache(10)

	c.Set("viva", 1, time.Hour)
	c.Set("morta1", 2, -time.Second)
	c.Set("morta2", 3, -time.Second)

	if removed := c.Cleanup(); removed != 2 {
		t.Errorf("Cleanup() = %d, esperado 2", removed)
	}
	if !c.Has("viva") {
		t.Error("Cleanup removeu entrada não vencida")
	}
	if got := c.Stats().Total; got != 1 {
		t.Errorf("Total após cleanup = %d, esperado 1", got)
	}
}

func TestStatsSnapshot(t *testing.T) {
	c := NewTTLCache(50)

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)
	c.Set("c", 3, -time.Second)

	st := c.Stats()
	if st.Total != 3 || st.Active != 2 || st.Expired != 1 || st.MaxSize != 50 {
		t.Errorf("Stats = %+v, esperado total=3 active=2 expired=1 maxSize=50", st)
	}
}

func TestKeysIsSnapshot(t *testing.T) {
	c := NewTTLCache(10)
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)

	keys := c.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() = %v", keys)
	}

	c.Set("c", 3, time.Hour)
	if len(keys) != 2 {
		t.Error("Keys deveria ser um snapshot, não uma view viva")
	}
}

func TestClear(t *testing.T) {
	c := NewTTLCache(10)
	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)

	c.Clear()
	if got := c.Stats().Total; got != 0 {
		t.Errorf("Total após Clear = %d", got)
	}
}
