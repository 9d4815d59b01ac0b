package cache

import (
	"sync"
	"time"
)

// Cache é a interface do cache em memória com TTL por entrada.
type Cache interface {
	Get(key string) (interface{}, bool)
	// GetIgnoringExpiry lê a entrada mesmo vencida (fallback degradado).
	// Não remove a entrada nem incrementa o contador de hits.
	GetIgnoringExpiry(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Has(key string) bool
	Delete(key string)
	Clear()
	Cleanup() int
	Keys() []string
	Stats() Stats
}

// Stats é um snapshot pontual do estado do cache.
type Stats struct {
	Total   int   `json:"total"`
	Active  int   `json:"active"`
	Expired int   `json:"expired"`
	MaxSize int   `json:"max_size"`
	Hits    int64 `json:"hits"`
}

// entry representa uma entrada no cache.
type entry struct {
	value     interface{}
	expiresAt time.Time
	hits      int64
}

// TTLCache implementa Cache com mapa protegido por RWMutex.
//
// Política de eviction quando o cache está cheio (determinística):
// primeiro um sweep remove todas as entradas vencidas; se ainda estiver na
// capacidade, remove-se a entrada com o expiresAt mais antigo até abrir
// espaço. Entradas vencidas também são removidas lazy na leitura; o sweep
// periódico fica a cargo de StartCleanupRoutine (sem timer por entrada).
type TTLCache struct {
	mu      sync.RWMutex
	items   map[string]*entry
	maxSize int
	hits    int64
}

// NewTTLCache cria um TTLCache com a capacidade indicada.
func NewTTLCache(maxSize int) *TTLCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	return &TTLCache{
		items:   make(map[string]*entry),
		maxSize: maxSize,
	}
}

// Set armazena value sob key, sobrescrevendo entrada existente.
// O ttl é aplicado como recebido; um ttl não positivo gera uma entrada
// já vencida (útil em testes e para invalidação implícita).
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictLocked()
	}

	c.items[key] = &entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get retorna o valor se a entrada existe e não venceu.
// Entradas vencidas são removidas na leitura.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(ent.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	ent.hits++
	c.hits++
	return ent.value, true
}

// GetIgnoringExpiry lê a entrada ignorando o TTL. É a válvula de escape
// usada pelo fetcher quando o upstream falha: melhor dado vencido que
// nenhum dado.
func (c *TTLCache) GetIgnoringExpiry(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.items[key]
	if !ok {
		return nil, false
	}
	return ent.value, true
}

// Has verifica presença com o mesmo critério de expiração do Get,
// sem incrementar o contador de hits.
func (c *TTLCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.items[key]
	return ok && !time.Now().After(ent.expiresAt)
}

// Delete remove a entrada incondicionalmente.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear esvazia o cache.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry)
}

// Cleanup remove todas as entradas vencidas e retorna quantas foram removidas.
func (c *TTLCache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, ent := range c.items {
		if now.After(ent.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Keys retorna um snapshot das chaves no momento da chamada.
func (c *TTLCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	return keys
}

// Stats retorna um snapshot consistente (tirado sob lock) do cache.
func (c *TTLCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	expired := 0
	for _, ent := range c.items {
		if now.After(ent.expiresAt) {
			expired++
		}
	}
	return Stats{
		Total:   len(c.items),
		Active:  len(c.items) - expired,
		Expired: expired,
		MaxSize: c.maxSize,
		Hits:    c.hits,
	}
}

// StartCleanupRoutine dispara um sweep periódico de entradas vencidas.
// O chamador é dono do ticker e deve pará-lo no shutdown.
func (c *TTLCache) StartCleanupRoutine(interval time.Duration) *time.Ticker {
	ticker := time.NewTicker(interval)

	go func() {
		for range ticker.C {
			c.Cleanup()
		}
	}()

	return ticker
}

// evictLocked abre espaço: sweep de vencidas primeiro e, se ainda cheio,
// remove a entrada com expiração mais antiga. Deve ser chamado com lock.
func (c *TTLCache) evictLocked() {
	now := time.Now()
	for key, ent := range c.items {
		if now.After(ent.expiresAt) {
			delete(c.items, key)
		}
	}

	for len(c.items) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for key, ent := range c.items {
			if oldestKey == "" || ent.expiresAt.Before(oldest) {
				oldest = ent.expiresAt
				oldestKey = key
			}
		}
		if oldestKey == "" {
			return
		}
		delete(c.items, oldestKey)
	}
}
