package aggregating

import (
	"container/list"
	"sync"
	"time"

	"github.com/vfg2006/portal-indicadores-api/pkg/utils"
)

// Registry mantém as sessões ativas com expiração por inatividade e limite de tamanho (LRU)
type Registry struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	newSession func(id string) *Session
	items      map[string]*list.Element
	lru        *list.List
}

type registryEntry struct {
	id         string
	session    *Session
	lastAccess time.Time
}

func NewRegistry(factory func(id string) *Session, maxEntries int, ttl time.Duration, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}

	return &Registry{
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        now,
		newSession: factory,
		items:      make(map[string]*list.Element),
		lru:        list.New(),
	}
}

// Session devolve a sessão do id informado, criando uma nova quando o id é vazio,
// desconhecido ou expirado. O id devolvido deve ser repassado ao cliente.
func (r *Registry) Session(id string) (*Session, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if id != "" {
		if elem, ok := r.items[id]; ok {
			entry := elem.Value.(*registryEntry)
			if r.ttl <= 0 || now.Sub(entry.lastAccess) <= r.ttl {
				entry.lastAccess = now
				r.lru.MoveToFront(elem)
				return entry.session, id, nil
			}
			r.removeElement(elem)
		}
	} else {
		generated, err := utils.GenerateSessionID()
		if err != nil {
			return nil, "", ErrGenerateSessionID
		}
		id = generated
	}

	session := r.newSession(id)
	elem := r.lru.PushFront(&registryEntry{id: id, session: session, lastAccess: now})
	r.items[id] = elem

	if r.lru.Len() > r.maxEntries {
		if oldest := r.lru.Back(); oldest != nil {
			r.removeElement(oldest)
		}
	}

	return session, id, nil
}

// CleanExpired remove as sessões expiradas e retorna quantas foram removidas
func (r *Registry) CleanExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ttl <= 0 {
		return 0
	}

	now := r.now()
	var toRemove []*list.Element
	for elem := r.lru.Front(); elem != nil; elem = elem.Next() {
		if now.Sub(elem.Value.(*registryEntry).lastAccess) > r.ttl {
			toRemove = append(toRemove, elem)
		}
	}

	for _, elem := range toRemove {
		r.removeElement(elem)
	}

	return len(toRemove)
}

func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *Registry) removeElement(elem *list.Element) {
	entry := elem.Value.(*registryEntry)
	delete(r.items, entry.id)
	r.lru.Remove(elem)
}
