package account

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store persists account creation requests.
type Store interface {
	CreateAccount(ctx context.Context, req Request) (AccountID, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(ctx context.Context, req Request) (AccountID, error)

func (f StoreFunc) CreateAccount(ctx context.Context, req Request) (AccountID, error) {
	return f(ctx, req)
}

// Record is an account held by MemoryStore.
type Record struct {
	ID       AccountID
	Username string
	Email    string
	Fields   map[string]string
}

// MemoryStore keeps accounts in process. Usernames are unique, compared
// case-insensitively.
type MemoryStore struct {
	mu       sync.Mutex
	byName   map[string]AccountID
	accounts map[AccountID]Record
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byName:   make(map[string]AccountID),
		accounts: make(map[AccountID]Record),
	}
}

func (s *MemoryStore) CreateAccount(ctx context.Context, req Request) (AccountID, error) {
	if err := ctx.Err(); err != nil {
		return "", &StorageError{Op: "create", Err: err}
	}

	key := strings.ToLower(req.Username())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byName[key]; exists {
		return "", &StorageError{Op: "create", Err: ErrDuplicateUsername}
	}

	id := AccountID(uuid.NewString())
	s.byName[key] = id
	s.accounts[id] = Record{
		ID:       id,
		Username: req.Username(),
		Email:    req.Email(),
		Fields:   req.Fields(),
	}
	return id, nil
}

// Lookup returns the account stored under username.
func (s *MemoryStore) Lookup(username string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byName[strings.ToLower(username)]
	if !ok {
		return Record{}, false
	}
	return s.accounts[id], true
}

// Len reports how many accounts are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}
