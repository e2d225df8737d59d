package host

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// Store persists committed accounts. Get returns an empty system-owned
// account for unknown addresses. Commit applies every account atomically and
// deletes those left with zero lamports.
type Store interface {
	Get(key solana.PublicKey) (*Account, error)
	Commit(accounts map[solana.PublicKey]*Account) error
	Close() error
}

type MemoryStore struct {
	sync.RWMutex
	accounts map[solana.PublicKey]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[solana.PublicKey]*Account)}
}

func (s *MemoryStore) Get(key solana.PublicKey) (*Account, error) {
	s.RLock()
	defer s.RUnlock()

	if a, ok := s.accounts[key]; ok {
		return a.Clone(), nil
	}
	return NewEmptyAccount(), nil
}

func (s *MemoryStore) Commit(accounts map[solana.PublicKey]*Account) error {
	s.Lock()
	defer s.Unlock()

	for key, a := range accounts {
		if a.Lamports == 0 {
			delete(s.accounts, key)
			continue
		}
		s.accounts[key] = a.Clone()
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var accountPrefix = []byte("acct:")

func accountKey(key solana.PublicKey) []byte {
	k := make([]byte, 0, len(accountPrefix)+solana.PublicKeyLength)
	k = append(k, accountPrefix...)
	return append(k, key[:]...)
}

type LevelDBStore struct {
	db *leveldb.DB
}

func NewLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// NewMemLevelDBStore backs a LevelDB store with in-memory storage.
func NewMemLevelDBStore() (*LevelDBStore, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Get(key solana.PublicKey) (*Account, error) {
	data, err := s.db.Get(accountKey(key), nil)
	if err == leveldb.ErrNotFound {
		return NewEmptyAccount(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeAccount(data)
}

func (s *LevelDBStore) Commit(accounts map[solana.PublicKey]*Account) error {
	batch := new(leveldb.Batch)
	for key, a := range accounts {
		if a.Lamports == 0 {
			batch.Delete(accountKey(key))
			continue
		}
		data, err := encodeAccount(a)
		if err != nil {
			return err
		}
		batch.Put(accountKey(key), data)
	}
	return s.db.Write(batch, nil)
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
