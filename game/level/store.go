package level

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Indeximal/magnate/game/engine"
)

// SlotStore persists saved level documents by slot number. Implementations
// return ErrLevelNotFound for vacant slots. Slot range checks happen in the
// Manager, so stores may assume 0 <= slot < NumSlots.
type SlotStore interface {
	Load(slot int) (*engine.Level, error)
	Save(slot int, lv *engine.Level) error
	Exists(slot int) bool
}

// FileStore keeps one JSON document per slot in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed slot store. The directory is created if
// missing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create level directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Load(slot int) (*engine.Level, error) {
	data, err := os.ReadFile(fs.slotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	return DecodeLevel(data)
}

func (fs *FileStore) Save(slot int, lv *engine.Level) error {
	data, err := EncodeLevel(lv)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fs.slotPath(slot), data, 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}
	return nil
}

func (fs *FileStore) Exists(slot int) bool {
	_, err := os.Stat(fs.slotPath(slot))
	return err == nil
}

func (fs *FileStore) slotPath(slot int) string {
	return filepath.Join(fs.dir, fmt.Sprintf("slot%d.json", slot))
}

// MemoryStore keeps encoded documents in memory. It stands in for the local
// storage the original game saves to and is handy in tests. Levels round-trip
// through the codec, so stored documents are validated exactly like files.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[int][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[int][]byte)}
}

func (ms *MemoryStore) Load(slot int) (*engine.Level, error) {
	ms.mu.RLock()
	data, exists := ms.slots[slot]
	ms.mu.RUnlock()

	if !exists {
		return nil, ErrLevelNotFound
	}
	return DecodeLevel(data)
}

func (ms *MemoryStore) Save(slot int, lv *engine.Level) error {
	data, err := EncodeLevel(lv)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	ms.slots[slot] = data
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) Exists(slot int) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, exists := ms.slots[slot]
	return exists
}
