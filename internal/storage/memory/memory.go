// Package memory provides an in-memory implementation of the storage.Store
// interface. All collections live in process memory behind a single
// read-write mutex, so check-then-mutate operations (joins, contributions,
// ballots) are atomic with respect to concurrent requests.
package memory

import (
	"math/rand"
	"sync"
	"time"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

const inviteCodeLength = 6

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MemoryStore implements storage.Store with in-process maps.
type MemoryStore struct {
	mu sync.RWMutex

	users        map[int64]*models.User
	usersByPhone map[string]int64
	stokvels     map[int64]*models.Stokvel
	inviteCodes  map[string]int64
	votes        map[int64]*models.Vote
	progress     map[int64]*models.Progress

	nextUserID    int64
	nextStokvelID int64
	nextVoteID    int64

	rng *rand.Rand
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]*models.User),
		usersByPhone: make(map[string]int64),
		stokvels:     make(map[int64]*models.Stokvel),
		inviteCodes:  make(map[string]int64),
		votes:        make(map[int64]*models.Vote),
		progress:     make(map[int64]*models.Progress),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

// newInviteCode samples a 6-character uppercase code, retrying until it
// does not collide with an existing stokvel's code. Must be called with
// the write lock held.
func (s *MemoryStore) newInviteCode() string {
	for {
		b := make([]byte, inviteCodeLength)
		for i := range b {
			b[i] = inviteCodeAlphabet[s.rng.Intn(len(inviteCodeAlphabet))]
		}
		code := string(b)
		if _, taken := s.inviteCodes[code]; !taken {
			return code
		}
	}
}
