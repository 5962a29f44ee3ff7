package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const nonceTTL = 5 * time.Minute

// nonceStore 一次性 nonce，防止重放
type nonceStore struct {
	mu     sync.Mutex
	issued map[string]time.Time
	now    func() time.Time
}

func newNonceStore() *nonceStore {
	return &nonceStore{issued: make(map[string]time.Time), now: time.Now}
}

func generateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *nonceStore) issue() (string, error) {
	nonce, err := generateNonce()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for n, at := range s.issued {
		if now.Sub(at) > nonceTTL {
			delete(s.issued, n)
		}
	}
	s.issued[nonce] = now
	return nonce, nil
}

// consume reports whether nonce was issued and is still fresh. A nonce can
// be consumed once.
func (s *nonceStore) consume(nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.issued[nonce]
	if !ok {
		return false
	}
	delete(s.issued, nonce)
	return s.now().Sub(at) <= nonceTTL
}

// GET|POST /auth/nonce
func (h *Handler) Nonce(c *gin.Context) {
	nonce, err := h.nonces.issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate nonce"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nonce": nonce, "message": SignMessage(nonce)})
}
