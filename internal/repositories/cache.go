package repositories

import (
	"context"

	"github.com/dgraph-io/ristretto"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// NewListCache builds the ristretto cache used to memoize per-user
// transaction lists.
func NewListCache() (*ristretto.Cache, error) {
	return ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
}

// CachedTransactionReadRepository memoizes ListByUser results per
// normalized username. Get and GetAll pass straight through. The write
// side must call Invalidate after every mutation of a user's ledger.
type CachedTransactionReadRepository struct {
	inner *TransactionReadRepository
	cache *ristretto.Cache
}

func NewCachedTransactionReadRepository(inner *TransactionReadRepository, cache *ristretto.Cache) *CachedTransactionReadRepository {
	return &CachedTransactionReadRepository{inner: inner, cache: cache}
}

func (r *CachedTransactionReadRepository) Get(ctx context.Context, id int64) (*models.TransactionDB, error) {
	return r.inner.Get(ctx, id)
}

func (r *CachedTransactionReadRepository) GetAll(ctx context.Context) ([]models.TransactionDB, error) {
	return r.inner.GetAll(ctx)
}

func (r *CachedTransactionReadRepository) ListByUser(ctx context.Context, username string) ([]models.TransactionDB, error) {
	if cached, ok := r.cache.Get(username); ok {
		txns, ok := cached.([]models.TransactionDB)
		if ok {
			logger.Log.Debugw("transaction list cache hit", "username", username, "count", len(txns))
			return txns, nil
		}
	}

	txns, err := r.inner.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	r.cache.Set(username, txns, int64(len(txns)+1))
	return txns, nil
}

// Invalidate drops the cached list for username.
func (r *CachedTransactionReadRepository) Invalidate(username string) {
	r.cache.Del(username)
}
