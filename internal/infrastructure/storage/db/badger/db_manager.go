package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/domain"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	poolsDir  = "pools"
	pricesDir = "prices"

	gcInterval = 30 * time.Minute
)

type repoManager struct {
	poolStore  *badgerhold.Store
	priceStore *badgerhold.Store

	poolRepository  domain.PoolRepository
	priceRepository domain.PriceRepository

	quit chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// An empty baseDbDir makes the stores in-memory.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var poolsDbDir, pricesDbDir string
	if len(baseDbDir) > 0 {
		poolsDbDir = filepath.Join(baseDbDir, poolsDir)
		pricesDbDir = filepath.Join(baseDbDir, pricesDir)
	}

	poolStore, err := createDb(poolsDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening pools db: %w", err)
	}

	priceStore, err := createDb(pricesDbDir, logger)
	if err != nil {
		poolStore.Close()
		return nil, fmt.Errorf("opening prices db: %w", err)
	}

	rm := &repoManager{
		poolStore:       poolStore,
		priceStore:      priceStore,
		poolRepository:  NewPoolRepositoryImpl(poolStore),
		priceRepository: NewPriceRepositoryImpl(priceStore),
		quit:            make(chan struct{}),
	}

	if len(baseDbDir) > 0 {
		go rm.runValueLogGC()
	}

	return rm, nil
}

func (r *repoManager) PoolRepository() domain.PoolRepository {
	return r.poolRepository
}

func (r *repoManager) PriceRepository() domain.PriceRepository {
	return r.priceRepository
}

func (r *repoManager) Close() {
	close(r.quit)
	r.poolStore.Close()
	r.priceStore.Close()
}

func (r *repoManager) runValueLogGC() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			for _, s := range []*badgerhold.Store{r.poolStore, r.priceStore} {
				if err := s.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.WithError(err).Warn("badger value log gc")
				}
			}
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
