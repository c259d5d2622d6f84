package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/ports"
	dbbadger "github.com/tdex-network/stationd/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/stationd/internal/infrastructure/storage/db/inmemory"
	postgresdb "github.com/tdex-network/stationd/internal/infrastructure/storage/db/pg"
	"github.com/tdex-network/stationd/pkg/stats"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
	DBPostgres = "postgres"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
		DBPostgres: {},
	}
)

type Config struct {
	DBType string
	// DBConfig is the datadir (string) for badger and a postgresdb.DbConfig
	// for postgres. It's ignored for inmemory.
	DBConfig interface{}

	// Optional webhook pubsub, closed along with the services.
	PubSub  ports.PubSub
	Metrics *stats.Metrics

	repo      ports.RepoManager
	pubsub    PubSubService
	operator  OperatorService
	trade     TradeService
	liquidity LiquidityService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) PubSubService() PubSubService {
	return c.pubsubService()
}

func (c *Config) OperatorService() OperatorService {
	if c.operator == nil {
		repo, _ := c.repoManager()
		c.operator = NewOperatorService(repo, c.pubsubService(), c.Metrics)
	}
	return c.operator
}

func (c *Config) TradeService() TradeService {
	if c.trade == nil {
		repo, _ := c.repoManager()
		c.trade = NewTradeService(repo, c.pubsubService(), c.Metrics)
	}
	return c.trade
}

func (c *Config) LiquidityService() LiquidityService {
	if c.liquidity == nil {
		repo, _ := c.repoManager()
		c.liquidity = NewLiquidityService(repo, c.pubsubService(), c.Metrics)
	}
	return c.liquidity
}

// Close releases the pubsub and the repositories.
func (c *Config) Close() {
	if c.pubsub != nil {
		c.pubsub.Close()
	}
	if c.repo != nil {
		c.repo.Close()
	}
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.StandardLogger())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBPostgres:
			dbConfig, ok := c.DBConfig.(postgresdb.DbConfig)
			if !ok {
				return nil, fmt.Errorf("invalid postgres db config")
			}
			repoManager, err := postgresdb.NewService(dbConfig)
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) pubsubService() PubSubService {
	if c.pubsub == nil {
		c.pubsub = NewPubSubService(c.PubSub)
	}
	return c.pubsub
}
