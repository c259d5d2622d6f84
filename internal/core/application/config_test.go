package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/stationd/internal/core/application"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		dbType   string
		dbConfig interface{}
	}{
		{"inmemory", application.DBInMemory, nil},
		{"badger_inmemory", application.DBBadger, ""},
		{"badger", application.DBBadger, t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &application.Config{DBType: tt.dbType, DBConfig: tt.dbConfig}
			require.NoError(t, cfg.Validate())
			defer cfg.Close()

			require.NotNil(t, cfg.RepoManager())
			require.NotNil(t, cfg.OperatorService())
			require.NotNil(t, cfg.TradeService())
			require.NotNil(t, cfg.LiquidityService())
			require.NotNil(t, cfg.PubSubService())

			// Services share the same repositories.
			poolID := newPricedPool(t, cfg)
			pools, err := cfg.OperatorService().ListPools(ctx)
			require.NoError(t, err)
			require.Len(t, pools, 1)
			require.Equal(t, poolID, pools[0].ID)
		})
	}
}

func TestFailingConfig(t *testing.T) {
	cfg := &application.Config{DBType: "mysql"}
	err := cfg.Validate()
	require.ErrorIs(t, err, application.ErrUnsupportedDBType)

	cfg = &application.Config{DBType: application.DBPostgres, DBConfig: "invalid"}
	err = cfg.Validate()
	require.Error(t, err)
}
