package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/config"
	"github.com/tdex-network/stationd/internal/core/application"
	"github.com/tdex-network/stationd/internal/core/ports"
	"github.com/tdex-network/stationd/internal/infrastructure/pubsub"
	httpinterface "github.com/tdex-network/stationd/internal/interfaces/http"
	"github.com/tdex-network/stationd/pkg/stats"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbType := config.GetString(config.DBTypeKey)
	enableProfiler := config.GetBool(config.EnableProfilerKey)
	statsInterval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT, os.Interrupt,
	)
	defer stop()

	if enableProfiler {
		profilerAddr := fmt.Sprintf("localhost:%d", config.GetInt(config.ProfilerPortKey))
		go func() {
			log.Infof("profiler listening on %s", profilerAddr)
			if err := http.ListenAndServe(profilerAddr, nil); err != nil {
				log.WithError(err).Warn("profiler stopped")
			}
		}()
		stats.EnableMemoryStatistics(
			ctx, statsInterval, filepath.Join(datadir, config.ProfilerLocation),
		)
	}

	metrics, err := stats.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register metrics")
	}

	var pubsubSvc ports.PubSub
	if config.GetBool(config.EnableWebhooksKey) {
		// Subscriptions are kept in memory unless pools are persisted with
		// badger.
		pubsubDir := ""
		if dbType == application.DBBadger {
			pubsubDir = filepath.Join(datadir, config.DbLocation)
		}
		pubsubSvc, err = pubsub.NewService(pubsubDir, log.StandardLogger())
		if err != nil {
			log.WithError(err).Fatal("failed to initialize webhook pubsub")
		}
	}

	appConfig := &application.Config{
		DBType:   dbType,
		DBConfig: config.GetDBConfig(),
		PubSub:   pubsubSvc,
		Metrics:  metrics,
	}
	if err := appConfig.Validate(); err != nil {
		log.WithError(err).Fatal("invalid app config")
	}
	defer appConfig.Close()

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:        fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey)),
		TLSKey:         config.GetString(config.HTTPTLSKeyKey),
		TLSCert:        config.GetString(config.HTTPTLSCertKey),
		AllowedOrigins: config.GetStringSlice(config.CORSAllowedOriginsKey),
		RateLimit:      config.GetFloat(config.RateLimitKey),
		RateLimitBurst: config.GetInt(config.RateLimitBurstKey),
		OperatorSvc:    appConfig.OperatorService(),
		TradeSvc:       appConfig.TradeService(),
		LiquiditySvc:   appConfig.LiquidityService(),
		PubSubSvc:      appConfig.PubSubService(),
		Gatherer:       prometheus.DefaultGatherer,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize rest interface")
	}

	log.RegisterExitHandler(svc.Stop)

	log.Debug("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start rest interface")
	}

	<-ctx.Done()

	log.Info("shutting down daemon")
	svc.Stop()
	log.Debug("exiting")
}
