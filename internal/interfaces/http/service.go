package httpinterface

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stationd/internal/core/application"
	interfaces "github.com/tdex-network/stationd/internal/interfaces"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type ServiceOpts struct {
	Address        string
	TLSKey         string
	TLSCert        string
	AllowedOrigins []string
	// RateLimit is the number of requests per second accepted by the server,
	// zero disables the limiter.
	RateLimit      float64
	RateLimitBurst int

	OperatorSvc  application.OperatorService
	TradeSvc     application.TradeService
	LiquiditySvc application.LiquidityService
	PubSubSvc    application.PubSubService
	// Gatherer is used to expose metrics at /metrics, if not nil.
	Gatherer prometheus.Gatherer
}

func (o ServiceOpts) validate() error {
	if o.Address == "" {
		return fmt.Errorf("missing listening address")
	}
	if _, _, err := net.SplitHostPort(o.Address); err != nil {
		return fmt.Errorf("invalid listening address %s: %s", o.Address, err)
	}
	if (o.TLSKey == "") != (o.TLSCert == "") {
		return fmt.Errorf("tls key and cert must be either both defined or not")
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if o.RateLimit > 0 && o.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be greater than zero")
	}
	if o.OperatorSvc == nil {
		return fmt.Errorf("operator app service must not be null")
	}
	if o.TradeSvc == nil {
		return fmt.Errorf("trade app service must not be null")
	}
	if o.LiquiditySvc == nil {
		return fmt.Errorf("liquidity app service must not be null")
	}
	if o.PubSubSvc == nil {
		return fmt.Errorf("pubsub app service must not be null")
	}
	return nil
}

func (o ServiceOpts) withTLS() bool {
	return o.TLSKey != ""
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              opts.Address,
			Handler:           newRouter(opts),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	if s.opts.withTLS() {
		certificate, err := tls.LoadX509KeyPair(s.opts.TLSCert, s.opts.TLSKey)
		if err != nil {
			lis.Close()
			return err
		}
		lis = tls.NewListener(lis, &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{certificate},
		})
	}

	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("rest server stopped unexpectedly")
		}
	}()

	proto := "http"
	if s.opts.withTLS() {
		proto = "https"
	}
	log.Infof("rest interface listening on %s://%s", proto, s.opts.Address)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error while shutting down rest interface")
		return
	}
	log.Debug("disabled rest interface")
}

// newRouter returns the handler serving all the routes of the REST
// interface, wrapped with the cors, logger and rate limiter middlewares.
func newRouter(opts ServiceOpts) http.Handler {
	h := newHandler(
		opts.OperatorSvc, opts.TradeSvc, opts.LiquiditySvc, opts.PubSubSvc,
	)

	router := mux.NewRouter()
	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/pools", h.createPool).Methods(http.MethodPost)
	v1.HandleFunc("/pools", h.listPools).Methods(http.MethodGet)
	v1.HandleFunc("/pools/{id}", h.getPool).Methods(http.MethodGet)
	v1.HandleFunc("/pools/{id}", h.dropPool).Methods(http.MethodDelete)
	v1.HandleFunc("/pools/{id}/prices", h.updatePrices).Methods(http.MethodPut)
	v1.HandleFunc("/pools/{id}/withdraw-fee", h.updateWithdrawFeeRate).
		Methods(http.MethodPut)

	v1.HandleFunc("/pools/{id}/swap/preview", h.previewSwap).Methods(http.MethodPost)
	v1.HandleFunc("/pools/{id}/swap", h.swap).Methods(http.MethodPost)
	v1.HandleFunc("/pools/{id}/swap-fee", h.quoteSwapFee).Methods(http.MethodPost)

	v1.HandleFunc("/pools/{id}/join/preview", h.previewJoin).Methods(http.MethodPost)
	v1.HandleFunc("/pools/{id}/join", h.join).Methods(http.MethodPost)
	v1.HandleFunc("/pools/{id}/exit/preview", h.previewExit).Methods(http.MethodPost)
	v1.HandleFunc("/pools/{id}/exit", h.exit).Methods(http.MethodPost)

	v1.HandleFunc("/webhooks", h.addWebhook).Methods(http.MethodPost)
	v1.HandleFunc("/webhooks", h.listWebhooks).Methods(http.MethodGet)
	v1.HandleFunc("/webhooks/{id}", h.removeWebhook).Methods(http.MethodDelete)

	v1.Handle("/events", newEventsHandler(opts.PubSubSvc, opts.AllowedOrigins)).
		Methods(http.MethodGet)

	if opts.Gatherer != nil {
		router.Handle(
			"/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}),
		).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Errorf("route not found"))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		},
	)

	router.Use(loggerMiddleware)
	if opts.RateLimit > 0 {
		router.Use(rateLimiterMiddleware(opts.RateLimit, opts.RateLimitBurst))
	}

	return cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}
