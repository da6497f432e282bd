package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goji "goji.io"
	"goji.io/pat"
	"golang.org/x/crypto/acme/autocert"

	"github.com/thingful/twirp-go/example/haberdasher"
	"github.com/thingful/twirp-go/internal/middleware"
	"github.com/thingful/twirp-go/pkg/clock"
	"github.com/thingful/twirp-go/pkg/metrics"
	"github.com/thingful/twirp-go/pkg/system"
	"github.com/thingful/twirp-go/pkg/version"
)

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "twirp",
		Subsystem: "haberdasher",
		Name:      "build_info",
		Help:      "Information about the current build of the service",
	}, []string{"name", "version", "build_date"},
)

func init() {
	metrics.MustRegister(buildInfo)
}

// Config is a top level config object, populated by viper in the command
// layer and passed down to NewServer.
type Config struct {
	ListenAddr string
	Verbose    bool
	Domains    []string
}

// Server is our top level type: an HTTP server exposing the Haberdasher
// Twirp service, a Prometheus /metrics endpoint and a /pulse liveness
// endpoint. It implements system.Component so it can be started and stopped
// the same way as any other component in this codebase.
type Server struct {
	srv     *http.Server
	logger  kitlog.Logger
	domains []string
}

// PulseHandler is the simplest possible handler function - used to expose an
// endpoint which a load balancer can ping to verify that a node is running
// and accepting connections.
func PulseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok")
	})
}

// NewServer builds a Server wrapping the Haberdasher reference service.
func NewServer(config *Config, logger kitlog.Logger) *Server {
	buildInfo.WithLabelValues(version.BinaryName, version.Version, version.BuildDate)

	logger = kitlog.With(logger, "module", "server")
	logger.Log(
		"msg", "creating server",
		"listenAddr", config.ListenAddr,
	)

	svc := haberdasher.NewService()
	twirpHandler := haberdasher.NewHaberdasherServer(svc)

	mux := goji.NewMux()

	mux.Handle(pat.Post("/twirp/haberdasher.Haberdasher/*"), twirpHandler)
	mux.Handle(pat.Get("/pulse"), PulseHandler())
	mux.Handle(pat.Get("/metrics"), promhttp.Handler())

	mux.Use(middleware.RequestIDMiddleware)

	metricsMiddleware := middleware.MetricsMiddleware("twirp", "haberdasher", clock.New())
	mux.Use(metricsMiddleware)

	srv := &http.Server{
		Addr:    config.ListenAddr,
		Handler: mux,
	}

	return &Server{
		srv:     srv,
		logger:  logger,
		domains: config.Domains,
	}
}

// Start starts the server running, blocking until an interrupt signal is
// received, at which point it shuts down gracefully. If the listener fails
// (e.g. the address cannot be bound), Start returns that error instead.
func (s *Server) Start() error {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	errChan := make(chan error, 1)

	go func() {
		s.logger.Log(
			"listenAddr", s.srv.Addr,
			"msg", "starting server",
			"pathPrefix", "/twirp/haberdasher.Haberdasher/",
			"tlsEnabled", isTLSEnabled(s.domains),
		)

		if isTLSEnabled(s.domains) {
			m := &autocert.Manager{
				Cache:      autocert.DirCache("certs"),
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(s.domains...),
			}

			s.srv.TLSConfig = m.TLSConfig()

			if err := s.srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				errChan <- errors.Wrap(err, "ListenAndServeTLS()")
			}
		} else {
			if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- errors.Wrap(err, "ListenAndServe()")
			}
		}
	}()

	select {
	case <-stopChan:
		return s.Stop()
	case err := <-errChan:
		signal.Stop(stopChan)
		return err
	}
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	s.logger.Log("msg", "stopping")
	ctx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFn()

	if err := s.srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "failed to shut down server")
	}
	return nil
}

var _ system.Component = (*Server)(nil)

// isTLSEnabled returns true if we have been given at least one domain to
// request a certificate for.
func isTLSEnabled(domains []string) bool {
	return len(domains) > 0
}
