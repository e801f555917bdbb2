package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	nats "github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Jonathan-Adapt/pcbridge/config"
	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol"
	"github.com/Jonathan-Adapt/pcbridge/pkg/api"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage/memory"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage/postgres"
)

type agentControlServer struct {
	c *config.Config

	quitCh chan bool
	doneCh chan bool

	nc    *nats.Conn
	ctrl  *agentcontrol.Controller
	store storage.Interface
	errCh chan error
	wg    sync.WaitGroup
}

func init() {
	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	logrus.SetFormatter(formatter)

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	log.SetLevel(log.InfoLevel)
}

func newAgentControlServer(c *config.Config) (*agentControlServer, error) {
	s := &agentControlServer{
		c:      c,
		quitCh: make(chan bool),
		doneCh: make(chan bool),

		errCh: make(chan error, 1),
		wg:    sync.WaitGroup{},
	}

	nc, err := nats.Connect(c.NATSServerURL,
		nats.DrainTimeout(10*time.Second),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Errorf("nats error handler: %s", err)
			s.errCh <- err
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Debug("nats connection closed")
		}),
		nats.DisconnectHandler(func(_ *nats.Conn) {
			// This handler fires twice when the NATS server goes offline: once
			// when the server is gone and again when the drain is initiated.
			log.Warn("nats connection lost")
			syscall.Kill(syscall.Getpid(), syscall.SIGINT)
		}))
	if err != nil {
		return nil, err
	}

	s.nc = nc

	store, err := newStore(c)
	if err != nil {
		nc.Close()
		return nil, err
	}
	s.store = store

	return s, nil
}

// newStore connects to PostgreSQL when a database URL is configured and
// falls back to the in-memory store otherwise.
func newStore(c *config.Config) (storage.Interface, error) {
	if c.DatabaseURL == "" {
		log.Warn("No database URL configured, using in-memory store")
		return memory.NewStore(), nil
	}

	db, err := sqlx.Open("postgres", c.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return postgres.NewStore(db), nil
}

func (s *agentControlServer) Serve() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(logger())

	// Create the controller and let it reattach to all known peers
	ctrl := agentcontrol.NewController(s.nc, s.store,
		agentcontrol.WithControllerKeyReleaseDelay(time.Duration(s.c.KeyReleaseDelayMillis)*time.Millisecond),
		agentcontrol.WithControllerReconnectDelay(time.Duration(s.c.ReconnectDelaySeconds)*time.Second))
	if err := ctrl.Subscribe(); err != nil {
		log.Error("failed to subscribe controller: ", err)
		s.errCh <- err
		return
	}
	if err := ctrl.Start(); err != nil {
		log.Error("failed to start controller: ", err)
		s.errCh <- err
		return
	}
	s.ctrl = ctrl

	// Register API endpoints
	apiHandler := api.NewHandler(s.nc, s.store, ctrl)
	apiHandler.RegisterRoutes(e)

	go func() {
		log.WithFields(log.Fields{
			"host": s.c.BindHost,
			"port": s.c.BindPort,
		}).Info("Starting server")

		if err := e.Start(fmt.Sprintf("%s:%d", s.c.BindHost, s.c.BindPort)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	// Wait until receiving the quit signal
	<-s.quitCh
	log.Info("Shutdown signal received")

	// Create a 10 second timeout context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the echo web server
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}

	// We've done!
	s.doneCh <- true
}

// Logger returns a middleware that logs HTTP requests.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			var err error
			if err = next(c); err != nil {
				c.Error(err)
			}
			stop := time.Now()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}
			reqSizeStr := req.Header.Get(echo.HeaderContentLength)
			if reqSizeStr == "" {
				reqSizeStr = "0"
			}
			reqSize, err := strconv.ParseInt(reqSizeStr, 10, 0)
			if err != nil {
				reqSize = -1
			}
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			}

			log.WithFields(log.Fields{
				"timestamp":     stop.Format(time.RFC3339),
				"id":            id,
				"remote_ip":     c.RealIP(),
				"host":          req.Host,
				"method":        req.Method,
				"uri":           req.RequestURI,
				"protocol":      req.Proto,
				"user_agent":    req.UserAgent(),
				"status":        res.Status,
				"status_text":   http.StatusText(res.Status),
				"referer":       req.Referer(),
				"error":         errMsg,
				"bytes_in":      reqSize,
				"bytes_out":     res.Size,
				"latency":       stop.Sub(start).Nanoseconds(),
				"latency_human": stop.Sub(start).String(),
			}).Infof("%s %s %s %d %s", req.Method, req.RequestURI, req.Proto,
				res.Status, strconv.FormatInt(res.Size, 10))

			return err
		}
	}
}

func (s *agentControlServer) Shutdown() {
	if s.ctrl != nil {
		s.ctrl.Shutdown()
	}

	if s.nc != nil {
		s.nc.Drain()
	}

	// Send the quit signal to the server.Serve() routine
	s.quitCh <- true

	// Wait up to 10 seconds
	select {
	case <-s.doneCh:
		log.Info("Shutdown server successful")
	case <-time.After(10 * time.Second):
		log.Error("Shutdown server failed")
	}
}

func RunServeAgentControl(c *config.Config) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		s, err := newAgentControlServer(c)
		if err != nil {
			log.Error("failed to create new server instance: ", err)
			os.Exit(1)
		}

		go s.Serve()

		// Wait for interrupt signal to gracefully shutdown the server
		quitCh := make(chan os.Signal, 1)
		signal.Notify(quitCh, os.Interrupt)
		<-quitCh

		// Shutdown the server
		s.Shutdown()
	}
}
