// Package probe checks whether a connection URL is reachable.
package probe

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	// Registers the "postgres" driver with database/sql.
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds a single probe when the caller sets none.
const DefaultTimeout = 5 * time.Second

// defaultPorts maps URL schemes to the port used when the URL has none.
var defaultPorts = map[string]string{
	"http":       "80",
	"https":      "443",
	"postgres":   "5432",
	"postgresql": "5432",
}

// Checker reports whether a live connection can be made to a URL.
type Checker interface {
	Check(ctx context.Context, rawURL string) error
}

// Prober is the production Checker.
// PostgreSQL URLs are opened with lib/pq and pinged, so credentials and the
// database name are verified too. Every other scheme gets a TCP dial.
type Prober struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// New returns a Prober with the given timeout.
func New(timeout time.Duration, logger logrus.FieldLogger) *Prober {
	return &Prober{Timeout: timeout, Logger: logger}
}

// Check probes rawURL within the configured timeout.
func (p *Prober) Check(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("url %q has no host", rawURL)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := p.logger().WithFields(logrus.Fields{"scheme": u.Scheme, "host": u.Host})
	start := time.Now()

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		err = pingPostgres(ctx, rawURL)
	default:
		err = dialTCP(ctx, u)
	}

	log = log.WithField("elapsed", time.Since(start))
	if err != nil {
		log.WithError(err).Debug("probe failed")
		return err
	}
	log.Debug("probe succeeded")
	return nil
}

func (p *Prober) logger() logrus.FieldLogger {
	if p.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		return l
	}
	return p.Logger
}

// pingPostgres opens a single connection and pings the server.
func pingPostgres(ctx context.Context, rawURL string) error {
	db, err := sql.Open("postgres", rawURL)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping postgres: %w", err)
	}
	return nil
}

// dialTCP opens and immediately closes a TCP connection to the URL's host.
func dialTCP(ctx context.Context, u *url.URL) error {
	port := u.Port()
	if port == "" {
		port = defaultPorts[strings.ToLower(u.Scheme)]
	}
	if port == "" {
		return fmt.Errorf("url %q has no port and scheme %q has no default", u.Redacted(), u.Scheme)
	}

	addr := net.JoinHostPort(u.Hostname(), port)
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return conn.Close()
}
