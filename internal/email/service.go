package email

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/example/storefront/internal/metrics"
)

// Config holds SMTP settings. Sending is disabled unless Server, Username,
// Password and Sender are all set.
type Config struct {
	Server   string
	Port     string
	Username string
	Password string
	Sender   string
	Vendor   string
}

func (c Config) Enabled() bool {
	return c.Server != "" && c.Username != "" && c.Password != "" && c.Sender != ""
}

// SendFunc has the signature of smtp.SendMail. The default dials with a
// deadline (see WithTimeout).
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Service handles email sending via SMTP
type Service struct {
	cfg     Config
	send    SendFunc
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Entry
}

type Option func(*Service)

// WithSendFunc replaces the SMTP sender. Used by tests.
func WithSendFunc(fn SendFunc) Option {
	return func(s *Service) { s.send = fn }
}

// WithTimeout bounds each delivery attempt. Defaults to DefaultSendTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService creates a new email service
func NewService(cfg Config, log *logrus.Entry, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		timeout: DefaultSendTimeout,
		log:     log,
	}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			state := float64(0)
			switch to {
			case gobreaker.StateOpen:
				state = 1
			case gobreaker.StateHalfOpen:
				state = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(state)
			log.WithFields(logrus.Fields{"from": from.String(), "to": to.String()}).Warn("smtp circuit breaker state changed")
		},
	})
	for _, opt := range opts {
		opt(s)
	}
	if s.send == nil {
		s.send = dialSend(s.timeout)
	}
	return s
}

// Enabled reports whether SMTP is configured.
func (s *Service) Enabled() bool {
	return s.cfg.Enabled()
}

// SendOrderConfirmation mails c to the customer and, if configured, the
// vendor. It does nothing when SMTP is not configured or the customer left
// no email address.
func (s *Service) SendOrderConfirmation(ctx context.Context, c Confirmation) error {
	if !s.cfg.Enabled() || c.CustomerEmail == "" {
		s.log.Debug("order confirmation skipped")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to := []string{c.CustomerEmail}
	if s.cfg.Vendor != "" {
		to = append(to, s.cfg.Vendor)
	}

	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.deliver(to, Subject(c.Lang), BuildOrderConfirmationBody(c))
	})
	if err != nil {
		return fmt.Errorf("send order confirmation: %w", err)
	}
	return nil
}

func (s *Service) deliver(to []string, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.cfg.Sender, strings.Join(to, ", "), mime.QEncoding.Encode("utf-8", subject), body)

	// The sender upgrades with STARTTLS when the server offers it.
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Server)
	addr := net.JoinHostPort(s.cfg.Server, s.cfg.Port)
	return s.send(addr, auth, s.cfg.Sender, to, []byte(msg))
}
