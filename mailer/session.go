package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
)

// Session - одна открытая сессия почтового сервера
type Session interface {
	Send(from, to string, msg []byte) error
	// Reset возвращает сессию в исходное состояние после неудачной отправки
	Reset() error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}

// SMTPDialer открывает сессию: TLS сразу для порта 465,
// иначе STARTTLS, если сервер его поддерживает, затем AUTH PLAIN
type SMTPDialer struct {
	Host     string
	Port     int
	Username string
	Password string
}

func (d SMTPDialer) Dial(ctx context.Context) (Session, error) {
	addr := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	tlsConfig := &tls.Config{ServerName: d.Host}

	var nd net.Dialer
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	// Для порта 465 TLS поднимается сразу
	if d.Port == 465 {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, d.Host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("starttls: %w", err)
		}
	}

	if d.Username != "" {
		auth := smtp.PlainAuth("", d.Username, d.Password, d.Host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
	}

	return &smtpSession{client: client}, nil
}

type smtpSession struct {
	client *smtp.Client
}

func (s *smtpSession) Send(from, to string, msg []byte) error {
	if err := s.client.Mail(from); err != nil {
		return err
	}
	if err := s.client.Rcpt(to); err != nil {
		return err
	}

	w, err := s.client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *smtpSession) Reset() error {
	return s.client.Reset()
}

func (s *smtpSession) Close() error {
	if err := s.client.Quit(); err != nil {
		s.client.Close()
		return err
	}
	return nil
}
