package mailer

import (
	"context"
	"fmt"
	"time"

	"attendancenotifier/attendance"
	"attendancenotifier/notify"

	"go.uber.org/zap"
)

type DeliveryFailure struct {
	To  string
	Err error
}

// DeliveryReport - итог отправки
type DeliveryReport struct {
	Sent   int
	Failed []DeliveryFailure
}

type Dispatcher struct {
	dialer Dialer
	from   string
	logger *zap.Logger
	now    func() time.Time
}

func NewDispatcher(dialer Dialer, from string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{dialer: dialer, from: from, logger: logger, now: time.Now}
}

// Dispatch отправляет все письма через одну сессию.
// Ошибка открытия сессии фатальна: ничего не отправлено.
// Ошибка отдельного письма попадает в отчёт, остальные письма отправляются.
func (d *Dispatcher) Dispatch(ctx context.Context, payloads []notify.EmailPayload) (*DeliveryReport, error) {
	session, err := d.dialer.Dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", attendance.ErrMailSession, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			d.logger.Warn("mail session close failed", zap.Error(err))
		}
	}()

	report := &DeliveryReport{}
	for i, p := range payloads {
		if err := ctx.Err(); err != nil {
			d.logger.Warn("dispatch interrupted",
				zap.Int("sent", report.Sent),
				zap.Int("remaining", len(payloads)-i),
			)
			return report, err
		}

		if err := d.send(session, p); err != nil {
			report.Failed = append(report.Failed, DeliveryFailure{To: p.To, Err: err})
			d.logger.Error("attendance email failed", zap.String("to", p.To), zap.Error(err))

			if rerr := session.Reset(); rerr != nil {
				d.logger.Warn("mail session reset failed", zap.Error(rerr))
			}
			continue
		}

		report.Sent++
		d.logger.Debug("attendance email sent", zap.String("to", p.To))
	}

	d.logger.Info("attendance emails dispatched",
		zap.Int("sent", report.Sent),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}

func (d *Dispatcher) send(session Session, p notify.EmailPayload) error {
	msg, err := BuildMessage(d.from, p, d.now())
	if err != nil {
		return fmt.Errorf("%w: build message: %v", attendance.ErrMailSend, err)
	}
	if err := session.Send(d.from, p.To, msg); err != nil {
		return fmt.Errorf("%w: %v", attendance.ErrMailSend, err)
	}
	return nil
}
