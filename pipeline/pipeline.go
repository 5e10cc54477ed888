// Package pipeline запускает ежедневную обработку посещаемости: загрузка справочника,
// чтение отметок, классификация, подготовка и отправка писем, строго по очереди.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"attendancenotifier/attendance"
	"attendancenotifier/mailer"
	"attendancenotifier/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecordSource interface {
	Fetch(ctx context.Context) ([]attendance.RawRecord, error)
}

type ReferenceLoader interface {
	LoadReference(path string) (int, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, payloads []notify.EmailPayload) (*mailer.DeliveryReport, error)
}

// Необязательные выходы запуска. Их ошибки только логируются.
type (
	OutputWriter interface {
		WriteClassified(ctx context.Context, records []attendance.ClassifiedAttendance) error
	}
	ReportExporter interface {
		Export(records []attendance.ClassifiedAttendance, date string) (string, error)
	}
	SummaryNotifier interface {
		NotifySummary(ctx context.Context, s Summary) error
	}
)

// Summary - итог одного запуска
type Summary struct {
	RunID      string
	TargetDate string
	Fetched    int
	Classified int
	Skipped    int
	Composed   int
	Sent       int
	Failed     []mailer.DeliveryFailure
	ReportPath string
	Duration   time.Duration
}

// Delivered сообщает, что все подготовленные письма отправлены
func (s Summary) Delivered() bool {
	return len(s.Failed) == 0
}

type Runner struct {
	ReferencePath string
	Reference     ReferenceLoader
	Lookup        attendance.EmployeeLookup
	Source        RecordSource
	Dispatcher    Dispatcher

	Output   OutputWriter
	Reporter ReportExporter
	Notifier SummaryNotifier

	Now    func() time.Time
	Logger *zap.Logger
}

// Run выполняет все этапы один раз. Фатальные ошибки прерывают запуск
// до отправки писем; неудачные отдельные письма попадают в Summary.Failed.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	started := now()

	summary := &Summary{
		RunID:      uuid.NewString(),
		TargetDate: attendance.TargetDate(started),
	}

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", summary.RunID), zap.String("target_date", summary.TargetDate))
	logger.Info("attendance run started")

	loaded, err := r.Reference.LoadReference(r.ReferencePath)
	if err != nil {
		return summary, err
	}
	logger.Info("employee reference loaded", zap.String("path", r.ReferencePath), zap.Int("employees", loaded))

	records, err := r.Source.Fetch(ctx)
	if err != nil {
		return summary, err
	}
	summary.Fetched = len(records)

	result, err := attendance.NewClassifier(r.Lookup, logger).Classify(records, summary.TargetDate)
	if err != nil {
		return summary, fmt.Errorf("classify: %w", err)
	}
	summary.Classified = len(result.Records)
	summary.Skipped = len(result.Skipped)

	payloads := notify.Compose(result.Records)
	summary.Composed = len(payloads)
	logger.Info("attendance emails composed",
		zap.Int("payloads", len(payloads)),
		zap.Int("without_email", len(result.Records)-len(payloads)),
	)

	report, err := r.Dispatcher.Dispatch(ctx, payloads)
	if report != nil {
		summary.Sent = report.Sent
		summary.Failed = report.Failed
	}
	if err != nil {
		return summary, err
	}

	r.publish(ctx, logger, summary, result.Records)

	summary.Duration = now().Sub(started)
	logger.Info("attendance run finished",
		zap.Int("fetched", summary.Fetched),
		zap.Int("classified", summary.Classified),
		zap.Int("skipped", summary.Skipped),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", len(summary.Failed)),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Runner) publish(ctx context.Context, logger *zap.Logger, summary *Summary, records []attendance.ClassifiedAttendance) {
	if r.Output != nil {
		if err := r.Output.WriteClassified(ctx, records); err != nil {
			logger.Warn("output tab not updated", zap.Error(err))
		}
	}

	if r.Reporter != nil {
		path, err := r.Reporter.Export(records, summary.TargetDate)
		if err != nil {
			logger.Warn("report export failed", zap.Error(err))
		} else {
			summary.ReportPath = path
			logger.Info("report exported", zap.String("path", path))
		}
	}

	if r.Notifier != nil {
		if err := r.Notifier.NotifySummary(ctx, *summary); err != nil {
			logger.Warn("run summary not delivered", zap.Error(err))
		}
	}
}
