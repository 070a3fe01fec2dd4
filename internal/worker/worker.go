package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/skillscan/internal/analysis"
	"github.com/muhammadolammi/skillscan/internal/database"
	"github.com/muhammadolammi/skillscan/internal/queue"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"

	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Session is the message a front end enqueues to request analyses.
type Session struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	JobDescription string    `json:"job_description"`
	Actions        []string  `json:"actions"`
}

type SessionStore interface {
	GetResumeBySession(ctx context.Context, sessionID uuid.UUID) (database.Resume, error)
	UpdateSessionStatus(ctx context.Context, arg database.UpdateSessionStatusParams) error
	CreateOrUpdateAnalysesResults(ctx context.Context, arg database.CreateOrUpdateAnalysesResultsParams) error
}

type DocumentStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Publisher interface {
	PublishUpdate(ctx context.Context, update queue.SessionUpdate) error
}

// Processor turns one session message into rendered analysis sections.
type Processor struct {
	db        SessionStore
	documents DocumentStore
	updates   Publisher
	analyzer  *analysis.Service
	log       *logrus.Entry
	now       func() time.Time
}

func NewProcessor(db SessionStore, documents DocumentStore, updates Publisher, analyzer *analysis.Service, log *logrus.Entry) *Processor {
	return &Processor{
		db:        db,
		documents: documents,
		updates:   updates,
		analyzer:  analyzer,
		log:       log,
		now:       time.Now,
	}
}

// Process handles a single message. The returned error is informational:
// the session has already been marked failed and the caller should carry on
// with the next message.
func (p *Processor) Process(ctx context.Context, body []byte) error {
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		p.log.WithError(err).Error("error unmarshalling message body")
		return errors.Wrap(err, "decode session")
	}
	log := p.log.WithField("session_id", session.ID)
	log.Info("processing session")

	p.setStatus(ctx, log, session.ID, StatusProcessing, LevelInfo, "analysis started", nil)

	sections, err := p.run(ctx, session)
	if err != nil {
		var missing *analysis.MissingInputError
		if errors.As(err, &missing) {
			log.WithError(err).Warn("session is missing input")
			p.setStatus(ctx, log, session.ID, StatusFailed, LevelWarning, missing.Warning(), nil)
		} else {
			log.WithError(err).Error("analysis failed")
			p.setStatus(ctx, log, session.ID, StatusFailed, LevelError, "analysis failed: "+err.Error(), nil)
		}
		return err
	}

	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return errors.Wrap(err, "failed to marshal sections")
	}
	err = p.db.CreateOrUpdateAnalysesResults(ctx, database.CreateOrUpdateAnalysesResultsParams{
		Sections:  sectionsJSON,
		SessionID: session.ID,
	})
	if err != nil {
		log.WithError(err).Error("failed to save analysis sections")
		p.setStatus(ctx, log, session.ID, StatusFailed, LevelError, "analysis failed: could not save results", nil)
		return errors.Wrap(err, "failed to save analysis sections")
	}

	p.setStatus(ctx, log, session.ID, StatusCompleted, LevelInfo, "analysis completed", sections)
	log.WithField("sections", len(sections)).Info("session analyzed")
	return nil
}

func (p *Processor) run(ctx context.Context, session Session) ([]analysis.Section, error) {
	if err := analysis.CheckRequest(session.JobDescription, session.Actions); err != nil {
		return nil, err
	}

	resume, err := p.db.GetResumeBySession(ctx, session.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &analysis.MissingInputError{Field: "resume"}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error getting resume for session %s", session.ID)
	}

	data, err := p.documents.Download(ctx, resume.ObjectKey)
	if err != nil {
		return nil, errors.Wrap(err, "file download error")
	}

	return p.analyzer.AnalyzeAll(ctx, analysis.Input{
		JobDescription: session.JobDescription,
		Resume:         data,
		Mime:           resume.Mime,
	}, session.Actions)
}

// setStatus records the status in the database and notifies the front end.
// Failures are logged only; a lost notification must not fail the session.
func (p *Processor) setStatus(ctx context.Context, log *logrus.Entry, id uuid.UUID, status, level, message string, sections []analysis.Section) {
	err := p.db.UpdateSessionStatus(ctx, database.UpdateSessionStatusParams{
		Status:        status,
		StatusMessage: message,
		ID:            id,
	})
	if err != nil {
		log.WithError(err).WithField("status", status).Error("failed to update session status")
	}

	err = p.updates.PublishUpdate(ctx, queue.SessionUpdate{
		SessionID: id.String(),
		Status:    status,
		Level:     level,
		Message:   message,
		Sections:  sections,
		Timestamp: p.now(),
	})
	if err != nil {
		log.WithError(err).WithField("status", status).Error("failed to publish update")
	}
}
