package log

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/regview/regview-go/pkg/layout"
)

// Session stamps events with one session ID, a front-end name and the
// current time before handing them to a Logger.
type Session struct {
	id       string
	frontend string
	logger   Logger
	now      func() time.Time
}

// NewSession starts a session with a fresh random ID. A nil logger
// discards events.
func NewSession(logger Logger, frontend string) *Session {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Session{
		id:       uuid.NewString(),
		frontend: frontend,
		logger:   logger,
		now:      time.Now,
	}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

func (s *Session) emit(e Event) {
	e.Timestamp = s.now()
	e.SessionID = s.id
	e.Frontend = s.frontend
	s.logger.Log(e)
}

// Load records a dataset load.
func (s *Session) Load(data LoadData) {
	s.emit(Event{Kind: KindLoad, Load: &data})
}

// Navigate records a state change caused by action.
func (s *Session) Navigate(action, fromView, fromPath, toView, toPath string) {
	s.emit(Event{
		Kind: KindNavigate,
		View: toView,
		Path: toPath,
		Navigate: &NavigateData{
			Action:   action,
			From:     fromPath,
			FromView: fromView,
		},
	})
}

// Render records a rendered view. segments and fields are zero for views
// other than register detail.
func (s *Session) Render(view, path string, segments, fields int) {
	s.emit(Event{Kind: KindRender, View: view, Path: path, Segments: segments, Fields: fields})
}

// Error records a failure while showing path. Layout errors carry their
// kind and offending field.
func (s *Session) Error(context, path string, err error) {
	if err == nil {
		return
	}
	data := &ErrorData{Message: err.Error(), Context: context}
	var le *layout.LayoutError
	if errors.As(err, &le) {
		data.LayoutKind = le.Kind.String()
		data.Field = le.Field
	}
	s.emit(Event{Kind: KindError, Path: path, Error: data})
}
