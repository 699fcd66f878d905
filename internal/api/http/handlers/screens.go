package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/apiclient"
	"github.com/spec-kit/staff-portal/internal/events"
	"github.com/spec-kit/staff-portal/internal/flow"
	"github.com/spec-kit/staff-portal/internal/scheduler"
	"github.com/spec-kit/staff-portal/internal/session"
	apperrors "github.com/spec-kit/staff-portal/pkg/util"
)

// Screens builds flow instances for a visitor session.
type Screens struct {
	API               *apiclient.Client
	Scheduler         scheduler.Scheduler
	Events            events.Dispatcher
	Logger            *zap.Logger
	RedirectDelay     time.Duration
	RemoteDepartments bool
}

func (s Screens) deps(sess *session.Session) flow.Deps {
	return flow.Deps{
		Navigator:     sess,
		Scheduler:     s.Scheduler,
		Events:        s.Events,
		Logger:        s.Logger.With(zap.String("session_id", sess.ID)),
		SessionID:     sess.ID,
		RedirectDelay: s.RedirectDelay,
	}
}

func (s Screens) registration(sess *session.Session) func() session.Screen {
	return func() session.Screen {
		return flow.NewRegistration(s.API, s.deps(sess), flow.RegistrationOptions{RemoteDepartments: s.RemoteDepartments})
	}
}

func (s Screens) login(sess *session.Session) func() session.Screen {
	return func() session.Screen {
		return flow.NewLogin(s.API, sess.Storage(), s.deps(sess))
	}
}

func (s Screens) verification(sess *session.Session) func() session.Screen {
	return func() session.Screen {
		return flow.NewVerification(s.API, s.deps(sess))
	}
}

func requireSession(c *fiber.Ctx) (*session.Session, error) {
	sess, ok := session.FromContext(c)
	if !ok {
		return nil, apperrors.NewInternalError(errors.New("session middleware not installed"))
	}
	return sess, nil
}

func refusal(err error) error {
	switch {
	case errors.Is(err, flow.ErrSubmissionInFlight):
		return apperrors.NewConflict("a submission is already in progress", nil)
	case errors.Is(err, flow.ErrClosed):
		return apperrors.NewConflict("this screen is no longer active", nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
