package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/account"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Session is one user's pass through the wizard. Methods are safe for
// concurrent use; calls are serialised.
type Session struct {
	mu      sync.Mutex
	id      string
	runtime *Runtime
	state   *wizard.State
	notices view.Notices
	last    *account.Result
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns a snapshot of the current wizard state.
func (s *Session) State() wizard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// LastResult returns the outcome of the most recent submit, if any.
func (s *Session) LastResult() (account.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return account.Result{}, false
	}
	return *s.last, true
}

// View describes the current screen without navigating. Pending notices are
// consumed.
func (s *Session) View() (view.Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtime.dispatcher.Dispatch(*s.state, nil, &s.notices)
}

// Handle applies intent with the values submitted for the active step and
// describes the resulting screen.
//
// A *wizard.ProtocolError is returned together with the description of the
// unchanged screen so transports can re-render it. An accepted submit creates
// the account and queues the result notice; the returned description has
// Completed set. A created account restarts the wizard from a fresh state. A
// storage failure keeps the state on the last step with every value, so the
// same submit can be sent again.
func (s *Session) Handle(ctx context.Context, intent wizard.Intent, submitted wizard.Values) (view.Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt := s.runtime
	outcome, err := rt.controller.Navigate(s.state, intent, submitted)
	if err != nil {
		if !wizard.IsProtocolError(err) {
			return view.Description{}, err
		}
		desc, dispatchErr := rt.dispatcher.Dispatch(*s.state, nil, &s.notices)
		if dispatchErr != nil {
			return view.Description{}, dispatchErr
		}
		return desc, err
	}

	if !outcome.Completed {
		return rt.dispatcher.Dispatch(*s.state, outcome.Errors, &s.notices)
	}

	result := rt.materializer.Create(ctx, s.state.Snapshot())
	s.last = &result
	s.notices.Add(result.Notice.Level, result.Notice.Text)
	rt.logger.Info("session: submitted",
		zap.String("session", s.id),
		zap.Bool("created", result.Created()))

	if result.Created() {
		s.state = wizard.NewState()
	}
	desc, err := rt.dispatcher.Dispatch(*s.state, nil, &s.notices)
	if err != nil {
		return view.Description{}, err
	}
	desc.Completed = true
	return desc, nil
}
