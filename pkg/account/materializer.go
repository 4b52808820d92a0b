package account

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	// DefaultEmailDomain is appended to the username to form the email.
	DefaultEmailDomain = "site.com"
	// CreatedMessage is the status notice shown after a successful create.
	CreatedMessage = "Your profile has been created."

	firstNameField = "first_name"
	lastNameField  = "last_name"
)

type config struct {
	policy UsernamePolicy
	domain string
	logger *zap.Logger
}

// Option customises a Materializer.
type Option func(*config)

// WithPolicy selects the username policy. The default is PolicyPreserve.
func WithPolicy(policy UsernamePolicy) Option {
	return func(cfg *config) {
		if policy != "" {
			cfg.policy = policy
		}
	}
}

// WithEmailDomain overrides DefaultEmailDomain.
func WithEmailDomain(domain string) Option {
	return func(cfg *config) {
		if domain != "" {
			cfg.domain = domain
		}
	}
}

// WithLogger routes materializer logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Materializer builds account requests from completed wizard states and
// submits them to a Store.
type Materializer struct {
	store  Store
	policy UsernamePolicy
	domain string
	logger *zap.Logger
}

// Result reports the outcome of Create. Notice is always set and is meant to
// be queued for the next render.
type Result struct {
	Request Request
	ID      AccountID
	Err     error
	Notice  view.Notice
}

// Created reports whether the store accepted the request.
func (r Result) Created() bool {
	return r.Err == nil
}

// NewMaterializer constructs a materializer writing to store.
func NewMaterializer(store Store, options ...Option) *Materializer {
	cfg := config{
		policy: PolicyPreserve,
		domain: DefaultEmailDomain,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Materializer{
		store:  store,
		policy: cfg.policy,
		domain: cfg.domain,
		logger: cfg.logger,
	}
}

// Policy returns the username policy in effect.
func (m *Materializer) Policy() UsernamePolicy {
	return m.policy
}

// Materialize derives the account request: the username is first_name
// followed by last_name (subject to the policy), the email is
// <username>@<domain>, and every stored value is carried over flattened.
func (m *Materializer) Materialize(ctx context.Context, state wizard.State) (Request, error) {
	if err := ctx.Err(); err != nil {
		return Request{}, err
	}

	fields := flatten(state)
	username, ok := m.policy.Username(fields[firstNameField], fields[lastNameField])
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	email := username + "@" + m.domain
	return NewRequest(username, email, fields), nil
}

// Create materializes state and hands the request to the store. Failures are
// never returned as errors; they surface in Result.Err and as an error
// notice so the caller can show them and discard the session.
func (m *Materializer) Create(ctx context.Context, state wizard.State) Result {
	req, err := m.Materialize(ctx, state)
	if err != nil {
		return m.failed(Result{}, err)
	}
	result := Result{Request: req}
	if m.store == nil {
		return m.failed(result, &StorageError{Op: "create", Err: ErrNoStore})
	}

	id, err := m.store.CreateAccount(ctx, req)
	if err != nil {
		var storageErr *StorageError
		if !errors.As(err, &storageErr) {
			err = &StorageError{Op: "create", Err: err}
		}
		return m.failed(result, err)
	}

	result.ID = id
	result.Notice = view.Notice{Level: view.LevelStatus, Text: CreatedMessage}
	m.logger.Info("account: created",
		zap.String("id", string(id)),
		zap.String("username", req.Username()))
	return result
}

func (m *Materializer) failed(result Result, err error) Result {
	result.Err = err
	result.Notice = view.Notice{Level: view.LevelError, Text: err.Error()}
	m.logger.Error("account: create failed",
		zap.String("username", result.Request.Username()),
		zap.Error(err))
	return result
}

// Check returns a submit check enforcing the username policy, or nil when
// the policy accepts every username. Register it with wizard.WithSubmitCheck
// so a refused username is reported like any other field error.
func (m *Materializer) Check() wizard.Check {
	if m.policy == PolicyPreserve {
		return nil
	}
	policy := m.policy
	return func(state wizard.State) wizard.ValidationErrors {
		fields := flatten(state)
		if _, ok := policy.Username(fields[firstNameField], fields[lastNameField]); ok {
			return nil
		}
		// Nothing to report when either name is missing: the gate already did.
		if fields[firstNameField] == "" || fields[lastNameField] == "" {
			return nil
		}
		message := "First name and last name may only contain letters, numbers and . _ @ - characters."
		return wizard.ValidationErrors{
			{Step: locate(state, firstNameField), Field: firstNameField, Message: message},
			{Step: locate(state, lastNameField), Field: lastNameField, Message: message},
		}
	}
}

// flatten merges all step values into one map, visiting steps in id order so
// a name declared twice resolves deterministically.
func flatten(state wizard.State) map[string]string {
	ids := make([]schema.StepID, 0, len(state.Values))
	for id := range state.Values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make(map[string]string)
	for _, id := range ids {
		for name, value := range state.Values[id] {
			out[name] = value
		}
	}
	return out
}

func locate(state wizard.State, field string) schema.StepID {
	for id, values := range state.Values {
		if _, ok := values[field]; ok {
			return id
		}
	}
	return schema.StepOne
}
