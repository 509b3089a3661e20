// Package newsletter handles signup requests against the mailing list
// provider.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ansrdlabs/contentd/internal/domain"
)

// emailPattern is deliberately loose: one @, no whitespace, a dotted
// domain. The provider does the real validation.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscriber is the provider contract.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (created bool, err error)
	Configured() bool
}

// Result reports the outcome of a signup.
type Result struct {
	Email             string `json:"email"`
	AlreadySubscribed bool   `json:"alreadySubscribed"`
	Message           string `json:"message"`
}

// Service validates signup requests and forwards them to the provider.
type Service struct {
	subscriber Subscriber
	logger     *zap.Logger
}

// New creates a newsletter service.
func New(subscriber Subscriber, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{subscriber: subscriber, logger: logger}
}

// Subscribe validates the address and adds it to the mailing list.
// A duplicate signup is a success from the subscriber's point of view.
func (s *Service) Subscribe(ctx context.Context, email string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return Result{}, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	created, err := s.subscriber.Subscribe(ctx, email)
	switch {
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return Result{Email: email, AlreadySubscribed: true, Message: "You are already subscribed."}, nil
	case err != nil:
		s.logger.Error("Newsletter signup failed", zap.Error(err))
		return Result{}, err
	}

	if !created {
		return Result{Email: email, AlreadySubscribed: true, Message: "You are already subscribed."}, nil
	}
	return Result{Email: email, Message: "Thanks for subscribing!"}, nil
}
