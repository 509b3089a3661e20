package newsletter

import (
	"context"
	"errors"
	"testing"

	"github.com/ansrdlabs/contentd/internal/domain"
)

// --- Mocks ---

type mockSubscriber struct {
	created    bool
	err        error
	configured bool

	lastEmail string
	calls     int
}

func (m *mockSubscriber) Subscribe(_ context.Context, email string) (bool, error) {
	m.calls++
	m.lastEmail = email
	return m.created, m.err
}

func (m *mockSubscriber) Configured() bool { return m.configured }

// --- Tests ---

func TestSubscribe(t *testing.T) {
	sub := &mockSubscriber{created: true, configured: true}
	svc := New(sub, nil)

	res, err := svc.Subscribe(context.Background(), "Reader@Example.COM ")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if sub.lastEmail != "reader@example.com" {
		t.Errorf("provider got %q, want trimmed lowercase address", sub.lastEmail)
	}
	if res.AlreadySubscribed {
		t.Error("fresh signup must not be marked as duplicate")
	}
	if res.Email != "reader@example.com" || res.Message == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestSubscribe_InvalidEmail(t *testing.T) {
	tests := []string{"", "   ", "plainword", "two@@example.com", "spaces in@example.com", "no-domain@"}

	sub := &mockSubscriber{configured: true}
	svc := New(sub, nil)

	for _, email := range tests {
		t.Run(email, func(t *testing.T) {
			_, err := svc.Subscribe(context.Background(), email)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	if sub.calls != 0 {
		t.Errorf("provider called %d times for invalid input", sub.calls)
	}
}

func TestSubscribe_DuplicateError(t *testing.T) {
	sub := &mockSubscriber{err: domain.ErrAlreadySubscribed, configured: true}
	svc := New(sub, nil)

	res, err := svc.Subscribe(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("duplicate signup is not an error: %v", err)
	}
	if !res.AlreadySubscribed {
		t.Error("result must be marked already subscribed")
	}
}

func TestSubscribe_NoopUpdateIsDuplicate(t *testing.T) {
	sub := &mockSubscriber{created: false, configured: true}
	svc := New(sub, nil)

	res, err := svc.Subscribe(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if !res.AlreadySubscribed {
		t.Error("an existing contact must be reported as already subscribed")
	}
}

func TestSubscribe_ProviderErrorPropagates(t *testing.T) {
	sub := &mockSubscriber{err: domain.ErrUnavailable, configured: true}
	svc := New(sub, nil)

	_, err := svc.Subscribe(context.Background(), "reader@example.com")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
