package dispatcher

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type fixedIDs struct {
	ids []string
	n   int
}

func (f *fixedIDs) Next() string {
	id := f.ids[f.n%len(f.ids)]
	f.n++
	return id
}

func TestNew_Defaults(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Logging() {
		t.Error("Logging() = true by default, want false")
	}
	if d.panicPolicy != PanicPropagate {
		t.Errorf("panicPolicy = %v, want %v", d.panicPolicy, PanicPropagate)
	}
	if d.logger != slog.Default() {
		t.Error("logger should default to slog.Default()")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	d, err := New(WithLogger(logger), WithLogging(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, _ = d.Subscribe("c", nil)

	if !strings.Contains(buf.String(), "callback must be a function") {
		t.Errorf("custom logger output = %q, want invalid callback warning", buf.String())
	}
}

func TestWithLogger_Nil(t *testing.T) {
	_, err := New(WithLogger(nil))
	if err == nil {
		t.Error("New() expected error for nil logger, got nil")
	}
}

func TestWithLogging(t *testing.T) {
	d, err := New(WithLogging(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !d.Logging() {
		t.Error("Logging() = false with WithLogging(true)")
	}
}

func TestWithIdentityScheme(t *testing.T) {
	tests := []struct {
		name    string
		scheme  IdentityScheme
		wantErr bool
		check   func(t *testing.T, id string)
	}{
		{
			name:   "sequence",
			scheme: IdentitySequence,
			check: func(t *testing.T, id string) {
				for _, r := range id {
					if r < '0' || r > '9' {
						t.Errorf("sequence identity %q is not decimal", id)
						return
					}
				}
			},
		},
		{
			name:   "uuid",
			scheme: IdentityUUID,
			check: func(t *testing.T, id string) {
				if _, err := uuid.Parse(id); err != nil {
					t.Errorf("uuid identity %q does not parse: %v", id, err)
				}
			},
		},
		{
			name:    "unknown",
			scheme:  "snowflake",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(WithIdentityScheme(tt.scheme))
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownIdentityScheme) {
					t.Errorf("New() error = %v, want %v", err, ErrUnknownIdentityScheme)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			sub, err := d.Subscribe("c", func(any) {})
			if err != nil {
				t.Fatalf("Subscribe() error = %v", err)
			}
			tt.check(t, sub.ID())
		})
	}
}

func TestWithIDGenerator(t *testing.T) {
	d, err := New(WithIDGenerator(&fixedIDs{ids: []string{"a", "b"}}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sub, _ := d.Subscribe("c", func(any) {})
	if sub.ID() != "a" {
		t.Errorf("ID() = %q, want %q", sub.ID(), "a")
	}
}

func TestWithIDGenerator_RepeatedIDRejected(t *testing.T) {
	d, err := New(WithIDGenerator(&fixedIDs{ids: []string{"same"}}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := d.Subscribe("c", func(any) {}); err != nil {
		t.Fatalf("first Subscribe() error = %v", err)
	}
	_, err = d.Subscribe("c", func(any) {})
	if err == nil {
		t.Error("Subscribe() expected error for repeated identity, got nil")
	}
	if n := d.SubscriberCount("c"); n != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", n)
	}
}

func TestWithIDGenerator_Nil(t *testing.T) {
	_, err := New(WithIDGenerator(nil))
	if err == nil {
		t.Error("New() expected error for nil generator, got nil")
	}
}

func TestWithPanicPolicy(t *testing.T) {
	d, err := New(WithPanicPolicy(PanicRecover))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if d.panicPolicy != PanicRecover {
		t.Errorf("panicPolicy = %v, want %v", d.panicPolicy, PanicRecover)
	}

	_, err = New(WithPanicPolicy(PanicPolicy(42)))
	if !errors.Is(err, ErrUnknownPanicPolicy) {
		t.Errorf("New() error = %v, want %v", err, ErrUnknownPanicPolicy)
	}
}

func TestPanicPolicy_String(t *testing.T) {
	tests := []struct {
		p    PanicPolicy
		want string
	}{
		{PanicPropagate, "propagate"},
		{PanicRecover, "recover"},
		{PanicPolicy(9), "PanicPolicy(9)"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("PanicPolicy(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}
