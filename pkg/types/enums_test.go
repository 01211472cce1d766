package types

import "testing"

func TestOutcome(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomePending, "pending"},
		{OutcomeConnected, "connected"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.o.String(); got != tt.want {
				t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
			}
		})
	}
}
