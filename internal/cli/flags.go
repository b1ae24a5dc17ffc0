package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/abramin/Victus-sub005/internal/app"
)

// sessionsFlag collects repeated --session style values of the form
// TYPE:MINUTES or TYPE:MINUTES:RPE, e.g. "running:45:7".
type sessionsFlag struct {
	sessions []app.SessionPayload
}

var _ pflag.Value = (*sessionsFlag)(nil)

func (f *sessionsFlag) String() string {
	parts := make([]string, 0, len(f.sessions))
	for _, s := range f.sessions {
		part := fmt.Sprintf("%s:%d", s.Type, s.DurationMin)
		if s.PerceivedIntensity != nil {
			part += fmt.Sprintf(":%d", *s.PerceivedIntensity)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ",")
}

func (f *sessionsFlag) Set(value string) error {
	parts := strings.Split(value, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("expected TYPE:MINUTES or TYPE:MINUTES:RPE, got %q", value)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return fmt.Errorf("minutes must be a non-negative integer, got %q", parts[1])
	}

	session := app.SessionPayload{Type: parts[0], DurationMin: minutes}
	if len(parts) == 3 {
		rpe, err := strconv.Atoi(parts[2])
		if err != nil || rpe < 1 || rpe > 10 {
			return fmt.Errorf("RPE must be 1-10, got %q", parts[2])
		}
		session.PerceivedIntensity = &rpe
	}

	f.sessions = append(f.sessions, session)
	return nil
}

func (f *sessionsFlag) Type() string { return "type:min[:rpe]" }
