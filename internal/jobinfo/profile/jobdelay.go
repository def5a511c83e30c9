package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/renderfarm/jobinfo/internal/common/farmerrors"
)

const day = 24 * time.Hour

// JobDelay is the time a job waits before it becomes eligible for rendering.
// The farm expects it as a dd:hh:mm:ss timecode.
type JobDelay struct {
	time.Duration
}

// ParseJobDelay parses a dd:hh:mm:ss timecode. The empty string is the zero delay.
func ParseJobDelay(s string) (JobDelay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return JobDelay{}, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return JobDelay{}, errors.WithStack(&farmerrors.ErrInvalidArgument{
			Name:    string(OverrideJobDelay),
			Value:   s,
			Message: "expected timecode dd:hh:mm:ss",
		})
	}
	limits := []int{-1, 23, 59, 59}
	units := []time.Duration{day, time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || (limits[i] >= 0 && n > limits[i]) ||
			time.Duration(n) > (math.MaxInt64-d)/units[i] {
			return JobDelay{}, errors.WithStack(&farmerrors.ErrInvalidArgument{
				Name:    string(OverrideJobDelay),
				Value:   s,
				Message: fmt.Sprintf("component %q out of range", part),
			})
		}
		d += time.Duration(n) * units[i]
	}
	return JobDelay{Duration: d}, nil
}

func (d JobDelay) IsZero() bool {
	return d.Duration == 0
}

// String renders the delay as dd:hh:mm:ss.
func (d JobDelay) String() string {
	rem := d.Duration.Truncate(time.Second)
	days := rem / day
	rem -= days * day
	hours := rem / time.Hour
	rem -= hours * time.Hour
	minutes := rem / time.Minute
	rem -= minutes * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d:%02d", days, hours, minutes, rem/time.Second)
}

func (d JobDelay) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *JobDelay) UnmarshalText(text []byte) error {
	parsed, err := ParseJobDelay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
