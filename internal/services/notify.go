package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"alowais/internal/metrics"
)

// InquiryAlert is the per-request view handed to notification channels. It
// is derived from a persisted inquiry plus the resolved property title and
// is never stored.
type InquiryAlert struct {
	InquiryID     string
	Name          string
	Email         string
	Phone         string
	Message       string
	PropertyTitle *string
	SubmittedAt   time.Time
}

// Channel is an independent notification transport
type Channel interface {
	Name() string
	Send(ctx context.Context, alert *InquiryAlert) error
}

// Outcome is the per-channel delivery result
type Outcome struct {
	Channel string
	Success bool
	Err     error
}

// Notifier dispatches an inquiry alert across all configured channels
type Notifier interface {
	Dispatch(ctx context.Context, alert *InquiryAlert) []Outcome
}

// Dispatcher fans an alert out to its channels concurrently. Each channel
// runs under its own timeout and its failure is isolated: Dispatch always
// returns outcomes, never an error.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher with a per-channel timeout
func NewDispatcher(timeout time.Duration, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		timeout:  timeout,
	}
}

// Dispatch sends the alert on every channel and waits for all outcomes so
// they can be logged before the response goes out. Outcomes never gate the
// success of the inquiry that triggered them.
func (d *Dispatcher) Dispatch(ctx context.Context, alert *InquiryAlert) []Outcome {
	outcomes := make([]Outcome, len(d.channels))

	var wg sync.WaitGroup
	for i, ch := range d.channels {
		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()
			outcomes[i] = d.send(ctx, ch, alert)
		}(i, ch)
	}
	wg.Wait()

	for _, outcome := range outcomes {
		metrics.RecordNotification(outcome.Channel, outcome.Success)
		if outcome.Success {
			log.Printf("[NOTIFY] Channel %s delivered alert for inquiry id=%s", outcome.Channel, alert.InquiryID)
		} else {
			log.Printf("[NOTIFY] Channel %s failed for inquiry id=%s: %v", outcome.Channel, alert.InquiryID, outcome.Err)
		}
	}

	return outcomes
}

// send runs a single channel under the dispatcher timeout. A slow gateway
// cannot delay the response past the timeout; the channel goroutine is left
// to finish on its own.
func (d *Dispatcher) send(ctx context.Context, ch Channel, alert *InquiryAlert) Outcome {
	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("channel panic: %v", r)
			}
		}()
		done <- ch.Send(cctx, alert)
	}()

	select {
	case err := <-done:
		if err != nil {
			return Outcome{Channel: ch.Name(), Err: err}
		}
		return Outcome{Channel: ch.Name(), Success: true}
	case <-cctx.Done():
		return Outcome{Channel: ch.Name(), Err: fmt.Errorf("notification timed out: %w", cctx.Err())}
	}
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// WhatsAppLink builds a chat deep-link for a phone number by stripping
// everything that is not a digit.
func WhatsAppLink(phone string) string {
	return "https://wa.me/" + nonDigits.ReplaceAllString(phone, "")
}

// FormatLocalTime renders a timestamp in the configured notification
// timezone; an unknown zone falls back to UTC.
func FormatLocalTime(t time.Time, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return t.In(loc).Format("Jan 2, 2006, 3:04 PM")
}
