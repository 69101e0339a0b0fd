// Package conversation implements the scripted report-intake flow: a state
// machine that collects incident fields turn by turn, classifies the
// description, and submits the finished report to the storage backend.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"speakup.app/intake/common/id"
	"speakup.app/intake/common/logger"
	"speakup.app/intake/internal/model"
)

// Classifier maps a free-text description to a report category.
type Classifier interface {
	Classify(ctx context.Context, description string) (string, error)
}

// Submitter delivers a finished report to the external storage backend.
type Submitter interface {
	Submit(ctx context.Context, name, email, report string) error
}

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrBusy            = errors.New("a turn is already in flight")
	ErrClosed          = errors.New("conversation is closed")
	ErrSubmitFailed    = errors.New("report submission failed")
	ErrNoPendingReport = errors.New("no failed submission to retry")
)

type Config struct {
	TypingDelay time.Duration // pause before each assistant reply
	ResetDelay  time.Duration // wait after completion before the flow restarts
}

// Controller owns one conversation: the current step, the draft under
// construction, and the transcript. One instance per browser session; at
// most one turn is in flight at a time.
type Controller struct {
	id         int64
	user       *model.User
	classifier Classifier
	submitter  Submitter
	cfg        Config
	now        func() time.Time

	mu         sync.Mutex
	step       Step
	draft      Draft
	transcript []Message
	busy       bool
	closed     bool
	resetTimer *time.Timer
}

// Snapshot is a point-in-time copy of the conversation state.
type Snapshot struct {
	Step     Step      `json:"step"`
	Draft    Draft     `json:"draft"`
	Messages []Message `json:"messages"`
}

type Option func(*Controller)

// WithClock overrides the controller's time source. Tests use this to pin
// the greeting's time of day.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a controller for the given user (nil means anonymous) and
// emits the opening greeting.
func New(user *model.User, classifier Classifier, submitter Submitter, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		id:         id.New(),
		user:       user,
		classifier: classifier,
		submitter:  submitter,
		cfg:        cfg,
		now:        time.Now,
		step:       StepAskIncident,
		draft:      newDraft(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.append(newMessage(greetingMessage(c.now(), false), SenderAssistant, c.now()))
	return c
}

// ID returns the conversation's unique ID.
func (c *Controller) ID() int64 {
	return c.id
}

// Submit applies one user turn: exactly one state transition, at most one
// outbound side effect, one user transcript entry and the assistant replies
// for that transition. Empty or whitespace-only input is rejected with
// ErrEmptyMessage and no state change. A failed report submission returns an
// error wrapping ErrSubmitFailed; the draft is preserved and the step stays
// at StepSubmit so the caller can retry.
func (c *Controller) Submit(ctx context.Context, text string) (Snapshot, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return c.Snapshot(), ErrEmptyMessage
	}

	if err := c.beginTurn(); err != nil {
		return c.Snapshot(), err
	}
	defer c.endTurn()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ConversationID: logger.Ptr(c.id),
		Step:           logger.Ptr(string(c.currentStep())),
		Component:      "intake.conversation",
	})

	c.append(newMessage(trimmed, SenderUser, c.now()))
	err := c.advance(ctx, trimmed)
	return c.Snapshot(), err
}

// RetrySubmit re-attempts a submission that previously failed. It is only
// valid while the conversation is parked at StepSubmit.
func (c *Controller) RetrySubmit(ctx context.Context) (Snapshot, error) {
	if err := c.beginTurn(); err != nil {
		return c.Snapshot(), err
	}
	defer c.endTurn()

	if c.currentStep() != StepSubmit {
		return c.Snapshot(), ErrNoPendingReport
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ConversationID: logger.Ptr(c.id),
		Component:      "intake.conversation",
	})

	err := c.submitReport(ctx)
	return c.Snapshot(), err
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]Message, len(c.transcript))
	copy(messages, c.transcript)
	return Snapshot{
		Step:     c.step,
		Draft:    c.draft,
		Messages: messages,
	}
}

// Close tears the conversation down and cancels any pending reset timer so
// it cannot fire into a disposed instance.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

func (c *Controller) advance(ctx context.Context, text string) error {
	switch c.currentStep() {
	case StepAskIncident:
		if isAffirmative(text) {
			c.setStep(StepAskDate)
			c.reply(replyAskDate)
		} else {
			c.reply(replyDeclined)
		}

	case StepAskDate:
		c.setDraft(func(d *Draft) { d.IncidentDate = text })
		c.setStep(StepAskTime)
		c.reply(replyAskTime)

	case StepAskTime:
		c.setDraft(func(d *Draft) { d.IncidentTime = text })
		c.setStep(StepAskDescription)
		c.reply(replyAskDescription)

	case StepAskDescription:
		c.setDraft(func(d *Draft) { d.Description = text })
		c.classifyDescription(ctx, text)
		c.setStep(StepAskLecturerInvolved)
		c.reply(replyAskLecturerInvolved)

	case StepAskLecturerInvolved:
		if isAffirmative(text) {
			c.setDraft(func(d *Draft) { d.LecturerInvolved = InvolvementYes })
			c.setStep(StepAskLecturerName)
			c.reply(replyAskLecturerName)
		} else {
			c.setDraft(func(d *Draft) { d.LecturerInvolved = InvolvementNo })
			c.setStep(StepSubmit)
			return c.submitReport(ctx)
		}

	case StepAskLecturerName:
		c.setDraft(func(d *Draft) { d.LecturerName = text })
		c.setStep(StepSubmit)
		return c.submitReport(ctx)

	default:
		// StepSubmit and StepCompleted accept no input; the user entry is
		// logged in the transcript but nothing moves.
	}
	return nil
}

func (c *Controller) classifyDescription(ctx context.Context, description string) {
	category, err := c.classifier.Classify(ctx, description)
	if err != nil {
		// Recovered locally: the flow continues without a category.
		slog.WarnContext(ctx, "classification failed, continuing without category", "error", err)
		c.reply(replyClassifyFailed)
		return
	}

	c.setDraft(func(d *Draft) { d.Category = category })
	slog.InfoContext(ctx, "report category detected", "category", category)
	c.reply(replyCategoryDetected(category))
}

func (c *Controller) submitReport(ctx context.Context) error {
	c.reply(replySubmitting)

	draft := c.currentDraft()
	name := c.user.DisplayName()
	email := c.user.ContactEmail()

	if err := c.submitter.Submit(ctx, name, email, draft.ReportBody()); err != nil {
		slog.ErrorContext(ctx, "report submission failed", "error", err)
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}

	slog.InfoContext(ctx, "report submitted", "category", draft.Category)
	c.reply(replySubmitted)
	c.setStep(StepCompleted)
	c.scheduleReset()
	return nil
}

// reply appends an assistant message after the typing delay. The delay is a
// plain timed suspension inside the turn; the busy flag keeps other turns
// out while it runs.
func (c *Controller) reply(text string) {
	if c.cfg.TypingDelay > 0 {
		time.Sleep(c.cfg.TypingDelay)
	}
	c.append(newMessage(text, SenderAssistant, c.now()))
}

func (c *Controller) scheduleReset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.resetTimer != nil {
		c.resetTimer.Stop()
	}
	c.resetTimer = time.AfterFunc(c.cfg.ResetDelay, c.reset)
}

// reset clears transcript, draft and category, returns to StepAskIncident
// and greets again. Abandoned silently if the conversation was closed.
func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.transcript = nil
	c.draft = newDraft()
	c.step = StepAskIncident
	at := c.now()
	c.transcript = append(c.transcript, newMessage(greetingMessage(at, true), SenderAssistant, at))
}

func (c *Controller) beginTurn() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Controller) endTurn() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

func (c *Controller) currentStep() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) setStep(s Step) {
	c.mu.Lock()
	c.step = s
	c.mu.Unlock()
}

func (c *Controller) currentDraft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) setDraft(mutate func(*Draft)) {
	c.mu.Lock()
	mutate(&c.draft)
	c.mu.Unlock()
}

func (c *Controller) append(m Message) {
	c.mu.Lock()
	c.transcript = append(c.transcript, m)
	c.mu.Unlock()
}

// isAffirmative is a case-insensitive substring test for "yes". This matches
// the deployed behavior, including its over-match: "Yesterday" counts as yes.
// See DESIGN.md before tightening it.
func isAffirmative(text string) bool {
	return strings.Contains(strings.ToLower(text), "yes")
}
