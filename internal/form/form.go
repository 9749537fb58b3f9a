package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bz888/policyask/internal/logger"
	"github.com/bz888/policyask/internal/search"
	"github.com/google/uuid"
)

// ValidationMessage is shown when the question is empty or whitespace only.
var ValidationMessage = search.ErrEmptyQuestion.Error()

// FallbackMessage is shown when a failure carries no message of its own.
const FallbackMessage = "failed to fetch an answer"

// ErrBusy is returned when Submit is called while a submission is in flight.
var ErrBusy = errors.New("a question is already being answered")

type Phase int

const (
	Idle Phase = iota
	Submitting
	Success
	Failure
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of the form.
type State struct {
	Question  string
	Answer    string
	IsLoading bool
	Error     string
	Phase     Phase
}

// Form holds the question, the last outcome and the loading flag, and
// notifies listeners after every change.
type Form struct {
	searcher search.Searcher
	log      *logger.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func New(searcher search.Searcher) *Form {
	return &Form{
		searcher: searcher,
		log:      logger.NewLogger("form"),
	}
}

// OnChange registers fn to be called with a snapshot after every change.
// Listeners run on the goroutine that made the change.
func (f *Form) OnChange(fn func(State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) SetQuestion(question string) {
	f.update(func(s *State) {
		s.Question = question
	})
}

// Reset clears everything except an in-flight submission.
func (f *Form) Reset() {
	f.update(func(s *State) {
		if s.IsLoading {
			return
		}
		*s = State{}
	})
}

// Submit runs one submission of the current question and returns the final
// state. The returned error is the submission's failure, if any.
func (f *Form) Submit(ctx context.Context) (state State, err error) {
	f.mu.Lock()
	if f.state.IsLoading {
		f.mu.Unlock()
		return f.State(), ErrBusy
	}
	question := f.state.Question
	if strings.TrimSpace(question) == "" {
		f.state.Error = ValidationMessage
		f.state.Answer = ""
		f.state.Phase = Failure
		f.mu.Unlock()
		f.notify()
		return f.State(), search.ErrEmptyQuestion
	}
	f.state.IsLoading = true
	f.state.Answer = ""
	f.state.Error = ""
	f.state.Phase = Submitting
	f.mu.Unlock()
	f.notify()

	defer func() {
		f.update(func(s *State) {
			s.IsLoading = false
		})
		state = f.State()
	}()

	id := uuid.NewString()
	f.log.Info("submission", id, "started:", len(question), "bytes")

	answer, err := f.searcher.Search(ctx, question)
	if err != nil {
		f.log.Error("submission", id, "failed", "("+search.Kind(err).String()+"):", err)
		message := err.Error()
		if message == "" {
			message = FallbackMessage
		}
		f.set(func(s *State) {
			s.Error = message
			s.Answer = ""
			s.Phase = Failure
		})
		return state, err
	}

	f.log.Info("submission", id, "answered")
	f.set(func(s *State) {
		s.Answer = answer
		s.Phase = Success
	})
	return state, nil
}

// set mutates state without notifying; the deferred loading reset in Submit
// reports the outcome together with IsLoading=false.
func (f *Form) set(fn func(*State)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.state)
}

func (f *Form) update(fn func(*State)) {
	f.set(fn)
	f.notify()
}

func (f *Form) notify() {
	f.mu.Lock()
	s := f.state
	listeners := make([]func(State), len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}
