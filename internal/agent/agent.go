package agent

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rohbot/rohbot/internal/model"
	"github.com/rohbot/rohbot/internal/repository"
)

// DefaultMaxTurns bounds how many times one user turn may alternate
// between the model and tool execution. Nothing in the tool-call
// protocol otherwise guarantees the model stops requesting tools.
const DefaultMaxTurns = 50

// ErrLoopLimit is returned when a turn exceeds its alternation bound.
// The turn is abandoned, not retried.
var ErrLoopLimit = errors.New("agent: tool-call loop limit exceeded")

// Completer produces one assistant turn for the given history. tools
// declares what the model may call. When onText is non-nil the
// implementation should stream text fragments through it as they are
// generated; the returned Content stays authoritative either way.
type Completer interface {
	Complete(ctx context.Context, history []model.Content, tools []*FunctionDeclaration, onText func(text string)) (model.Content, error)
}

// FunctionDeclaration describes one tool the model may request, with its
// JSON schemas and the Go implementation behind it.
type FunctionDeclaration struct {
	Name             string
	Description      string
	ParametersSchema any
	ResponseSchema   any
	FunctionCall     FunctionCallFn
}

type FunctionCallFn func(ctx context.Context, args map[string]any) (map[string]any, error)

// Agent drives conversation turns: it asks the Completer for the next
// assistant move and executes requested tools until the model answers in
// plain text or the turn bound is hit.
type Agent struct {
	completer         Completer
	functionsMap      map[string]*FunctionDeclaration
	functionOrder     []string
	sessionRepository repository.SessionRepository
	maxTurns          int

	// OnEvent, when set, receives display events (streamed text, tool
	// start/end) as a turn progresses. It must not block.
	OnEvent func(Event)
}

func New(completer Completer) *Agent {
	return &Agent{
		completer:    completer,
		functionsMap: make(map[string]*FunctionDeclaration),
		maxTurns:     DefaultMaxTurns,
	}
}

func NewWithRepo(completer Completer, sessionRepository repository.SessionRepository) *Agent {
	a := New(completer)
	a.sessionRepository = sessionRepository
	return a
}

// SetMaxTurns overrides the alternation bound. Values below 1 keep the
// current bound.
func (a *Agent) SetMaxTurns(n int) {
	if n >= 1 {
		a.maxTurns = n
	}
}

func (a *Agent) AddFunctionCall(functionDeclaration *FunctionDeclaration) error {
	if functionDeclaration == nil {
		return fmt.Errorf("function declaration cannot be nil")
	}

	if functionDeclaration.Name == "" {
		return fmt.Errorf("function name cannot be empty")
	}

	if functionDeclaration.FunctionCall == nil {
		return fmt.Errorf("function call implementation cannot be nil")
	}

	if _, exists := a.functionsMap[functionDeclaration.Name]; !exists {
		a.functionOrder = append(a.functionOrder, functionDeclaration.Name)
	}
	a.functionsMap[functionDeclaration.Name] = functionDeclaration

	return nil
}

func (a *Agent) declarations() []*FunctionDeclaration {
	decls := make([]*FunctionDeclaration, 0, len(a.functionOrder))
	for _, name := range a.functionOrder {
		decls = append(decls, a.functionsMap[name])
	}
	return decls
}

// Send runs one full user turn and returns the model's final answer.
// Tool requests are executed sequentially in the order issued; their
// results are appended to history before the next model call. The turn
// fails with ErrLoopLimit after maxTurns model calls.
func (a *Agent) Send(ctx context.Context, sessionID string, prompt string) (string, error) {
	history, err := a.loadHistory(ctx, sessionID)
	if err != nil {
		return "", err
	}

	history = append(history, model.NewUserContent(prompt))

	var onText func(string)
	if a.OnEvent != nil {
		onText = func(text string) {
			a.emit(Event{Kind: EventText, Text: text})
		}
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := a.completer.Complete(ctx, history, a.declarations(), onText)
		if err != nil {
			return "", fmt.Errorf("agent: complete turn: %w", err)
		}

		history = append(history, resp)

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			a.saveHistory(ctx, sessionID, history)
			return resp.Text(), nil
		}

		responses := make([]model.FunctionResponse, 0, len(calls))
		for _, call := range calls {
			a.emit(Event{Kind: EventToolStart, Tool: call.Name})
			result := a.callFunction(ctx, call)
			a.emit(Event{Kind: EventToolEnd, Tool: call.Name})

			responses = append(responses, model.FunctionResponse{
				ID:       call.ID,
				Name:     call.Name,
				Response: result,
			})
		}

		history = append(history, model.NewFunctionResponseContent(responses))
	}

	return "", fmt.Errorf("%w after %d model calls", ErrLoopLimit, a.maxTurns)
}

// callFunction never fails the turn: an unknown tool name or a failing
// implementation becomes an error payload the model can read and react
// to in its next move.
func (a *Agent) callFunction(ctx context.Context, call *model.FunctionCall) map[string]any {
	fd, exists := a.functionsMap[call.Name]
	if !exists {
		return map[string]any{
			"error": fmt.Sprintf("unknown function %q: it is not registered with this agent", call.Name),
		}
	}

	resp, err := fd.FunctionCall(ctx, call.Args)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	return resp
}

func (a *Agent) loadHistory(ctx context.Context, sessionID string) ([]model.Content, error) {
	if a.sessionRepository == nil {
		return nil, nil
	}

	stored, err := a.sessionRepository.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("agent: load history: %w", err)
	}

	return stored, nil
}

func (a *Agent) saveHistory(ctx context.Context, sessionID string, history []model.Content) {
	if a.sessionRepository == nil {
		return
	}

	if err := a.sessionRepository.Save(ctx, sessionID, history); err != nil {
		log.Printf("agent: warning: failed to save session %q: %v", sessionID, err)
	}
}

// ClearSession drops the stored history for a session.
func (a *Agent) ClearSession(ctx context.Context, sessionID string) {
	if a.sessionRepository == nil {
		return
	}

	if err := a.sessionRepository.Delete(ctx, sessionID); err != nil {
		log.Printf("agent: warning: failed to delete session %q: %v", sessionID, err)
	}
}

// GetSession returns the stored history for a session, empty if none.
func (a *Agent) GetSession(ctx context.Context, sessionID string) ([]model.Content, error) {
	if a.sessionRepository == nil {
		return []model.Content{}, nil
	}

	stored, err := a.sessionRepository.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("GetSession: %w", err)
	}

	if stored == nil {
		return []model.Content{}, nil
	}

	return stored, nil
}

func (a *Agent) emit(event Event) {
	if a.OnEvent != nil {
		a.OnEvent(event)
	}
}
