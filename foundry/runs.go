package foundry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/tool"
)

// Run stream event names.
const (
	EventMessageDelta     = "thread.message.delta"
	EventRunStepCompleted = "thread.run.step.completed"
	EventRunCompleted     = "thread.run.completed"
	EventRunFailed        = "thread.run.failed"
	EventRunCancelled     = "thread.run.cancelled"
	EventRunExpired       = "thread.run.expired"
	EventRunRequiresAct   = "thread.run.requires_action"
	EventError            = "error"
	EventDone             = "done"
)

// UpdateKind classifies a RunUpdate.
type UpdateKind int

const (
	UpdateText UpdateKind = iota
	UpdateToolCall
	UpdateToolResult
	UpdateCompleted
)

// RunUpdate is one decoded step of a streaming run.
type RunUpdate struct {
	Kind      UpdateKind
	Text      string
	Tool      string
	Arguments string
	Output    string
	RunID     string
}

// ErrRunRequiresAction is returned when a run stops to wait for tool approval or outputs.
var ErrRunRequiresAction = errors.New("run requires action")

// RunError is a run that ended in a failed, cancelled or expired state.
type RunError struct {
	RunID   string
	Status  string
	Code    string
	Message string
}

func (e *RunError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("run %s %s", e.RunID, e.Status)
	}
	return fmt.Sprintf("run %s %s: %s: %s", e.RunID, e.Status, e.Code, e.Message)
}

// RunOptions configure a streamed run.
type RunOptions struct {
	AgentID                string
	AdditionalInstructions string
	ToolResources          tool.Resources
}

type Thread struct {
	ID string `json:"id"`
}

// CreateThread starts an empty conversation.
func (c *AgentsClient) CreateThread(ctx context.Context) (*Thread, error) {
	var out Thread
	if err := c.arm.Post(ctx, c.arm.URL("/threads", c.query()), struct{}{}, &out); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return &out, nil
}

// AddMessage appends a user message to the thread.
func (c *AgentsClient) AddMessage(ctx context.Context, threadID, content string) error {
	body := map[string]string{"role": "user", "content": content}
	if err := c.arm.Post(ctx, c.arm.URL("/threads/"+url.PathEscape(threadID)+"/messages", c.query()), body, nil); err != nil {
		return fmt.Errorf("add message to %s: %w", threadID, err)
	}
	return nil
}

// StreamRun runs the agent on the thread and calls fn for each update until the run finishes.
func (c *AgentsClient) StreamRun(ctx context.Context, threadID string, opts RunOptions, fn func(RunUpdate)) error {
	body := struct {
		AssistantID            string          `json:"assistant_id"`
		Stream                 bool            `json:"stream"`
		AdditionalInstructions string          `json:"additional_instructions,omitempty"`
		ToolResources          *tool.Resources `json:"tool_resources,omitempty"`
	}{
		AssistantID:            opts.AgentID,
		Stream:                 true,
		AdditionalInstructions: opts.AdditionalInstructions,
	}
	if !opts.ToolResources.Empty() {
		body.ToolResources = &opts.ToolResources
	}

	stream, err := c.arm.Stream(ctx, constants.HTTPMethodPOST, c.arm.URL("/threads/"+url.PathEscape(threadID)+"/runs", c.query()), body)
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	defer stream.Close()

	errDone := errors.New("done")
	err = ReadEvents(stream, func(ev ServerEvent) error {
		if ev.Name == EventDone {
			return errDone
		}
		return decodeRunEvent(ev, fn)
	})
	if errors.Is(err, errDone) {
		return nil
	}
	return err
}

type runPayload struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageDelta struct {
	Delta struct {
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"delta"`
}

type runStep struct {
	RunID       string `json:"run_id"`
	StepDetails struct {
		Type      string `json:"type"`
		ToolCalls []struct {
			Type      string `json:"type"`
			Name      string `json:"name"`
			Arguments string `json:"arguments"`
			Output    string `json:"output"`
			Function  *struct {
				Name      string `json:"name"`
				Arguments string `json:"arguments"`
				Output    string `json:"output"`
			} `json:"function"`
		} `json:"tool_calls"`
	} `json:"step_details"`
}

func decodeRunEvent(ev ServerEvent, fn func(RunUpdate)) error {
	switch ev.Name {
	case EventMessageDelta:
		var d messageDelta
		if err := json.Unmarshal(ev.Data, &d); err != nil {
			return fmt.Errorf("decode %s: %w", ev.Name, err)
		}
		for _, c := range d.Delta.Content {
			if c.Type == "text" && c.Text.Value != "" {
				fn(RunUpdate{Kind: UpdateText, Text: c.Text.Value})
			}
		}
	case EventRunStepCompleted:
		var s runStep
		if err := json.Unmarshal(ev.Data, &s); err != nil {
			return fmt.Errorf("decode %s: %w", ev.Name, err)
		}
		for _, call := range s.StepDetails.ToolCalls {
			name, args, output := call.Name, call.Arguments, call.Output
			if call.Function != nil {
				name, args, output = call.Function.Name, call.Function.Arguments, call.Function.Output
			}
			fn(RunUpdate{Kind: UpdateToolCall, Tool: name, Arguments: args, RunID: s.RunID})
			if output != "" {
				fn(RunUpdate{Kind: UpdateToolResult, Tool: name, Output: output, RunID: s.RunID})
			}
		}
	case EventRunCompleted:
		var r runPayload
		_ = json.Unmarshal(ev.Data, &r)
		fn(RunUpdate{Kind: UpdateCompleted, RunID: r.ID})
	case EventRunFailed, EventRunCancelled, EventRunExpired:
		var r runPayload
		if err := json.Unmarshal(ev.Data, &r); err != nil {
			return fmt.Errorf("decode %s: %w", ev.Name, err)
		}
		re := &RunError{RunID: r.ID, Status: r.Status}
		if r.LastError != nil {
			re.Code, re.Message = r.LastError.Code, r.LastError.Message
		}
		return re
	case EventRunRequiresAct:
		return ErrRunRequiresAction
	case EventError:
		return fmt.Errorf("run stream error: %s", ev.Data)
	}
	return nil
}
