package provision

import (
	"context"
	"fmt"
	"io"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/foundry"
	"github.com/awantoch/foundryflow/tool"
	"github.com/awantoch/foundryflow/utils"
)

// PrintAgents writes one line per agent.
func PrintAgents(w io.Writer, agents []agent.Agent) {
	for _, a := range agents {
		fmt.Fprintf(w, "Agent ID: %s, Name: %s, Description: %s, Deployment Name: %s\n", a.ID, a.Name, a.Description, a.Model)
	}
}

// DeleteByName deletes every agent called name and reports how many there were.
func DeleteByName(ctx context.Context, svc agent.Service, name string) (int, error) {
	agents, err := svc.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range agents {
		if a.Name != name {
			continue
		}
		if err := svc.Delete(ctx, a); err != nil {
			if arm.IsNotFound(err) {
				utils.Warn("Agent %s (%s) was already deleted", a.Name, a.ID)
				continue
			}
			return n, fmt.Errorf("delete agent %s (%s): %w", a.Name, a.ID, err)
		}
		n++
	}
	return n, nil
}

// Invoker runs a conversation turn against an agent.
type Invoker interface {
	CreateThread(ctx context.Context) (*foundry.Thread, error)
	AddMessage(ctx context.Context, threadID, content string) error
	StreamRun(ctx context.Context, threadID string, opts foundry.RunOptions, fn func(foundry.RunUpdate)) error
}

// Invocation is one user message sent to an agent.
type Invocation struct {
	Agent                  agent.Agent
	Message                string
	AdditionalInstructions string
	Resources              tool.Resources
}

// Invoke sends the message on a new thread and writes the streamed reply, including tool
// calls and results, to w.
func Invoke(ctx context.Context, inv Invoker, in Invocation, w io.Writer) error {
	thread, err := inv.CreateThread(ctx)
	if err != nil {
		return err
	}
	if err := inv.AddMessage(ctx, thread.ID, in.Message); err != nil {
		return err
	}

	inText := false
	endText := func() {
		if inText {
			fmt.Fprintln(w)
			inText = false
		}
	}
	err = inv.StreamRun(ctx, thread.ID, foundry.RunOptions{
		AgentID:                in.Agent.ID,
		AdditionalInstructions: in.AdditionalInstructions,
		ToolResources:          in.Resources,
	}, func(u foundry.RunUpdate) {
		switch u.Kind {
		case foundry.UpdateToolCall:
			endText()
			fmt.Fprintf(w, "Function Call:> %s with arguments: %s\n", u.Tool, u.Arguments)
		case foundry.UpdateToolResult:
			endText()
			fmt.Fprintf(w, "Function Result:> %s for function: %s\n", u.Output, u.Tool)
		case foundry.UpdateText:
			if !inText {
				fmt.Fprintf(w, "%s: ", in.Agent.Name)
				inText = true
			}
			fmt.Fprint(w, u.Text)
		case foundry.UpdateCompleted:
			endText()
		}
	})
	endText()
	return err
}
