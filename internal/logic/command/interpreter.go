// Package command emulates a small family of cluster-CLI and shell
// commands against the simulated cluster. Dispatch is an ordered list
// of (match, handler) rules; the first match wins and nothing ever
// fails, unmatched input degrades to a generic acknowledgment.
package command

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kubesimlab/kubesim/internal/infra/metrics"
	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

// snapshotter is the read surface the interpreter needs from the store.
type snapshotter interface {
	Snapshot() cluster.State
}

type rule struct {
	verb   string
	match  func(input string) bool
	handle func(input string, state cluster.State) string
}

type Interpreter struct {
	logger *slog.Logger
	store  snapshotter
	rules  []rule
}

// New creates an interpreter bound to the given store.
func New(logger *slog.Logger, store snapshotter) *Interpreter {
	i := &Interpreter{
		logger: logger,
		store:  store,
	}

	// Priority order matters: exec before logs, so that
	// "kubectl exec ... -- tail logs" hits the shell rule.
	i.rules = []rule{
		{
			verb:   "exec",
			match:  func(in string) bool { return strings.Contains(in, "exec") },
			handle: i.handleExec,
		},
		{
			verb:   "get-pods",
			match:  func(in string) bool { return strings.Contains(in, "get pods") },
			handle: i.handleGetPods,
		},
		{
			verb:   "describe-pod",
			match:  func(in string) bool { return strings.Contains(in, "describe pod") },
			handle: i.handleDescribePod,
		},
		{
			verb:   "logs",
			match:  func(in string) bool { return strings.Contains(in, "logs") },
			handle: i.handleLogs,
		},
		{
			verb:   "tcpdump",
			match:  func(in string) bool { return strings.Contains(in, "tcpdump") },
			handle: i.handleTcpdump,
		},
		{
			verb:   "fallback",
			match:  func(string) bool { return true },
			handle: i.handleFallback,
		},
	}

	return i
}

// Execute runs one command string and returns the formatted text
// response. Blank input is a no-op producing no output and no state
// change. No command path mutates pod state.
func (i *Interpreter) Execute(ctx context.Context, input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	state := i.store.Snapshot()

	for _, r := range i.rules {
		if !r.match(input) {
			continue
		}

		metrics.RecordCommand(r.verb)
		i.logger.DebugContext(ctx, "command dispatched", "verb", r.verb, "command", input)

		return r.handle(input, state)
	}

	// Unreachable: the fallback rule matches everything.
	return ""
}

// fields splits a command into whitespace-separated tokens.
func fields(input string) []string {
	return strings.Fields(input)
}

// tokenAfter returns the first token following marker that is not a
// flag, skipping the "--" separator.
func tokenAfter(tokens []string, marker string) string {
	for idx, tok := range tokens {
		if tok != marker {
			continue
		}

		for _, candidate := range tokens[idx+1:] {
			if candidate == "--" || strings.HasPrefix(candidate, "-") {
				continue
			}

			return candidate
		}

		return ""
	}

	return ""
}
