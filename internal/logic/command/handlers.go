package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

const (
	defaultNamespace = "default"

	// Fixed placeholders for the pod table; restart counts and ages are
	// not simulated.
	tableReady    = "1/1"
	tableRestarts = "0"
	tableAge      = "2d"
)

func (i *Interpreter) handleExec(input string, _ cluster.State) string {
	tokens := fields(input)

	pod := tokenAfter(tokens, "exec")
	if pod == "" {
		pod = "pod"
	}

	lines := []string{
		fmt.Sprintf("Connecting to pod %s...", pod),
		"/ # ls",
		"app    bin    etc    lib    tmp    usr    var",
		"/ # ps aux",
		"PID   USER     COMMAND",
		"1     root     /app/server",
		"24    root     ps aux",
		"/ # exit",
		fmt.Sprintf("Session ended. Connection to pod %s closed.", pod),
	}

	return strings.Join(lines, "\n")
}

func (i *Interpreter) handleGetPods(input string, state cluster.State) string {
	tokens := fields(input)

	allNamespaces := false
	namespace := defaultNamespace

	for idx, tok := range tokens {
		switch {
		case tok == "-A" || tok == "--all-namespaces":
			allNamespaces = true
		case tok == "-n" && idx+1 < len(tokens):
			namespace = tokens[idx+1]
		case strings.HasPrefix(tok, "--namespace="):
			namespace = strings.TrimPrefix(tok, "--namespace=")
		}
	}

	var rows []cluster.Pod

	for _, pod := range state.Pods {
		if allNamespaces || pod.Namespace == namespace {
			rows = append(rows, pod)
		}
	}

	if len(rows) == 0 {
		return fmt.Sprintf("No resources found in %s namespace.", namespace)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%-32s %-8s %-14s %-10s %-6s\n", "NAME", "READY", "STATUS", "RESTARTS", "AGE")

	for _, pod := range rows {
		fmt.Fprintf(&b, "%-32s %-8s %-14s %-10s %-6s\n",
			pod.Name, tableReady, string(pod.Status), tableRestarts, tableAge)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (i *Interpreter) handleDescribePod(input string, state cluster.State) string {
	tokens := fields(input)

	name := tokenAfter(tokens, "pod")
	if name == "" {
		return `Error from server (NotFound): pods "" not found`
	}

	pod := state.FindPod(name)
	if pod == nil {
		return fmt.Sprintf("Error from server (NotFound): pods %q not found", name)
	}

	lines := []string{
		"Name:         " + pod.Name,
		"Namespace:    " + pod.Namespace,
		"Status:       " + string(pod.Status),
		"IP:           " + pod.IP,
		"Node:         " + pod.Node,
	}

	return strings.Join(lines, "\n")
}

func (i *Interpreter) handleLogs(_ string, _ cluster.State) string {
	now := time.Now().UTC()

	lines := []string{
		fmt.Sprintf("%s INFO Starting service...", now.Add(-2*time.Second).Format(time.RFC3339)),
		fmt.Sprintf("%s INFO Listening on port 8080", now.Add(-time.Second).Format(time.RFC3339)),
		fmt.Sprintf("%s INFO Health check passed", now.Format(time.RFC3339)),
	}

	return strings.Join(lines, "\n")
}

func (i *Interpreter) handleTcpdump(_ string, _ cluster.State) string {
	lines := []string{
		"tcpdump: listening on eth0, link-type EN10MB (Ethernet), snapshot length 262144 bytes",
		"10:42:17.312482 IP 10.244.1.23.44832 > 10.244.2.17.8080: Flags [S], seq 1829041, win 64240, length 0",
		"10:42:17.312611 IP 10.244.2.17.8080 > 10.244.1.23.44832: Flags [S.], ack 1829042, win 65535, length 0",
	}

	return strings.Join(lines, "\n")
}

func (i *Interpreter) handleFallback(input string, _ cluster.State) string {
	return fmt.Sprintf("Command executed: %s\n(simulated) Operation completed successfully.", input)
}
