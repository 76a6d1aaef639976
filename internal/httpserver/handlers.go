package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kubesimlab/kubesim/internal/adapters/kubeapi"
	"github.com/kubesimlab/kubesim/internal/infra/pinger"
	"github.com/kubesimlab/kubesim/internal/logic/cluster"
	"github.com/kubesimlab/kubesim/internal/logic/command"
)

type statusResponse struct {
	State      string                        `json:"state"`
	Uptime     string                        `json:"uptime"`
	StartTime  time.Time                     `json:"startTime"`
	UptimeSec  float64                       `json:"uptimeSeconds"`
	Components map[string]*pinger.Statistics `json:"components"`
}

type commandRequest struct {
	Command string `json:"command"`
}

type commandResponse struct {
	Output  string        `json:"output"`
	Cluster cluster.State `json:"cluster"`
}

type assistantRequest struct {
	Steps []command.Step `json:"steps"`
}

type assistantResponse struct {
	Results []command.StepResult `json:"results"`
	Cluster cluster.State        `json:"cluster"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsHealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := s.appState.GetUptime()

	s.writeJSON(w, r, http.StatusOK, statusResponse{
		State:      string(s.appState.GetState()),
		Uptime:     uptime.String(),
		StartTime:  s.appState.GetStartTime(),
		UptimeSec:  uptime.Seconds(),
		Components: s.appState.GetAllStats(),
	})
}

func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.feed.List())
}

// handleCommand executes one operator command and returns its text
// output plus the post-command snapshot. Blank commands are a no-op
// with empty output, never an error.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest

	if !s.decodeJSON(w, r, &req) {
		return
	}

	output := s.commands.Execute(r.Context(), req.Command)

	s.writeJSON(w, r, http.StatusOK, commandResponse{
		Output:  output,
		Cluster: s.store.Snapshot(),
	})
}

// handleAssistant executes an externally translated plan of steps.
// Only the command field of each step is interpreted.
func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest

	if !s.decodeJSON(w, r, &req) {
		return
	}

	results := s.commands.RunSteps(r.Context(), req.Steps)

	s.writeJSON(w, r, http.StatusOK, assistantResponse{
		Results: results,
		Cluster: s.store.Snapshot(),
	})
}

func (s *Server) handleKubePods(w http.ResponseWriter, r *http.Request) {
	namespace := chi.URLParam(r, "namespace")
	allNamespaces := namespace == "*"

	list := kubeapi.PodList(s.store.Snapshot(), namespace, allNamespaces)

	s.writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleKubePodEvents(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	namespace := chi.URLParam(r, "namespace")

	state := s.store.Snapshot()

	pod := state.FindPod(name)
	if pod == nil || pod.Namespace != namespace {
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{
			Error: "pod " + name + " not found in namespace " + namespace,
		})

		return
	}

	s.writeJSON(w, r, http.StatusOK, kubeapi.EventList(*pod))
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxCommandBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Error: "invalid request body: " + err.Error(),
		})

		return false
	}

	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to encode response",
			"error", err,
		)
	}
}
