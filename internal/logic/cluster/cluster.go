// Package cluster holds the domain model of the simulated cluster.
// Everything here is plain data; behavior lives in the store, the
// simulator and the alert differ.
package cluster

import "time"

// PodStatus is the coarse lifecycle phase of a simulated pod.
type PodStatus string

const (
	StatusRunning     PodStatus = "Running"
	StatusPending     PodStatus = "Pending"
	StatusError       PodStatus = "Error"
	StatusTerminating PodStatus = "Terminating"
)

// EventType classifies pod events the same way Kubernetes does.
type EventType string

const (
	EventNormal  EventType = "Normal"
	EventWarning EventType = "Warning"
)

// Event is an immutable audit record appended to a pod's event log.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Reason    string    `json:"reason"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ConstraintType is the kind of scheduling constraint attached to a pod.
type ConstraintType string

const (
	ConstraintNodeAffinity    ConstraintType = "NodeAffinity"
	ConstraintPodAffinity     ConstraintType = "PodAffinity"
	ConstraintPodAntiAffinity ConstraintType = "PodAntiAffinity"
)

// ConstraintRule says whether a constraint is a hard or soft requirement.
type ConstraintRule string

const (
	RuleRequired  ConstraintRule = "Required"
	RulePreferred ConstraintRule = "Preferred"
)

// SchedulingConstraint is descriptive metadata only; no placement
// algorithm in this engine enforces it.
type SchedulingConstraint struct {
	Type     ConstraintType `json:"type"`
	Rule     ConstraintRule `json:"rule"`
	Selector string         `json:"selector"`
}

// Usage holds pod resource utilization as percentages.
// Both values are always within [0,100].
type Usage struct {
	CPU    float64 `json:"cpu"`
	Memory float64 `json:"memory"`
}

// Pod is one simulated workload instance bound to a node.
type Pod struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Namespace   string                 `json:"namespace"`
	Status      PodStatus              `json:"status"`
	IP          string                 `json:"ip"`
	Node        string                 `json:"node"`
	Labels      map[string]string      `json:"labels"`
	Usage       Usage                  `json:"usage"`
	Events      []Event                `json:"events"`
	Connections []string               `json:"connections"`
	Constraints []SchedulingConstraint `json:"schedulingConstraints"`
}

// Clone returns a deep copy of the pod. Events and constraints are value
// types, so copying the backing slices is enough.
func (p Pod) Clone() Pod {
	out := p

	if p.Labels != nil {
		out.Labels = make(map[string]string, len(p.Labels))
		for k, v := range p.Labels {
			out.Labels[k] = v
		}
	}

	if p.Events != nil {
		out.Events = make([]Event, len(p.Events))
		copy(out.Events, p.Events)
	}

	if p.Connections != nil {
		out.Connections = make([]string, len(p.Connections))
		copy(out.Connections, p.Connections)
	}

	if p.Constraints != nil {
		out.Constraints = make([]SchedulingConstraint, len(p.Constraints))
		copy(out.Constraints, p.Constraints)
	}

	return out
}

// State is the full cluster snapshot exchanged across the engine
// boundary. Snapshots never alias each other's mutable fields.
type State struct {
	Pods       []Pod    `json:"pods"`
	Namespaces []string `json:"namespaces"`
}

// Clone returns a deep, independently owned copy of the state.
func (s State) Clone() State {
	out := State{}

	if s.Pods != nil {
		out.Pods = make([]Pod, len(s.Pods))
		for i := range s.Pods {
			out.Pods[i] = s.Pods[i].Clone()
		}
	}

	if s.Namespaces != nil {
		out.Namespaces = make([]string, len(s.Namespaces))
		copy(out.Namespaces, s.Namespaces)
	}

	return out
}

// FindPod returns a pointer into the state's pod slice for the given
// name, or nil when no pod matches.
func (s *State) FindPod(name string) *Pod {
	for i := range s.Pods {
		if s.Pods[i].Name == name {
			return &s.Pods[i]
		}
	}

	return nil
}

// AlertType says which rule produced an alert.
type AlertType string

const (
	AlertStatus      AlertType = "Status"
	AlertUtilization AlertType = "Utilization"
)

// Severity ranks an alert.
type Severity string

const (
	SeverityWarning  Severity = "Warning"
	SeverityCritical Severity = "Critical"
)

// Alert is produced by the alert differ and consumed read-only
// downstream.
type Alert struct {
	ID        string    `json:"id"`
	PodID     string    `json:"podId"`
	PodName   string    `json:"podName"`
	Type      AlertType `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ClampPercent forces a utilization value back into [0,100].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 100 {
		return 100
	}

	return v
}
