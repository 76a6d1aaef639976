// Package kubeapi renders the simulated cluster as genuine Kubernetes
// API lists, so kube-aware tooling can browse the demo cluster over the
// engine's HTTP surface.
package kubeapi

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

// PodList converts a snapshot into a corev1.PodList, filtered by
// namespace unless allNamespaces is set.
func PodList(state cluster.State, namespace string, allNamespaces bool) corev1.PodList {
	list := corev1.PodList{
		TypeMeta: metav1.TypeMeta{
			Kind:       "PodList",
			APIVersion: "v1",
		},
		ListMeta: metav1.ListMeta{
			ResourceVersion: "1",
		},
	}

	for _, pod := range state.Pods {
		if !allNamespaces && pod.Namespace != namespace {
			continue
		}

		list.Items = append(list.Items, toCorePod(pod))
	}

	return list
}

// EventList converts a pod's event log into a corev1.EventList.
func EventList(pod cluster.Pod) corev1.EventList {
	list := corev1.EventList{
		TypeMeta: metav1.TypeMeta{
			Kind:       "EventList",
			APIVersion: "v1",
		},
		ListMeta: metav1.ListMeta{
			ResourceVersion: "1",
		},
	}

	ref := corev1.ObjectReference{
		Kind:      "Pod",
		Namespace: pod.Namespace,
		Name:      pod.Name,
		UID:       types.UID(pod.ID),
	}

	for _, ev := range pod.Events {
		ts := metav1.NewTime(ev.Timestamp)

		list.Items = append(list.Items, corev1.Event{
			ObjectMeta: metav1.ObjectMeta{
				Name:      ev.ID,
				Namespace: pod.Namespace,
			},
			InvolvedObject: ref,
			Type:           string(ev.Type),
			Reason:         ev.Reason,
			Message:        ev.Message,
			FirstTimestamp: ts,
			LastTimestamp:  ts,
			Count:          1,
			Source: corev1.EventSource{
				Component: "kubesim",
			},
		})
	}

	return list
}

func toCorePod(pod cluster.Pod) corev1.Pod {
	return corev1.Pod{
		TypeMeta: metav1.TypeMeta{
			Kind:       "Pod",
			APIVersion: "v1",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			UID:       types.UID(pod.ID),
			Labels:    pod.Labels,
		},
		Spec: corev1.PodSpec{
			NodeName: pod.Node,
		},
		Status: corev1.PodStatus{
			Phase: toPhase(pod.Status),
			PodIP: pod.IP,
		},
	}
}

// toPhase maps simulated statuses onto the nearest Kubernetes phase.
// Error becomes Failed; Terminating has no phase of its own and stays
// Running, matching how kubectl shows a deleting pod.
func toPhase(status cluster.PodStatus) corev1.PodPhase {
	switch status {
	case cluster.StatusPending:
		return corev1.PodPending
	case cluster.StatusError:
		return corev1.PodFailed
	case cluster.StatusRunning, cluster.StatusTerminating:
		return corev1.PodRunning
	default:
		return corev1.PodUnknown
	}
}
