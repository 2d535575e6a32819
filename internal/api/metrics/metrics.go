// Package metrics defines and registers the custom Prometheus metrics of the
// trailmate API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trailmate"

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
// Label:
//   - kind: "equipmentPost" or "trailPost"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by kind.",
	},
	[]string{"kind"},
)

// PostsDeletedTotal counts posts removed by their owners.
var PostsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted, by kind.",
	},
	[]string{"kind"},
)

// ReactionsTotal counts like/unlike/comment/uncomment mutations that were applied.
// Labels:
//   - kind: the post kind
//   - action: "like", "unlike", "comment" or "uncomment"
var ReactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reactions_total",
		Help:      "Total number of applied likes, unlikes, comments and comment deletions.",
	},
	[]string{"kind", "action"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registrations and logins.
// Labels:
//   - operation: "register" or "login"
//   - result: "success", "rejected" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by result.",
	},
	[]string{"operation", "result"},
)

// ── Infrastructure metrics ────────────────────────────────────────────────────

// ProfileCacheTotal counts author profile lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ProfileCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_cache_total",
		Help:      "Total number of author profile cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// MutationQueueDepth tracks the number of post mutations waiting in each
// serializer worker channel.
var MutationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mutation_queue_depth",
		Help:      "Current number of post mutations pending in each serializer worker channel.",
	},
	[]string{"worker_id"},
)
