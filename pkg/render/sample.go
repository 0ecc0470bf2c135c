package render

import "github.com/m-mizutani/releasegpt/pkg/domain/model"

// SampleContext returns the canned demo payload used to preview templates
func SampleContext(date string) *model.ReleaseContext {
	return &model.ReleaseContext{
		Title: "SkyRoute — Release Notes",
		Date:  date,
		Project: model.ProjectInfo{
			Name:    "SkyRoute - AI Drone Logistics",
			JiraKey: "SR",
			Repo:    "team/skyroute-service",
			Branch:  "main",
		},
		Narrative: []string{
			"This release pushes SkyRoute closer to reliable, real-world operations. Our focus was making autonomous routing smarter in tough conditions while giving operators better visibility into live missions.",
			"From wind-aware path planning to faster LIDAR processing, the system is more resilient and responsive. Operators also get a clearer control surface through an updated fleet dashboard.",
		},
		Highlights: []string{
			"Wind-aware routing for safer autonomous flights.",
			"Live fleet monitoring dashboard with richer telemetry.",
			"Lower latency in obstacle detection pipeline.",
		},
		Features: []string{
			"SR-101: Optimize drone routing for heavy winds",
			"SR-103: Add dashboard for live fleet monitoring",
		},
		Fixes: []string{
			"SR-102: Fix battery overheating alert issue",
		},
		Improvements: []string{
			"perf: optimize LIDAR data processing (f51c8d9)",
			"ui: refine telemetry rendering (c81d5a7)",
		},
		KnownIssues: []string{
			"Occasional jitter in drone icon at <2s telemetry intervals.",
			"Brief pause during route recompute under extreme wind spikes.",
		},
		UpgradeNotes: []string{
			"No schema migrations.",
			"Check new wind-compensation toggle in project settings.",
		},
		Credits: []string{"Alice", "Bob", "Chathumi", "Chanuka", "Supun"},
		Changelog: []string{
			"feat: add wind compensation to route planner (d91a2b3) — Alice on 2025-08-15",
			"fix: prevent false overheating alerts (a73ff21) — Bob on 2025-08-16",
			"ui: new dashboard for fleet live tracking (c81d5a7) — Chathumi on 2025-08-18",
			"perf: optimize LIDAR data processing (f51c8d9) — Chanuka on 2025-08-19",
		},
	}
}
