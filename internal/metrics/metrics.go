// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics is the single prometheus registrar shared by sql/rules,
// sql/cost and sql/rowexec, so a process embedding dbsim gets one
// consistent set of gauges/counters instead of each package registering
// its own ad hoc metric. No surviving teacher source wires
// client_golang directly (go-mysql-server's own metrics plumbing was
// filtered out of the retrieval pack), so the registrar shape here follows
// the plain v0.8.0-era prometheus API rather than imitating a specific
// teacher call site.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// QueryCostTotal is the total logical cost (sql/cost.Compute's return
	// value) of the most recently costed plan.
	QueryCostTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dbsim",
		Name:      "query_cost_total",
		Help:      "Total logical cost of the most recently costed plan.",
	})

	// RowsProcessedTotal accumulates the input row count recorded by every
	// relational operator across every query executed in this process.
	RowsProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dbsim",
		Name:      "rows_processed_total",
		Help:      "Cumulative input rows recorded by relational operators during execution.",
	})

	// RuleApplicationsTotal counts every successful HeuristicPlanner
	// rewrite across every plan optimized in this process.
	RuleApplicationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dbsim",
		Name:      "rule_applications_total",
		Help:      "Cumulative number of rule rewrites applied by the heuristic planner.",
	})
)

func init() {
	prometheus.MustRegister(QueryCostTotal, RowsProcessedTotal, RuleApplicationsTotal)
}
