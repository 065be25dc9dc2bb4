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

// Command dbsim is a small end-to-end demo of the query engine: parse ->
// resolve -> optimize -> execute -> print rows, mirroring
// original_source/dbsim/examples/run_query_end2end.py and demo.py's
// -cost/-explain paths (SPEC_FULL.md §12). With no -query given it runs a
// short built-in sequence against a hardcoded movie-recommendation dataset
// (original_source/dbsim/tests/fixtures/demo_adapter.py); with -query it
// runs exactly the given SQL text instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/wyfunique/dbsim/dataset"
	"github.com/wyfunique/dbsim/sql"
	sqlcost "github.com/wyfunique/dbsim/sql/cost"
	"github.com/wyfunique/dbsim/sql/rules"
)

var (
	queryFlag    = flag.String("query", "", "SQL text to run; if empty, runs the built-in demo sequence")
	optimizeFlag = flag.Bool("optimize", true, "rewrite the plan with the default rule-based optimizer before running it")
	costFlag     = flag.Bool("cost", false, "print the plan's logical cost")
	explainFlag  = flag.Bool("explain", false, "print the (possibly optimized) plan tree")
	describeFlag = flag.Bool("describe", false, "print the query's output schema as YAML")
	configFlag   = flag.String("config", "cmd/dbsim/dbsim.toml", "bootstrap TOML file (log level/optimize/rules)")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbsim: loading config: %v\n", err)
		os.Exit(1)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	ds := dataset.New()
	ds.AddAdapter(buildDemoDatabase())
	optimize := cfg.Optimize
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "optimize" {
			optimize = *optimizeFlag
		}
	})
	if optimize {
		ds.DefaultOptimizer = buildPlanner(cfg.Rules)
	}

	if *queryFlag != "" {
		runOne(ds, "-query", *queryFlag)
		return
	}
	for _, dq := range demoQueries {
		runOne(ds, dq.label, dq.sql)
	}
}

// buildPlanner wires a HeuristicPlanner with the named rules, in the order
// given, the Go counterpart of run_query_end2end.py's three addRule calls.
// An unrecognized rule name is logged and skipped rather than failing the
// whole run.
func buildPlanner(names []string) *rules.HeuristicPlanner {
	p := rules.NewHeuristicPlanner()
	for _, name := range names {
		switch name {
		case "filter_merge":
			p.AddRule(rules.NewFilterMergeRule())
		case "filter_pushdown":
			p.AddRule(rules.NewFilterPushDownRule())
		case "extension_swap":
			p.AddRule(rules.NewSelectionExtensionSwapRule())
		default:
			logrus.Warnf("dbsim: unknown rule %q in config, skipping", name)
		}
	}
	return p
}

// runOne parses, resolves and (if enabled) optimizes sqlText against ds,
// then prints whichever of describe/explain/cost/rows the active flags
// select -- describe and explain run off the already-built Query without
// executing it; cost drives sql/cost.Compute (which executes the plan
// itself, via ds.ExecuteNode, to collect row counts); otherwise the query's
// rows are printed directly.
func runOne(ds *dataset.Dataset, label, sqlText string) {
	fmt.Printf("------------------ %s\n", label)
	q, err := ds.Query(sqlText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbsim: %v\n", err)
		return
	}

	if *describeFlag {
		out, err := q.Schema().Describe()
		if err != nil {
			fmt.Fprintf(os.Stderr, "dbsim: describing schema: %v\n", err)
		} else {
			fmt.Print(out)
		}
	}

	if *explainFlag {
		explainTree(os.Stdout, q.Plan())
	}

	if *costFlag {
		ctx := sql.NewContext(context.Background())
		total, err := sqlcost.Compute(ctx, q.Plan(), func(ctx *sql.Context, node sql.Node) (sql.RowIter, error) {
			return ds.ExecuteNode(node, ctx)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "dbsim: computing cost: %v\n", err)
		} else {
			fmt.Printf("cost: %v\n", total)
		}
		return
	}

	ctx := sql.NewContext(context.Background())
	iter, err := q.Iterator(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbsim: %v\n", err)
		return
	}
	rows, err := sql.Materialize(ctx, iter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbsim: %v\n", err)
		return
	}
	for _, row := range rows {
		fmt.Println(row)
	}
}
