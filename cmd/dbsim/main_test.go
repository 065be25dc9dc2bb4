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

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyfunique/dbsim/dataset"
	"github.com/wyfunique/dbsim/sql"
)

func runRows(t *testing.T, ds *dataset.Dataset, sqlText string) []sql.Row {
	t.Helper()
	q, err := ds.Query(sqlText)
	require.NoError(t, err)
	ctx := sql.NewContext(context.Background())
	iter, err := q.Iterator(ctx)
	require.NoError(t, err)
	rows, err := sql.Materialize(ctx, iter)
	require.NoError(t, err)
	return rows
}

// TestDemoQueriesWithoutOptimizer runs every built-in demo query against an
// un-optimized Dataset and checks the row set each produces, independent of
// join/scan order.
func TestDemoQueriesWithoutOptimizer(t *testing.T) {
	ds := dataset.New()
	ds.AddAdapter(buildDemoDatabase())

	standardRows := runRows(t, ds, demoQueries[0].sql)
	require.ElementsMatch(t, []sql.Row{
		sql.NewRow("Beauty and the Beast", int64(1991)),
		sql.NewRow("Aladdin", int64(1992)),
	}, standardRows)

	simselectRows := runRows(t, ds, demoQueries[1].sql)
	require.ElementsMatch(t, []sql.Row{
		sql.NewRow("Beauty and the Beast", int64(1991)),
		sql.NewRow("Aladdin", int64(1992)),
	}, simselectRows)

	spatialRows := runRows(t, ds, demoQueries[2].sql)
	require.ElementsMatch(t, []sql.Row{
		sql.NewRow(int64(1), "origin-ish"),
		sql.NewRow(int64(2), "on-axis"),
	}, spatialRows)
}

// TestDemoQueriesWithOptimizer re-runs the same queries through a
// HeuristicPlanner built with every rule enabled, checking that rewriting
// the plan never changes the result set.
func TestDemoQueriesWithOptimizer(t *testing.T) {
	ds := dataset.New()
	ds.AddAdapter(buildDemoDatabase())
	ds.DefaultOptimizer = buildPlanner(defaultConfig().Rules)

	standardRows := runRows(t, ds, demoQueries[0].sql)
	require.ElementsMatch(t, []sql.Row{
		sql.NewRow("Beauty and the Beast", int64(1991)),
		sql.NewRow("Aladdin", int64(1992)),
	}, standardRows)

	simselectRows := runRows(t, ds, demoQueries[1].sql)
	require.ElementsMatch(t, []sql.Row{
		sql.NewRow("Beauty and the Beast", int64(1991)),
		sql.NewRow("Aladdin", int64(1992)),
	}, simselectRows)
}

// TestBuildPlannerSkipsUnknownRules exercises the default-skip-and-warn
// behavior for a config listing a rule name buildPlanner does not
// recognize.
func TestBuildPlannerSkipsUnknownRules(t *testing.T) {
	p := buildPlanner([]string{"filter_merge", "not_a_real_rule"})
	require.NotNil(t, p)
}

func TestLoadConfigDefaultsWhenPathMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbsim.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"
optimize = false
rules = ["filter_merge"]
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.False(t, cfg.Optimize)
	require.Equal(t, []string{"filter_merge"}, cfg.Rules)
}
