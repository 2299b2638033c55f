/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ruleflow

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruleFile = `{
  "id": "rule_1",
  "sql": "SELECT payload.temp as t FROM \"t/#\" WHERE payload.temp > 10",
  "actions": [
    {"function": "console"},
    "mqtt:bridge1"
  ],
  "enable": true
}`

var ruleYamlFile = `
- id: rule_2
  sql: SELECT * FROM "t/#", "$events/client_connected"
  from: ["t/#", "$events/client_connected"]
  actions:
    - function: republish
      args:
        topic: a/b
    - mqtt:bridge1
`

func TestGenerate(t *testing.T) {
	flow := New(types.WithLogger(types.LoggerFunc(func(format string, v ...interface{}) {})))
	rules, err := ParseRules(".json", []byte(ruleFile))
	require.Nil(t, err)
	require.Equal(t, 1, len(rules))
	rule := rules[0]
	// from 为空时没有数据源节点
	result := flow.Generate(rule)
	assert.Equal(t, 0, len(result.Nodes.Source))
	assert.Equal(t, "function-rule_1", result.Nodes.Function[0].ID)
	assert.Equal(t, "filter-rule_1", result.Nodes.Filter[0].ID)
	assert.Equal(t, 3, len(result.Edges))

	rule.From = []string{"t/#"}
	edit := flow.GenerateForEdit(rule)
	assert.Equal(t, types.Position{X: 0, Y: 39}, edit.Nodes.Source[0].Position)
	assert.Equal(t, types.Position{X: 900, Y: 0}, edit.Nodes.Sink[0].Position)
	assert.Equal(t, types.Position{X: 900, Y: 78}, edit.Nodes.Sink[1].Position)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, fs.SaveFile(filepath.Join(dir, "rule_1.json"), []byte(ruleFile)))
	require.Nil(t, fs.SaveFile(filepath.Join(dir, "rules.yaml"), []byte(ruleYamlFile)))
	require.Nil(t, fs.SaveFile(filepath.Join(dir, "readme.txt"), []byte("ignored")))

	flow := New()
	require.Nil(t, flow.Load(dir))
	rules := flow.Rules()
	require.Equal(t, 2, len(rules))
	assert.Equal(t, "rule_1", rules[0].ID)
	assert.Equal(t, "rule_2", rules[1].ID)
	assert.Equal(t, "a/b", rules[1].Actions[0].Topic())
	assert.Equal(t, "mqtt:bridge1", rules[1].Actions[1].BridgeID)

	all := flow.GenerateAll()
	// 两个规则共用 mqtt-bridge1
	var sinkIDs []string
	for _, node := range all.Nodes.Sink {
		sinkIDs = append(sinkIDs, node.ID)
	}
	assert.Equal(t, []string{"console", "mqtt-bridge1", "republish-a/b"}, sinkIDs)
	assert.Equal(t, []string{"rule_1", "rule_2"}, all.Nodes.Sink[1].Data.RulesUsed)

	pattern := New()
	require.Nil(t, pattern.Load(filepath.Join(dir, "*.yaml")))
	require.Equal(t, 1, len(pattern.Rules()))
	assert.Equal(t, "rule_2", pattern.Rules()[0].ID)

	flow.Del("rule_1")
	_, ok := flow.Get("rule_1")
	assert.False(t, ok)

	bad := t.TempDir()
	require.Nil(t, fs.SaveFile(filepath.Join(bad, "bad.json"), []byte("{")))
	assert.NotNil(t, New().Load(bad))

	noID := t.TempDir()
	require.Nil(t, fs.SaveFile(filepath.Join(noID, "rule.json"), []byte(`{"sql":"SELECT * FROM \"t\""}`)))
	assert.True(t, errors.Is(New().Load(noID), ErrEmptyRuleId))
}

func TestParseRules(t *testing.T) {
	_, err := ParseRules(".xml", []byte("<rule/>"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	rules, err := ParseRules(".json", []byte(`[{"id":"a","sql":"SELECT * FROM \"t\"","actions":[]}]`))
	assert.Nil(t, err)
	assert.Equal(t, "a", rules[0].ID)
}

func TestForms(t *testing.T) {
	flow := New()
	items := flow.FunctionForm("payload.a as a, abs(payload.b) as b")
	assert.Equal(t, 2, len(items))
	assert.Equal(t, types.EditedWayForm, flow.FieldsEditedWay(items))

	form := flow.WhereForm("payload.a > 1 or payload.b = 'x'")
	assert.Equal(t, types.FilterLogicOr, form.Type)
	assert.Equal(t, types.EditedWayForm, flow.WhereEditedWay(form))

	ok, err := flow.TestWhere("payload.a > 1 or payload.b = 'x'", map[string]interface{}{
		"payload": map[string]interface{}{"a": 0, "b": "x"},
	})
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestRemovedBridges(t *testing.T) {
	lookup := types.BridgeLookupFunc(func(id string) (map[string]interface{}, bool) {
		return nil, false
	})
	flow := New(types.WithBridgeLookup(lookup))
	result := flow.Generate(types.Rule{
		ID:      "r1",
		SQL:     `SELECT * FROM "t/#"`,
		From:    []string{"t/#"},
		Actions: []types.OutputItem{types.NewBridgeOutput("mqtt:gone")},
	})
	assert.True(t, result.Nodes.Sink[0].Data.IsRemoved)
	assert.Equal(t, "is-disabled", result.Nodes.Sink[0].Class)
	assert.False(t, result.Nodes.Source[0].Data.IsRemoved)
}

func TestRuleFromFlow(t *testing.T) {
	flow := New()
	rule := types.Rule{
		ID:      "r1",
		SQL:     `SELECT payload.a FROM "t/#"`,
		From:    []string{"t/#"},
		Actions: []types.OutputItem{types.NewFuncOutput("console", nil)},
	}
	back, err := flow.RuleFromFlow("r1", flow.Generate(rule))
	assert.Nil(t, err)
	assert.Equal(t, "SELECT\n  payload.a\nFROM\n  \"t/#\"", back.SQL)
	assert.Equal(t, rule.Actions, back.Actions)
}
