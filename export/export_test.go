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

package export

import (
	"strings"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/gofrs/uuid/v5"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlow() types.Flow {
	nodes := types.GroupedNode{
		Source: []types.Node{{ID: "topic-t/#", Label: "Messages", Position: types.Position{X: 0, Y: 39},
			Data: types.NodeData{SpecificType: types.SourceTypeMessage, FormData: types.MessageForm{Topic: "t/#"}, Desc: "t/#", RulesUsed: []string{"r1"}}}},
		Sink: []types.Node{
			{ID: "console", Label: "Console Output", Position: types.Position{X: 900, Y: 0},
				Data: types.NodeData{SpecificType: types.SinkTypeConsole, FormData: types.ConsoleForm{}}},
			{ID: "mqtt-b1", Label: "MQTT Broker Egress", Position: types.Position{X: 900, Y: 78},
				Data: types.NodeData{SpecificType: "mqtt-egress", FormData: map[string]interface{}{"name": "b1", "id": "mqtt:b1"}, IsRemoved: true}},
		},
	}
	return types.Flow{Nodes: nodes, Edges: []types.Edge{
		types.NewEdge("topic-t/#", "console"),
		types.NewEdge("topic-t/#", "mqtt-b1"),
	}}
}

func TestToRuleChain(t *testing.T) {
	def := ToRuleChain("chain01", "test", testFlow())
	assert.Equal(t, "chain01", def.RuleChain.ID)
	assert.Equal(t, "test", def.RuleChain.Name)
	require.Equal(t, 3, len(def.Metadata.Nodes))
	assert.Equal(t, 2, len(def.Metadata.Connections))

	source := def.Metadata.Nodes[0]
	assert.Equal(t, "topic-t/#", source.Id)
	assert.Equal(t, "ruleflow/topic", source.Type)
	assert.Equal(t, 39, source.AdditionalInfo.LayoutY)
	assert.Equal(t, "t/#", source.Configuration["topic"])
	assert.Equal(t, []string{"r1"}, source.Configuration["rulesUsed"])

	bridge := def.Metadata.Nodes[2]
	assert.Equal(t, 900, bridge.AdditionalInfo.LayoutX)
	assert.Equal(t, 78, bridge.AdditionalInfo.LayoutY)
	assert.Equal(t, "mqtt:b1", bridge.Configuration["id"])

	assert.Equal(t, types.NodeConnection{FromId: "topic-t/#", ToId: "mqtt-b1", Type: types.Success}, def.Metadata.Connections[1])

	b, err := json.Marshal(def)
	require.Nil(t, err)
	assert.True(t, strings.Contains(string(b), `"layoutX":900`))

	t.Run("GenerateId", func(t *testing.T) {
		def := ToRuleChain("", "", types.Flow{})
		_, err := uuid.FromString(def.RuleChain.ID)
		assert.Nil(t, err)
		assert.Equal(t, 0, len(def.Metadata.Nodes))
	})
}

func TestToDOT(t *testing.T) {
	dot, err := ToDOT("rules", testFlow())
	require.Nil(t, err)
	assert.True(t, strings.Contains(dot, "cluster_source"))
	assert.True(t, strings.Contains(dot, "cluster_sink"))
	assert.False(t, strings.Contains(dot, "cluster_filter"))

	graphAst, err := gographviz.ParseString(dot)
	require.Nil(t, err)
	graph := gographviz.NewGraph()
	require.Nil(t, gographviz.Analyse(graphAst, graph))
	assert.True(t, graph.IsNode(`"topic-t/#"`))
	assert.True(t, graph.IsNode(`"mqtt-b1"`))
	assert.Equal(t, 2, len(graph.Edges.Edges))
	assert.Equal(t, "dashed", graph.Nodes.Lookup[`"mqtt-b1"`].Attrs["style"])
}
