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

package engine

import (
	"testing"

	"github.com/rulego/ruleflow/api/types"
	"github.com/stretchr/testify/assert"
)

func TestIsRemovedBridge(t *testing.T) {
	removed := types.Node{ID: "mqtt-b1", Type: types.NodeTypeSink, Data: types.NodeData{
		SpecificType: "mqtt-egress",
		FormData:     map[string]interface{}{"name": "b1", "id": "mqtt:b1"},
	}}
	alive := types.Node{ID: "mqtt-b2", Type: types.NodeTypeSink, Data: types.NodeData{
		SpecificType: "mqtt-egress",
		FormData:     map[string]interface{}{"name": "b2", "id": "mqtt:b2", "server": "127.0.0.1:1883"},
	}}
	console := types.Node{ID: "console", Type: types.NodeTypeSink, Data: types.NodeData{
		SpecificType: types.SinkTypeConsole,
		FormData:     types.ConsoleForm{},
	}}
	topic := types.Node{ID: "topic-t/#", Type: types.NodeTypeSource, Data: types.NodeData{
		SpecificType: types.SourceTypeMessage,
		FormData:     types.MessageForm{Topic: "t/#"},
	}}

	assert.True(t, IsRemovedBridge(removed))
	assert.False(t, IsRemovedBridge(alive))
	assert.False(t, IsRemovedBridge(console))
	assert.False(t, IsRemovedBridge(topic))

	t.Run("AddFlag", func(t *testing.T) {
		flagged := AddFlagToRemovedBridgeNode(removed)
		assert.Equal(t, DisabledClass, flagged.Class)
		assert.True(t, flagged.Data.IsRemoved)
		assert.False(t, removed.Data.IsRemoved)

		removed.Class = "selected"
		assert.Equal(t, "selected is-disabled", AddFlagToRemovedBridgeNode(removed).Class)

		assert.Equal(t, alive, AddFlagToRemovedBridgeNode(alive))
	})

	t.Run("MarkRemovedBridges", func(t *testing.T) {
		nodes := types.GroupedNode{Source: []types.Node{topic}, Sink: []types.Node{console, removed, alive}}
		result := MarkRemovedBridges(nodes)
		assert.False(t, result.Sink[0].Data.IsRemoved)
		assert.True(t, result.Sink[1].Data.IsRemoved)
		assert.False(t, result.Sink[2].Data.IsRemoved)
		assert.False(t, nodes.Sink[1].Data.IsRemoved)
	})
}
