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
	"strings"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
)

// DisabledClass 已删除桥接节点的样式
const DisabledClass = "is-disabled"

var fixedSpecificTypes = map[string]bool{
	types.SourceTypeEvent:        true,
	types.SourceTypeMessage:      true,
	types.SinkTypeConsole:        true,
	types.SinkTypeRePub:          true,
	types.ProcessingTypeFilter:   true,
	types.ProcessingTypeFunction: true,
}

// IsBridgeNode 是否是桥接节点
func IsBridgeNode(node types.Node) bool {
	return node.Type != types.NodeTypeProcessing && !fixedSpecificTypes[node.Data.SpecificType]
}

// IsRemovedBridge 桥接节点表单只有 name 和 id，说明桥接配置已经不存在
func IsRemovedBridge(node types.Node) bool {
	return IsBridgeNode(node) && maps.KeyCount(node.Data.FormData) < 3
}

// AddFlagToRemovedBridgeNode 标记已删除的桥接节点，节点仍然保留在图中
func AddFlagToRemovedBridgeNode(node types.Node) types.Node {
	if IsRemovedBridge(node) {
		node.Class = strings.TrimPrefix(node.Class+" "+DisabledClass, " ")
		node.Data.IsRemoved = true
	}
	return node
}

// MarkRemovedBridges 标记分组中所有已删除的桥接节点，返回新的分组
func MarkRemovedBridges(nodes types.GroupedNode) types.GroupedNode {
	result := nodes.Clone()
	for _, category := range types.Categories {
		column := result.Get(category)
		for i := range column {
			column[i] = AddFlagToRemovedBridgeNode(column[i])
		}
	}
	return result
}
