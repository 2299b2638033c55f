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

import "github.com/rulego/ruleflow/api/types"

// GenerateEdgesFromNodes 按 Source -> Function -> Filter -> Sink 顺序连接相邻的非空列
// 右侧列为空时跳过，连接到下一个非空列；两列之间所有节点两两相连
func GenerateEdgesFromNodes(nodes types.GroupedNode) []types.Edge {
	var edges []types.Edge
	for i := 0; i < len(types.Categories)-1; i++ {
		current := nodes.Get(types.Categories[i])
		if len(current) == 0 {
			continue
		}
		var next []types.Node
		for j := i + 1; j < len(types.Categories) && len(next) == 0; j++ {
			next = nodes.Get(types.Categories[j])
		}
		for _, cur := range current {
			for _, nex := range next {
				edges = append(edges, types.NewEdge(cur.ID, nex.ID))
			}
		}
	}
	return edges
}
