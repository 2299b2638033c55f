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
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/str"
)

// Merge 合并多个规则的流程图
// 相同ID的节点合并成一个，保留第一次出现的数据，RulesUsed 按出现顺序合并；连线按ID去重
func Merge(flows ...types.Flow) types.Flow {
	var result types.Flow
	for _, category := range types.Categories {
		var merged []types.Node
		index := make(map[string]int)
		for _, flow := range flows {
			for _, node := range flow.Nodes.Get(category) {
				if i, ok := index[node.ID]; ok {
					merged[i].Data.RulesUsed = str.AppendUnique(merged[i].Data.RulesUsed, node.Data.RulesUsed...)
					continue
				}
				node.Data.RulesUsed = append([]string(nil), node.Data.RulesUsed...)
				index[node.ID] = len(merged)
				merged = append(merged, node)
			}
		}
		result.Nodes.Set(category, merged)
	}
	seen := make(map[string]bool)
	for _, flow := range flows {
		for _, edge := range flow.Edges {
			if seen[edge.ID] {
				continue
			}
			seen[edge.ID] = true
			result.Edges = append(result.Edges, edge)
		}
	}
	return result
}
