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
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/rulego/ruleflow/api/types"
)

// ToDOT 导出成 Graphviz DOT，每一列一个子图
// 节点坐标写入 pos 属性，使用 neato -n 渲染时保持布局
func ToDOT(name string, flow types.Flow) (string, error) {
	if name == "" {
		name = "ruleflow"
	}
	graphName := strconv.Quote(name)
	graph := gographviz.NewGraph()
	if err := graph.SetName(graphName); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}
	if err := graph.AddAttr(graphName, "rankdir", "LR"); err != nil {
		return "", err
	}
	for _, category := range types.Categories {
		nodes := flow.Nodes.Get(category)
		if len(nodes) == 0 {
			continue
		}
		subGraph := "cluster_" + category.String()
		if err := graph.AddSubGraph(graphName, subGraph, map[string]string{
			"label": strconv.Quote(category.String()),
		}); err != nil {
			return "", err
		}
		for _, node := range nodes {
			attrs := map[string]string{
				"label": strconv.Quote(node.Label),
				"shape": "box",
				"pos":   strconv.Quote(fmt.Sprintf("%g,%g!", node.Position.X, -node.Position.Y)),
			}
			if node.Data.IsRemoved {
				attrs["style"] = "dashed"
			}
			if node.Data.Desc != "" {
				attrs["tooltip"] = strconv.Quote(node.Data.Desc)
			}
			if err := graph.AddNode(subGraph, strconv.Quote(node.ID), attrs); err != nil {
				return "", err
			}
		}
	}
	for _, edge := range flow.Edges {
		if err := graph.AddEdge(strconv.Quote(edge.Source), strconv.Quote(edge.Target), true, nil); err != nil {
			return "", err
		}
	}
	return graph.String(), nil
}
