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

// 列下标
const (
	columnSource = 0
	columnSink   = 3
)

func (c *Compiler) xPosition(columnIndex int) float64 {
	g := c.config.Geometry
	return (g.NodeWidth + g.ColumnSpacing) * float64(columnIndex)
}

func (c *Compiler) yPosition(index int, start float64) float64 {
	g := c.config.Geometry
	return start + float64(index)*(g.RowSpacing+g.NodeHeight)
}

// totalHeight 节点最多的列的高度
func (c *Compiler) totalHeight(columns ...[]types.Node) float64 {
	g := c.config.Geometry
	count := 0
	for _, nodes := range columns {
		if len(nodes) > count {
			count = len(nodes)
		}
	}
	return float64(count)*(g.NodeHeight+g.RowSpacing) - g.RowSpacing
}

// setPositionToColumnNodes 列内节点垂直居中
func (c *Compiler) setPositionToColumnNodes(nodes []types.Node, columnIndex int, totalHeight float64) {
	g := c.config.Geometry
	columnHeight := float64(len(nodes))*(g.NodeHeight+g.RowSpacing) - g.RowSpacing
	x := c.xPosition(columnIndex)
	startY := (totalHeight - columnHeight) / 2
	for i := range nodes {
		nodes[i].Position = types.Position{X: x, Y: c.yPosition(i, startY)}
	}
}

// firstSourceIndexConnected 第一个和节点属于同一规则的数据源下标，找不到返回-1
func firstSourceIndexConnected(node types.Node, sources []types.Node) int {
	if len(node.Data.RulesUsed) == 0 {
		return -1
	}
	ruleID := node.Data.RulesUsed[0]
	for i, source := range sources {
		if str.Contains(source.Data.RulesUsed, ruleID) {
			return i
		}
	}
	return -1
}

// setNodesPositionBySource 处理节点和所属规则的数据源对齐
// 数据源已经被同一列前面的节点占用时依次往后找；超出数据源数量时，
// 以第一个占用的数据源为起点往下排列。
// 没有连接数据源的节点不占用数据源，排在所有已占用行的下面；整列都没有连接时从垂直中点往下排列
func (c *Compiler) setNodesPositionBySource(nodes []types.Node, sources []types.Node, columnIndex int, totalHeight float64) {
	x := c.xPosition(columnIndex)
	used := make(map[int]bool)
	firstClaimed, lastClaimed := -1, -1
	var unconnected []int
	for i := range nodes {
		index := firstSourceIndexConnected(nodes[i], sources)
		if index < 0 {
			unconnected = append(unconnected, i)
			continue
		}
		for used[index] {
			index++
		}
		used[index] = true
		if firstClaimed < 0 {
			firstClaimed = index
		}
		if index > lastClaimed {
			lastClaimed = index
		}
		y := sources[firstClaimed].Position.Y
		if index < len(sources) {
			y = sources[index].Position.Y
		} else {
			y = c.yPosition(index-firstClaimed, y)
		}
		nodes[i].Position = types.Position{X: x, Y: y}
	}
	if len(unconnected) == 0 {
		return
	}
	if firstClaimed < 0 {
		for k, i := range unconnected {
			nodes[i].Position = types.Position{X: x, Y: c.yPosition(k, totalHeight/2)}
		}
		return
	}
	next := lastClaimed + 1
	if next < len(sources) {
		next = len(sources)
	}
	startY := sources[firstClaimed].Position.Y
	for k, i := range unconnected {
		nodes[i].Position = types.Position{X: x, Y: c.yPosition(next+k-firstClaimed, startY)}
	}
}

// CountNodesPosition 计算多规则视图的节点坐标，返回新的分组，不修改参数
// 数据源和输出列按两者中较高的一列居中，函数和过滤列对齐所属规则的数据源，减少连线交叉
func (c *Compiler) CountNodesPosition(nodes types.GroupedNode) types.GroupedNode {
	result := nodes.Clone()
	totalHeight := c.totalHeight(result.Source, result.Sink)
	c.setPositionToColumnNodes(result.Source, columnSource, totalHeight)
	c.setPositionToColumnNodes(result.Sink, columnSink, totalHeight)
	for columnIndex, category := range []types.Category{types.CategoryFunction, types.CategoryFilter} {
		c.setNodesPositionBySource(result.Get(category), result.Source, columnIndex+1, totalHeight)
	}
	return result
}

// CountNodePositionWhileEditing 编辑单个规则时计算节点坐标，每一列独立居中
func (c *Compiler) CountNodePositionWhileEditing(nodes types.GroupedNode) types.GroupedNode {
	result := nodes.Clone()
	var columns [][]types.Node
	for _, category := range types.Categories {
		columns = append(columns, result.Get(category))
	}
	totalHeight := c.totalHeight(columns...)
	for index, column := range columns {
		c.setPositionToColumnNodes(column, index, totalHeight)
	}
	return result
}
