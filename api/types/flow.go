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

package types

// NodeType 节点在流程图中的角色
type NodeType string

const (
	NodeTypeSource     NodeType = "source"
	NodeTypeProcessing NodeType = "processing"
	NodeTypeSink       NodeType = "sink"
)

// 数据源具体类型
const (
	SourceTypeEvent   = "event"
	SourceTypeMessage = "topic"
)

// 输出具体类型
const (
	SinkTypeConsole = "console"
	SinkTypeRePub   = "republish"
)

// 处理节点具体类型
const (
	ProcessingTypeFilter   = "filter"
	ProcessingTypeFunction = "function"
)

// BridgeDirection 桥接方向
type BridgeDirection string

const (
	BridgeDirectionIngress BridgeDirection = "ingress"
	BridgeDirectionEgress  BridgeDirection = "egress"
)

// SpecificTypeWithDirection 返回带方向的桥接类型，例如：mqtt-egress
func SpecificTypeWithDirection(bridgeType string, direction BridgeDirection) string {
	return bridgeType + "-" + string(direction)
}

// EditedWay 处理节点的编辑方式
type EditedWay string

const (
	// EditedWaySQL 只能以SQL文本编辑
	EditedWaySQL EditedWay = "sql"
	// EditedWayForm 可以无损地以表单编辑
	EditedWayForm EditedWay = "form"
)

// Position 节点坐标
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData 节点数据
type NodeData struct {
	// SpecificType 带方向的桥接类型或者固定类型(event/topic/console/republish/filter/function)
	SpecificType string `json:"specificType"`
	// FormData 表单数据
	FormData interface{} `json:"formData"`
	// Desc 节点描述
	Desc string `json:"desc"`
	// RulesUsed 使用该节点的规则ID列表
	RulesUsed []string `json:"rulesUsed,omitempty"`
	// IsRemoved 桥接已经被删除
	IsRemoved bool `json:"isRemoved,omitempty"`
}

// Node 流程图节点
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Label    string   `json:"label"`
	Class    string   `json:"class,omitempty"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Edge 连线，ID格式：{sourceId}-{targetId}
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// NewEdge 创建连线
func NewEdge(source, target string) Edge {
	return Edge{ID: source + "-" + target, Source: source, Target: target}
}

// EventForm 事件数据源表单
type EventForm struct {
	Event string `json:"event" mapstructure:"event"`
}

// MessageForm 主题数据源表单
type MessageForm struct {
	Topic string `json:"topic" mapstructure:"topic"`
}

// ConsoleForm 控制台输出表单
type ConsoleForm struct {
}

// ProcessingForm 过滤/函数节点表单
type ProcessingForm struct {
	EditedWay EditedWay `json:"editedWay" mapstructure:"editedWay"`
	// SQL 原始SQL片段
	SQL string `json:"sql" mapstructure:"sql"`
	// Form 结构化表单：函数节点为 []FunctionItem，过滤节点为 *FilterForm
	Form interface{} `json:"form" mapstructure:"form"`
}

// FuncCall 函数调用
type FuncCall struct {
	Name string   `json:"name" mapstructure:"name"`
	Args []string `json:"args" mapstructure:"args"`
	// FieldArg 作为字段的参数下标，为空时 Args 为准
	FieldArg *int `json:"fieldArg,omitempty" mapstructure:"fieldArg,omitempty"`
}

// FunctionItem SELECT 字段表达式
type FunctionItem struct {
	Field string    `json:"field" mapstructure:"field"`
	Func  *FuncCall `json:"func,omitempty" mapstructure:"func,omitempty"`
	Alias string    `json:"alias,omitempty" mapstructure:"alias,omitempty"`
}

// FilterLogic 过滤条件组合方式
type FilterLogic string

const (
	FilterLogicAnd FilterLogic = "and"
	FilterLogicOr  FilterLogic = "or"
)

// FilterForm WHERE 条件表单，Type 为空时是叶子条件
type FilterForm struct {
	Type     FilterLogic  `json:"type,omitempty" mapstructure:"type,omitempty"`
	Items    []FilterForm `json:"items,omitempty" mapstructure:"items,omitempty"`
	Field    string       `json:"field,omitempty" mapstructure:"field,omitempty"`
	Operator string       `json:"operator,omitempty" mapstructure:"operator,omitempty"`
	Value    string       `json:"valueForComparison,omitempty" mapstructure:"valueForComparison,omitempty"`
	// Raw 无法解析成表单，Field 保存原始条件
	Raw bool `json:"raw,omitempty" mapstructure:"raw,omitempty"`
}

// IsLeaf 是否是叶子条件
func (f FilterForm) IsLeaf() bool {
	return f.Type == ""
}

// Category 流程图中的列
type Category int

const (
	CategorySource Category = iota
	CategoryFunction
	CategoryFilter
	CategorySink
)

// Categories 规范的列顺序
var Categories = []Category{CategorySource, CategoryFunction, CategoryFilter, CategorySink}

func (c Category) String() string {
	switch c {
	case CategorySource:
		return "source"
	case CategoryFunction:
		return ProcessingTypeFunction
	case CategoryFilter:
		return ProcessingTypeFilter
	case CategorySink:
		return "sink"
	default:
		return ""
	}
}

// GroupedNode 按列分组的节点
type GroupedNode struct {
	Source   []Node `json:"source"`
	Function []Node `json:"function"`
	Filter   []Node `json:"filter"`
	Sink     []Node `json:"sink"`
}

// Get 获取指定列的节点
func (g *GroupedNode) Get(c Category) []Node {
	switch c {
	case CategorySource:
		return g.Source
	case CategoryFunction:
		return g.Function
	case CategoryFilter:
		return g.Filter
	case CategorySink:
		return g.Sink
	default:
		return nil
	}
}

// Set 设置指定列的节点
func (g *GroupedNode) Set(c Category, nodes []Node) {
	switch c {
	case CategorySource:
		g.Source = nodes
	case CategoryFunction:
		g.Function = nodes
	case CategoryFilter:
		g.Filter = nodes
	case CategorySink:
		g.Sink = nodes
	}
}

// All 按规范顺序返回所有节点
func (g *GroupedNode) All() []Node {
	var result []Node
	for _, c := range Categories {
		result = append(result, g.Get(c)...)
	}
	return result
}

// Clone 复制分组，节点是值拷贝
func (g *GroupedNode) Clone() GroupedNode {
	var result GroupedNode
	for _, c := range Categories {
		nodes := g.Get(c)
		if nodes == nil {
			continue
		}
		cp := make([]Node, len(nodes))
		copy(cp, nodes)
		result.Set(c, cp)
	}
	return result
}

// Flow 编译结果
type Flow struct {
	Nodes GroupedNode `json:"nodes"`
	Edges []Edge      `json:"edges"`
}
