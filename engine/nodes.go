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
	"github.com/rulego/ruleflow/utils/sql"
)

const (
	// RuleInputEventPrefix 事件数据源前缀
	RuleInputEventPrefix = "$events/"
	// RuleInputBridgeTypePrefix 桥接数据源前缀，例如：$bridges/mqtt:bridge1
	RuleInputBridgeTypePrefix = "$bridges/"
)

// BridgeTypeFromID 桥接引用中 ":" 之前的部分，没有 ":" 返回整个引用
func BridgeTypeFromID(id string) string {
	if i := strings.Index(id, ":"); i >= 0 {
		return id[:i]
	}
	return id
}

// BridgeNameFromID 桥接引用中 ":" 之后的部分
func BridgeNameFromID(id string) string {
	return id[strings.Index(id, ":")+1:]
}

func bridgeIDFromInput(input string) string {
	return strings.TrimPrefix(input, RuleInputBridgeTypePrefix)
}

// bridgeFormData 桥接表单数据，桥接存在时合并桥接配置
// 桥接已经删除时只有 name 和 id 两个字段
func (c *Compiler) bridgeFormData(bridgeID string) map[string]interface{} {
	formData := make(map[string]interface{})
	if c.config.BridgeLookup != nil {
		if bridge, ok := c.config.BridgeLookup.Bridge(bridgeID); ok {
			for k, v := range bridge {
				formData[k] = v
			}
		}
	}
	formData["name"] = BridgeNameFromID(bridgeID)
	formData["id"] = bridgeID
	return formData
}

// detectInputType 返回 event、topic 或者桥接类型
func detectInputType(from string) (string, bool) {
	if strings.Contains(from, RuleInputEventPrefix) {
		return types.SourceTypeEvent, false
	}
	if strings.HasPrefix(from, RuleInputBridgeTypePrefix) {
		return BridgeTypeFromID(bridgeIDFromInput(from)), true
	}
	return types.SourceTypeMessage, false
}

func (c *Compiler) newNode(id string, nodeType types.NodeType, specificType string, formData interface{}, ruleID string) types.Node {
	node := types.Node{
		ID:    id,
		Type:  nodeType,
		Label: c.label(specificType),
		Data: types.NodeData{
			SpecificType: specificType,
			FormData:     formData,
		},
	}
	if ruleID != "" {
		node.Data.RulesUsed = []string{ruleID}
	}
	node.Data.Desc = c.describe(node)
	return node
}

// GenerateSourceNodes 根据数据源生成节点：事件、主题或者桥接
func (c *Compiler) GenerateSourceNodes(from []string, ruleID string) []types.Node {
	var nodes []types.Node
	for _, item := range from {
		inputType, isBridge := detectInputType(item)
		var node types.Node
		switch {
		case isBridge:
			bridgeID := bridgeIDFromInput(item)
			specificType := c.SpecificTypeForBridge(inputType, types.NodeTypeSource)
			node = c.newNode(inputType+"-"+BridgeNameFromID(bridgeID), types.NodeTypeSource, specificType,
				c.bridgeFormData(bridgeID), ruleID)
		case inputType == types.SourceTypeEvent:
			node = c.newNode(inputType+"-"+item, types.NodeTypeSource, inputType, types.EventForm{Event: item}, ruleID)
		default:
			node = c.newNode(inputType+"-"+item, types.NodeTypeSource, inputType, types.MessageForm{Topic: item}, ruleID)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// detectOutputType 返回 console、republish 或者桥接类型，无法识别返回空
func detectOutputType(action types.OutputItem) (string, bool) {
	if action.IsBridge() {
		return BridgeTypeFromID(action.BridgeID), true
	}
	if action.Function == types.SinkTypeConsole {
		return types.SinkTypeConsole, false
	}
	if action.Topic() != "" {
		return types.SinkTypeRePub, false
	}
	return "", false
}

// GenerateSinkNodes 根据动作生成输出节点，无法识别的动作忽略
func (c *Compiler) GenerateSinkNodes(actions []types.OutputItem, ruleID string) []types.Node {
	var nodes []types.Node
	for _, action := range actions {
		outputType, isBridge := detectOutputType(action)
		if outputType == "" {
			continue
		}
		var node types.Node
		switch {
		case isBridge:
			specificType := c.SpecificTypeForBridge(outputType, types.NodeTypeSink)
			node = c.newNode(outputType+"-"+BridgeNameFromID(action.BridgeID), types.NodeTypeSink, specificType,
				c.bridgeFormData(action.BridgeID), ruleID)
		case outputType == types.SinkTypeConsole:
			node = c.newNode(types.SinkTypeConsole, types.NodeTypeSink, outputType, types.ConsoleForm{}, ruleID)
		default:
			node = c.newNode(outputType+"-"+action.Topic(), types.NodeTypeSink, outputType, action, ruleID)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// GenerateFunctionNode 根据字段表达式生成函数节点，字段为 * 时没有节点
func (c *Compiler) GenerateFunctionNode(fields string, ruleID string) (types.Node, bool) {
	form := c.GenerateFunctionFormFromExpression(fields)
	if form == nil {
		return types.Node{}, false
	}
	formData := types.ProcessingForm{
		EditedWay: DetectFieldsExpressionsEditedWay(form),
		SQL:       fields,
		Form:      form,
	}
	return c.newNode(types.ProcessingTypeFunction+"-"+ruleID, types.NodeTypeProcessing,
		types.ProcessingTypeFunction, formData, ruleID), true
}

// GenerateWhereForm 解析WHERE条件，没有解析器时返回 Raw 条件
func (c *Compiler) GenerateWhereForm(where string) *types.FilterForm {
	if c.config.Where == nil {
		c.config.Logger.Printf("no where parser, keep where clause as raw sql")
		return &types.FilterForm{Type: types.FilterLogicAnd, Raw: true,
			Items: []types.FilterForm{{Field: where, Raw: true}}}
	}
	return c.config.Where.Parse(where)
}

// DetectWhereEditedWay 嵌套超过2层只能用SQL编辑
func (c *Compiler) DetectWhereEditedWay(form *types.FilterForm) types.EditedWay {
	if form == nil || form.Raw || c.config.Where == nil {
		return types.EditedWaySQL
	}
	if c.config.Where.Level(form) > 2 {
		return types.EditedWaySQL
	}
	return types.EditedWayForm
}

// GenerateFilterNode 根据WHERE条件生成过滤节点
func (c *Compiler) GenerateFilterNode(where string, ruleID string) types.Node {
	form := c.GenerateWhereForm(where)
	formData := types.ProcessingForm{
		EditedWay: c.DetectWhereEditedWay(form),
		SQL:       where,
		Form:      form,
	}
	return c.newNode(types.ProcessingTypeFilter+"-"+ruleID, types.NodeTypeProcessing,
		types.ProcessingTypeFilter, formData, ruleID)
}

// GenerateNodes 根据规则生成分组节点
func (c *Compiler) GenerateNodes(rule types.Rule) types.GroupedNode {
	var nodes types.GroupedNode
	parts := sql.GetKeyPartsFromSQL(rule.SQL)
	if len(rule.From) > 0 {
		nodes.Source = c.GenerateSourceNodes(rule.From, rule.ID)
	}
	if parts.HasWhere {
		nodes.Filter = append(nodes.Filter, c.GenerateFilterNode(parts.Where, rule.ID))
	}
	if parts.HasFields {
		if node, ok := c.GenerateFunctionNode(parts.Fields, rule.ID); ok {
			nodes.Function = append(nodes.Function, node)
		}
	}
	if len(rule.Actions) > 0 {
		nodes.Sink = c.GenerateSinkNodes(rule.Actions, rule.ID)
	}
	return nodes
}

// GenerateFlowDataFromRuleItem 把规则编译成节点和连线，节点坐标未计算
// 编译不会失败，无法识别的部分忽略或者保留为SQL
func (c *Compiler) GenerateFlowDataFromRuleItem(rule types.Rule) types.Flow {
	nodes := c.GenerateNodes(rule)
	return types.Flow{Nodes: nodes, Edges: GenerateEdgesFromNodes(nodes)}
}
