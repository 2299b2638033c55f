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

package controller

import (
	"errors"
	"fmt"

	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/endpoint"
	"github.com/rulego/ruleflow/export"
	"github.com/rulego/ruleflow/utils/json"
)

var ErrSingleRule = errors.New("editing layout requires exactly one rule")

// Flow 流程图接口
type Flow struct {
	flow *ruleflow.RuleFlow
}

func NewFlow(flow *ruleflow.RuleFlow) *Flow {
	return &Flow{flow: flow}
}

// LayoutRequest 重新计算坐标请求
type LayoutRequest struct {
	Nodes   types.GroupedNode `json:"nodes"`
	Editing bool              `json:"editing"`
}

// FieldsRequest SELECT 字段编译请求
type FieldsRequest struct {
	Expression string `json:"expression"`
}

// FieldsResponse SELECT 字段编译结果
type FieldsResponse struct {
	Items     []types.FunctionItem `json:"items"`
	EditedWay types.EditedWay      `json:"editedWay"`
}

// WhereRequest WHERE 子句请求，Context 用于测试条件
type WhereRequest struct {
	Where   string                 `json:"where"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// WhereResponse WHERE 子句编译结果
type WhereResponse struct {
	Form      *types.FilterForm `json:"form"`
	EditedWay types.EditedWay   `json:"editedWay"`
}

// RuleRequest 流程图转回规则请求
type RuleRequest struct {
	ID   string     `json:"id"`
	Flow types.Flow `json:"flow"`
}

// generate 编译规则，editing=true 时只能是单个规则
func (c *Flow) generate(rules []types.Rule, editing bool) (types.Flow, error) {
	if editing {
		if len(rules) != 1 {
			return types.Flow{}, ErrSingleRule
		}
		return c.flow.GenerateForEdit(rules[0]), nil
	}
	return c.flow.GenerateAll(rules...), nil
}

// Generate 编译请求体中的规则，?editing=true 使用编辑布局
func (c *Flow) Generate(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		rules, err := readRules(exchange)
		if err != nil {
			return badRequest(exchange, err)
		}
		if len(rules) == 0 {
			return badRequest(exchange, errors.New("rules can not be empty"))
		}
		flow, err := c.generate(rules, isTrue(exchange.In.GetParam(KeyEditing)))
		if err != nil {
			return badRequest(exchange, err)
		}
		return writeJson(exchange, flow)
	}).End()
}

// All 规则池中所有规则合并的流程图
func (c *Flow) All(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		return writeJson(exchange, c.flow.GenerateAll())
	}).End()
}

// Layout 重新计算节点坐标和连线
func (c *Flow) Layout(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(c.layoutProcess).End()
}

func (c *Flow) layoutProcess(router *endpoint.Router, exchange *endpoint.Exchange) bool {
	var req LayoutRequest
	if err := json.Unmarshal(exchange.In.Body(), &req); err != nil {
		return badRequest(exchange, err)
	}
	editing := req.Editing || isTrue(exchange.In.GetParam(KeyEditing))
	return writeJson(exchange, c.flow.Layout(req.Nodes, editing))
}

// Fields 编译 SELECT 字段
func (c *Flow) Fields(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		var req FieldsRequest
		if err := json.Unmarshal(exchange.In.Body(), &req); err != nil {
			return badRequest(exchange, err)
		}
		items := c.flow.FunctionForm(req.Expression)
		return writeJson(exchange, FieldsResponse{Items: items, EditedWay: c.flow.FieldsEditedWay(items)})
	}).End()
}

// Where 编译 WHERE 子句
func (c *Flow) Where(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		var req WhereRequest
		if err := json.Unmarshal(exchange.In.Body(), &req); err != nil {
			return badRequest(exchange, err)
		}
		form := c.flow.WhereForm(req.Where)
		return writeJson(exchange, WhereResponse{Form: form, EditedWay: c.flow.WhereEditedWay(form)})
	}).End()
}

// TestWhere 使用样例消息测试 WHERE 子句
func (c *Flow) TestWhere(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		var req WhereRequest
		if err := json.Unmarshal(exchange.In.Body(), &req); err != nil {
			return badRequest(exchange, err)
		}
		result, err := c.flow.TestWhere(req.Where, req.Context)
		if err != nil {
			return badRequest(exchange, err)
		}
		return writeJson(exchange, map[string]bool{"result": result})
	}).End()
}

// ToRule 流程图转回规则
func (c *Flow) ToRule(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		var req RuleRequest
		if err := json.Unmarshal(exchange.In.Body(), &req); err != nil {
			return badRequest(exchange, err)
		}
		rule, err := c.flow.RuleFromFlow(req.ID, req.Flow)
		if err != nil {
			return badRequest(exchange, err)
		}
		return writeJson(exchange, rule)
	}).End()
}

// Export 导出流程图，路径参数 format 为 dsl 或者 dot
// 请求体为空时导出规则池中所有规则
func (c *Flow) Export(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		var rules []types.Rule
		if len(exchange.In.Body()) > 0 {
			var err error
			if rules, err = readRules(exchange); err != nil {
				return badRequest(exchange, err)
			}
		}
		flow := c.flow.GenerateAll(rules...)
		name := exchange.In.GetParam("name")
		if name == "" {
			name = DefaultChainName
		}
		switch format := exchange.In.GetParam(KeyFormat); format {
		case FormatDsl:
			return writeJson(exchange, export.ToRuleChain(exchange.In.GetParam(KeyId), name, flow))
		case FormatDot:
			dot, err := export.ToDOT(name, flow)
			if err != nil {
				return badRequest(exchange, err)
			}
			exchange.Out.Headers().Set(ContentTypeKey, GraphvizDotType)
			exchange.Out.SetBody([]byte(dot))
			return true
		default:
			return badRequest(exchange, fmt.Errorf("unknown export format: %s", format))
		}
	}).End()
}
