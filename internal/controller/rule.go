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
	"net/http"

	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/endpoint"
)

// Rule 规则池接口
type Rule struct {
	flow *ruleflow.RuleFlow
}

func NewRule(flow *ruleflow.RuleFlow) *Rule {
	return &Rule{flow: flow}
}

// List 获取所有规则
func (c *Rule) List(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		return writeJson(exchange, c.flow.Rules())
	}).End()
}

// Get 获取规则
func (c *Rule) Get(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		id := exchange.In.GetParam(KeyId)
		rule, ok := c.flow.Get(id)
		if !ok {
			return notFound(exchange, id)
		}
		return writeJson(exchange, rule)
	}).End()
}

// Save 新增或者修改规则，路径参数id优先
func (c *Rule) Save(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		rules, err := readRules(exchange)
		if err != nil {
			return badRequest(exchange, err)
		}
		if len(rules) != 1 {
			return badRequest(exchange, errors.New("request body must be one rule"))
		}
		rule := rules[0]
		if id := exchange.In.GetParam(KeyId); id != "" {
			rule.ID = id
		}
		if err := c.flow.Put(rule); err != nil {
			return badRequest(exchange, err)
		}
		return writeJson(exchange, rule)
	}).End()
}

// Delete 删除规则
func (c *Rule) Delete(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		id := exchange.In.GetParam(KeyId)
		if _, ok := c.flow.Get(id); !ok {
			return notFound(exchange, id)
		}
		c.flow.Del(id)
		exchange.Out.SetStatusCode(http.StatusNoContent)
		return true
	}).End()
}

// Flow 编辑单个规则时的流程图
func (c *Rule) Flow(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		id := exchange.In.GetParam(KeyId)
		rule, ok := c.flow.Get(id)
		if !ok {
			return notFound(exchange, id)
		}
		return writeJson(exchange, c.flow.GenerateForEdit(rule))
	}).End()
}
