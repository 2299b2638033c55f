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
	"github.com/rulego/ruleflow/endpoint"
	"github.com/rulego/ruleflow/utils/json"
)

// wsError websocket 错误响应
type wsError struct {
	Error string `json:"error"`
}

// LiveLayout 编辑器拖拽、增删节点时实时重新计算坐标
// 每条消息是 LayoutRequest，回复 Flow；解析失败回复 {"error": "..."}，连接不断开
func (c *Flow) LiveLayout(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		var req LayoutRequest
		if err := json.Unmarshal(exchange.In.Body(), &req); err != nil {
			return writeJson(exchange, wsError{Error: err.Error()})
		}
		return writeJson(exchange, c.flow.Layout(req.Nodes, true))
	}).End()
}

// LiveEdit 编辑规则时实时编译，每条消息是单个规则，回复编辑布局的 Flow
func (c *Flow) LiveEdit(url string) *endpoint.Router {
	return endpoint.NewRouter().From(url).Process(func(router *endpoint.Router, exchange *endpoint.Exchange) bool {
		rules, err := readRules(exchange)
		if err == nil && len(rules) != 1 {
			err = ErrSingleRule
		}
		if err != nil {
			return writeJson(exchange, wsError{Error: err.Error()})
		}
		return writeJson(exchange, c.flow.GenerateForEdit(rules[0]))
	}).End()
}
