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

// Package controller ruleflow http/websocket 接口处理函数
package controller

import (
	"net/http"
	"strings"

	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/endpoint"
	"github.com/rulego/ruleflow/utils/json"
)

const (
	ContentTypeKey   = "Content-Type"
	JsonContextType  = "application/json"
	YamlContextType  = "application/yaml"
	TextContextType  = "text/plain"
	GraphvizDotType  = "text/vnd.graphviz"
	KeyEditing       = "editing"
	KeyId            = "id"
	KeyFormat        = "format"
	FormatDsl        = "dsl"
	FormatDot        = "dot"
	DefaultChainName = "ruleflow"
)

// badRequest 请求参数错误
func badRequest(exchange *endpoint.Exchange, err error) bool {
	exchange.Out.SetError(err)
	exchange.Out.SetStatusCode(http.StatusBadRequest)
	exchange.Out.SetBody([]byte(err.Error()))
	return false
}

// notFound 资源不存在
func notFound(exchange *endpoint.Exchange, id string) bool {
	exchange.Out.SetStatusCode(http.StatusNotFound)
	exchange.Out.SetBody([]byte("not found:" + id))
	return false
}

// writeJson 序列化并响应
func writeJson(exchange *endpoint.Exchange, v interface{}) bool {
	b, err := json.Marshal(v)
	if err != nil {
		exchange.Out.SetError(err)
		exchange.Out.SetStatusCode(http.StatusInternalServerError)
		exchange.Out.SetBody([]byte(err.Error()))
		return false
	}
	exchange.Out.Headers().Set(ContentTypeKey, JsonContextType)
	exchange.Out.SetBody(b)
	return true
}

// readRules 解析请求体中的单个规则或者规则数组，Content-Type 为yaml时按yaml解析
func readRules(exchange *endpoint.Exchange) ([]types.Rule, error) {
	ext := ".json"
	if strings.Contains(exchange.In.Headers().Get(ContentTypeKey), "yaml") {
		ext = ".yaml"
	}
	return ruleflow.ParseRules(ext, exchange.In.Body())
}

func isTrue(v string) bool {
	return v == "true" || v == "1"
}
