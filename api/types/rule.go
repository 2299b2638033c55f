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

import (
	"errors"
	"fmt"

	"github.com/rulego/ruleflow/utils/json"
	"gopkg.in/yaml.v3"
)

var ErrInvalidOutputItem = errors.New("output item must be a bridge id string or an object")

// Rule 规则定义，由SQL语句、数据源列表和动作列表组成
// 编译器只读取规则，不会修改它
type Rule struct {
	// ID 规则ID
	ID string `json:"id" yaml:"id"`
	// SQL 规则SQL，例如：SELECT payload.temp as t FROM "t/#" WHERE payload.temp > 10
	SQL string `json:"sql" yaml:"sql"`
	// From 数据源，主题、事件($events/...)或者桥接($bridges/{type}:{name})
	From []string `json:"from,omitempty" yaml:"from,omitempty"`
	// Actions 动作列表
	Actions []OutputItem `json:"actions" yaml:"actions"`
	// Description 描述
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Enable 是否启用
	Enable bool `json:"enable" yaml:"enable"`
}

// OutputItem 规则动作
// 要么是桥接引用 "{bridgeType}:{bridgeId}"，要么是函数对象 {function, args}
type OutputItem struct {
	// BridgeID 桥接引用，非空时表示该动作是桥接
	BridgeID string
	// Function 内置输出函数，例如：console、republish
	Function string
	// Args 函数参数，republish 通过 args.topic 指定目标主题
	Args map[string]interface{}
}

// NewBridgeOutput 创建桥接动作
func NewBridgeOutput(bridgeID string) OutputItem {
	return OutputItem{BridgeID: bridgeID}
}

// NewFuncOutput 创建函数动作
func NewFuncOutput(function string, args map[string]interface{}) OutputItem {
	return OutputItem{Function: function, Args: args}
}

// IsBridge 是否是桥接引用
func (o OutputItem) IsBridge() bool {
	return o.BridgeID != ""
}

// Topic 返回 args.topic，不存在或者不是字符串返回空
func (o OutputItem) Topic() string {
	if o.Args == nil {
		return ""
	}
	if v, ok := o.Args["topic"].(string); ok {
		return v
	}
	return ""
}

type outputItemObj struct {
	Function string                 `json:"function" yaml:"function"`
	Args     map[string]interface{} `json:"args,omitempty" yaml:"args,omitempty"`
}

func (o OutputItem) MarshalJSON() ([]byte, error) {
	if o.IsBridge() {
		return json.Marshal(o.BridgeID)
	}
	return json.Marshal(outputItemObj{Function: o.Function, Args: o.Args})
}

func (o *OutputItem) UnmarshalJSON(b []byte) error {
	var bridgeID string
	if err := json.Unmarshal(b, &bridgeID); err == nil {
		*o = OutputItem{BridgeID: bridgeID}
		return nil
	}
	var obj outputItemObj
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOutputItem, err.Error())
	}
	*o = OutputItem{Function: obj.Function, Args: obj.Args}
	return nil
}

func (o OutputItem) MarshalYAML() (interface{}, error) {
	if o.IsBridge() {
		return o.BridgeID, nil
	}
	return outputItemObj{Function: o.Function, Args: o.Args}, nil
}

func (o *OutputItem) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*o = OutputItem{BridgeID: value.Value}
		return nil
	case yaml.MappingNode:
		var obj outputItemObj
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*o = OutputItem{Function: obj.Function, Args: obj.Args}
		return nil
	default:
		return ErrInvalidOutputItem
	}
}
