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

// ArgItem 函数参数定义
type ArgItem struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Required bool   `json:"required" yaml:"required" mapstructure:"required"`
}

// FuncSignature 规则SQL内置函数签名
type FuncSignature struct {
	Name  string    `json:"name" yaml:"name" mapstructure:"name"`
	Group string    `json:"group" yaml:"group" mapstructure:"group"`
	Args  []ArgItem `json:"args" yaml:"args" mapstructure:"args"`
	// FieldArg 作为字段的参数下标，小于0使用分组默认值
	FieldArg int `json:"fieldArg" yaml:"fieldArg" mapstructure:"fieldArg"`
}

// FunctionRegistry 函数注册表，编译SELECT字段时使用
type FunctionRegistry interface {
	// Group 返回函数所属分组
	Group(name string) (string, bool)
	// Signature 返回函数签名
	Signature(name string) (FuncSignature, bool)
	// FieldArgIndex 返回作为字段的参数下标
	FieldArgIndex(sig FuncSignature, group string) int
}

// BridgeTypes 桥接类型元数据
type BridgeTypes interface {
	// GeneralType 去掉厂商子类型后缀，例如：kafka_producer -> kafka
	GeneralType(rawType string) string
	// IsTwoDirection 入口和出口配置结构不同的类型
	IsTwoDirection(bridgeType string) bool
	// IsProducerConsumer 生产者/消费者类型族
	IsProducerConsumer(generalType string) bool
}

// WhereParser WHERE 子句解析器
type WhereParser interface {
	// Parse 解析成条件表单
	Parse(where string) *FilterForm
	// Level 条件表单嵌套层级
	Level(form *FilterForm) int
}

// Describer 生成节点描述
// 调用时节点数据已经完整
type Describer interface {
	Describe(node Node) string
}

// Labeler 返回节点类型的显示名称
type Labeler interface {
	Label(specificType string) string
}

// BridgeLookup 查询已存在的桥接配置
// 桥接不存在时返回 false
type BridgeLookup interface {
	Bridge(bridgeID string) (map[string]interface{}, bool)
}

// BridgeLookupFunc 函数形式的 BridgeLookup
type BridgeLookupFunc func(bridgeID string) (map[string]interface{}, bool)

func (f BridgeLookupFunc) Bridge(bridgeID string) (map[string]interface{}, bool) {
	return f(bridgeID)
}
