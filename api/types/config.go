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

// 默认几何参数
const (
	DefaultNodeWidth     = 200
	DefaultNodeHeight    = 48
	DefaultColumnSpacing = 100
	DefaultRowSpacing    = 30
)

// Geometry 布局使用的几何参数，节点尺寸由渲染层决定
type Geometry struct {
	NodeWidth     float64
	NodeHeight    float64
	ColumnSpacing float64
	RowSpacing    float64
}

// DefaultGeometry 默认几何参数
func DefaultGeometry() Geometry {
	return Geometry{
		NodeWidth:     DefaultNodeWidth,
		NodeHeight:    DefaultNodeHeight,
		ColumnSpacing: DefaultColumnSpacing,
		RowSpacing:    DefaultRowSpacing,
	}
}

// Config 编译器配置
// 注册表在调用编译器前必须已经加载完成，编译期间只读
type Config struct {
	// Logger 日志，默认 DefaultLogger()
	Logger Logger
	// Functions 规则SQL函数注册表
	Functions FunctionRegistry
	// Bridges 桥接类型元数据
	Bridges BridgeTypes
	// Where WHERE 子句解析器
	Where WhereParser
	// Describer 节点描述生成器
	Describer Describer
	// Labeler 节点名称
	Labeler Labeler
	// BridgeLookup 可选，用于填充桥接节点表单数据
	BridgeLookup BridgeLookup
	// Geometry 布局几何参数
	Geometry Geometry
}

// NewConfig creates a new Config with default values and applies the provided options.
// 注册表类的默认实现由上层包(ruleflow)注入，避免 types 包依赖 builtin
func NewConfig(opts ...Option) Config {
	c := &Config{
		Logger:   DefaultLogger(),
		Geometry: DefaultGeometry(),
	}
	for _, opt := range opts {
		_ = opt(c)
	}
	return *c
}
