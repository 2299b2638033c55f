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

// Package engine 规则到流程图的编译器
//
// 规则(SQL + from + actions)编译成按列分组的节点和连线：
//
//	Source -> Function -> Filter -> Sink
//
// 编译过程是纯函数，不做IO；注册表(函数签名、桥接类型)通过 types.Config 注入，
// 调用前必须已经加载完成。
package engine

import (
	"github.com/rulego/ruleflow/api/types"
)

// Compiler 规则编译器，可以并发使用
type Compiler struct {
	config types.Config
}

// NewCompiler 创建编译器
func NewCompiler(config types.Config) *Compiler {
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	if config.Geometry == (types.Geometry{}) {
		config.Geometry = types.DefaultGeometry()
	}
	return &Compiler{config: config}
}

// Config 返回编译器配置
func (c *Compiler) Config() types.Config {
	return c.config
}

func (c *Compiler) label(specificType string) string {
	if c.config.Labeler == nil {
		return specificType
	}
	return c.config.Labeler.Label(specificType)
}

// describe 节点数据完整后再生成描述
func (c *Compiler) describe(node types.Node) string {
	if c.config.Describer == nil {
		return ""
	}
	return c.config.Describer.Describe(node)
}
