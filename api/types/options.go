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

// Option is a function type that modifies the Config.
type Option func(*Config) error

// WithLogger is an option that sets the logger of the Config.
func WithLogger(logger Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithFunctionRegistry 设置函数注册表
func WithFunctionRegistry(functions FunctionRegistry) Option {
	return func(c *Config) error {
		c.Functions = functions
		return nil
	}
}

// WithBridgeTypes 设置桥接类型元数据
func WithBridgeTypes(bridges BridgeTypes) Option {
	return func(c *Config) error {
		c.Bridges = bridges
		return nil
	}
}

// WithWhereParser 设置WHERE解析器
func WithWhereParser(where WhereParser) Option {
	return func(c *Config) error {
		c.Where = where
		return nil
	}
}

// WithDescriber 设置节点描述生成器
func WithDescriber(describer Describer) Option {
	return func(c *Config) error {
		c.Describer = describer
		return nil
	}
}

// WithLabeler 设置节点名称
func WithLabeler(labeler Labeler) Option {
	return func(c *Config) error {
		c.Labeler = labeler
		return nil
	}
}

// WithBridgeLookup 设置桥接配置查询
func WithBridgeLookup(lookup BridgeLookup) Option {
	return func(c *Config) error {
		c.BridgeLookup = lookup
		return nil
	}
}

// WithGeometry 设置布局几何参数，零值字段使用默认值
func WithGeometry(geometry Geometry) Option {
	return func(c *Config) error {
		def := DefaultGeometry()
		if geometry.NodeWidth <= 0 {
			geometry.NodeWidth = def.NodeWidth
		}
		if geometry.NodeHeight <= 0 {
			geometry.NodeHeight = def.NodeHeight
		}
		if geometry.ColumnSpacing <= 0 {
			geometry.ColumnSpacing = def.ColumnSpacing
		}
		if geometry.RowSpacing <= 0 {
			geometry.RowSpacing = def.RowSpacing
		}
		c.Geometry = geometry
		return nil
	}
}
