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

// Package config ruleflow 命令行和服务的ini配置
package config

import (
	"fmt"
	"log"
	"os"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/builtin/bridges"
	"github.com/rulego/ruleflow/builtin/describe"
	"github.com/rulego/ruleflow/builtin/funcs"
	"gopkg.in/ini.v1"
)

type Config struct {
	// Server http服务器地址
	Server string `ini:"server"`
	// CertFile tls证书
	CertFile string `ini:"cert_file"`
	// CertKeyFile tls证书密钥
	CertKeyFile string `ini:"cert_key_file"`
	// AllowCors 允许跨域
	AllowCors bool `ini:"allow_cors"`
	// LogFile 日志文件，为空输出到标准输出
	LogFile string `ini:"log_file"`
	// RulesDir 规则文件目录，启动时加载
	RulesDir string `ini:"rules_dir"`
	// FunctionsFile 扩展的规则SQL函数目录，yaml或者json
	FunctionsFile string `ini:"functions_file"`
	// BridgesFile 桥接类型元数据，yaml或者json
	BridgesFile string `ini:"bridges_file"`
	// BridgeConfigsFile 已存在的桥接配置，用于填充桥接节点和检测已删除的桥接
	BridgeConfigsFile string `ini:"bridge_configs_file"`
	// 布局几何参数
	NodeWidth     float64 `ini:"node_width"`
	NodeHeight    float64 `ini:"node_height"`
	ColumnSpacing float64 `ini:"column_spacing"`
	RowSpacing    float64 `ini:"row_spacing"`
	// Labels 节点名称，key为节点具体类型
	Labels map[string]string `ini:"-"`
}

// DefaultConfig 默认配置
var DefaultConfig = Config{
	Server:        ":9090",
	NodeWidth:     types.DefaultNodeWidth,
	NodeHeight:    types.DefaultNodeHeight,
	ColumnSpacing: types.DefaultColumnSpacing,
	RowSpacing:    types.DefaultRowSpacing,
}

// Load 加载ini配置文件，未配置的项使用默认值
// file 为空返回默认配置
func Load(file string) (Config, error) {
	c := DefaultConfig
	if file == "" {
		return c, nil
	}
	cfg, err := ini.Load(file)
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", file, err)
	}
	if err := cfg.MapTo(&c); err != nil {
		return c, fmt.Errorf("map config %s: %w", file, err)
	}
	if section, err := cfg.GetSection("labels"); err == nil {
		c.Labels = section.KeysHash()
	}
	return c, nil
}

// Geometry 布局几何参数
func (c Config) Geometry() types.Geometry {
	return types.Geometry{
		NodeWidth:     c.NodeWidth,
		NodeHeight:    c.NodeHeight,
		ColumnSpacing: c.ColumnSpacing,
		RowSpacing:    c.RowSpacing,
	}
}

// Options 把配置转换成编译器配置项，加载函数目录和桥接文件
func (c Config) Options(logger types.Logger) ([]types.Option, error) {
	opts := []types.Option{
		types.WithLogger(types.NewLogger(logger)),
		types.WithGeometry(c.Geometry()),
	}
	if len(c.Labels) > 0 {
		opts = append(opts, types.WithLabeler(describe.NewLabeler(c.Labels)))
	}
	if c.FunctionsFile != "" {
		buf, err := os.ReadFile(c.FunctionsFile)
		if err != nil {
			return nil, err
		}
		catalog, err := funcs.LoadCatalog(buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.FunctionsFile, err)
		}
		opts = append(opts, types.WithFunctionRegistry(catalog))
	}
	if c.BridgesFile != "" {
		buf, err := os.ReadFile(c.BridgesFile)
		if err != nil {
			return nil, err
		}
		metadata, err := bridges.Load(buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.BridgesFile, err)
		}
		opts = append(opts, types.WithBridgeTypes(metadata))
	}
	if c.BridgeConfigsFile != "" {
		buf, err := os.ReadFile(c.BridgeConfigsFile)
		if err != nil {
			return nil, err
		}
		store, err := bridges.LoadStore(buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.BridgeConfigsFile, err)
		}
		opts = append(opts, types.WithBridgeLookup(store))
	}
	return opts, nil
}

// NewLogger 初始化日志记录器
func (c Config) NewLogger() (*log.Logger, error) {
	if c.LogFile == "" {
		return types.DefaultLogger(), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return log.New(f, "", log.LstdFlags), nil
}
