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

// Package ruleflow 把MQTT规则引擎的规则编译成流程图，并且可以从流程图转回规则。
//
// # Usage
//
// 规则定义格式：
//
//	{
//	  "id": "rule_1",
//	  "sql": "SELECT payload.temp as t FROM \"t/#\" WHERE payload.temp > 10",
//	  "actions": [
//	    {"function": "console"},
//	    "mqtt:bridge1"
//	  ]
//	}
//
// 创建实例
//
//	flow := ruleflow.New()
//
// 编译单个规则
//
//	result := flow.Generate(rule)
//
// 编辑单个规则时计算节点坐标
//
//	result := flow.GenerateForEdit(rule)
//
// 加载文件夹中所有规则(.json/.yaml/.yml)，合并成一个流程图
//
//	err := flow.Load("./rules")
//	result := flow.GenerateAll()
package ruleflow

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/builtin/bridges"
	"github.com/rulego/ruleflow/builtin/describe"
	"github.com/rulego/ruleflow/builtin/funcs"
	"github.com/rulego/ruleflow/builtin/where"
	"github.com/rulego/ruleflow/engine"
	"github.com/rulego/ruleflow/utils/fs"
	"github.com/rulego/ruleflow/utils/json"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyRuleId   = engine.ErrEmptyRuleId
	ErrUnknownFormat = errors.New("unknown rule file format")
)

// RuleExts 可以加载的规则文件扩展名
var RuleExts = []string{".json", ".yaml", ".yml"}

// RuleFlow 规则流程图编译器和规则池
type RuleFlow struct {
	compiler *engine.Compiler
	rules    sync.Map
}

// NewConfig 创建配置，未设置的注册表使用内置实现
func NewConfig(opts ...types.Option) types.Config {
	defaults := []types.Option{
		types.WithFunctionRegistry(funcs.DefaultCatalog()),
		types.WithBridgeTypes(bridges.Default()),
		types.WithWhereParser(where.New()),
		types.WithDescriber(&describe.Describer{}),
		types.WithLabeler(describe.NewLabeler(nil)),
	}
	return types.NewConfig(append(defaults, opts...)...)
}

// New 创建实例
func New(opts ...types.Option) *RuleFlow {
	return &RuleFlow{compiler: engine.NewCompiler(NewConfig(opts...))}
}

// Config 返回配置
func (f *RuleFlow) Config() types.Config {
	return f.compiler.Config()
}

// Compiler 返回编译器
func (f *RuleFlow) Compiler() *engine.Compiler {
	return f.compiler
}

// Generate 编译规则，节点坐标未计算；配置了桥接查询时标记已删除的桥接
func (f *RuleFlow) Generate(rule types.Rule) types.Flow {
	flow := f.compiler.GenerateFlowDataFromRuleItem(rule)
	if f.Config().BridgeLookup != nil {
		flow.Nodes = engine.MarkRemovedBridges(flow.Nodes)
	}
	return flow
}

// GenerateForEdit 编辑单个规则时使用，每一列独立居中
func (f *RuleFlow) GenerateForEdit(rule types.Rule) types.Flow {
	flow := f.Generate(rule)
	flow.Nodes = f.compiler.CountNodePositionWhileEditing(flow.Nodes)
	return flow
}

// GenerateAll 合并多个规则的流程图并计算坐标
// 不传规则时使用规则池中所有规则，按规则ID排序
func (f *RuleFlow) GenerateAll(rules ...types.Rule) types.Flow {
	if len(rules) == 0 {
		rules = f.Rules()
	}
	flows := make([]types.Flow, 0, len(rules))
	for _, rule := range rules {
		flows = append(flows, f.Generate(rule))
	}
	flow := engine.Merge(flows...)
	flow.Nodes = f.compiler.CountNodesPosition(flow.Nodes)
	return flow
}

// Layout 重新计算坐标，editing 为 true 时每一列独立居中
func (f *RuleFlow) Layout(nodes types.GroupedNode, editing bool) types.Flow {
	if editing {
		nodes = f.compiler.CountNodePositionWhileEditing(nodes)
	} else {
		nodes = f.compiler.CountNodesPosition(nodes)
	}
	return types.Flow{Nodes: nodes, Edges: engine.GenerateEdgesFromNodes(nodes)}
}

// FunctionForm 解析字段表达式
func (f *RuleFlow) FunctionForm(expression string) []types.FunctionItem {
	return f.compiler.GenerateFunctionFormFromExpression(expression)
}

// FieldsEditedWay 字段表达式的编辑方式
func (f *RuleFlow) FieldsEditedWay(items []types.FunctionItem) types.EditedWay {
	return engine.DetectFieldsExpressionsEditedWay(items)
}

// WhereForm 解析WHERE条件
func (f *RuleFlow) WhereForm(whereStr string) *types.FilterForm {
	return f.compiler.GenerateWhereForm(whereStr)
}

// WhereEditedWay WHERE条件的编辑方式
func (f *RuleFlow) WhereEditedWay(form *types.FilterForm) types.EditedWay {
	return f.compiler.DetectWhereEditedWay(form)
}

// TestWhere 用样例数据计算WHERE条件
func (f *RuleFlow) TestWhere(whereStr string, env map[string]interface{}) (bool, error) {
	return where.Evaluate(whereStr, env)
}

// MarkRemovedBridges 标记已删除的桥接节点
func (f *RuleFlow) MarkRemovedBridges(nodes types.GroupedNode) types.GroupedNode {
	return engine.MarkRemovedBridges(nodes)
}

// RuleFromFlow 流程图转回规则
func (f *RuleFlow) RuleFromFlow(id string, flow types.Flow) (types.Rule, error) {
	return engine.RuleFromFlow(id, flow)
}

// Put 保存规则到规则池
func (f *RuleFlow) Put(rule types.Rule) error {
	if rule.ID == "" {
		return ErrEmptyRuleId
	}
	f.rules.Store(rule.ID, rule)
	return nil
}

// Get 获取规则
func (f *RuleFlow) Get(id string) (types.Rule, bool) {
	v, ok := f.rules.Load(id)
	if !ok {
		return types.Rule{}, false
	}
	return v.(types.Rule), true
}

// Del 删除规则
func (f *RuleFlow) Del(id string) {
	f.rules.Delete(id)
}

// Rules 规则池中所有规则，按ID排序
func (f *RuleFlow) Rules() []types.Rule {
	var rules []types.Rule
	f.rules.Range(func(key, value any) bool {
		rules = append(rules, value.(types.Rule))
		return true
	})
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// Load 加载文件夹及其子文件夹中所有规则文件到规则池，也可以是通配符，例如：./rules/*.json
// 文件可以是单个规则或者规则数组
func (f *RuleFlow) Load(folderPath string) error {
	var paths []string
	var err error
	if strings.ContainsAny(folderPath, "*?[") {
		paths, err = fs.GetFilePaths(folderPath)
	} else {
		paths, err = fs.GetFilePathsByExt(folderPath, RuleExts...)
	}
	if err != nil {
		return err
	}
	for _, path := range paths {
		b := fs.LoadFile(path)
		if b == nil {
			continue
		}
		rules, err := ParseRules(filepath.Ext(path), b)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		for _, rule := range rules {
			if err := f.Put(rule); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
		}
	}
	return nil
}

// ParseRules 解析规则文件，ext 为 .json/.yaml/.yml
func ParseRules(ext string, data []byte) ([]types.Rule, error) {
	var unmarshal func([]byte, interface{}) error
	switch strings.ToLower(ext) {
	case ".json":
		unmarshal = json.Unmarshal
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "-") {
		var rules []types.Rule
		if err := unmarshal(data, &rules); err != nil {
			return nil, err
		}
		return rules, nil
	}
	var rule types.Rule
	if err := unmarshal(data, &rule); err != nil {
		return nil, err
	}
	return []types.Rule{rule}, nil
}
