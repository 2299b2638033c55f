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

// Package where 解析规则SQL的 WHERE 子句
// SQL 运算符先转换成 expr 语法，再用 expr 解析器生成语法树：
// and/or 转换成条件组，比较运算转换成叶子条件。
package where

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/rulego/ruleflow/api/types"
)

// RawLevel 无法解析的条件的层级，总是需要SQL编辑
const RawLevel = 1 << 10

// FormMaxLevel 超过该层级只能用SQL编辑
const FormMaxLevel = 2

// 比较运算符
var comparisonOperators = map[string]string{
	"==":         "=",
	"!=":         "!=",
	">":          ">",
	"<":          "<",
	">=":         ">=",
	"<=":         "<=",
	"in":         "in",
	"not in":     "not in",
	"matches":    "matches",
	"contains":   "contains",
	"startsWith": "startsWith",
	"endsWith":   "endsWith",
}

// Parser 实现 types.WhereParser
type Parser struct {
}

var _ types.WhereParser = (*Parser)(nil)

// New 创建解析器
func New() *Parser {
	return &Parser{}
}

// Parse 解析WHERE子句，解析失败返回 Raw 条件
func (p *Parser) Parse(where string) *types.FilterForm {
	where = strings.TrimSpace(where)
	if where == "" {
		return &types.FilterForm{Type: types.FilterLogicAnd}
	}
	tree, err := parser.Parse(Normalize(where))
	if err != nil {
		return rawForm(where)
	}
	form := toForm(tree.Node)
	if form.IsLeaf() {
		return &types.FilterForm{Type: types.FilterLogicAnd, Items: []types.FilterForm{form}}
	}
	return &form
}

// Level 条件表单嵌套层级：叶子0，条件组为子项最大层级+1
func (p *Parser) Level(form *types.FilterForm) int {
	if form == nil {
		return 0
	}
	return level(*form)
}

// EditedWay 层级超过 FormMaxLevel 只能用SQL编辑
func (p *Parser) EditedWay(form *types.FilterForm) types.EditedWay {
	if p.Level(form) > FormMaxLevel {
		return types.EditedWaySQL
	}
	return types.EditedWayForm
}

// Evaluate 使用样例数据计算WHERE条件
func Evaluate(where string, env map[string]interface{}) (bool, error) {
	where = strings.TrimSpace(where)
	if where == "" {
		return true, nil
	}
	program, err := expr.Compile(Normalize(where), expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("compile where %q: %w", where, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}
	result, _ := out.(bool)
	return result, nil
}

func level(form types.FilterForm) int {
	if form.Raw {
		return RawLevel
	}
	if form.IsLeaf() {
		return 0
	}
	deepest := 0
	for _, item := range form.Items {
		if l := level(item); l > deepest {
			deepest = l
		}
	}
	return deepest + 1
}

func rawForm(where string) *types.FilterForm {
	return &types.FilterForm{Type: types.FilterLogicAnd, Items: []types.FilterForm{{Field: where, Raw: true}}, Raw: true}
}

func logicOf(operator string) types.FilterLogic {
	switch operator {
	case "and", "&&":
		return types.FilterLogicAnd
	case "or", "||":
		return types.FilterLogicOr
	default:
		return ""
	}
}

func toForm(node ast.Node) types.FilterForm {
	if n, ok := node.(*ast.BinaryNode); ok {
		if logic := logicOf(n.Operator); logic != "" {
			group := types.FilterForm{Type: logic}
			appendItems(&group, n.Left)
			appendItems(&group, n.Right)
			return group
		}
		if op, ok := comparisonOperators[n.Operator]; ok {
			return types.FilterForm{Field: sqlText(n.Left), Operator: op, Value: sqlText(n.Right)}
		}
	}
	return types.FilterForm{Field: sqlText(node)}
}

// appendItems 相同逻辑运算的链合并到同一个条件组
func appendItems(group *types.FilterForm, node ast.Node) {
	if n, ok := node.(*ast.BinaryNode); ok && logicOf(n.Operator) == group.Type {
		appendItems(group, n.Left)
		appendItems(group, n.Right)
		return
	}
	group.Items = append(group.Items, toForm(node))
}

// sqlText 语法树转回SQL文本，字符串使用单引号
func sqlText(node ast.Node) string {
	switch n := node.(type) {
	case *ast.StringNode:
		return "'" + strings.ReplaceAll(n.Value, "'", "\\'") + "'"
	case *ast.IntegerNode:
		return strconv.Itoa(n.Value)
	case *ast.BinaryNode:
		if op, ok := comparisonOperators[n.Operator]; ok {
			return sqlText(n.Left) + " " + op + " " + sqlText(n.Right)
		}
		return sqlText(n.Left) + " " + n.Operator + " " + sqlText(n.Right)
	default:
		return node.String()
	}
}
