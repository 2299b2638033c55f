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

package engine

import (
	"regexp"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/sql"
)

// FuncSubbits subbits 参数特殊处理的函数
// https://docs.emqx.com/en/enterprise/v5.1/data-integration/rule-sql-builtin-functions.html#bit-functions
const FuncSubbits = "subbits"

// fieldWithFuncReg 字段仍然包含函数调用
var fieldWithFuncReg = regexp.MustCompile(`.*\(.*\).*`)

// countArgsWhenLengthNotMatch 参数数量与签名不一致时重新对齐
// 从第一个必填参数开始依次填入实际参数，之前的位置和缺少的参数为空
func countArgsWhenLengthNotMatch(template []types.ArgItem, actual []string) []string {
	startIndex := -1
	result := make([]string, len(template))
	for index, item := range template {
		if item.Required && startIndex < 0 {
			startIndex = index
		}
		argIndex := index - startIndex
		if startIndex > -1 && argIndex < len(actual) {
			result[index] = actual[argIndex]
		}
	}
	return result
}

// countActualArgsForSubbits subbits(bin, len) 补全成 [bin, "", len]
func countActualArgsForSubbits(actual []string) []string {
	if len(actual) == 2 {
		return []string{actual[0], "", actual[1]}
	}
	return actual
}

// funcDataFromExpression 解析函数调用，函数不存在返回 false
func (c *Compiler) funcDataFromExpression(name, argsContent string) (*types.FuncCall, string, bool) {
	functions := c.config.Functions
	if functions == nil {
		c.config.Logger.Printf("can not find function %s: no function registry", name)
		return nil, "", false
	}
	group, okGroup := functions.Group(name)
	signature, okSig := functions.Signature(name)
	if !okGroup || !okSig {
		c.config.Logger.Printf("can not find function %s", name)
		return nil, "", false
	}
	argIndex := functions.FieldArgIndex(signature, group)

	var funcArgs []string
	for _, item := range sql.SplitOnComma(argsContent) {
		funcArgs = append(funcArgs, sql.TrimSpacesAndLFs(item))
	}
	if name == FuncSubbits {
		funcArgs = countActualArgsForSubbits(funcArgs)
	}
	args := funcArgs
	if len(funcArgs) != len(signature.Args) {
		args = countArgsWhenLengthNotMatch(signature.Args, funcArgs)
	}
	call := &types.FuncCall{Name: name, Args: args}
	var field string
	if argIndex >= 0 && argIndex < len(args) {
		field = args[argIndex]
		call.FieldArg = &argIndex
	}
	return call, field, true
}

// generateFunctionItem 解析单个字段表达式
func (c *Compiler) generateFunctionItem(expressionItem string) types.FunctionItem {
	var item types.FunctionItem
	selection, alias, ok := splitAlias(expressionItem)
	if ok {
		item.Alias = alias
	}
	if name, argsContent, isCall := parseCall(selection); isCall {
		if call, field, found := c.funcDataFromExpression(name, argsContent); found {
			item.Func = call
			item.Field = field
			return item
		}
	}
	item.Field = selection
	return item
}

// selectPrefixReg 字段列表前可以带 SELECT 关键字
var selectPrefixReg = regexp.MustCompile(`(?i)^\s*select\s+`)

// GenerateFunctionFormFromExpression 把 SELECT 字段列表解析成表单
// 字段为 * 时返回 nil，表示没有需要处理的字段
// Example: "payload.a as a, subbits(payload.b, 8) as b"
func (c *Compiler) GenerateFunctionFormFromExpression(expression string) []types.FunctionItem {
	expression = selectPrefixReg.ReplaceAllString(expression, "")
	if sql.TrimSpacesAndLFs(expression) == sql.DefaultSelect {
		return nil
	}
	parts := sql.SplitOnComma(expression)
	items := make([]types.FunctionItem, 0, len(parts))
	for _, part := range parts {
		items = append(items, c.generateFunctionItem(sql.TrimSpacesAndLFs(part)))
	}
	return items
}

// DetectFieldsExpressionsEditedWay 字段包含无法用表单表示的函数调用或者 FOREACH 时只能用SQL编辑
func DetectFieldsExpressionsEditedWay(items []types.FunctionItem) types.EditedWay {
	for _, item := range items {
		if fieldWithFuncReg.MatchString(item.Field) || sql.IsForeach(item.Field) {
			return types.EditedWaySQL
		}
	}
	return types.EditedWayForm
}
