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
	"errors"
	"strings"

	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/utils/maps"
	"github.com/rulego/ruleflow/utils/sql"
	"github.com/rulego/ruleflow/utils/str"
)

var ErrEmptyRuleId = errors.New("rule id can not be empty")

// fromOfSource 数据源节点转回 from
func fromOfSource(node types.Node) string {
	switch form := node.Data.FormData.(type) {
	case types.EventForm:
		return form.Event
	case types.MessageForm:
		return form.Topic
	}
	m, _ := maps.Struct2Map(node.Data.FormData)
	switch node.Data.SpecificType {
	case types.SourceTypeEvent:
		return str.ToString(m["event"])
	case types.SourceTypeMessage:
		return str.ToString(m["topic"])
	}
	if id := str.ToString(m["id"]); id != "" {
		return RuleInputBridgeTypePrefix + id
	}
	return ""
}

// actionOfSink 输出节点转回动作，无法识别返回 false
func actionOfSink(node types.Node) (types.OutputItem, bool) {
	switch form := node.Data.FormData.(type) {
	case types.OutputItem:
		return form, true
	case types.ConsoleForm:
		return types.NewFuncOutput(types.SinkTypeConsole, nil), true
	}
	m, _ := maps.Struct2Map(node.Data.FormData)
	switch node.Data.SpecificType {
	case types.SinkTypeConsole:
		return types.NewFuncOutput(types.SinkTypeConsole, nil), true
	case types.SinkTypeRePub:
		args, _ := m["args"].(map[string]interface{})
		return types.NewFuncOutput(str.ToString(m["function"]), args), args != nil
	}
	if id := str.ToString(m["id"]); id != "" {
		return types.NewBridgeOutput(id), true
	}
	return types.OutputItem{}, false
}

// processingSQL 表单编辑时由表单生成SQL，否则使用SQL文本
func processingSQL(node types.Node) string {
	form, err := types.AsProcessingForm(node.Data.FormData, node.Data.SpecificType)
	if err != nil {
		return ""
	}
	if form.EditedWay == types.EditedWayForm {
		switch v := form.Form.(type) {
		case []types.FunctionItem:
			return types.FunctionItemsSQL(v)
		case *types.FilterForm:
			if v != nil {
				return v.SQL()
			}
		}
	}
	return sql.TrimSpacesAndLFs(form.SQL)
}

// RuleSQL 组装规则SQL
// Example: RuleSQL("*", []string{"t/#"}, "") return "SELECT\n  *\nFROM\n  \"t/#\""
func RuleSQL(fields string, from []string, where string) string {
	if fields == "" {
		fields = sql.DefaultSelect
	}
	quoted := make([]string, 0, len(from))
	for _, item := range from {
		quoted = append(quoted, `"`+item+`"`)
	}
	var b strings.Builder
	if sql.IsForeach(fields) {
		b.WriteString(fields)
	} else {
		b.WriteString("SELECT\n  ")
		b.WriteString(fields)
	}
	b.WriteString("\nFROM\n  ")
	b.WriteString(strings.Join(quoted, ", "))
	if where != "" {
		b.WriteString("\nWHERE\n  ")
		b.WriteString(where)
	}
	return b.String()
}

// RuleFromFlow 把编辑后的流程图转回规则
func RuleFromFlow(id string, flow types.Flow) (types.Rule, error) {
	if id == "" {
		return types.Rule{}, ErrEmptyRuleId
	}
	rule := types.Rule{ID: id, Enable: true, Actions: []types.OutputItem{}}
	for _, node := range flow.Nodes.Source {
		if from := fromOfSource(node); from != "" {
			rule.From = append(rule.From, from)
		}
	}
	var fields, where string
	if len(flow.Nodes.Function) > 0 {
		fields = processingSQL(flow.Nodes.Function[0])
	}
	if len(flow.Nodes.Filter) > 0 {
		where = processingSQL(flow.Nodes.Filter[0])
	}
	rule.SQL = RuleSQL(fields, rule.From, where)
	for _, node := range flow.Nodes.Sink {
		if action, ok := actionOfSink(node); ok {
			rule.Actions = append(rule.Actions, action)
		}
	}
	return rule, nil
}
