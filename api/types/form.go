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
	"strings"

	"github.com/rulego/ruleflow/utils/maps"
)

// SQL 把字段表达式转回SQL，空参数省略
// Func.FieldArg 不为空时，Field 写回对应的参数
// Example: {Field: "payload.a", Func: {Name: "subbits", Args: ["payload.a", "", "8"]}, Alias: "b"} return "subbits(payload.a, 8) as b"
func (f FunctionItem) SQL() string {
	text := f.Field
	if f.Func != nil && f.Func.Name != "" {
		var args []string
		for i, arg := range f.Func.Args {
			if idx := f.Func.FieldArg; idx != nil && *idx == i && f.Field != "" {
				arg = f.Field
			}
			if arg != "" {
				args = append(args, arg)
			}
		}
		text = f.Func.Name + "(" + strings.Join(args, ", ") + ")"
	}
	if f.Alias != "" {
		text += " as " + f.Alias
	}
	return text
}

// FunctionItemsSQL 字段表达式列表转SQL
func FunctionItemsSQL(items []FunctionItem) string {
	var parts = make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.SQL())
	}
	return strings.Join(parts, ", ")
}

// SQL 把条件表单转回SQL，嵌套条件组加括号
func (f FilterForm) SQL() string {
	if f.Raw && len(f.Items) == 1 {
		return f.Items[0].Field
	}
	if f.IsLeaf() {
		if f.Operator == "" {
			return f.Field
		}
		return f.Field + " " + f.Operator + " " + f.Value
	}
	var parts []string
	for _, item := range f.Items {
		text := item.SQL()
		if !item.IsLeaf() && len(item.Items) > 1 {
			text = "(" + text + ")"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "+strings.ToUpper(string(f.Type))+" ")
}

// AsProcessingForm 节点表单转成 ProcessingForm
// 从JSON解码的表单是map，其中 Form 按节点类型解码成 []FunctionItem 或 *FilterForm
func AsProcessingForm(formData interface{}, specificType string) (ProcessingForm, error) {
	var form ProcessingForm
	switch v := formData.(type) {
	case ProcessingForm:
		form = v
	case *ProcessingForm:
		if v == nil {
			return form, nil
		}
		form = *v
	default:
		if err := maps.Map2Struct(formData, &form); err != nil {
			return form, err
		}
	}
	switch v := form.Form.(type) {
	case nil, []FunctionItem, *FilterForm:
	case FilterForm:
		form.Form = &v
	default:
		switch specificType {
		case ProcessingTypeFunction:
			var items []FunctionItem
			if err := maps.Map2Struct(v, &items); err != nil {
				return form, err
			}
			form.Form = items
		case ProcessingTypeFilter:
			var filter FilterForm
			if err := maps.Map2Struct(v, &filter); err != nil {
				return form, err
			}
			form.Form = &filter
		}
	}
	return form, nil
}
