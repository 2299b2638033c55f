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
	"testing"

	"github.com/rulego/ruleflow/utils/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionItemSQL(t *testing.T) {
	fieldArg := 0
	item := FunctionItem{Field: "payload.a", Func: &FuncCall{Name: "subbits", Args: []string{"payload.a", "", "8"}, FieldArg: &fieldArg}, Alias: "b"}
	assert.Equal(t, "subbits(payload.a, 8) as b", item.SQL())

	// 表单修改字段后写回参数
	item.Field = "payload.x"
	assert.Equal(t, "subbits(payload.x, 8) as b", item.SQL())

	// 没有字段参数下标时以参数为准
	item.Func.FieldArg = nil
	assert.Equal(t, "subbits(payload.a, 8) as b", item.SQL())

	assert.Equal(t, "payload.a as a, clientid", FunctionItemsSQL([]FunctionItem{{Field: "payload.a", Alias: "a"}, {Field: "clientid"}}))
}

func TestFilterFormSQL(t *testing.T) {
	form := FilterForm{Type: FilterLogicAnd, Items: []FilterForm{
		{Field: "payload.a", Operator: ">", Value: "1"},
		{Type: FilterLogicOr, Items: []FilterForm{
			{Field: "b", Operator: "=", Value: "'x'"},
			{Field: "c", Operator: "<", Value: "2"},
		}},
	}}
	assert.Equal(t, "payload.a > 1 AND (b = 'x' OR c < 2)", form.SQL())

	raw := FilterForm{Type: FilterLogicAnd, Raw: true, Items: []FilterForm{{Field: "a in (1, 2)", Raw: true}}}
	assert.Equal(t, "a in (1, 2)", raw.SQL())
}

func TestAsProcessingForm(t *testing.T) {
	fieldArg := 0
	function := ProcessingForm{
		EditedWay: EditedWayForm,
		SQL:       "abs(payload.a) as a",
		Form: []FunctionItem{
			{Field: "payload.a", Func: &FuncCall{Name: "abs", Args: []string{"payload.a"}, FieldArg: &fieldArg}, Alias: "a"},
		},
	}
	filter := ProcessingForm{
		EditedWay: EditedWayForm,
		SQL:       "payload.a > 1",
		Form:      &FilterForm{Type: FilterLogicAnd, Items: []FilterForm{{Field: "payload.a", Operator: ">", Value: "1"}}},
	}

	t.Run("Typed", func(t *testing.T) {
		form, err := AsProcessingForm(function, ProcessingTypeFunction)
		require.Nil(t, err)
		assert.Equal(t, function, form)

		form, err = AsProcessingForm(&filter, ProcessingTypeFilter)
		require.Nil(t, err)
		assert.Equal(t, filter, form)

		form, err = AsProcessingForm(ProcessingForm{Form: *filter.Form.(*FilterForm)}, ProcessingTypeFilter)
		require.Nil(t, err)
		assert.Equal(t, filter.Form, form.Form)
	})

	t.Run("FromJson", func(t *testing.T) {
		for _, item := range []struct {
			specificType string
			form         ProcessingForm
		}{
			{ProcessingTypeFunction, function},
			{ProcessingTypeFilter, filter},
		} {
			b, err := json.Marshal(item.form)
			require.Nil(t, err)
			var formData interface{}
			require.Nil(t, json.Unmarshal(b, &formData))

			form, err := AsProcessingForm(formData, item.specificType)
			require.Nil(t, err)
			assert.Equal(t, item.form, form)
		}
	})

	t.Run("NoForm", func(t *testing.T) {
		form, err := AsProcessingForm(map[string]interface{}{"editedWay": "sql", "sql": "payload.a"}, ProcessingTypeFunction)
		require.Nil(t, err)
		assert.Equal(t, ProcessingForm{EditedWay: EditedWaySQL, SQL: "payload.a"}, form)
	})
}
