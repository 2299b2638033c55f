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

package maps

import "github.com/mitchellh/mapstructure"

// Map2Struct Decode takes an input structure and uses reflection to translate it to
// the output structure. output must be a pointer to a map or struct.
func Map2Struct(input interface{}, output interface{}) error {
	return mapstructure.Decode(input, output)
}

// Struct2Map 把结构体转换成map，字段名使用mapstructure标签
// input为map[string]interface{}时直接返回
func Struct2Map(input interface{}) (map[string]interface{}, error) {
	if m, ok := input.(map[string]interface{}); ok {
		return m, nil
	}
	var output = make(map[string]interface{})
	if input == nil {
		return output, nil
	}
	err := mapstructure.Decode(input, &output)
	return output, err
}

// KeyCount 返回map或者结构体的字段数量，无法转换返回0
func KeyCount(input interface{}) int {
	m, err := Struct2Map(input)
	if err != nil {
		return 0
	}
	return len(m)
}

// Copy 浅拷贝，nil返回nil
func Copy(input map[string]interface{}) map[string]interface{} {
	if input == nil {
		return nil
	}
	output := make(map[string]interface{}, len(input))
	for k, v := range input {
		output[k] = v
	}
	return output
}
