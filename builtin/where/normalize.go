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

package where

import (
	"strings"
	"unicode"
)

var keywords = map[string]struct{}{
	"and": {},
	"or":  {},
	"not": {},
	"in":  {},
}

// Normalize 把SQL条件转换成expr语法
//   - = 转换成 ==，<> 转换成 !=
//   - and/or/not/in 关键字转小写
//
// 引号内的内容保持不变
func Normalize(where string) string {
	var b strings.Builder
	runes := []rune(where)
	var quote rune
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quote != 0 {
			b.WriteRune(r)
			if r == '\\' && i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
			} else if r == quote {
				quote = 0
			}
			continue
		}
		switch {
		case r == '\'' || r == '"' || r == '`':
			quote = r
			b.WriteRune(r)
		case r == '<' && i+1 < len(runes) && runes[i+1] == '>':
			b.WriteString("!=")
			i++
		case r == '=':
			prev := rune(0)
			if i > 0 {
				prev = runes[i-1]
			}
			if prev == '=' || prev == '!' || prev == '<' || prev == '>' {
				b.WriteRune(r)
			} else if i+1 < len(runes) && runes[i+1] == '=' {
				b.WriteString("==")
				i++
			} else {
				b.WriteString("==")
			}
		case isIdentStart(r) && (i == 0 || !isIdentPart(runes[i-1])):
			j := i
			for j < len(runes) && isIdentPart(runes[j]) {
				j++
			}
			word := string(runes[i:j])
			if _, ok := keywords[strings.ToLower(word)]; ok {
				word = strings.ToLower(word)
			}
			b.WriteString(word)
			i = j - 1
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
