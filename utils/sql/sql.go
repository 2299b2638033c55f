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

// Package sql 提供规则SQL的切分工具：顶层逗号切分、关键字定位和SELECT/FROM/WHERE拆分。
// 只做结构切分，不做语义校验。
package sql

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultSelect 默认选择所有字段
const DefaultSelect = "*"

// ForeachReg 匹配 FOREACH 语句
var ForeachReg = regexp.MustCompile(`(?i)^\s*foreach\b`)

// IsForeach 是否是 FOREACH 语句
func IsForeach(s string) bool {
	return ForeachReg.MatchString(s)
}

// TrimSpacesAndLFs 去掉首尾空格和换行
func TrimSpacesAndLFs(s string) string {
	return strings.TrimSpace(s)
}

// SplitOnComma 按顶层逗号切分，括号和引号内的逗号忽略
// Example: SplitOnComma("a, concat(b, ','), c") return ["a", " concat(b, ',')", " c"]
func SplitOnComma(s string) []string {
	var result []string
	start := 0
	walkTopLevel(s, func(i int, r rune) {
		if r == ',' {
			result = append(result, s[start:i])
			start = i + 1
		}
	})
	return append(result, s[start:])
}

// KeyParts 规则SQL的关键部分
type KeyParts struct {
	// Fields SELECT 和 FROM 之间的字段表达式，FOREACH 语句包含整个 FOREACH 部分
	Fields    string
	HasFields bool
	// From FROM 和 WHERE 之间的部分
	From string
	// Where WHERE 之后的条件
	Where    string
	HasWhere bool
}

// GetKeyPartsFromSQL 拆分规则SQL
func GetKeyPartsFromSQL(sql string) KeyParts {
	var parts KeyParts
	sql = TrimSpacesAndLFs(sql)
	if sql == "" {
		return parts
	}
	fromIdx := findKeyword(sql, "from")
	fieldsEnd := len(sql)
	if fromIdx >= 0 {
		fieldsEnd = fromIdx
	}
	if selectIdx := findKeyword(sql, "select"); selectIdx == 0 {
		parts.Fields = TrimSpacesAndLFs(sql[len("select"):fieldsEnd])
		parts.HasFields = true
	} else if IsForeach(sql) {
		parts.Fields = TrimSpacesAndLFs(sql[:fieldsEnd])
		parts.HasFields = true
	}
	if fromIdx < 0 {
		return parts
	}
	rest := sql[fromIdx+len("from"):]
	if whereIdx := findKeyword(rest, "where"); whereIdx >= 0 {
		parts.From = TrimSpacesAndLFs(rest[:whereIdx])
		parts.Where = TrimSpacesAndLFs(rest[whereIdx+len("where"):])
		parts.HasWhere = true
	} else {
		parts.From = TrimSpacesAndLFs(rest)
	}
	return parts
}

// findKeyword 查找顶层关键字(不区分大小写)，返回字节下标，不存在返回-1
func findKeyword(s, keyword string) int {
	found := -1
	walkTopLevel(s, func(i int, r rune) {
		if found >= 0 {
			return
		}
		if i > 0 && isWordByte(s[i-1]) {
			return
		}
		end := i + len(keyword)
		if end > len(s) || !strings.EqualFold(s[i:end], keyword) {
			return
		}
		if end < len(s) && isWordByte(s[end]) {
			return
		}
		found = i
	})
	return found
}

// walkTopLevel 遍历不在引号和括号内的字符
func walkTopLevel(s string, fn func(i int, r rune)) {
	depth := 0
	var quote rune
	escaped := false
	for i, r := range s {
		if quote != 0 {
			if escaped {
				escaped = false
			} else if r == '\\' {
				escaped = true
			} else if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
			continue
		case '(', '[', '{':
			depth++
			continue
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			fn(i, r)
		}
	}
}

func isWordByte(b byte) bool {
	return b == '_' || b == '.' || b == '$' || unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}
