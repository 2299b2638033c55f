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
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokOpen
	tokClose
	tokComma
	tokOther
)

// token 字段表达式词法单元，pos/end 为源文本字节下标
type token struct {
	kind  tokenKind
	text  string
	pos   int
	end   int
	depth int
}

// lex 字段表达式分词，记录每个词所在的括号深度
// 未闭合的字符串一直延伸到结尾
func lex(src string) []token {
	var tokens []token
	runes := []rune(src)
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		offsets[i] = off
		off += len(string(r))
	}
	offsets[len(runes)] = off

	depth := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		start := i
		var kind tokenKind
		switch {
		case unicode.IsSpace(r):
			i++
			continue
		case isWordRune(r) && !unicode.IsDigit(r):
			for i < len(runes) && isWordRune(runes[i]) {
				i++
			}
			kind = tokIdent
		case unicode.IsDigit(r):
			for i < len(runes) && (isWordRune(runes[i]) || runes[i] == '.') {
				i++
			}
			kind = tokNumber
		case r == '\'' || r == '"' || r == '`':
			i++
			for i < len(runes) {
				if runes[i] == '\\' {
					i += 2
					continue
				}
				if runes[i] == r {
					i++
					break
				}
				i++
			}
			if i > len(runes) {
				i = len(runes)
			}
			kind = tokString
		case r == '(' || r == '[' || r == '{':
			i++
			kind = tokOpen
		case r == ')' || r == ']' || r == '}':
			i++
			kind = tokClose
		case r == ',':
			i++
			kind = tokComma
		default:
			i++
			kind = tokOther
		}
		tok := token{kind: kind, text: string(runes[start:i]), pos: offsets[start], end: offsets[i]}
		if kind == tokClose && depth > 0 {
			depth--
		}
		tok.depth = depth
		if kind == tokOpen {
			depth++
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// isWordRune 对应正则 \w
func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// splitAlias 识别结尾的 " as alias"，as 必须在顶层且前后都有空白
func splitAlias(item string) (selection string, alias string, ok bool) {
	tokens := lex(item)
	for i := len(tokens) - 1; i > 0; i-- {
		tok := tokens[i]
		if tok.depth != 0 || tok.kind != tokIdent || !strings.EqualFold(tok.text, "as") {
			continue
		}
		if tok.pos == 0 || tok.end >= len(item) {
			return item, "", false
		}
		if !isSpaceByte(item[tok.pos-1]) || !isSpaceByte(item[tok.end]) {
			continue
		}
		rest := strings.TrimSpace(item[tok.end:])
		if rest == "" || strings.IndexFunc(rest, unicode.IsSpace) >= 0 {
			return item, "", false
		}
		return strings.TrimSpace(item[:tok.pos]), rest, true
	}
	return item, "", false
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// parseCall 识别整个表达式是否是一次函数调用 name(args)
// 左括号必须紧跟函数名，与之匹配的右括号必须是最后一个词，参数不能为空
func parseCall(selection string) (name string, args string, ok bool) {
	tokens := lex(selection)
	if len(tokens) < 3 || tokens[0].kind != tokIdent || tokens[0].pos != 0 {
		return "", "", false
	}
	open := tokens[1]
	if open.text != "(" || open.pos != tokens[0].end {
		return "", "", false
	}
	for i := 2; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.kind == tokClose && tok.depth == 0 {
			if tok.text != ")" || i != len(tokens)-1 || tok.end != len(selection) {
				return "", "", false
			}
			args = selection[open.end:tok.pos]
			if args == "" {
				return "", "", false
			}
			return tokens[0].text, args, true
		}
	}
	return "", "", false
}
