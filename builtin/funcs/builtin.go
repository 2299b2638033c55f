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

package funcs

import (
	"github.com/rulego/ruleflow/api/types"
)

// 函数分组
const (
	GroupMath     = "math"
	GroupDataType = "dataType"
	GroupString   = "string"
	GroupMap      = "map"
	GroupArray    = "array"
	GroupHashing  = "hashing"
	GroupBit      = "bit"
	GroupEncode   = "encode"
	GroupTime     = "time"
)

// 分组默认字段参数下标，未配置的分组使用0
var builtinGroupFieldArg = map[string]int{
	GroupMap:   1,
	GroupArray: 1,
}

func req(name string) types.ArgItem {
	return types.ArgItem{Name: name, Required: true}
}

func opt(name string) types.ArgItem {
	return types.ArgItem{Name: name}
}

func sig(group, name string, args ...types.ArgItem) types.FuncSignature {
	return types.FuncSignature{Name: name, Group: group, Args: args, FieldArg: UseGroupFieldArg}
}

func sigField(group, name string, fieldArg int, args ...types.ArgItem) types.FuncSignature {
	return types.FuncSignature{Name: name, Group: group, Args: args, FieldArg: fieldArg}
}

func unary(group string, names ...string) []types.FuncSignature {
	var result []types.FuncSignature
	for _, name := range names {
		result = append(result, sig(group, name, req("x")))
	}
	return result
}

func builtinSignatures() []types.FuncSignature {
	var result []types.FuncSignature
	// math
	result = append(result, unary(GroupMath, "abs", "acos", "acosh", "asin", "asinh", "atan", "atanh",
		"ceil", "cos", "cosh", "exp", "floor", "log", "log10", "log2", "sin", "sinh", "sqrt", "tan", "tanh")...)
	result = append(result,
		sig(GroupMath, "fmod", req("x"), req("y")),
		sig(GroupMath, "power", req("x"), req("n")),
		sig(GroupMath, "round", req("x"), opt("decimals")),
	)
	// data type
	result = append(result, unary(GroupDataType, "bool", "int", "str", "str_utf8", "is_null", "is_not_null",
		"is_str", "is_bool", "is_int", "is_float", "is_num", "is_map", "is_array")...)
	result = append(result, sig(GroupDataType, "float", req("x"), opt("decimals")))
	// string
	result = append(result, unary(GroupString, "lower", "upper", "trim", "ltrim", "rtrim", "reverse", "strlen", "ascii")...)
	result = append(result,
		sig(GroupString, "substr", req("str"), req("start"), opt("length")),
		sig(GroupString, "split", req("str"), req("separator"), opt("option")),
		sig(GroupString, "concat", req("str1"), req("str2")),
		sig(GroupString, "regex_match", req("str"), req("regex")),
		sig(GroupString, "regex_replace", req("str"), req("regex"), req("replacement")),
		sig(GroupString, "replace", req("str"), req("search"), req("replacement"), opt("where")),
		sig(GroupString, "find", req("str"), req("substr"), opt("direction")),
		sig(GroupString, "tokens", req("str"), req("separators"), opt("nocrlf")),
		sig(GroupString, "pad", req("str"), req("length"), opt("where"), opt("char")),
	)
	// map
	result = append(result,
		sig(GroupMap, "map_get", req("key"), req("map"), opt("default")),
		sigField(GroupMap, "map_put", 2, req("key"), req("value"), req("map")),
	)
	// array
	result = append(result,
		sig(GroupArray, "nth", req("n"), req("array")),
		sig(GroupArray, "sublist", req("length"), req("array")),
		sig(GroupArray, "contains", req("item"), req("array")),
		sigField(GroupArray, "length", 0, req("array")),
		sigField(GroupArray, "first", 0, req("array")),
		sigField(GroupArray, "last", 0, req("array")),
	)
	// hashing
	result = append(result, unary(GroupHashing, "md5", "sha", "sha256")...)
	// bit
	result = append(result, unary(GroupBit, "bitnot", "bitsize")...)
	result = append(result,
		sig(GroupBit, "bitand", req("x"), req("y")),
		sig(GroupBit, "bitor", req("x"), req("y")),
		sig(GroupBit, "bitxor", req("x"), req("y")),
		sig(GroupBit, "bitsl", req("x"), req("n")),
		sig(GroupBit, "bitsr", req("x"), req("n")),
		// subbits(bin, len) 省略start，编译时会补成 [bin, "", len]
		sig(GroupBit, "subbits", req("bin"), opt("start"), req("length")),
	)
	// encode / decode
	result = append(result, unary(GroupEncode, "base64_encode", "base64_decode", "json_encode", "json_decode",
		"bin2hexstr", "hexstr2bin", "gzip", "gunzip", "zip", "unzip")...)
	// time
	result = append(result,
		sig(GroupTime, "unix_ts_to_rfc3339", req("timestamp"), opt("unit")),
		sig(GroupTime, "rfc3339_to_unix_ts", req("datetime"), opt("unit")),
		sigField(GroupTime, "format_date", 3, req("unit"), req("offset"), req("format"), opt("timestamp")),
		sigField(GroupTime, "now_timestamp", 0, opt("unit")),
	)
	return result
}
