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

// Package endpoint 抽象不同协议的输入端点：HTTP(endpoint/rest)、Websocket(endpoint/websocket)。
//
// 请求经过路由(Router)的处理函数链，处理函数读取请求并写回响应：
//
//	endpoint.NewRouter().From("/api/v1/flows").Process(auth).Process(handle).End()
package endpoint

import (
	"net/textproto"
)

// 端点事件
const (
	// EventConnect 客户端连接
	EventConnect = "Connect"
	// EventDisconnect 客户端断开
	EventDisconnect = "Disconnect"
	// EventInitServer 服务初始化完成
	EventInitServer = "InitServer"
)

// OnEvent 端点事件回调
type OnEvent func(eventName string, params ...interface{})

// Message 接收端点数据抽象接口
// 不同输入源数据统一接口
type Message interface {
	//Body message body
	Body() []byte
	Headers() textproto.MIMEHeader
	From() string
	//GetParam 路径参数或者 http.Request#FormValue
	GetParam(key string) string
	//SetStatusCode 响应 code
	SetStatusCode(statusCode int)
	//SetBody 响应 body
	SetBody(body []byte)
	//SetError 设置错误
	SetError(err error)
	//GetError 获取错误
	GetError() error
}

// Exchange 包含in 和out message
type Exchange struct {
	In  Message
	Out Message
}

// Process 处理函数
// true:执行下一个处理器，否则不执行
type Process func(router *Router, exchange *Exchange) bool

// From 来源路由
type From struct {
	router *Router
	//来源路径
	from string
	//消息处理拦截器
	processList []Process
}

func (f *From) ToString() string {
	return f.from
}

func (f *From) Transform(transform Process) *From {
	f.processList = append(f.processList, transform)
	return f
}

func (f *From) Process(process Process) *From {
	f.processList = append(f.processList, process)
	return f
}

func (f *From) GetProcessList() []Process {
	return f.processList
}

// ExecuteProcess 执行处理函数
// true:执行下一个逻辑，否则不执行
func (f *From) ExecuteProcess(exchange *Exchange) bool {
	for _, process := range f.processList {
		if !process(f.router, exchange) {
			return false
		}
	}
	return true
}

func (f *From) End() *Router {
	return f.router
}

// Router 路由，把请求(From)交给处理函数链(Process)处理并响应
// 用法：
//
//	endpoint.NewRouter().From("/api/v1/flows").Process(handle).End()
type Router struct {
	id string
	//输入
	from *From
	//禁用的路由不再处理请求
	disable bool
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) SetId(id string) *Router {
	r.id = id
	return r
}

// GetId 路由ID，默认为来源路径
func (r *Router) GetId() string {
	if r.id == "" {
		return r.FromToString()
	}
	return r.id
}

func (r *Router) FromToString() string {
	if r.from == nil {
		return ""
	}
	return r.from.ToString()
}

func (r *Router) From(from string) *From {
	r.from = &From{router: r, from: from}
	return r.from
}

func (r *Router) GetFrom() *From {
	return r.from
}

// Disable 禁用或者启用路由
func (r *Router) Disable(disable bool) *Router {
	r.disable = disable
	return r
}

func (r *Router) IsDisable() bool {
	return r.disable
}
