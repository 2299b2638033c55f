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

package rest

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/textproto"
	"sync"

	"github.com/julienschmidt/httprouter"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/endpoint"
)

const (
	ContentTypeKey  = "Content-Type"
	JsonContextType = "application/json"
)

// RequestMessage http请求消息
type RequestMessage struct {
	request *http.Request
	body    []byte
	//路径参数
	Params httprouter.Params
	err    error
}

func (r *RequestMessage) Body() []byte {
	if r.body == nil && r.request.Body != nil {
		defer func() {
			_ = r.request.Body.Close()
		}()
		entry, _ := io.ReadAll(r.request.Body)
		r.body = entry
	}
	return r.body
}

func (r *RequestMessage) Headers() textproto.MIMEHeader {
	return textproto.MIMEHeader(r.request.Header)
}

func (r *RequestMessage) From() string {
	return r.request.URL.String()
}

// GetParam 优先取路径参数
func (r *RequestMessage) GetParam(key string) string {
	if v := r.Params.ByName(key); v != "" {
		return v
	}
	return r.request.FormValue(key)
}

func (r *RequestMessage) SetStatusCode(statusCode int) {
}

func (r *RequestMessage) SetBody(body []byte) {
	r.body = body
}

func (r *RequestMessage) SetError(err error) {
	r.err = err
}

func (r *RequestMessage) GetError() error {
	return r.err
}

func (r *RequestMessage) Request() *http.Request {
	return r.request
}

// ResponseMessage http响应消息
type ResponseMessage struct {
	request  *http.Request
	response http.ResponseWriter
	body     []byte
	err      error
}

func (r *ResponseMessage) Body() []byte {
	return r.body
}

func (r *ResponseMessage) Headers() textproto.MIMEHeader {
	return textproto.MIMEHeader(r.response.Header())
}

func (r *ResponseMessage) From() string {
	return r.request.URL.String()
}

func (r *ResponseMessage) GetParam(key string) string {
	return r.request.FormValue(key)
}

func (r *ResponseMessage) SetStatusCode(statusCode int) {
	r.response.WriteHeader(statusCode)
}

func (r *ResponseMessage) SetBody(body []byte) {
	r.body = body
	_, _ = r.response.Write(body)
}

func (r *ResponseMessage) SetError(err error) {
	r.err = err
}

func (r *ResponseMessage) GetError() error {
	return r.err
}

func (r *ResponseMessage) Response() http.ResponseWriter {
	return r.response
}

// Config Rest 服务配置
type Config struct {
	Server      string
	CertFile    string
	CertKeyFile string
}

// Rest 接收端端点
type Rest struct {
	//配置
	Config Config
	Logger types.Logger
	//事件回调
	OnEvent endpoint.OnEvent
	Server  *http.Server
	//路由器
	router *httprouter.Router
	//全局拦截器，在路由处理函数之前执行
	interceptors []endpoint.Process
	sync.RWMutex
}

// New 创建Rest端点
func New(config Config, logger types.Logger) *Rest {
	return &Rest{Config: config, Logger: types.NewLogger(logger), router: httprouter.New()}
}

// AddInterceptors 添加全局拦截器
func (r *Rest) AddInterceptors(interceptors ...endpoint.Process) *Rest {
	r.interceptors = append(r.interceptors, interceptors...)
	return r
}

// Start 启动服务，非阻塞
func (r *Rest) Start() error {
	r.Server = &http.Server{Addr: r.Config.Server, Handler: r.Router()}
	ln, err := r.Listen()
	if err != nil {
		return err
	}
	if r.OnEvent != nil {
		r.OnEvent(endpoint.EventInitServer, r)
	}
	isTls := r.Config.CertKeyFile != "" && r.Config.CertFile != ""
	go func() {
		defer ln.Close()
		var err error
		if isTls {
			r.Printf("started rest server with TLS on %s", ln.Addr().String())
			err = r.Server.ServeTLS(ln, r.Config.CertFile, r.Config.CertKeyFile)
		} else {
			r.Printf("started rest server on %s", ln.Addr().String())
			err = r.Server.Serve(ln)
		}
		if err != nil && err != http.ErrServerClosed {
			r.Printf("rest server err: %v", err)
		}
	}()
	return nil
}

func (r *Rest) Listen() (net.Listener, error) {
	addr := r.Server.Addr
	if addr == "" {
		if r.Config.CertKeyFile != "" && r.Config.CertFile != "" {
			addr = ":https"
		} else {
			addr = ":http"
		}
	}
	return net.Listen("tcp", addr)
}

// Stop 关闭服务
func (r *Rest) Stop(ctx context.Context) error {
	if r.Server != nil {
		return r.Server.Shutdown(ctx)
	}
	return nil
}

// AddRouter 注册1个或者多个路由
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
func (r *Rest) AddRouter(method string, routers ...*endpoint.Router) *Rest {
	r.Lock()
	defer r.Unlock()
	for _, rt := range routers {
		r.Router().Handle(method, rt.FromToString(), r.handler(rt))
	}
	return r
}

func (r *Rest) GET(routers ...*endpoint.Router) *Rest {
	return r.AddRouter(http.MethodGet, routers...)
}

func (r *Rest) POST(routers ...*endpoint.Router) *Rest {
	return r.AddRouter(http.MethodPost, routers...)
}

func (r *Rest) PUT(routers ...*endpoint.Router) *Rest {
	return r.AddRouter(http.MethodPut, routers...)
}

func (r *Rest) DELETE(routers ...*endpoint.Router) *Rest {
	return r.AddRouter(http.MethodDelete, routers...)
}

func (r *Rest) Router() *httprouter.Router {
	if r.router == nil {
		r.router = httprouter.New()
	}
	return r.router
}

func (r *Rest) Printf(format string, v ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, v...)
	}
}

func (r *Rest) handler(router *endpoint.Router) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		defer func() {
			//捕捉异常
			if e := recover(); e != nil {
				r.Printf("rest handler err :%v", e)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		if router.IsDisable() {
			http.NotFound(w, req)
			return
		}
		exchange := &endpoint.Exchange{
			In: &RequestMessage{
				request: req,
				Params:  params,
			},
			Out: &ResponseMessage{
				request:  req,
				response: w,
			}}

		for _, interceptor := range r.interceptors {
			if !interceptor(router, exchange) {
				return
			}
		}
		if fromFlow := router.GetFrom(); fromFlow != nil {
			fromFlow.ExecuteProcess(exchange)
		}
	}
}
