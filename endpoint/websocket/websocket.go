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

package websocket

import (
	"context"
	"net"
	"net/http"
	"net/textproto"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/endpoint"
	"github.com/rulego/ruleflow/endpoint/rest"
)

// message 一次连接或者一条ws消息的公共部分
type message struct {
	request *http.Request
	params  httprouter.Params
	//ws消息类型 TextMessage=1/BinaryMessage=2
	messageType int
	body        []byte
	err         error
}

func (m *message) Body() []byte { return m.body }

func (m *message) From() string {
	if m.request == nil {
		return ""
	}
	return m.request.URL.String()
}

// GetParam 优先取路径参数
func (m *message) GetParam(key string) string {
	if m.request == nil {
		return ""
	}
	if v := m.params.ByName(key); v != "" {
		return v
	}
	return m.request.FormValue(key)
}

func (m *message) SetError(err error) { m.err = err }

func (m *message) GetError() error { return m.err }

// MessageType ws消息类型
func (m *message) MessageType() int { return m.messageType }

// RequestMessage websocket请求消息，头部为升级请求的头部
type RequestMessage struct {
	message
}

func (r *RequestMessage) Headers() textproto.MIMEHeader {
	if r.request == nil {
		return nil
	}
	return textproto.MIMEHeader(r.request.Header)
}

func (r *RequestMessage) SetStatusCode(statusCode int) {}

func (r *RequestMessage) SetBody(body []byte) { r.body = body }

// ResponseMessage websocket响应消息，SetBody 立即写回连接
type ResponseMessage struct {
	message
	headers textproto.MIMEHeader
	conn    *websocket.Conn
	log     func(format string, v ...interface{})
	//同一个连接的写操作需要串行
	locker *sync.Mutex
}

func (r *ResponseMessage) Headers() textproto.MIMEHeader {
	if r.headers == nil {
		r.headers = make(textproto.MIMEHeader)
	}
	return r.headers
}

// SetStatusCode ws没有状态码
func (r *ResponseMessage) SetStatusCode(statusCode int) {}

func (r *ResponseMessage) SetBody(body []byte) {
	r.body = body
	if r.conn == nil {
		return
	}
	mt := r.messageType
	if mt == 0 {
		mt = websocket.TextMessage
	}
	r.locker.Lock()
	defer r.locker.Unlock()
	if err := r.conn.WriteMessage(mt, body); err != nil && r.log != nil {
		r.log("write: %v", err)
	}
}

// Config Websocket 服务配置
type Config struct {
	Server      string
	CertFile    string
	CertKeyFile string
}

// Websocket 接收端端点
// 每条收到的消息都交给路由处理函数处理，处理函数通过 exchange.Out.SetBody 回复
type Websocket struct {
	//配置
	Config  Config
	Logger  types.Logger
	OnEvent endpoint.OnEvent
	//共用rest端点的http服务，为空则单独启动服务
	RestEndpoint *rest.Rest
	Upgrader     websocket.Upgrader
	Server       *http.Server
	//http路由器
	router *httprouter.Router
	sync.RWMutex
}

// New 创建websocket端点，restEndpoint不为空则和rest端点共用端口
func New(config Config, restEndpoint *rest.Rest, logger types.Logger) *Websocket {
	return &Websocket{Config: config, RestEndpoint: restEndpoint, Logger: types.NewLogger(logger)}
}

// AddRouter 注册1个或者多个路由
func (ws *Websocket) AddRouter(routers ...*endpoint.Router) *Websocket {
	ws.Lock()
	defer ws.Unlock()
	for _, item := range routers {
		ws.Router().Handle(http.MethodGet, item.FromToString(), ws.handler(item))
	}
	return ws
}

func (ws *Websocket) Router() *httprouter.Router {
	if ws.RestEndpoint != nil {
		return ws.RestEndpoint.Router()
	}
	if ws.router == nil {
		ws.router = httprouter.New()
	}
	return ws.router
}

// Start 启动服务，非阻塞。和rest端点共用服务时不做任何事情
func (ws *Websocket) Start() error {
	if ws.RestEndpoint != nil {
		if ws.OnEvent != nil {
			ws.OnEvent(endpoint.EventInitServer, ws.RestEndpoint.Server)
		}
		return nil
	}
	ws.Server = &http.Server{Addr: ws.Config.Server, Handler: ws.Router()}
	ln, err := ws.Listen()
	if err != nil {
		return err
	}
	if ws.OnEvent != nil {
		ws.OnEvent(endpoint.EventInitServer, ws)
	}
	isTls := ws.Config.CertKeyFile != "" && ws.Config.CertFile != ""
	go func() {
		defer ln.Close()
		var err error
		if isTls {
			ws.Printf("started ws server with TLS on %s", ln.Addr().String())
			err = ws.Server.ServeTLS(ln, ws.Config.CertFile, ws.Config.CertKeyFile)
		} else {
			ws.Printf("started ws server on %s", ln.Addr().String())
			err = ws.Server.Serve(ln)
		}
		if err != nil && err != http.ErrServerClosed {
			ws.Printf("ws server err: %v", err)
		}
	}()
	return nil
}

func (ws *Websocket) Listen() (net.Listener, error) {
	addr := ws.Server.Addr
	if addr == "" {
		if ws.Config.CertKeyFile != "" && ws.Config.CertFile != "" {
			addr = ":https"
		} else {
			addr = ":http"
		}
	}
	return net.Listen("tcp", addr)
}

func (ws *Websocket) Stop(ctx context.Context) error {
	if ws.Server != nil {
		return ws.Server.Shutdown(ctx)
	}
	return nil
}

func (ws *Websocket) handler(router *endpoint.Router) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		if router.IsDisable() {
			http.NotFound(w, r)
			return
		}
		c, err := ws.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			ws.Printf("upgrade: %v", err)
			return
		}
		locker := &sync.Mutex{}
		newExchange := func(mt int, body []byte) *endpoint.Exchange {
			return &endpoint.Exchange{
				In: &RequestMessage{message{request: r, params: params, messageType: mt, body: body}},
				Out: &ResponseMessage{
					message: message{request: r, params: params, messageType: mt},
					conn:    c,
					log:     ws.Printf,
					locker:  locker,
				},
			}
		}
		connectExchange := newExchange(0, nil)
		if ws.OnEvent != nil {
			ws.OnEvent(endpoint.EventConnect, connectExchange)
		}
		defer func() {
			_ = c.Close()
			//捕捉异常
			if e := recover(); e != nil {
				ws.Printf("ws handler err :%v", e)
			}
			if ws.OnEvent != nil {
				ws.OnEvent(endpoint.EventDisconnect, connectExchange)
			}
		}()

		for {
			mt, body, err := c.ReadMessage()
			if err != nil || router.IsDisable() {
				return
			}
			if mt != websocket.BinaryMessage && mt != websocket.TextMessage {
				continue
			}
			exchange := newExchange(mt, body)
			if fromFlow := router.GetFrom(); fromFlow != nil {
				fromFlow.ExecuteProcess(exchange)
			}
		}
	}
}

func (ws *Websocket) Printf(format string, v ...interface{}) {
	if ws.Logger != nil {
		ws.Logger.Printf(format, v...)
	}
}
