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

package router

import (
	"net/http"

	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/config"
	"github.com/rulego/ruleflow/endpoint/rest"
	"github.com/rulego/ruleflow/endpoint/websocket"
	"github.com/rulego/ruleflow/internal/controller"
)

// NewWebsocketServe websocket服务，和rest服务共用端口
func NewWebsocketServe(c config.Config, restEndpoint *rest.Rest, flow *ruleflow.RuleFlow, logger types.Logger) *websocket.Websocket {
	wsEndpoint := websocket.New(websocket.Config{
		Server:      c.Server,
		CertFile:    c.CertFile,
		CertKeyFile: c.CertKeyFile,
	}, restEndpoint, logger)
	//编辑器和服务可能不同源
	wsEndpoint.Upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	flowController := controller.NewFlow(flow)
	wsEndpoint.AddRouter(
		flowController.LiveLayout(apiBasePath+"/ws/layout"),
		flowController.LiveEdit(apiBasePath+"/ws/edit"),
	)
	return wsEndpoint
}
