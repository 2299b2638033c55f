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

// Package router 注册 ruleflow http/websocket 路由
package router

import (
	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/builtin/processor"
	"github.com/rulego/ruleflow/config"
	"github.com/rulego/ruleflow/endpoint/rest"
	"github.com/rulego/ruleflow/internal/controller"
)

const (
	apiVersion  = "v1"
	apiBasePath = "/api/" + apiVersion
	moduleFlows = "flows"
	moduleRules = "rules"
)

// NewRestServe rest服务 接收端点
func NewRestServe(c config.Config, flow *ruleflow.RuleFlow, logger types.Logger) *rest.Rest {
	restEndpoint := rest.New(rest.Config{
		Server:      c.Server,
		CertFile:    c.CertFile,
		CertKeyFile: c.CertKeyFile,
	}, logger)
	restEndpoint.Printf("rest serve initialised.addr=%s", c.Server)
	//添加全局拦截器
	interceptors := []string{processor.ResponseJson}
	if c.AllowCors {
		interceptors = append(interceptors, processor.Cors)
	}
	restEndpoint.AddInterceptors(processor.Builtins.GetAll(interceptors...)...)

	flowController := controller.NewFlow(flow)
	ruleController := controller.NewRule(flow)

	//编译请求体中的规则
	restEndpoint.POST(flowController.Generate(apiBasePath + "/" + moduleFlows))
	//规则池中所有规则的流程图
	restEndpoint.GET(flowController.All(apiBasePath + "/" + moduleFlows))
	//重新计算坐标
	restEndpoint.POST(flowController.Layout(apiBasePath + "/layout"))
	//编译SELECT字段
	restEndpoint.POST(flowController.Fields(apiBasePath + "/fields"))
	//编译WHERE子句
	restEndpoint.POST(flowController.Where(apiBasePath + "/where"))
	//测试WHERE子句
	restEndpoint.POST(flowController.TestWhere(apiBasePath + "/where/test"))
	//流程图转回规则
	restEndpoint.POST(flowController.ToRule(apiBasePath + "/rule"))
	//导出 dsl/dot
	restEndpoint.POST(flowController.Export(apiBasePath + "/export/:format"))

	//获取所有规则
	restEndpoint.GET(ruleController.List(apiBasePath + "/" + moduleRules))
	//获取规则
	restEndpoint.GET(ruleController.Get(apiBasePath + "/" + moduleRules + "/:id"))
	//新增/修改规则
	restEndpoint.POST(ruleController.Save(apiBasePath + "/" + moduleRules + "/:id"))
	//删除规则
	restEndpoint.DELETE(ruleController.Delete(apiBasePath + "/" + moduleRules + "/:id"))
	//编辑规则时的流程图
	restEndpoint.GET(ruleController.Flow(apiBasePath + "/" + moduleRules + "/:id/flow"))
	return restEndpoint
}
