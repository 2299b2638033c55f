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

// ruleflow 命令行：把规则编译成流程图、导出、启动http/websocket服务
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rulego/ruleflow"
	"github.com/rulego/ruleflow/api/types"
	"github.com/rulego/ruleflow/config"
	"github.com/rulego/ruleflow/export"
	"github.com/rulego/ruleflow/internal/router"
	"github.com/rulego/ruleflow/utils/json"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options 全局参数
type options struct {
	configFile string
}

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "ruleflow",
		Short:         "Compile MQTT broker rules into flow graphs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "ini config file")
	root.AddCommand(flowCmd(opts))
	root.AddCommand(fieldsCmd(opts))
	root.AddCommand(whereCmd(opts))
	root.AddCommand(ruleCmd(opts))
	root.AddCommand(exportCmd(opts))
	root.AddCommand(serveCmd(opts))
	return root
}

// newRuleFlow 根据配置创建实例，配置了 rules_dir 时加载规则
func newRuleFlow(opts *options, logger types.Logger) (*ruleflow.RuleFlow, config.Config, error) {
	c, err := config.Load(opts.configFile)
	if err != nil {
		return nil, c, err
	}
	if logger == nil {
		if logger, err = c.NewLogger(); err != nil {
			return nil, c, err
		}
	}
	flowOpts, err := c.Options(logger)
	if err != nil {
		return nil, c, err
	}
	flow := ruleflow.New(flowOpts...)
	if c.RulesDir != "" {
		if err := flow.Load(c.RulesDir); err != nil {
			return nil, c, err
		}
	}
	return flow, c, nil
}

// stderrLogger 命令行输出到标准输出，日志输出到标准错误
func stderrLogger(cmd *cobra.Command) types.Logger {
	return types.LoggerFunc(func(format string, v ...interface{}) {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", v...)
	})
}

// readRuleFiles 读取规则文件，每个文件可以是单个规则或者规则数组
func readRuleFiles(files []string) ([]types.Rule, error) {
	var rules []types.Rule
	for _, file := range files {
		buf, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		items, err := ruleflow.ParseRules(filepath.Ext(file), buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		rules = append(rules, items...)
	}
	return rules, nil
}

func writeJson(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func flowCmd(opts *options) *cobra.Command {
	var editing bool
	cmd := &cobra.Command{
		Use:   "flow [rule files...]",
		Short: "Compile rules into a flow graph",
		Long: `Compile rule files (.json/.yaml/.yml) into one merged flow graph with node positions.
Without files the rules in rules_dir are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, _, err := newRuleFlow(opts, stderrLogger(cmd))
			if err != nil {
				return err
			}
			rules, err := readRuleFiles(args)
			if err != nil {
				return err
			}
			if editing {
				if len(rules) != 1 {
					return errors.New("--edit requires exactly one rule")
				}
				return writeJson(cmd.OutOrStdout(), flow.GenerateForEdit(rules[0]))
			}
			return writeJson(cmd.OutOrStdout(), flow.GenerateAll(rules...))
		},
	}
	cmd.Flags().BoolVar(&editing, "edit", false, "use the editing layout, every column centered")
	return cmd
}

func fieldsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <expression>",
		Short: "Compile a SELECT field list into form items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, _, err := newRuleFlow(opts, stderrLogger(cmd))
			if err != nil {
				return err
			}
			items := flow.FunctionForm(args[0])
			return writeJson(cmd.OutOrStdout(), map[string]interface{}{
				"items":     items,
				"editedWay": flow.FieldsEditedWay(items),
			})
		},
	}
}

func whereCmd(opts *options) *cobra.Command {
	var sample string
	cmd := &cobra.Command{
		Use:   "where <clause>",
		Short: "Compile a WHERE clause into a filter form, or test it against a sample message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, _, err := newRuleFlow(opts, stderrLogger(cmd))
			if err != nil {
				return err
			}
			if sample != "" {
				env := map[string]interface{}{}
				if err := json.Unmarshal([]byte(sample), &env); err != nil {
					return fmt.Errorf("parse sample: %w", err)
				}
				result, err := flow.TestWhere(args[0], env)
				if err != nil {
					return err
				}
				return writeJson(cmd.OutOrStdout(), map[string]bool{"result": result})
			}
			form := flow.WhereForm(args[0])
			return writeJson(cmd.OutOrStdout(), map[string]interface{}{
				"form":      form,
				"editedWay": flow.WhereEditedWay(form),
			})
		},
	}
	cmd.Flags().StringVar(&sample, "test", "", "sample message json, evaluate the clause against it")
	return cmd
}

func ruleCmd(opts *options) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "rule <flow.json>",
		Short: "Convert a flow graph back into a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, _, err := newRuleFlow(opts, stderrLogger(cmd))
			if err != nil {
				return err
			}
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var data types.Flow
			if err := json.Unmarshal(buf, &data); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			rule, err := flow.RuleFromFlow(id, data)
			if err != nil {
				return err
			}
			return writeJson(cmd.OutOrStdout(), rule)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "rule id")
	return cmd
}

func exportCmd(opts *options) *cobra.Command {
	var id, name string
	cmd := &cobra.Command{
		Use:       "export <dsl|dot> [rule files...]",
		Short:     "Export the merged flow graph as a rule chain DSL or a Graphviz DOT graph",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"dsl", "dot"},
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, _, err := newRuleFlow(opts, stderrLogger(cmd))
			if err != nil {
				return err
			}
			rules, err := readRuleFiles(args[1:])
			if err != nil {
				return err
			}
			result := flow.GenerateAll(rules...)
			switch args[0] {
			case "dsl":
				return writeJson(cmd.OutOrStdout(), export.ToRuleChain(id, name, result))
			case "dot":
				dot, err := export.ToDOT(name, result)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), dot)
				return err
			default:
				return fmt.Errorf("unknown export format: %s", args[0])
			}
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "rule chain id, generated when empty")
	cmd.Flags().StringVar(&name, "name", "ruleflow", "rule chain or graph name")
	return cmd
}

func serveCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the http api and the websocket live-edit channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, c, err := newRuleFlow(opts, nil)
			if err != nil {
				return err
			}
			if addr != "" {
				c.Server = addr
			}
			logger := flow.Config().Logger
			logger.Printf("use config file=%s", opts.configFile)

			restEndpoint := router.NewRestServe(c, flow, logger)
			wsEndpoint := router.NewWebsocketServe(c, restEndpoint, flow, logger)
			if err := restEndpoint.Start(); err != nil {
				return err
			}
			if err := wsEndpoint.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Printf("stopped server")
			return restEndpoint.Stop(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server in the config file")
	return cmd
}
