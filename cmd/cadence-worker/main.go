// The MIT License
//
// Copyright (c) 2020 Temporal Technologies Inc.  All rights reserved.
//
// Copyright (c) 2020 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Command cadence-worker starts a worker.Worker against a configured domain
// and task list. It does not load any user workflow/activity code — type
// registration and dispatch are a separate, opaque subsystem (see
// worker.Worker.RegisterWorkflow/RegisterActivity) that a real binary would
// wire in before calling Start.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/meiliang86/cadence-client/internal/rpc"
	"github.com/meiliang86/cadence-client/internal/worker"
	workerfacade "github.com/meiliang86/cadence-client/worker"
)

func main() {
	app := buildCLI()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCLI() *cli.App {
	app := cli.NewApp()
	app.Name = "cadence-worker"
	app.Usage = "run a workflow/activity worker against a Cadence domain and task list"

	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "domain", Required: true, Usage: "domain to poll"},
		&cli.StringFlag{Name: "task-list", Required: true, Usage: "task list to poll"},
		&cli.StringFlag{Name: "identity", Usage: "worker identity reported on every RPC"},
		&cli.IntFlag{Name: "workflow-poller-count", Value: 2, Usage: "decision task poller goroutine count"},
		&cli.IntFlag{Name: "activity-poller-count", Value: 2, Usage: "activity task poller goroutine count"},
		&cli.Int64Flag{Name: "max-concurrent-activity", Value: 1000, Usage: "bound on concurrently executing activities"},
		&cli.Int64Flag{Name: "max-concurrent-workflow", Value: 1000, Usage: "bound on concurrently executing decision tasks"},
		&cli.BoolFlag{Name: "disable-workflow-worker", Usage: "do not poll for decision tasks"},
		&cli.BoolFlag{Name: "disable-activity-worker", Usage: "do not poll for activity tasks"},
	}

	app.Action = func(c *cli.Context) error {
		return runHandler(c)
	}
	return app
}

func runHandler(c *cli.Context) error {
	identity := c.String("identity")
	if identity == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("resolving default identity: %w", err)
		}
		identity = fmt.Sprintf("%d@%s", os.Getpid(), hostname)
	}

	opts := []workerfacade.Option{
		workerfacade.WithIdentity(identity),
		workerfacade.WithMaxConcurrentActivityExecutionSize(c.Int64("max-concurrent-activity")),
		workerfacade.WithMaxConcurrentWorkflowExecutionSize(c.Int64("max-concurrent-workflow")),
		workerfacade.WithWorkflowPollerOptions(worker.PollerOptions{PollThreadCount: c.Int("workflow-poller-count")}),
		workerfacade.WithActivityPollerOptions(worker.PollerOptions{PollThreadCount: c.Int("activity-poller-count")}),
	}
	if c.Bool("disable-workflow-worker") {
		opts = append(opts, workerfacade.WithDisableWorkflowWorker())
	}
	if c.Bool("disable-activity-worker") {
		opts = append(opts, workerfacade.WithDisableActivityWorker())
	}

	service, err := newServiceClient(c)
	if err != nil {
		return err
	}

	w := workerfacade.New(service, c.String("domain"), c.String("task-list"), opts...)

	// A real deployment registers the decision/activity dispatchers backing
	// the user's workflow and activity code here, e.g.:
	//   w.RegisterWorkflow(myDecisionDispatcher)
	//   w.RegisterActivity(myActivityDispatcher)
	// Loading that user code is out of scope for this binary.

	w.Start()
	defer w.Stop(30 * time.Second)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	return nil
}

// newServiceClient is the integration point a real deployment fills in: the
// gRPC stub's wire encoding (dialing, proto marshaling against the Cadence
// frontend service) is outside this module's scope, so this binary cannot
// construct one on its own. Embedders link in their own rpc.ServiceClient
// implementation here.
func newServiceClient(c *cli.Context) (rpc.ServiceClient, error) {
	return nil, fmt.Errorf("cadence-worker: no rpc.ServiceClient wired; embed this command and supply one before calling Start")
}
