/*
 * Copyright 2025 Carver Automation Corporation.
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

// Package cli implements the qdevctl subcommands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/carverauto/quantumdir/pkg/api"
	"github.com/carverauto/quantumdir/pkg/config"
	"github.com/carverauto/quantumdir/pkg/directory"
	"github.com/carverauto/quantumdir/pkg/logger"
	"github.com/carverauto/quantumdir/pkg/provider"
)

var errUsage = errors.New("usage: qdevctl <list|describe|export> [flags]")

// Run dispatches a qdevctl invocation. Output is written to out;
// warnings and diagnostics to errOut.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		return runList(ctx, args[1:], out, errOut)
	case "describe":
		return runDescribe(ctx, args[1:], out, errOut)
	case "export":
		return runExport(ctx, args[1:], out, errOut)
	default:
		return fmt.Errorf("%w (got %q)", errUsage, args[0])
	}
}

// buildDirectory loads the shared service config and wires a directory
// over the real provider client.
func buildDirectory(ctx context.Context, configPath string) (*directory.Directory, error) {
	// Keep CLI output clean: structured logs go to stderr, warnings only.
	log, err := logger.New(&logger.Config{Level: "warn", Output: "stderr"}, "qdevctl")
	if err != nil {
		return nil, err
	}

	var cfg api.ServerConfig

	// The CLI reuses the daemon's config file but only needs the
	// provider and directory sections.
	loader := config.NewConfig(log)
	if err := loader.LoadAndValidate(ctx, configPath, &cfg); err != nil {
		return nil, err
	}

	client, err := provider.NewClient(cfg.Provider, log)
	if err != nil {
		return nil, err
	}

	return directory.New(cfg.Directory, client, log)
}

func runList(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	configPath := fs.String("config", "/etc/quantumdir/quantumdir.json", "Path to config file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing list flags: %w", err)
	}

	dir, err := buildDirectory(ctx, *configPath)
	if err != nil {
		return err
	}

	devices, warnings, err := dir.ListDevices(ctx)
	if err != nil {
		return err
	}

	printWarnings(errOut, warnings)

	if len(devices) == 0 {
		fmt.Fprintln(out, "No devices found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d device(s):\n\n", len(devices))

	for i, d := range devices {
		fmt.Fprintf(out, "%d. %s\n", i+1, d.DeviceName)
		fmt.Fprintf(out, "   ARN:      %s\n", d.DeviceARN)
		fmt.Fprintf(out, "   Type:     %s\n", d.DeviceType)
		fmt.Fprintf(out, "   Status:   %s\n", d.DeviceStatus)
		fmt.Fprintf(out, "   Provider: %s\n", d.ProviderName)
		fmt.Fprintf(out, "   Region:   %s\n\n", d.Region)
	}

	return nil
}

func runDescribe(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	configPath := fs.String("config", "/etc/quantumdir/quantumdir.json", "Path to config file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing describe flags: %w", err)
	}

	if fs.NArg() != 1 {
		return errors.New("describe requires exactly one device ARN argument")
	}

	arn := fs.Arg(0)

	dir, err := buildDirectory(ctx, *configPath)
	if err != nil {
		return err
	}

	detail, warnings, err := dir.Describe(ctx, arn)
	if err != nil {
		return err
	}

	printWarnings(errOut, warnings)

	fmt.Fprintf(out, "Name:     %s\n", detail.DeviceName)
	fmt.Fprintf(out, "ARN:      %s\n", detail.DeviceARN)
	fmt.Fprintf(out, "Type:     %s\n", detail.DeviceType)
	fmt.Fprintf(out, "Status:   %s\n", detail.DeviceStatus)
	fmt.Fprintf(out, "Provider: %s\n", detail.ProviderName)

	if detail.QueueDepth != nil {
		fmt.Fprintln(out, "Queue depth:")
		fmt.Fprintf(out, "  Normal:   %d\n", detail.QueueDepth.Normal)
		fmt.Fprintf(out, "  Priority: %d\n", detail.QueueDepth.Priority)
		fmt.Fprintf(out, "  Jobs:     %d\n", detail.QueueDepth.Jobs)
	}

	if len(detail.Capabilities) > 0 {
		var pretty []byte

		pretty, err = json.MarshalIndent(json.RawMessage(detail.Capabilities), "", "  ")
		if err == nil {
			fmt.Fprintln(out, "Capabilities:")
			fmt.Fprintln(out, string(pretty))
		}
	}

	return nil
}

func runExport(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "/etc/quantumdir/quantumdir.json", "Path to config file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing export flags: %w", err)
	}

	dir, err := buildDirectory(ctx, *configPath)
	if err != nil {
		return err
	}

	exports, warnings, err := dir.ExportStatic(ctx)
	if err != nil {
		return err
	}

	printWarnings(errOut, warnings)

	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(data))
	fmt.Fprintf(errOut, "Exported %d device(s)\n", len(exports))

	return nil
}

func printWarnings(errOut io.Writer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}
}
