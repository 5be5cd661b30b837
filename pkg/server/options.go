/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package server

import (
	"flag"
	"fmt"

	"k8s.io/klog/v2"
)

type Options struct {
	Config string
}

// InitFlags registers the klog flags next to the server's own and parses the
// command line. The config path is mandatory.
func (opt *Options) InitFlags() error {
	if opt == nil {
		return fmt.Errorf("the options is not initialized")
	}
	klog.InitFlags(flag.CommandLine)
	flag.StringVar(&opt.Config, "config", "", "Path to the artifact-manager config.yaml")
	flag.Parse()
	if opt.Config == "" {
		return fmt.Errorf("-config is not found")
	}
	return nil
}
