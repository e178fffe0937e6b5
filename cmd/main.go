// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"k8s.io/klog/v2"

	"github.com/textforge/hyperlinks/cmd/app"
)

func main() {
	defer klog.Flush()
	command := app.NewCommand(context.Background())
	if err := command.Execute(); err != nil {
		klog.Errorf("%v", err)
		os.Exit(1)
	}
}
