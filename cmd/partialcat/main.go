// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command partialcat pipes data through scripted partial I/O.
//
//	partialcat cat --read-ops "limited(3),wouldblock" --write-ops "interrupted" file
//	partialcat gen --seed 7 --write > plan.yaml
//	partialcat cat --plan plan.yaml file
//	partialcat shrink --ops "limited(1),interrupted,wouldblock"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"code.hybscloud.com/partial/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "partialcat:", err)
		stop()
		os.Exit(1)
	}
}
