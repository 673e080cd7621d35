// Copyright 2014 The evmcore Authors
// This file is part of the evmcore library.
//
// The evmcore library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcore library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcore library. If not, see <http://www.gnu.org/licenses/>.

// Command evmcore runs a single piece of EVM bytecode through the
// interpreter and reports its outcome: the final stack, emitted logs, and
// the return/revert blob.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/probeum/evmcore/common"
	"github.com/probeum/evmcore/core/vm/runtime"
	"github.com/probeum/evmcore/log"
)

var (
	codeFlag = cli.StringFlag{
		Name:  "code",
		Usage: "hex-encoded contract bytecode to execute (0x-prefix optional)",
	}
	inputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "hex-encoded calldata",
	}
	valueFlag = cli.StringFlag{
		Name:  "value",
		Usage: "hex-encoded call value",
	}
	senderFlag = cli.StringFlag{
		Name:  "sender",
		Usage: "hex-encoded sender address",
		Value: "0x0000000000000000000000000000000000000001",
	}
	receiverFlag = cli.StringFlag{
		Name:  "receiver",
		Usage: "hex-encoded receiver address, defaults to the sender",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity (0=crit ... 5=trace)",
		Value: 3,
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "evmcore"
	app.Usage = "run a single EVM code path and report the terminal stack, logs, and return blob"
	app.Flags = []cli.Flag{codeFlag, inputFlag, valueFlag, senderFlag, receiverFlag, verbosityFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		color.Red("evmcore: %v", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	log.SetLevel(log.Lvl(ctx.Int(verbosityFlag.Name)))

	code, err := decodeHex(ctx.String(codeFlag.Name))
	if err != nil {
		return fmt.Errorf("--code: %w", err)
	}
	input, err := decodeHex(ctx.String(inputFlag.Name))
	if err != nil {
		return fmt.Errorf("--input: %w", err)
	}
	value, err := decodeHex(ctx.String(valueFlag.Name))
	if err != nil {
		return fmt.Errorf("--value: %w", err)
	}

	sender := common.HexToAddress(ctx.String(senderFlag.Name))
	receiver := sender
	if r := ctx.String(receiverFlag.Name); r != "" {
		receiver = common.HexToAddress(r)
	}

	result := runtime.Execute(code, runtime.TxInput{
		To:       receiver,
		From:     sender,
		Origin:   sender,
		GasPrice: nil,
		Value:    value,
		Calldata: input,
	}, runtime.BlockInput{
		Coinbase: sender,
		GasLimit: 0,
	}, nil)

	printResult(result)
	if !result.Success {
		return cli.NewExitError("execution reverted", 1)
	}
	return nil
}

func printResult(result runtime.Result) {
	if result.Success {
		color.Green("success, return data: 0x%s", hex.EncodeToString(result.Ret))
	} else {
		color.Red("reverted, return data: 0x%s", hex.EncodeToString(result.Ret))
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"depth", "word"})
	for i, w := range result.Stack {
		b32 := w.Bytes32()
		table.Append([]string{fmt.Sprintf("%d", i), "0x" + hex.EncodeToString(b32[:])})
	}
	table.Render()

	if len(result.Logs) > 0 {
		fmt.Println(strings.Repeat("-", 40))
		for _, l := range result.Logs {
			fmt.Printf("log: address=%s topics=%d data=0x%s\n", l.Address.Hex(), len(l.Topics), hex.EncodeToString(l.Data))
		}
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
