package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"go.codecgarden.dev/qs"
)

func runDecode(cmd *cobra.Command, cfg *DecodeConfig, arg string) error {
	input, err := readArg(cmd, arg)
	if err != nil {
		return err
	}

	decoded, err := qs.Decode(input, cfg.Options()...)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

func runEncode(cmd *cobra.Command, cfg *EncodeConfig, arg string) error {
	input, err := readArg(cmd, arg)
	if err != nil {
		return err
	}

	value, err := parseValue(input)
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	encoded, err := qs.Encode(value, opts...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), encoded)

	return nil
}
