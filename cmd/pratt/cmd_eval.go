package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pratt/expr/eval"
	"github.com/dhamidi/pratt/expr/hash"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "eval [expression]",
		Short:         "Evaluate an expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, expr, err := parseArgs(args)
			if err != nil {
				return err
			}
			value, err := eval.Evaluate(expr)
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			fmt.Println(value)
			return nil
		},
	}
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "hash [expression]",
		Short:         "Print the structural hash of an expression",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, expr, err := parseArgs(args)
			if err != nil {
				return err
			}
			fmt.Println(hash.Sum(expr))
			return nil
		},
	}
}
