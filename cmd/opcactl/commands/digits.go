package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

func digitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digits",
		Short: "Browse and edit the digit reference catalogue",
	}
	cmd.AddCommand(
		digitsListCmd(),
		digitsGetCmd(),
		digitsCreateCmd(),
		digitsUpdateCmd(),
	)
	return cmd
}

func digitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all digit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			digits, err := client.Digits(rootCtx)
			if err != nil {
				return apiError(err)
			}
			return printJSON(digits)
		},
	}
}

func digitsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <value>",
		Short: "Show one digit entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("digit value must be a number: %w", err)
			}
			digit, err := client.DigitByValue(rootCtx, value)
			if err != nil {
				return apiError(err)
			}
			return printJSON(digit)
		},
	}
}

func digitsCreateCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a digit entry from a JSON file (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			digit, err := readDigitFile(filePath)
			if err != nil {
				return err
			}
			created, err := client.CreateDigit(rootCtx, *digit)
			if err != nil {
				return apiError(err)
			}
			return printJSON(created)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON file with the digit entry")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func digitsUpdateCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "update <value>",
		Short: "Update a digit entry from a JSON file (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			value, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("digit value must be a number: %w", err)
			}
			digit, err := readDigitFile(filePath)
			if err != nil {
				return err
			}
			updated, err := client.UpdateDigit(rootCtx, value, *digit)
			if err != nil {
				return apiError(err)
			}
			return printJSON(updated)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON file with the digit entry")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readDigitFile(path string) (*domain.Digit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading digit file: %w", err)
	}
	var digit domain.Digit
	if err := json.Unmarshal(raw, &digit); err != nil {
		return nil, fmt.Errorf("parsing digit file: %w", err)
	}
	return &digit, nil
}
