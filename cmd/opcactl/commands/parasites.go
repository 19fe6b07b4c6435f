package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

func parasitesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parasites",
		Short: "Browse and edit the parasite reference catalogue",
	}
	cmd.AddCommand(
		parasitesListCmd(),
		parasitesGetCmd(),
		parasitesCreateCmd(),
		parasitesUpdateCmd(),
	)
	return cmd
}

func parasitesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all parasite entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			parasites, err := client.Parasites(rootCtx)
			if err != nil {
				return apiError(err)
			}
			return printJSON(parasites)
		},
	}
}

func parasitesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <type>",
		Short: "Show one parasite entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			parasite, err := client.ParasiteByType(rootCtx, args[0])
			if err != nil {
				return apiError(err)
			}
			return printJSON(parasite)
		},
	}
}

func parasitesCreateCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a parasite entry from a JSON file (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			parasite, err := readParasiteFile(filePath)
			if err != nil {
				return err
			}
			created, err := client.CreateParasite(rootCtx, *parasite)
			if err != nil {
				return apiError(err)
			}
			return printJSON(created)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON file with the parasite entry")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func parasitesUpdateCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "update <type>",
		Short: "Update a parasite entry from a JSON file (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			parasite, err := readParasiteFile(filePath)
			if err != nil {
				return err
			}
			updated, err := client.UpdateParasite(rootCtx, args[0], *parasite)
			if err != nil {
				return apiError(err)
			}
			return printJSON(updated)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON file with the parasite entry")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readParasiteFile(path string) (*domain.Parasite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parasite file: %w", err)
	}
	var parasite domain.Parasite
	if err := json.Unmarshal(raw, &parasite); err != nil {
		return nil, fmt.Errorf("parsing parasite file: %w", err)
	}
	return &parasite, nil
}
