package commands

import (
	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect published on-device model builds",
	}
	cmd.AddCommand(
		modelsListCmd(),
		modelsGetCmd(),
		modelsCheckCmd(),
	)
	return cmd
}

func modelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all published models",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			models, err := client.Models(rootCtx)
			if err != nil {
				return apiError(err)
			}
			return printJSON(models)
		},
	}
}

func modelsGetCmd() *cobra.Command {
	var modelType string

	cmd := &cobra.Command{
		Use:   "get <name> <version>",
		Short: "Show metadata for one model build",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			model, err := client.ModelMetadata(rootCtx, domain.AnalysisType(modelType), args[0], args[1])
			if err != nil {
				return apiError(err)
			}
			return printJSON(model)
		},
	}

	cmd.Flags().StringVar(&modelType, "type", "", "model type (Parasite or MNIST)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func modelsCheckCmd() *cobra.Command {
	var modelType string

	cmd := &cobra.Command{
		Use:   "check <name> <version>",
		Short: "Check whether a newer model build is available",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			check, err := client.CheckModelUpdate(rootCtx, domain.AnalysisType(modelType), args[0], args[1])
			if err != nil {
				return apiError(err)
			}
			return printJSON(check)
		},
	}

	cmd.Flags().StringVar(&modelType, "type", "", "model type (Parasite or MNIST)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
