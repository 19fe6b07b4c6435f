package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/api"
	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

func analysisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analysis",
		Short: "Work with analysis records",
	}
	cmd.AddCommand(
		analysisListCmd(),
		analysisGetCmd(),
		analysisUploadCmd(),
		analysisBatchCmd(),
		analysisAllCmd(),
		analysisStatsCmd(),
	)
	return cmd
}

func analysisListCmd() *cobra.Command {
	var p api.HistoryParams
	var analysisType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your own analysis history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			p.Type = domain.AnalysisType(analysisType)
			page, err := client.AnalysisHistory(rootCtx, p)
			if err != nil {
				return apiError(err)
			}
			return printJSON(page)
		},
	}

	cmd.Flags().IntVar(&p.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&analysisType, "type", "", "filter by type (Parasite or MNIST)")
	cmd.Flags().StringVar(&p.StartDate, "start", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.EndDate, "end", "", "latest date (YYYY-MM-DD)")
	return cmd
}

func analysisGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one analysis record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			analysis, err := client.AnalysisByID(rootCtx, args[0])
			if err != nil {
				return apiError(err)
			}
			return printJSON(analysis)
		},
	}
}

func analysisUploadCmd() *cobra.Command {
	var (
		analysisType string
		imagePath    string
		resultsPath  string
		up           api.AnalysisUpload
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a locally processed analysis with its image",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			image, err := os.Open(imagePath)
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			defer image.Close()
			up.Filename = filepath.Base(imagePath)
			up.Image = image

			results, err := os.ReadFile(resultsPath)
			if err != nil {
				return fmt.Errorf("reading results file: %w", err)
			}

			var analysis *domain.Analysis
			switch domain.AnalysisType(analysisType) {
			case domain.AnalysisParasite:
				if err := json.Unmarshal(results, &up.ParasiteResults); err != nil {
					return fmt.Errorf("parsing parasite results: %w", err)
				}
				analysis, err = client.UploadParasiteAnalysis(rootCtx, up)
			case domain.AnalysisMNIST:
				if err := json.Unmarshal(results, &up.DigitResults); err != nil {
					return fmt.Errorf("parsing digit results: %w", err)
				}
				analysis, err = client.UploadMNISTAnalysis(rootCtx, up)
			default:
				return fmt.Errorf("unknown analysis type %q", analysisType)
			}
			if err != nil {
				return apiError(err)
			}
			return printJSON(analysis)
		},
	}

	cmd.Flags().StringVar(&analysisType, "type", "", "analysis type (Parasite or MNIST)")
	cmd.Flags().StringVar(&imagePath, "image", "", "path to the analysed image")
	cmd.Flags().StringVar(&resultsPath, "results", "", "path to a JSON file with classifier results")
	cmd.Flags().IntVar(&up.ProcessingTimeMs, "processing-ms", 0, "on-device processing time in milliseconds")
	cmd.Flags().StringVar(&up.Location, "location", "", "where the sample was taken")
	cmd.Flags().StringVar(&up.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&up.ModelName, "model-name", "", "model that produced the results")
	cmd.Flags().StringVar(&up.ModelVersion, "model-version", "", "version of that model")
	cmd.Flags().StringVar(&up.DeviceInfo, "device", "", "device the analysis ran on")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("results")
	return cmd
}

func analysisBatchCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Upload a batch of locally processed analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			raw, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading batch file: %w", err)
			}
			var req domain.BatchUploadRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parsing batch file: %w", err)
			}

			result, err := client.BatchUpload(rootCtx, req)
			if err != nil {
				return apiError(err)
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "JSON file with the batch payload")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func analysisAllCmd() *cobra.Command {
	var (
		p            api.AdminAnalysesParams
		analysisType string
		mobileOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "all",
		Short: "List analyses across all users (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			p.Type = domain.AnalysisType(analysisType)
			if cmd.Flags().Changed("mobile") {
				p.ProcessedOnMobile = &mobileOnly
			}
			page, err := client.AllAnalyses(rootCtx, p)
			if err != nil {
				return apiError(err)
			}
			return printJSON(page)
		},
	}

	cmd.Flags().IntVar(&p.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&analysisType, "type", "", "filter by type (Parasite or MNIST)")
	cmd.Flags().StringVar(&p.UserID, "user", "", "filter by user id")
	cmd.Flags().BoolVar(&mobileOnly, "mobile", false, "filter by on-device processing")
	cmd.Flags().StringVar(&p.StartDate, "start", "", "earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.EndDate, "end", "", "latest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.SortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&p.SortOrder, "sort-order", "", "asc or desc")
	return cmd
}

func analysisStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate analysis statistics (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			stats, err := client.AnalysisStats(rootCtx)
			if err != nil {
				return apiError(err)
			}
			return printJSON(stats)
		},
	}
}
