package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"baggage-manager/core/config"
	"baggage-manager/core/database"
	"baggage-manager/core/logger"
	"baggage-manager/core/matching"
	"baggage-manager/feature/baggage"
	"baggage-manager/feature/manifest"
	mmodels "baggage-manager/feature/manifest/models"
	"baggage-manager/feature/manifest/parsers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reconcileFile   string
	reconcileDryRun bool
	reconcileYes    bool
	reconcileUser   string
)

// reconcileCmd runs a reconciliation from a manifest file on disk, without
// going through the HTTP surface. Useful when the station network is down
// and the manifest arrived by mail or USB stick.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a manifest file from disk",
	Long: `Parses a manifest file from disk and reconciles it against the scanned
baggage population of the configured airport. With --dry-run the match plan
is printed and nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		raw, err := os.ReadFile(reconcileFile)
		if err != nil {
			return fmt.Errorf("failed to read manifest file: %w", err)
		}
		file := mmodels.FileInfo{
			Name: filepath.Base(reconcileFile),
			Size: int64(len(raw)),
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		store := baggage.NewStore(db)
		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}

		ctx := cmd.Context()
		opts := matching.DefaultOptions()

		if reconcileDryRun {
			parsed, err := parsers.Parse(file, string(raw), cfg.Server.DefaultFamily)
			if err != nil {
				return err
			}
			if validation := parsers.Validate(parsed); !validation.Valid {
				return fmt.Errorf("manifest failed validation: %s", strings.Join(validation.Errors, "; "))
			}

			bags, err := store.GetUnreconciled(ctx, cfg.Server.Airport)
			if err != nil {
				return err
			}

			bagRecords := make([]matching.BagRecord, 0, len(bags))
			tagByID := make(map[uint]string, len(bags))
			for _, b := range bags {
				bagRecords = append(bagRecords, matching.BagRecord{
					ID: b.ID, Tag: b.TagValue, PassengerName: b.PassengerName, PNR: b.BookingRef,
				})
				tagByID[b.ID] = b.TagValue
			}
			itemRecords := make([]matching.ItemRecord, 0, len(parsed.Items))
			for i, it := range parsed.Items {
				itemRecords = append(itemRecords, matching.ItemRecord{
					ID: uint(i + 1), BagID: it.BagID, PassengerName: it.PassengerName, PNR: it.PNR,
				})
			}

			result := matching.Reconcile(bagRecords, itemRecords, opts)
			summary := matching.Summarize(result)

			fmt.Printf("Flight %s (%s), %d manifest items, %d scanned bags\n",
				parsed.FlightNumber, parsed.Family, len(itemRecords), len(bagRecords))
			for _, m := range result.Matches {
				item := parsed.Items[m.ItemID-1]
				fmt.Printf("  MATCH %3d%%  %s -> %s (%s)\n", m.Score, tagByID[m.BaggageID], item.BagID, item.PassengerName)
			}
			fmt.Printf("Plan: %d matched, %d bags unmatched, %d items unmatched, rate %d%%\n",
				result.MatchedCount, result.UnmatchedScanned, result.UnmatchedReport, summary.Rate)
			fmt.Println("Dry run: nothing was written.")
			return nil
		}

		if !reconcileYes && !confirm(fmt.Sprintf("Reconcile %s against airport %s?", file.Name, cfg.Server.Airport)) {
			fmt.Println("Aborted.")
			return nil
		}

		svc := manifest.NewService(store, nil, "", logg, cfg.Server.Airport, cfg.Server.DefaultFamily)
		upload, run, err := svc.UploadAndReconcile(ctx, file, string(raw), reconcileUser, opts)
		if err != nil {
			return err
		}
		if !upload.Validation.Valid {
			return fmt.Errorf("manifest failed validation: %s", strings.Join(upload.Validation.Errors, "; "))
		}

		logg.Info("Offline reconciliation completed",
			zap.Uint("report_id", upload.Report.ID),
			zap.Int("matched", run.Result.MatchedCount),
			zap.Int("unmatched_scanned", run.Result.UnmatchedScanned),
			zap.Int("unmatched_report", run.Result.UnmatchedReport),
			zap.Int("rate", run.Summary.Rate),
		)
		return nil
	},
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	reconcileCmd.Flags().StringVarP(&reconcileFile, "file", "f", "", "manifest file to reconcile (required)")
	reconcileCmd.Flags().BoolVar(&reconcileDryRun, "dry-run", false, "print the match plan without writing")
	reconcileCmd.Flags().BoolVarP(&reconcileYes, "yes", "y", false, "skip the confirmation prompt")
	reconcileCmd.Flags().StringVar(&reconcileUser, "user", "cli", "user recorded on the reconciliation")
	_ = reconcileCmd.MarkFlagRequired("file")

	RootCmd.AddCommand(reconcileCmd)
}
