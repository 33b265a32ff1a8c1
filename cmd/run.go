package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/profilematch/profile-match/internal/ai"
	"github.com/profilematch/profile-match/internal/ai/gemini"
	"github.com/profilematch/profile-match/internal/documents"
	"github.com/profilematch/profile-match/internal/logger"
	"github.com/profilematch/profile-match/internal/matching"
	"github.com/profilematch/profile-match/internal/report"
	"github.com/profilematch/profile-match/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowJSON   = "Show report as JSON"
	PromptDumpToFile = "Dump report JSON to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Report written. What next?",
	Items: []string{PromptShowJSON, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the profile-match main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not prompt after the report is written")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the profile-match", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, err := matching.NewEngine(*config.Matching)
	if err != nil {
		logger.Fatal("validating matching configuration", zap.Error(err))
	}

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building the extraction provider",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	candidates := loadCandidates(ctx, extractor, config.ProfilesDir, logger)
	teams := loadTeams(ctx, extractor, config.JobDescriptionsDir, logger)

	logger.Info("extraction completed",
		zap.Int("candidates", candidates.Len()),
		zap.Int("teams", teams.Len()),
	)

	if candidates.Len() == 0 || teams.Len() == 0 {
		logger.Info("no data to match", zap.Strings("candidates", candidates.Names()), zap.Strings("teams", teams.Names()))
	}

	rows, err := engine.Assemble(ctx, candidates, teams)
	if err != nil {
		logger.Fatal("assembling the report", zap.Error(err))
	}

	fmt.Println(report.Render(rows, teams.Len()))

	path, err := report.WriteText(config.OutputDir, rows, teams.Len(), time.Now())
	if err != nil {
		logger.Fatal("writing the report file", zap.Error(err))
	}
	logger.Info("report written", zap.String("filename", path))

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, rows, teams.Len(), logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, rows []matching.CandidateReportRow, teams int, logger *zap.Logger) error {
	switch action {
	case PromptShowJSON:
		data, err := report.MarshalJSON(rows, teams)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	case PromptDumpToFile:
		filename, err := report.DumpToTmpFile(rows, teams)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func newExtractor(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Extractor, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.FromFile("gemini api key", cfg.Gemini.APIKeyFile)
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries)
	if err != nil {
		return nil, err
	}

	extractorLogger := log.With(logger.ExtractionFields("gemini", generator.Model())...)

	return gemini.NewExtractor(generator, cfg.Gemini.MaxLogLength, extractorLogger), nil
}

// loadCandidates extracts and normalizes every readable profile document.
// Per-file failures are logged and skipped; they never abort the run.
func loadCandidates(ctx context.Context, extractor ai.Extractor, dir string, log *zap.Logger) *matching.Candidates {
	candidates := &matching.Candidates{}

	listing, err := documents.ListSources(dir)
	if err != nil {
		log.Warn("listing profile documents", zap.String("dir", dir), zap.Error(err))
		return candidates
	}

	logListing(log, "profiles", dir, listing)

	for _, src := range listing.Sources {
		text, err := documents.ExtractText(src)
		if err != nil {
			log.Warn("skipping unreadable profile document", zap.String(logger.FieldSource, src.Path), zap.Error(err))
			continue
		}

		raw, err := extractor.ExtractCandidate(ctx, src.Identity, text)
		if err != nil {
			log.Warn("skipping profile after extraction failure", zap.String(logger.FieldSource, src.Path), zap.Error(err))
			continue
		}

		record, err := matching.NormalizeCandidate(raw, src.Identity)
		if err != nil {
			log.Warn("skipping structurally invalid profile record", zap.String(logger.FieldSource, src.Path), zap.Error(err))
			continue
		}

		candidates.Append(record)
		log.Debug("candidate loaded",
			zap.String(logger.FieldSource, src.Path),
			zap.String("candidate", record.Name),
			zap.Int("skills", len(record.Skills)),
		)
	}

	return candidates
}

// loadTeams extracts and normalizes every readable job-description document.
// A single document may describe several teams; multi-team sources get an
// index suffix so every team keeps a unique, filesystem-derived name.
func loadTeams(ctx context.Context, extractor ai.Extractor, dir string, log *zap.Logger) *matching.Teams {
	teams := &matching.Teams{}

	listing, err := documents.ListSources(dir)
	if err != nil {
		log.Warn("listing job-description documents", zap.String("dir", dir), zap.Error(err))
		return teams
	}

	logListing(log, "job descriptions", dir, listing)

	for _, src := range listing.Sources {
		text, err := documents.ExtractText(src)
		if err != nil {
			log.Warn("skipping unreadable job description", zap.String(logger.FieldSource, src.Path), zap.Error(err))
			continue
		}

		raws, err := extractor.ExtractTeams(ctx, src.Identity, text)
		if err != nil {
			log.Warn("skipping job description after extraction failure", zap.String(logger.FieldSource, src.Path), zap.Error(err))
			continue
		}

		for idx, raw := range raws {
			identity := src.Identity
			if len(raws) > 1 {
				identity = fmt.Sprintf("%s_%d", src.Identity, idx+1)
			}

			record, err := matching.NormalizeTeam(raw, identity)
			if err != nil {
				log.Warn("skipping structurally invalid team record", zap.String(logger.FieldSource, src.Path), zap.Error(err))
				continue
			}

			if displaced := teams.Add(record); displaced != nil {
				log.Warn("duplicate team name, last processed wins",
					zap.String("team", record.Name),
					zap.String(logger.FieldSource, src.Path),
				)
			}

			log.Debug("team loaded",
				zap.String(logger.FieldSource, src.Path),
				zap.String("team", record.Name),
				zap.Int("required_skills", len(record.RequiredSkills)),
			)
		}
	}

	return teams
}

func logListing(log *zap.Logger, kind, dir string, listing *documents.ListResult) {
	log.Info("documents discovered",
		zap.String("kind", kind),
		zap.String("dir", dir),
		zap.Int("found", len(listing.Sources)),
		zap.Int("skipped_unsupported", len(listing.Skipped)),
	)

	if len(listing.Skipped) > 0 {
		log.Debug("unsupported files skipped", zap.Strings("files", listing.Skipped))
	}
}
