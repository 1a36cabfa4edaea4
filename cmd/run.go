package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spigell/skill-matrix/internal/ai"
	"github.com/spigell/skill-matrix/internal/ai/gemini"
	"github.com/spigell/skill-matrix/internal/filtering"
	"github.com/spigell/skill-matrix/internal/keywords"
	"github.com/spigell/skill-matrix/internal/logger"
	"github.com/spigell/skill-matrix/internal/parsing"
	"github.com/spigell/skill-matrix/internal/pdftext"
	"github.com/spigell/skill-matrix/internal/report"
	"github.com/spigell/skill-matrix/internal/resume"
	"github.com/spigell/skill-matrix/internal/secrets"
	"github.com/spigell/skill-matrix/internal/skills"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptWriteReports        = "Write reports"
	PromptReportBySkills      = "Report by skills"
	PromptCandidatesToFile    = "Dump candidates to file"
	PromptAppendToExcludeFile = "Append all resumes to exclude file"
	PromptExit                = "Exit"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

var errExit = errors.New("exit requested")

var runCmd = &cobra.Command{
	Use:   "run [folder]",
	Short: "Parse the resumes of a folder and build the skill reports",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "write reports without asking")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with resumes to exclude. Default is unset.")
	runCmd.Flags().StringP("output-dir", "o", "", "folder for the generated reports (default is current directory)")
	runCmd.Flags().IntP("top", "k", 0, "number of skills in the chart and the distribution (default 20)")
	runCmd.Flags().IntP("concurrency", "c", 0, "number of resumes parsed at once (default 4)")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("output.dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("output.top", runCmd.Flags().Lookup("top"))
	viper.BindPFlag("concurrency", runCmd.Flags().Lookup("concurrency"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		config = &Config{}
	}

	logger.Info("starting the skill-matrix", zap.String("version", version))

	logger.Debug(fmt.Sprintf("starting with config: \n %s", configDump(config)))

	inputDir, err := resolveInputDir(args, config)
	if err != nil {
		logger.Fatal("getting the resume folder", zap.Error(err))
	}

	docs, err := resume.Scan(inputDir)
	if err != nil {
		logger.Fatal("scanning the resume folder", zap.Error(err))
	}

	logger.Info("getting resumes", zap.String("folder", docs.Dir), zap.Int("count", docs.Len()))

	docs, err = filtering.New(filterConfig(config), logger).Run(ctx, docs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if docs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes left after filters"))
		return
	}

	detector, err := newDetector(config.Skills)
	if err != nil {
		logger.Fatal("loading skill keywords", zap.Error(err))
	}

	recognizer, err := newRecognizer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("falling back to heading name detection", zap.Error(err))
		recognizer = ai.NewHeadingRecognizer()
	}

	parser := &parsing.Parser{
		Extractor:  pdftext.NewReader(),
		Recognizer: recognizer,
		Detector:   detector,
		Logger:     logger,
	}

	candidates, failures, err := parser.ParseAll(ctx, docs, config.Concurrency)
	if err != nil {
		logger.Fatal("parsing resumes", zap.Error(err))
	}
	if len(failures) > 0 {
		logger.Warn("some resumes were skipped", zap.Int("count", len(failures)))
	}

	candidates.SortByID()

	aggregated, err := skills.Aggregate(candidates.Items)
	if err != nil {
		logger.Fatal("building the skill matrix", zap.Error(err))
	}

	detections, _ := aggregated.Matrix.RowTotal(skills.Total)
	logger.Info("skill matrix built",
		zap.Int("candidates", candidates.Len()),
		zap.Int("skills", len(aggregated.Vocabulary)),
		zap.Int("detections", detections),
	)

	writer := &report.Writer{
		Dir:    outputDir(config),
		TopK:   outputTop(config),
		Logger: logger,
		Out:    os.Stdout,
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove {
		if _, err := writer.Write(candidates.Items, aggregated); err != nil {
			logger.Fatal("writing reports", zap.Error(err))
		}
		return
	}

	for {
		items := []string{PromptWriteReports, PromptReportBySkills, PromptCandidatesToFile}
		if config.ExcludeFile != "" && docs.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}

		prompt := promptui.Select{
			Label: "Proceed?",
			Items: append(items, PromptExit),
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, docs, candidates, aggregated, writer); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, docs *resume.Documents, candidates *resume.Candidates, aggregated *skills.Report, writer *report.Writer) error {
	switch action {
	case PromptWriteReports:
		if _, err := writer.Write(candidates.Items, aggregated); err != nil {
			return fmt.Errorf("writing reports: %w", err)
		}
		return errExit
	case PromptReportBySkills:
		pretty, _ := json.MarshalIndent(candidates.ReportBySkill(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", candidates.Len()))
		return nil
	case PromptCandidatesToFile:
		filename, err := candidates.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(config.ExcludeFile, docs, logger)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(path string, docs *resume.Documents, logger *zap.Logger) error {
	excluded, err := resume.LoadExcluded(path)
	if err != nil {
		return err
	}

	excluded.Append(docs.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", len(excluded.Items)))
	return nil
}

// configDump renders the config for debug output. Inline secrets are not
// serialized.
func configDump(config *Config) string {
	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	return string(pretty)
}

// resolveInputDir takes the folder from the arguments, then from the config,
// and asks for it as a last resort.
func resolveInputDir(args []string, config *Config) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}

	if dir := strings.TrimSpace(config.InputDir); dir != "" {
		return dir, nil
	}

	prompt := promptui.Prompt{
		Label:    "Folder with PDF resumes",
		Validate: validateDir,
	}

	dir, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(dir), nil
}

func validateDir(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("folder is required")
	}

	info, err := os.Stat(input)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a folder", input)
	}
	return nil
}

func filterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{ExcludeFile: config.ExcludeFile}
	if config.Skills != nil {
		cfg.Extensions = config.Skills.Extensions
	}
	return cfg
}

func outputDir(config *Config) string {
	if config.Output == nil || strings.TrimSpace(config.Output.Dir) == "" {
		return "."
	}
	return config.Output.Dir
}

func outputTop(config *Config) int {
	if config.Output == nil || config.Output.Top <= 0 {
		return skills.DefaultTopK
	}
	return config.Output.Top
}

func newDetector(config *SkillsConfig) (*keywords.Detector, error) {
	if config == nil {
		return keywords.NewDetector(keywords.DefaultRules()), nil
	}

	rules, err := keywords.DecodeRules(config.Keywords)
	if err != nil {
		return nil, fmt.Errorf("skills.keywords: %w", err)
	}
	if len(rules) == 0 {
		rules = keywords.DefaultRules()
	}

	extra, err := keywords.DecodeRules(config.ExtraKeywords)
	if err != nil {
		return nil, fmt.Errorf("skills.extra-keywords: %w", err)
	}

	return keywords.NewDetector(append(rules, extra...)), nil
}

// newRecognizer returns the heading recognizer unless Gemini is enabled, in
// which case Gemini is asked first.
func newRecognizer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Recognizer, error) {
	heading := ai.NewHeadingRecognizer()
	if cfg == nil || !cfg.Enabled {
		return heading, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	geminiCfg := cfg.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		Env:   geminiAPIKeyEnv,
		File:  geminiCfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, SKILL_MATRIX_GEMINI_API_KEY_FILE or %s)", err, geminiAPIKeyEnv)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, geminiCfg.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithAIFields(log, "gemini", generator.Model())
	recognizer := gemini.NewRecognizer(generator, aiLogger, geminiCfg.MaxLogLength)

	return ai.WithFallback(recognizer, heading, aiLogger), nil
}
