package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/analyzer/gemini"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/matcher"
	"github.com/spigell/resume-matcher/internal/secrets"
	"github.com/spigell/resume-matcher/internal/session"
)

const (
	PromptSuggestions = "Show suggestions"
	PromptSearchURL   = "Show job search link"
	PromptDump        = "Dump analysis to file"
	PromptAnother     = "Analyze another resume"
	PromptExit        = "Exit"
)

const geminiKeyEnv = "RESUME_MATCHER_GEMINI_API_KEY"

var (
	errExit       = errors.New("exit requested")
	errNoAnalysis = errors.New("no analysis loaded, analyze another resume first")
)

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSuggestions, PromptSearchURL, PromptDump, PromptAnother, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume and print the normalized result with a job search link",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceP("payload", "p", nil, "read analysis payloads from files instead of calling the analyzer (- for stdin); may be repeated")
	analyzeCmd.Flags().StringP("resume", "r", "", "resume file to send to the analyzer")
	analyzeCmd.Flags().String("job-description", "", "job description file to match the resume against")
	analyzeCmd.Flags().StringP("provider", "P", "", "analyzer provider: service or gemini")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "ask what to do after the analysis")

	viper.BindPFlag("analyzer.provider", analyzeCmd.Flags().Lookup("provider"))
}

// source tells where raw payloads come from during one command run.
type source struct {
	provider       analyzer.Provider
	fromPayload    bool
	jobDescription string
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	payloadPaths, _ := cmd.Flags().GetStringSlice("payload")
	resumePath, _ := cmd.Flags().GetString("resume")
	jdPath, _ := cmd.Flags().GetString("job-description")

	if len(payloadPaths) == 0 && resumePath == "" {
		logger.Fatal("either --payload or --resume is required")
	}

	src := &source{fromPayload: len(payloadPaths) > 0, jobDescription: jdPath}
	if !src.fromPayload {
		src.provider, err = newProvider(ctx, config.Analyzer, logger)
		if err != nil {
			logger.Fatal("creating analyzer provider", zap.Error(err))
		}
	}

	pipeline := matcher.New(config.AnalysisOptions(), config.SearchOptions(), logger)
	store := &session.Store[matcher.Report]{}

	var reports []*matcher.Report
	if len(payloadPaths) > 1 {
		reports, err = runBatch(ctx, pipeline, payloadPaths)
	} else {
		input := resumePath
		if src.fromPayload {
			input = payloadPaths[0]
		}

		var report *matcher.Report
		report, err = runOnce(ctx, src, pipeline, input, logger)
		reports = []*matcher.Report{report}
	}
	if err != nil {
		logger.Fatal("analyzing resume", zap.Error(err))
	}

	for _, report := range reports {
		if err := printReport(os.Stdout, report); err != nil {
			logger.Fatal("printing report", zap.Error(err))
		}
	}
	// The interactive menu works on the last analyzed resume.
	store.Set(*reports[len(reports)-1])

	interactive, _ := cmd.Flags().GetBool("interactive")
	if !interactive {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, src, pipeline, store, os.Stdout, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			if errors.Is(err, errNoAnalysis) {
				logger.Warn(err.Error())
				continue
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, src *source, pipeline *matcher.Pipeline, store *session.Store[matcher.Report], out io.Writer, logger *zap.Logger) error {
	current, ok := store.Current()

	switch action {
	case PromptSuggestions:
		if !ok {
			return errNoAnalysis
		}
		if len(current.Result.Suggestions) == 0 {
			logger.Info("no suggestions for this resume")
			return nil
		}
		for i, s := range current.Result.Suggestions {
			fmt.Fprintf(out, "%d. [%s/%s] %s\n", i+1, s.Severity, s.Kind, s.Text)
		}
		return nil
	case PromptSearchURL:
		if !ok {
			return errNoAnalysis
		}
		fmt.Fprintln(out, current.SearchURL)
		return nil
	case PromptDump:
		if !ok {
			return errNoAnalysis
		}
		filename, err := current.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump analysis to file: %w", err)
		}
		logger.Info("dumping analysis to file", zap.String("report_id", current.ID), zap.String("filename", filename))
		return nil
	case PromptAnother:
		store.Clear()

		label := "Resume path"
		if src.fromPayload {
			label = "Payload path"
		}
		path, err := (&promptui.Prompt{Label: label}).Run()
		if err != nil {
			return err
		}

		report, err := runOnce(ctx, src, pipeline, strings.TrimSpace(path), logger)
		if err != nil {
			// A bad upload leaves the session empty instead of stopping the loop.
			logger.Error("analyzing resume", zap.Error(err))
			return nil
		}
		store.Set(*report)
		return printReport(out, report)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func runOnce(ctx context.Context, src *source, pipeline *matcher.Pipeline, input string, logger *zap.Logger) (*matcher.Report, error) {
	var (
		payload []byte
		err     error
	)

	if src.fromPayload {
		payload, err = readPayload(input)
	} else {
		payload, err = fetchPayload(ctx, src, input, logger)
	}
	if err != nil {
		return nil, err
	}

	return pipeline.Run(payload)
}

func runBatch(ctx context.Context, pipeline *matcher.Pipeline, paths []string) ([]*matcher.Report, error) {
	payloads := make([][]byte, 0, len(paths))
	for _, path := range paths {
		payload, err := readPayload(path)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, payload)
	}

	return pipeline.RunAll(ctx, payloads, runtime.NumCPU())
}

func fetchPayload(ctx context.Context, src *source, resumePath string, log *zap.Logger) ([]byte, error) {
	doc, err := analyzer.LoadDocument(resumePath, src.jobDescription)
	if err != nil {
		return nil, err
	}

	logger.WithProvider(log, src.provider.Name()).Info("sending resume to analyzer",
		zap.String("file", doc.Name),
		zap.Bool("with_job_description", doc.JobDescription != ""),
	)

	payload, err := src.provider.Analyze(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s analyzer: %w", src.provider.Name(), err)
	}

	return payload, nil
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return data, nil
}

func printReport(w io.Writer, report *matcher.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func newProvider(ctx context.Context, cfg *AnalyzerConfig, log *zap.Logger) (analyzer.Provider, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", "service":
		return analyzer.NewService(logger.WithProvider(log, "service"), cfg.URL, cfg.Timeout), nil
	case "gemini":
		// The key may come from the environment alone, leaving the section unset.
		geminiCfg := cfg.Gemini
		if geminiCfg == nil {
			geminiCfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: geminiCfg.APIKey,
			Env:   geminiKeyEnv,
			File:  geminiCfg.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set analyzer.gemini.api-key-file, analyzer.gemini.api-key, RESUME_MATCHER_GEMINI_API_KEY_FILE or %s)", err, geminiKeyEnv)
		}

		generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
		if err != nil {
			return nil, err
		}

		genLogger := logger.WithProvider(log, "gemini").With(zap.String("model", generator.Model()))
		return gemini.NewProvider(generator, genLogger, geminiCfg.MaxLogLength), nil
	default:
		return nil, fmt.Errorf("unsupported analyzer provider: %s", cfg.Provider)
	}
}
