package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vibechart/internal/gateway/config"
	llmclient "vibechart/internal/llm/client"
	llmmw "vibechart/internal/llm/middleware"
	"vibechart/internal/pipeline"
	"vibechart/internal/translate"
)

var (
	tweakConfig     string
	tweakPrompt     string
	tweakShowPrompt bool
	tweakProvider   string
)

var tweakCmd = &cobra.Command{
	Use:   "tweak",
	Short: "Apply one natural-language instruction to a configuration",
	Long: `The tweak command sends one instruction to the configured language model,
merges the reply into the configuration read from --config and prints the
beautified, validated result. A missing --config starts a new chart.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		current, err := readConfig(tweakConfig, true)
		if err != nil {
			return err
		}

		_ = godotenv.Load()
		llmCfg := config.FromEnv("").LLM
		if tweakProvider != "" {
			llmCfg.Provider = tweakProvider
		}
		ctx := cmd.Context()
		client, err := llmclient.New(ctx, llmclient.Config{
			Provider: llmCfg.Provider,
			APIKey:   llmCfg.APIKey,
			Model:    llmCfg.Model,
			BaseURL:  llmCfg.BaseURL,
			Timeout:  llmCfg.Timeout,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		logger := newLogger()
		defer func() { _ = logger.Sync() }()
		client = llmmw.Wrap(client, llmmw.WithLogging(logger), llmmw.WithHooks())
		if tweakShowPrompt {
			ctx = llmmw.WithPromptHook(ctx, promptPrinter{w: cmd.ErrOrStderr()})
		}

		orchestrator := pipeline.New(translate.New(client, logger, translate.Options{
			Temperature:  llmCfg.Temperature,
			MaxTokens:    llmCfg.MaxTokens,
			HistoryTurns: llmCfg.HistoryTurns,
		}), logger)
		res, err := orchestrator.Run(ctx, pipeline.Request{Instruction: tweakPrompt, Current: current})
		if err != nil {
			return err
		}
		if res.Fallback {
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("model reply was not usable JSON; applied the fallback configuration"))
		}
		if res.Repaired {
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("configuration needed the fixed-defaults repair"))
		}
		return printTree(cmd.OutOrStdout(), res.Tree)
	},
}

// promptPrinter writes the exact prompt and reply of each model call.
type promptPrinter struct {
	w io.Writer
}

func (p promptPrinter) Before(_ context.Context, stage string, req llmclient.CompletionRequest) {
	fmt.Fprintf(p.w, "%s\n%s\n\n%s\n%s\n\n",
		color.CyanString("[%s] system", stage), req.System,
		color.CyanString("[%s] user", stage), req.User)
}

func (p promptPrinter) After(_ context.Context, stage string, completion string, err error) {
	if err != nil {
		fmt.Fprintf(p.w, "%s %v\n\n", color.RedString("[%s] error", stage), err)
		return
	}
	fmt.Fprintf(p.w, "%s\n%s\n\n", color.CyanString("[%s] reply", stage), completion)
}

func init() {
	AddCommand(tweakCmd)
	tweakCmd.Flags().StringVarP(&tweakConfig, "config", "c", "", "Configuration file to start from")
	tweakCmd.Flags().StringVarP(&tweakPrompt, "prompt", "p", "", "Instruction to apply")
	tweakCmd.Flags().BoolVar(&tweakShowPrompt, "show-prompt", false, "Print the prompt and model reply to stderr")
	tweakCmd.Flags().StringVar(&tweakProvider, "provider", "", "Override LLM_PROVIDER")
	_ = tweakCmd.MarkFlagRequired("prompt")
}
