package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/lmt/internal/config"
	"github.com/newthinker/lmt/internal/llm/factory"
	"github.com/newthinker/lmt/internal/logger"
	"github.com/newthinker/lmt/internal/prompt"
	"github.com/newthinker/lmt/internal/render"
	"github.com/newthinker/lmt/internal/template"
	"github.com/newthinker/lmt/internal/tokens"
)

var (
	flagSystem      string
	flagModel       string
	flagTemplate    string
	flagEmoji       bool
	flagTokens      bool
	flagTemperature float64
	flagNoStream    bool
	flagRaw         bool
)

func init() {
	rootCmd.Flags().StringVarP(&flagSystem, "system", "s", "", "system prompt for the request")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "model name or alias (see `lmt models`)")
	rootCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "template to use for the request")
	rootCmd.Flags().BoolVar(&flagEmoji, "emoji", false, "ask the model for emotions and emojis")
	rootCmd.Flags().BoolVar(&flagTokens, "tokens", false, "count prompt tokens and estimate the cost, skipping the request")
	rootCmd.Flags().Float64Var(&flagTemperature, "temperature", 1, "sampling temperature, 0 to 2")
	rootCmd.Flags().BoolVar(&flagNoStream, "no-stream", false, "wait for the full response instead of streaming")
	rootCmd.Flags().BoolVarP(&flagRaw, "raw", "r", false, "disable colors and formatting")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()
	log.Debug("prompt invocation", zap.String("request_id", uuid.NewString()))

	dir, err := config.Dir(cfgDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	stdin, err := readStdin(cmd)
	if err != nil {
		return err
	}

	var tpl *template.Template
	if flagTemplate != "" {
		tplDir, err := config.TemplatesDir(dir)
		if err != nil {
			return err
		}
		tpl, err = template.NewStore(tplDir).Get(flagTemplate)
		if err != nil {
			return err
		}
	}

	// With no prompt on the command line or a pipe, read one
	// interactively from the terminal.
	positional := strings.TrimSpace(strings.Join(args, " "))
	if positional == "" && stdin == "" && (tpl == nil || tpl.User == "") {
		stdin, err = readInteractive(cmd)
		if err != nil {
			return err
		}
	}

	req, model, err := prompt.Build(prompt.Options{
		Positional:  positional,
		Stdin:       stdin,
		System:      flagSystem,
		Model:       flagModel,
		Temperature: flagTemperature,
		Emoji:       flagEmoji,
		Template:    tpl,
		Config:      cfg,
	})
	if err != nil {
		return err
	}

	if flagTokens {
		est := tokens.EstimateRequest(req, model)
		fmt.Fprintf(cmd.OutOrStdout(), "Number of tokens in the prompt: %s.\n",
			color.YellowString("%d", est.Tokens))
		fmt.Fprintf(cmd.OutOrStdout(), "Cost of the prompt for the %s model: %s.\n",
			color.BlueString(model.ID), color.YellowString("$%.6f", est.CostUSD))
		if est.SystemExcluded {
			fmt.Fprintf(cmd.OutOrStdout(), "Note: %s does not accept a system message; the system prompt was excluded from the count.\n",
				model.ID)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "This cost covers the prompt only, not the response.")
		return nil
	}

	provider, err := factory.New(dir, cfg, model.Provider)
	if err != nil {
		return err
	}
	log.Debug("sending request",
		zap.String("provider", provider.Name()),
		zap.String("model", req.Model),
		zap.Bool("stream", !flagNoStream),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd())
	r := render.New(cmd.OutOrStdout(), render.Options{
		Raw:             flagRaw || !stdoutTTY,
		CodeBlockTheme:  cfg.CodeBlockTheme,
		InlineCodeTheme: cfg.InlineCodeTheme,
	})

	// Spacing around the response in an interactive shell.
	if stdoutTTY {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if flagNoStream {
		resp, err := provider.Chat(ctx, req)
		if err != nil {
			return err
		}
		if err := r.Write(resp.Content); err != nil {
			return err
		}
	} else {
		if _, err := provider.ChatStream(ctx, req, r.Write); err != nil {
			// Partial output stays on screen; only the failure is added.
			return err
		}
	}
	if err := r.Flush(); err != nil {
		return err
	}

	if stdoutTTY {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// readStdin returns piped or redirected input, empty when attached to
// a terminal.
func readStdin(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// readInteractive prompts for a multi-line message on the terminal.
func readInteractive(cmd *cobra.Command) (string, error) {
	fmt.Fprintln(os.Stderr, color.YellowString(
		"Write or paste your message below. Use <Enter> for new lines.\nTo send your message, press Ctrl+D."))
	fmt.Fprintln(os.Stderr, "---")

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading prompt: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
