package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"kuroma-gateway/internal/adapter/client"
	"kuroma-gateway/internal/config"
	"kuroma-gateway/internal/domain/entity"
	"kuroma-gateway/internal/logging"
	"kuroma-gateway/internal/render"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds the dependencies shared by every command.
type Runner struct {
	config     config.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     config.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(nil, opts.Config.LogLevel)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Config.GatewayURL == "" {
		opts.Config.GatewayURL = config.DefaultGatewayURL
	}
	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		intentCommand(r),
		waitlistCommand(r),
	}
}

func (r *Runner) gatewayFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "gateway",
		Aliases: []string{"g"},
		Usage:   "Base URL of the Kuroma gateway",
		Value:   r.config.GatewayURL,
	}
}

func (r *Runner) gateway(cmd *cli.Command) *client.GatewayClient {
	return client.NewGatewayClient(cmd.String("gateway"), r.httpClient)
}

func intentCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "intent",
		Usage:     "Send a prompt to the intent API and show the playlist it produced",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			r.gatewayFlag(),
			&cli.StringFlag{
				Name:    "session",
				Aliases: []string{"s"},
				Usage:   "Session ID forwarded to the intent service",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Also print the raw JSON response",
			},
		},
		Action: r.Intent,
	}
}

func waitlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "waitlist",
		Usage: "Manage waitlist signups",
		Commands: []*cli.Command{
			{
				Name:      "join",
				Usage:     "Add an email to the waitlist",
				ArgsUsage: "<email>",
				Flags:     []cli.Flag{r.gatewayFlag()},
				Action:    r.JoinWaitlist,
			},
		},
	}
}

// Intent posts the prompt and renders the canonical playlist.
func (r *Runner) Intent(ctx context.Context, cmd *cli.Command) error {
	prompt := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if prompt == "" {
		render.Error(r.output, "Prompt is required.")
		return entity.ErrMissingPrompt
	}

	data, err := r.gateway(cmd).Intent(ctx, prompt, cmd.String("session"))
	if err != nil {
		return r.fail(err)
	}

	resp, err := entity.ParseIntentResponse(data)
	if err != nil {
		// The intent service answered with something other than an object.
		r.logger.Debug("unstructured intent response", "err", err)
		return render.Raw(r.output, data)
	}

	render.Intent(r.output, resp)
	if cmd.Bool("raw") {
		fmt.Fprintln(r.output)
		return render.Raw(r.output, data)
	}
	return nil
}

// JoinWaitlist posts the email to the waitlist endpoint.
func (r *Runner) JoinWaitlist(ctx context.Context, cmd *cli.Command) error {
	email := strings.TrimSpace(cmd.Args().First())
	if email == "" {
		render.Error(r.output, "Email is required")
		return entity.ErrMissingEmail
	}

	if err := r.gateway(cmd).JoinWaitlist(ctx, email); err != nil {
		return r.fail(err)
	}
	render.Success(r.output, "You’re on the list. Thank you!")
	return nil
}

func (r *Runner) fail(err error) error {
	var gwErr *client.GatewayError
	if errors.As(err, &gwErr) {
		r.logger.Debug("gateway request failed", "status", gwErr.Status, "err", gwErr.Err)
		render.Error(r.output, gwErr.Message)
		return err
	}
	render.Error(r.output, client.NetworkErrorMessage)
	return err
}
