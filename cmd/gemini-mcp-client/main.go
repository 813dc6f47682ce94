// Command gemini-mcp-client starts an MCP server over stdio and runs an
// interactive chat loop that relays queries to Gemini, executing the server's
// tools on the model's behalf.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matheushmfr/gemini-mcp-client/assistants"
	"github.com/matheushmfr/gemini-mcp-client/chat"
	"github.com/matheushmfr/gemini-mcp-client/chatmodel"
	"github.com/matheushmfr/gemini-mcp-client/llmfactory"
	"github.com/matheushmfr/gemini-mcp-client/mcpclient"
	"github.com/matheushmfr/gemini-mcp-client/tools"
)

var logger = xlog.NewPackageLogger("github.com/matheushmfr/gemini-mcp-client", "main")

type flags struct {
	cfgFile  string
	model    string
	project  string
	location string
	native   bool
	debug    bool
}

func main() {
	f := new(flags)

	cmd := &cobra.Command{
		Use:          "gemini-mcp-client [flags] <server-script>",
		Short:        "Chat with Gemini over the tools of an MCP server",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.cfgFile, "config", "", "path to the YAML configuration file")
	cmd.Flags().StringVar(&f.model, "model", "", "Gemini model name")
	cmd.Flags().StringVar(&f.project, "project", "", "GCP project for the Vertex AI backend")
	cmd.Flags().StringVar(&f.location, "location", "", "GCP location for the Vertex AI backend")
	cmd.Flags().BoolVar(&f.native, "native", false, "use native function calling instead of prompt-embedded tools")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, f *flags, serverScript string) error {
	// .env is optional, environment takes precedence.
	_ = godotenv.Load()

	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if f.debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}

	ctx := chatmodel.WithChatContext(cmd.Context(), chatmodel.NewChatContext(""))

	cfg, err := llmfactory.LoadConfig(f.cfgFile)
	if err != nil {
		return err
	}
	cfg.Gemini.Model = values.StringsCoalesce(f.model, cfg.Gemini.Model)
	cfg.Gemini.CloudProject = values.StringsCoalesce(f.project, cfg.Gemini.CloudProject)
	cfg.Gemini.CloudLocation = values.StringsCoalesce(f.location, cfg.Gemini.CloudLocation)

	factory := llmfactory.New(cfg)
	model, err := factory.Model(ctx)
	if err != nil {
		return err
	}
	history, err := factory.Store(ctx)
	if err != nil {
		return err
	}

	client, err := mcpclient.Connect(ctx, mcpclient.WithServerScript(serverScript))
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "close", "err", err.Error())
		}
	}()

	infos, err := client.ListTools(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	fmt.Printf("\nConnected to server with tools: [%s]\n", strings.Join(names, ", "))

	toolList := tools.FromMCP(client, infos...)

	var assistant assistants.IAssistant
	if f.native {
		assistant, err = assistants.NewNativeAssistant(model, toolList, assistants.WithStore(history))
	} else {
		assistant, err = assistants.NewPromptedAssistant(model, toolList, assistants.WithStore(history))
	}
	if err != nil {
		return err
	}

	loop, err := chat.NewLoop(assistant)
	if err != nil {
		return err
	}
	return loop.Run(ctx)
}
