package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TolgaCulfa/sunum2/internal/ai"
	"github.com/TolgaCulfa/sunum2/internal/composer"
	"github.com/TolgaCulfa/sunum2/internal/config"
	"github.com/TolgaCulfa/sunum2/internal/mcpserver"
	"github.com/TolgaCulfa/sunum2/internal/persist"
	"github.com/TolgaCulfa/sunum2/internal/quota"
)

var mcpOwner string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose generation tools over MCP stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpOwner, "owner", "mcp", "Owner ID charged for tool calls")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = config.DataDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	store, err := persist.NewStore(filepath.Join(dataDir, "sunum2.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	registry, err := ai.LoadRegistry()
	if err != nil {
		return fmt.Errorf("load model registry: %w", err)
	}
	completer, err := ai.NewCompleter(cfg.Provider)
	if err != nil {
		return fmt.Errorf("create provider client: %w", err)
	}

	guard := quota.NewGuard(store, cfg.Quota.DailySlideLimit)
	comp := composer.New(completer, registry, guard, store)

	owner := mcpOwner
	if !cmd.Flags().Changed("owner") && cfg.MCP.Owner != "" {
		owner = cfg.MCP.Owner
	}
	return mcpserver.NewServer(comp, guard, owner, build).ServeStdio()
}
