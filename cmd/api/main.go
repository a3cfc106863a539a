package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskboard/core/cmd/api/commands"
)

// @title TaskBoard API
// @version 1.0
// @description Kanban task management backend with per-task time tracking
// @termsOfService https://github.com/taskboard/core/blob/main/LICENSE

// @contact.name TaskBoard Support
// @contact.url https://github.com/taskboard/core

// @license.name MIT
// @license.url https://github.com/taskboard/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "TaskBoard API Server",
		Long:  `TaskBoard is a kanban task management backend with projects, collaborators and per-task time tracking.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
