package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"loadsmart_billing/internal/conf"
)

var rootCmd = &cobra.Command{
	Use:   "loadsmart_billing",
	Short: "Loadsmart Billing Service",
	Long:  `The main entry point for the Loadsmart invoice and billing service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*conf.AppConfig, error) {
	confFile, _ := cmd.Flags().GetString("config")
	appConfig, err := conf.NewConfig(confFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	port, _ := cmd.Flags().GetInt("port")
	if port > 0 {
		appConfig.Port = port
	}

	return appConfig, nil
}

var adminCmd = &cobra.Command{
	Use:   "serve:admin",
	Short: "Starts the admin HTTP server",
	Long:  `Starts the HTTP server for the internal operations console.`,
	Run: func(cmd *cobra.Command, args []string) {
		appConfig, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		app, cleanup, err := InitializeAdminApp(appConfig)
		if err != nil {
			log.Fatalf("failed to init admin app: %v", err)
		}
		defer cleanup()

		if err := app.Run(); err != nil {
			log.Fatalf("failed to run admin app: %v", err)
		}
	},
}

var shipperCmd = &cobra.Command{
	Use:   "serve:shipper",
	Short: "Starts the shipper HTTP server",
	Long:  `Starts the HTTP server for the shipper-facing invoice portal.`,
	Run: func(cmd *cobra.Command, args []string) {
		appConfig, err := loadConfig(cmd)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		app, cleanup, err := InitializeShipperApp(appConfig)
		if err != nil {
			log.Fatalf("failed to init shipper app: %v", err)
		}
		defer cleanup()

		if err := app.Run(); err != nil {
			log.Fatalf("failed to run shipper app: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(shipperCmd)
	rootCmd.PersistentFlags().IntP("port", "p", 0, "Port for the server to listen on, overrides the value in the config file")
	rootCmd.PersistentFlags().StringP("config", "c", "internal/conf/config.yaml", "path to config file")
}
