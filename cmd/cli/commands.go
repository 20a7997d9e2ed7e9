package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	playerID  string
	partition string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(highlightsCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(uploadsCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(metricsCmd)

	highlightsCmd.Flags().StringVar(&playerID, "player", "", "Player ID")
	uploadCmd.Flags().StringVar(&playerID, "player", "", "Player ID")
	uploadCmd.Flags().StringVar(&partition, "partition", "match", "Target partition (match or best)")
	uploadsCmd.Flags().StringVar(&playerID, "player", "", "Player ID (empty for all)")
	fixturesCmd.Flags().StringVar(&playerID, "player", "", "Player ID")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players on the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var highlightsCmd = &cobra.Command{
	Use:   "highlights",
	Short: "Show a player's highlight collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/highlights?playerID=" + url.QueryEscape(playerID))
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload [files...]",
	Short: "Upload one or more highlight videos for a player",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("playerID", playerID); err != nil {
			return err
		}
		if err := mw.WriteField("partition", partition); err != nil {
			return err
		}
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			part, err := mw.CreateFormFile("videos", filepath.Base(path))
			if err != nil {
				f.Close()
				return err
			}
			if _, err := io.Copy(part, f); err != nil {
				f.Close()
				return err
			}
			f.Close()
		}
		if err := mw.Close(); err != nil {
			return err
		}

		resp, err := http.Post(host+"/highlights/upload", mw.FormDataContentType(), &buf)
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		return printResponse(resp)
	},
}

var uploadsCmd = &cobra.Command{
	Use:   "uploads",
	Short: "Show the upload queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/highlights/uploads?playerID=" + url.QueryEscape(playerID))
	},
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List a player's fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/fixtures?playerID=" + url.QueryEscape(playerID))
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the coaching assistant a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{"message": args[0]})
		if err != nil {
			return err
		}
		resp, err := http.Post(host+"/coach/chat", "application/json", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()
		// The answer streams as SSE, so relay it line by line.
		_, err = io.Copy(os.Stdout, resp.Body)
		return err
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
