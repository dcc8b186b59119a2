// Command smoke exercises a running designai instance end to end:
// root, rate-limit status and a URL-based comparison.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	base := flag.String("base", "http://localhost:8000", "designai base URL")
	url1 := flag.String("version1", "", "URL of the first design version")
	url2 := flag.String("version2", "", "URL of the second design version")
	flag.Parse()

	client := &http.Client{Timeout: 120 * time.Second}
	failed := false

	for _, path := range []string{"/", "/rate-limit"} {
		if err := get(client, *base+path); err != nil {
			fmt.Fprintf(os.Stderr, "GET %s failed: %v\n", path, err)
			failed = true
		}
	}

	if *url1 != "" && *url2 != "" {
		payload, _ := json.Marshal(map[string]string{
			"version1_url": *url1,
			"version2_url": *url2,
			"context":      "smoke check",
		})
		resp, err := client.Post(*base+"/analyze-urls", "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "POST /analyze-urls failed: %v\n", err)
			failed = true
		} else {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			fmt.Printf("POST /analyze-urls -> %s\n%s\n", resp.Status, body)
			if resp.StatusCode != http.StatusOK {
				failed = true
			}
		}
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("smoke check passed")
}

func get(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s: %s", resp.Status, body)
	}
	fmt.Printf("GET %s -> %s\n%s\n", url, resp.Status, body)
	return nil
}
